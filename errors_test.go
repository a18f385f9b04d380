package locator_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicekit/locator"
)

func TestSentinelErrors(t *testing.T) {
	sentinelErrors := []struct {
		err     error
		message string
	}{
		{locator.ErrNotRegistered, "service not registered"},
		{locator.ErrAlreadyRegistered, "service already registered"},
		{locator.ErrFactoryNil, "factory cannot be nil"},
		{locator.ErrInstanceNil, "instance cannot be nil"},
		{locator.ErrConstructorNil, "constructor cannot be nil"},
		{locator.ErrTypeNil, "service type cannot be nil"},
		{locator.ErrNameEmpty, "service name cannot be empty"},
		{locator.ErrTagEmpty, "tag cannot be empty"},
		{locator.ErrNotAnInterface, "capability type must be an interface"},
	}

	for _, tt := range sentinelErrors {
		require.NotNil(t, tt.err)
		assert.Equal(t, tt.message, tt.err.Error())
	}
}

func TestTypedErrors(t *testing.T) {
	t.Run("AlreadyRegisteredError", func(t *testing.T) {
		err := locator.AlreadyRegisteredError{ServiceType: reflect.TypeOf(&TConfig{})}

		assert.Contains(t, err.Error(), "TConfig")
		assert.Contains(t, err.Error(), "already registered")
		assert.ErrorIs(t, err, locator.ErrAlreadyRegistered)
	})

	t.Run("NotRegisteredError by type", func(t *testing.T) {
		err := locator.NotRegisteredError{ServiceType: reflect.TypeOf(TConfig{})}

		assert.Contains(t, err.Error(), "TConfig")
		assert.Contains(t, err.Error(), "not registered")
		assert.ErrorIs(t, err, locator.ErrNotRegistered)
	})

	t.Run("NotRegisteredError by name", func(t *testing.T) {
		err := locator.NotRegisteredError{Name: "primary"}

		assert.Contains(t, err.Error(), `"primary"`)
		assert.Contains(t, err.Error(), "name")
		assert.ErrorIs(t, err, locator.ErrNotRegistered)
	})

	t.Run("NotRegisteredError by tag", func(t *testing.T) {
		err := locator.NotRegisteredError{Tag: "handlers"}

		assert.Contains(t, err.Error(), `"handlers"`)
		assert.Contains(t, err.Error(), "tag")
		assert.ErrorIs(t, err, locator.ErrNotRegistered)
	})

	t.Run("LifetimeError", func(t *testing.T) {
		err := locator.LifetimeError{Value: "Scoped"}

		assert.Contains(t, err.Error(), "invalid lifetime")
		assert.Contains(t, err.Error(), "Scoped")
	})

	t.Run("InvalidFactoryError", func(t *testing.T) {
		err := locator.InvalidFactoryError{FactoryType: reflect.TypeOf(42)}

		assert.Contains(t, err.Error(), "func() T")
		assert.Contains(t, err.Error(), "int")
	})

	t.Run("CircularDependencyError includes chain", func(t *testing.T) {
		err := locator.CircularDependencyError{
			ServiceType: reflect.TypeOf(&TCycleA{}),
			Chain: []reflect.Type{
				reflect.TypeOf(&TCycleA{}),
				reflect.TypeOf(&TCycleB{}),
			},
		}

		assert.Contains(t, err.Error(), "circular dependency")
		assert.Contains(t, err.Error(), "TCycleA")
		assert.Contains(t, err.Error(), "TCycleB")
		assert.Contains(t, err.Error(), "->")
	})

	t.Run("TypeMismatchError", func(t *testing.T) {
		err := locator.TypeMismatchError{
			Expected: reflect.TypeOf(&TConfig{}),
			Actual:   reflect.TypeOf("hello"),
		}

		assert.Contains(t, err.Error(), "*locator_test.TConfig")
		assert.Contains(t, err.Error(), "string")
	})
}

func TestErrorMatching(t *testing.T) {
	t.Run("resolution miss matches ErrNotRegistered", func(t *testing.T) {
		loc := locator.New()

		_, err := locator.Resolve[*TConfig](loc)
		require.Error(t, err)
		assert.ErrorIs(t, err, locator.ErrNotRegistered)

		var nrErr locator.NotRegisteredError
		require.ErrorAs(t, err, &nrErr)
		assert.Equal(t, reflect.TypeOf(&TConfig{}), nrErr.ServiceType)
	})

	t.Run("duplicate singleton matches ErrAlreadyRegistered", func(t *testing.T) {
		loc := locator.New()
		require.NoError(t, loc.Register(func() *TConfig { return &TConfig{} }, locator.Singleton))

		err := loc.Register(func() *TConfig { return &TConfig{} }, locator.Singleton)
		require.Error(t, err)
		assert.ErrorIs(t, err, locator.ErrAlreadyRegistered)
	})
}
