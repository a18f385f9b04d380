package locator

import (
	"reflect"
)

// Override replaces a service entry in a scope created by CreateScope.
// Build values with OverrideFor or OverrideInstance; the zero Override is
// inert and skipped.
type Override struct {
	serviceType reflect.Type
	produce     func() any
}

// OverrideFor returns an Override that replaces T's entry in the new scope
// with the result of fn. fn is invoked once, during CreateScope.
func OverrideFor[T any](fn func() T) Override {
	if fn == nil {
		return Override{}
	}
	return Override{
		serviceType: KeyOf[T](),
		produce:     func() any { return fn() },
	}
}

// OverrideInstance returns an Override that replaces T's entry in the new
// scope with value.
func OverrideInstance[T any](value T) Override {
	return Override{
		serviceType: KeyOf[T](),
		produce:     func() any { return value },
	}
}

// CreateScope returns a new locator seeded with a snapshot of l's singleton
// and transient tables. The copy is shallow: cached singleton values and
// transient factories are shared, not cloned. Each override is then
// installed into the scope's singleton table, its factory invoked
// immediately, unconditionally replacing whatever was copied for that type
// regardless of the original lifetime.
//
// After creation the scope has no relationship to its parent: mutations on
// either side are invisible to the other, and the two serialize on
// independent locks, so concurrent use of a parent and its scopes cannot
// deadlock.
func (l *Locator) CreateScope(overrides ...Override) *Locator {
	scope := New()

	l.mu.Lock()
	for t, v := range l.singletons {
		scope.singletons[t] = v
	}
	for t, f := range l.transients {
		scope.transients[t] = f
	}
	l.mu.Unlock()

	// The scope is unpublished here, so its tables are written without its
	// lock. Override factories run outside any lock and may use the parent.
	for _, o := range overrides {
		if o.serviceType == nil || o.produce == nil {
			continue
		}
		scope.singletons[o.serviceType] = o.produce()
	}
	return scope
}
