package locator

import (
	"errors"
	"reflect"
)

// ErrNotAnInterface is returned when a capability type passed to
// RegisterImplementations is not an interface.
var ErrNotAnInterface = errors.New("capability type must be an interface")

// RegisterImplementations registers every candidate type that implements
// the capability interface iface under key iface with the given lifetime.
// Candidates that do not implement iface (directly or through their pointer
// type) are skipped. Each registered implementation is built through the
// constructor resolver, so its exported fields are injected from the
// locator.
//
// This is the registration entry point for callers that scan packages or
// build-time type lists for implementations of a capability; the scanning
// itself stays outside the locator.
//
// Ordinary registration rules apply per candidate: with Singleton, a second
// implementing candidate fails with AlreadyRegisteredError; with Transient,
// the last implementing candidate wins.
func (l *Locator) RegisterImplementations(iface reflect.Type, lifetime Lifetime, candidates ...reflect.Type) error {
	if iface == nil {
		return ErrTypeNil
	}
	if iface.Kind() != reflect.Interface {
		return ErrNotAnInterface
	}

	if !lifetime.IsValid() {
		return LifetimeError{Value: lifetime}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, c := range candidates {
		if c == nil {
			continue
		}

		impl := c
		if !impl.Implements(iface) {
			p := reflect.PointerTo(c)
			if !p.Implements(iface) {
				continue
			}
			impl = p
		}

		f := constructedFactory(impl, newStructConstructor(impl))
		if err := l.register(iface, "", f, lifetime); err != nil {
			return err
		}
	}
	return nil
}
