package locator

import (
	"reflect"
)

// resolveCtx tracks the types under construction within one top-level
// resolution. It exists for cycle detection: constructor resolution that
// re-enters a type already on the chain fails fast instead of recursing
// forever.
type resolveCtx struct {
	inProgress map[reflect.Type]bool
	chain      []reflect.Type
}

func newResolveCtx() *resolveCtx {
	return &resolveCtx{inProgress: make(map[reflect.Type]bool)}
}

// Lookup resolves t with singleton-then-transient precedence and reports
// whether a value was produced. It is the non-failing counterpart to Get;
// a resolution that fails internally (for example on a circular constructor
// dependency) reports false.
func (l *Locator) Lookup(t reflect.Type) (any, bool) {
	if t == nil {
		return nil, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok, err := l.lookup(t, newResolveCtx())
	if err != nil || !ok {
		return nil, false
	}
	return v, true
}

// Get resolves t with singleton-then-transient precedence: a cached
// singleton is returned as-is, a transient factory is invoked fresh. A type
// with no entry fails with NotRegisteredError.
func (l *Locator) Get(t reflect.Type) (any, error) {
	if t == nil {
		return nil, ErrTypeNil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok, err := l.lookup(t, newResolveCtx())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NotRegisteredError{ServiceType: t}
	}
	return v, nil
}

// LookupNamed resolves name from the name table only, reporting whether an
// entry exists. The factory is invoked fresh on every call.
func (l *Locator) LookupNamed(name string) (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, ok := l.named[name]
	if !ok {
		return nil, false
	}
	v, err := f(l, newResolveCtx())
	if err != nil {
		return nil, false
	}
	return v, true
}

// GetNamed resolves name from the name table only. An unknown name fails
// with NotRegisteredError carrying the name.
func (l *Locator) GetNamed(name string) (any, error) {
	if name == "" {
		return nil, ErrNameEmpty
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, ok := l.named[name]
	if !ok {
		return nil, NotRegisteredError{Name: name}
	}
	return f(l, newResolveCtx())
}

// GetOrDefault resolves t like Get but never fails: when neither table has
// an entry, def is invoked if non-nil, otherwise the type's zero value is
// returned. def runs outside the locator's lock and may itself use the
// locator.
func (l *Locator) GetOrDefault(t reflect.Type, def func() any) any {
	if t == nil {
		if def != nil {
			return def()
		}
		return nil
	}

	l.mu.Lock()
	v, ok, err := l.lookup(t, newResolveCtx())
	l.mu.Unlock()

	if ok && err == nil {
		return v
	}
	if def != nil {
		return def()
	}
	return reflect.Zero(t).Interface()
}

// GetByTag invokes every factory stored under tag, independently and in
// registration order, and returns the eagerly materialized results. A tag
// that has never been registered fails with NotRegisteredError; there is no
// non-failing tag lookup.
func (l *Locator) GetByTag(tag string) ([]any, error) {
	if tag == "" {
		return nil, ErrTagEmpty
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	factories, ok := l.tagged[tag]
	if !ok {
		return nil, NotRegisteredError{Tag: tag}
	}

	out := make([]any, 0, len(factories))
	for _, f := range factories {
		v, err := f(l, newResolveCtx())
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// lookup resolves t with singleton-then-transient precedence. The boolean
// reports whether an entry existed; the error reports a failure inside a
// constructor-backed factory. The caller holds l.mu.
func (l *Locator) lookup(t reflect.Type, rc *resolveCtx) (any, bool, error) {
	if v, ok := l.singletons[t]; ok {
		return v, true, nil
	}
	if f, ok := l.transients[t]; ok {
		v, err := f(l, rc)
		if err != nil {
			return nil, true, err
		}
		return v, true, nil
	}
	return nil, false, nil
}

// KeyOf returns the registration key for T.
func KeyOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Resolve resolves T from the locator with singleton-then-transient
// precedence.
func Resolve[T any](l *Locator) (T, error) {
	v, err := l.Get(KeyOf[T]())
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// MustResolve resolves T and panics on failure. Intended for program
// start-up paths where a missing registration is unrecoverable.
func MustResolve[T any](l *Locator) T {
	v, err := Resolve[T](l)
	if err != nil {
		panic(err)
	}
	return v
}

// TryResolve resolves T, reporting false instead of failing when T has no
// entry.
func TryResolve[T any](l *Locator) (T, bool) {
	v, ok := l.Lookup(KeyOf[T]())
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// ResolveNamed resolves the named entry and asserts it to T. A value of the
// wrong type fails with TypeMismatchError.
func ResolveNamed[T any](l *Locator, name string) (T, error) {
	var zero T

	v, err := l.GetNamed(name)
	if err != nil {
		return zero, err
	}

	tv, ok := v.(T)
	if !ok {
		return zero, TypeMismatchError{Expected: KeyOf[T](), Actual: reflect.TypeOf(v)}
	}
	return tv, nil
}

// ResolveOrDefault resolves T like Resolve but never fails: when T has no
// entry, def is invoked if supplied, otherwise T's zero value is returned.
func ResolveOrDefault[T any](l *Locator, def ...func() T) T {
	if v, ok := TryResolve[T](l); ok {
		return v
	}
	if len(def) > 0 && def[0] != nil {
		return def[0]()
	}
	var zero T
	return zero
}

// ResolveByTag resolves every contribution under tag and asserts each to T,
// preserving registration order.
func ResolveByTag[T any](l *Locator, tag string) ([]T, error) {
	vals, err := l.GetByTag(tag)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(vals))
	for _, v := range vals {
		tv, ok := v.(T)
		if !ok {
			return nil, TypeMismatchError{Expected: KeyOf[T](), Actual: reflect.TypeOf(v)}
		}
		out = append(out, tv)
	}
	return out, nil
}
