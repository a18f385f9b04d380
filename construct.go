package locator

import (
	"reflect"
)

// Introspector enumerates a constructor's dependency slots and builds an
// instance from resolved values. It is the only reflective capability the
// constructor resolver depends on, so alternative construction strategies
// (code-generated builders, for example) can plug in without touching the
// resolver.
type Introspector interface {
	// Parameters returns the types of the constructor's dependency slots,
	// in declaration order.
	Parameters() []reflect.Type

	// Construct builds an instance from resolved values, one per parameter.
	Construct(args []reflect.Value) (reflect.Value, error)
}

// RegisterConstructor registers ctor, a function returning exactly one
// value, under its return type. On every construction each parameter is
// resolved from the same locator; a parameter with no registration is
// substituted with its zero value rather than failing the whole chain, so
// constructors that tolerate absent dependencies still succeed. Resolution
// of a parameter may recurse into further constructor-backed entries; a
// cycle fails with CircularDependencyError.
func (l *Locator) RegisterConstructor(ctor any, lifetime Lifetime) error {
	fc, svcType, err := newFuncConstructor(ctor)
	if err != nil {
		return err
	}

	if !lifetime.IsValid() {
		return LifetimeError{Value: lifetime}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.register(svcType, "", constructedFactory(svcType, fc), lifetime)
}

// RegisterType registers t with a factory that builds it through the
// constructor resolver. A struct (or pointer-to-struct) type is built by
// resolving each exported field by type from the locator, with missing
// dependencies left at their zero value. Any other type falls back to its
// zero value.
func (l *Locator) RegisterType(t reflect.Type, lifetime Lifetime) error {
	if t == nil {
		return ErrTypeNil
	}

	if !lifetime.IsValid() {
		return LifetimeError{Value: lifetime}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.register(t, "", constructedFactory(t, newStructConstructor(t)), lifetime)
}

// constructedFactory returns a factory that builds svcType through the
// constructor resolver of whichever locator invokes it. Binding the locator
// at invocation time rather than at registration time keeps copied entries
// resolving against the scope that holds them.
func constructedFactory(svcType reflect.Type, intro Introspector) factory {
	return func(l *Locator, rc *resolveCtx) (any, error) {
		return l.construct(rc, svcType, intro)
	}
}

// construct builds an instance of svcType via intro, resolving every
// parameter from this locator. A parameter with no entry resolves to its
// zero value. Re-entering a type already under construction in the same
// resolution fails with CircularDependencyError carrying the chain. The
// caller holds l.mu.
func (l *Locator) construct(rc *resolveCtx, svcType reflect.Type, intro Introspector) (any, error) {
	if rc.inProgress[svcType] {
		return nil, CircularDependencyError{
			ServiceType: svcType,
			Chain:       append([]reflect.Type(nil), rc.chain...),
		}
	}
	rc.inProgress[svcType] = true
	rc.chain = append(rc.chain, svcType)
	defer func() {
		delete(rc.inProgress, svcType)
		rc.chain = rc.chain[:len(rc.chain)-1]
	}()

	params := intro.Parameters()
	args := make([]reflect.Value, len(params))
	for i, p := range params {
		v, ok, err := l.lookup(p, rc)
		if err != nil {
			return nil, err
		}
		args[i] = reflect.Zero(p)
		if ok && v != nil {
			if rv := reflect.ValueOf(v); rv.Type().AssignableTo(p) {
				args[i] = rv
			}
		}
	}

	out, err := intro.Construct(args)
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// funcConstructor adapts a constructor function to the Introspector
// capability. The function's inputs are its dependency slots.
type funcConstructor struct {
	fn reflect.Value
}

func newFuncConstructor(ctor any) (funcConstructor, reflect.Type, error) {
	if ctor == nil {
		return funcConstructor{}, nil, ErrConstructorNil
	}

	v := reflect.ValueOf(ctor)
	t := v.Type()
	if t.Kind() != reflect.Func || t.NumOut() != 1 || t.IsVariadic() {
		return funcConstructor{}, nil, InvalidConstructorError{ConstructorType: t}
	}
	return funcConstructor{fn: v}, t.Out(0), nil
}

func (c funcConstructor) Parameters() []reflect.Type {
	t := c.fn.Type()
	params := make([]reflect.Type, t.NumIn())
	for i := range params {
		params[i] = t.In(i)
	}
	return params
}

func (c funcConstructor) Construct(args []reflect.Value) (reflect.Value, error) {
	return c.fn.Call(args)[0], nil
}

// structConstructor adapts a struct (or pointer-to-struct) type to the
// Introspector capability. Its exported fields, in declaration order, are
// its dependency slots; a type with no slots constructs as its zero value.
type structConstructor struct {
	typ    reflect.Type
	elem   reflect.Type
	ptr    bool
	fields []int
}

func newStructConstructor(t reflect.Type) structConstructor {
	sc := structConstructor{typ: t, elem: t}
	if t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct {
		sc.ptr = true
		sc.elem = t.Elem()
	}
	if sc.elem.Kind() == reflect.Struct {
		for i := 0; i < sc.elem.NumField(); i++ {
			if sc.elem.Field(i).IsExported() {
				sc.fields = append(sc.fields, i)
			}
		}
	}
	return sc
}

func (c structConstructor) Parameters() []reflect.Type {
	params := make([]reflect.Type, len(c.fields))
	for i, idx := range c.fields {
		params[i] = c.elem.Field(idx).Type
	}
	return params
}

func (c structConstructor) Construct(args []reflect.Value) (reflect.Value, error) {
	if c.elem.Kind() != reflect.Struct {
		return reflect.Zero(c.typ), nil
	}

	v := reflect.New(c.elem).Elem()
	for i, idx := range c.fields {
		v.Field(idx).Set(args[i])
	}
	if c.ptr {
		return v.Addr(), nil
	}
	return v, nil
}
