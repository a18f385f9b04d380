package locator

import (
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// factory is the internal invocation shape for every registered entry. The
// locator argument is the instance handling the resolution (a scope invokes
// copied factories against itself, not against the parent that created
// them), and the resolveCtx threads the in-progress set used for cycle
// detection through constructor recursion. Factories are invoked with the
// locator's mutex held.
type factory func(l *Locator, rc *resolveCtx) (any, error)

// Locator is a thread-safe service registry and resolver. Register
// associates a type, name, or tag with a value-producing factory and a
// Lifetime; the Get and Resolve families hand instances back out.
//
// Locators are explicit values: there is no package-level default instance.
// Create one with New, pass it where it is needed, and derive snapshots
// with CreateScope.
type Locator struct {
	id string

	// mu serializes every operation on this locator, including factory
	// execution on the singleton path. A slow singleton factory therefore
	// stalls concurrent callers for its duration.
	mu sync.Mutex

	singletons map[reflect.Type]any
	transients map[reflect.Type]factory
	named      map[string]factory
	tagged     map[string][]factory
}

// New creates an empty Locator.
func New() *Locator {
	return &Locator{
		id:         uuid.NewString(),
		singletons: make(map[reflect.Type]any),
		transients: make(map[reflect.Type]factory),
		named:      make(map[string]factory),
		tagged:     make(map[string][]factory),
	}
}

// ID returns the unique ID of this locator. Every locator, including each
// scope created by CreateScope, gets its own ID.
func (l *Locator) ID() string {
	return l.id
}

// RegisterOption configures a Register or RegisterLazy call.
type RegisterOption func(*registerOptions)

type registerOptions struct {
	name string
	tags []string
}

// WithName stores the factory under the given name instead of under its
// return type. Named registrations ignore the lifetime: the factory is
// invoked fresh on every named resolution.
func WithName(name string) RegisterOption {
	return func(o *registerOptions) {
		o.name = name
	}
}

// WithTags additionally appends the factory to each tag's collection. Each
// tag entry is a separate closure over the user factory rather than a
// delegate to the primary entry, so a Transient tagged registration
// produces instances via GetByTag that are distinct from those produced via
// Get. This divergence is contracted behavior.
func WithTags(tags ...string) RegisterOption {
	return func(o *registerOptions) {
		o.tags = append(o.tags, tags...)
	}
}

// Register registers fn, which must be a niladic function returning exactly
// one value, under its return type (or under a name given via WithName).
//
// With Singleton, fn is invoked immediately and the result cached;
// registering a type that already has a singleton entry fails with
// AlreadyRegisteredError. With Transient, fn is stored and invoked on every
// resolution; a prior transient entry for the same type is silently
// replaced.
func (l *Locator) Register(fn any, lifetime Lifetime, opts ...RegisterOption) error {
	userFn, svcType, err := adaptFactory(fn)
	if err != nil {
		return err
	}

	o, err := applyOptions(opts)
	if err != nil {
		return err
	}

	if !lifetime.IsValid() {
		return LifetimeError{Value: lifetime}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.register(svcType, o.name, wrap(userFn), lifetime); err != nil {
		return err
	}

	l.tag(userFn, o.tags)
	return nil
}

// TryRegister registers fn like Register, but only if the type has neither
// a singleton nor a transient entry yet. An existing registration is left
// untouched and reported as (false, nil), never as an error.
func (l *Locator) TryRegister(fn any, lifetime Lifetime) (bool, error) {
	userFn, svcType, err := adaptFactory(fn)
	if err != nil {
		return false, err
	}

	if !lifetime.IsValid() {
		return false, LifetimeError{Value: lifetime}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.singletons[svcType]; ok {
		return false, nil
	}
	if _, ok := l.transients[svcType]; ok {
		return false, nil
	}

	if err := l.register(svcType, "", wrap(userFn), lifetime); err != nil {
		return false, err
	}
	return true, nil
}

// RegisterInstance registers an already-constructed value as a singleton,
// keyed by its concrete runtime type. The same instance (not a
// re-invocation) is additionally appended to each given tag's collection,
// so tag resolution shares identity with the primary registration.
func (l *Locator) RegisterInstance(instance any, tags ...string) error {
	if instance == nil {
		return ErrInstanceNil
	}
	for _, tag := range tags {
		if tag == "" {
			return ErrTagEmpty
		}
	}

	svcType := reflect.TypeOf(instance)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.singletons[svcType]; exists {
		return AlreadyRegisteredError{ServiceType: svcType}
	}
	l.singletons[svcType] = instance

	for _, tag := range tags {
		l.tagged[tag] = append(l.tagged[tag], func(*Locator, *resolveCtx) (any, error) {
			return instance, nil
		})
	}
	return nil
}

// RegisterLazy wraps fn in a memoizing adapter and registers the adapter
// under ordinary registration rules for lifetime. The first invocation of
// the adapter calls fn and caches its result for every later invocation.
// Combined with Transient this means the underlying construction happens
// once, on first resolution, and every subsequent resolution returns the
// same cached value even though the registration is nominally transient —
// a deliberate interaction, not a bug.
func (l *Locator) RegisterLazy(fn any, lifetime Lifetime, opts ...RegisterOption) error {
	userFn, svcType, err := adaptFactory(fn)
	if err != nil {
		return err
	}

	o, err := applyOptions(opts)
	if err != nil {
		return err
	}

	if !lifetime.IsValid() {
		return LifetimeError{Value: lifetime}
	}

	var (
		once   sync.Once
		cached any
	)
	memo := func() any {
		once.Do(func() {
			cached = userFn()
		})
		return cached
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.register(svcType, o.name, wrap(memo), lifetime); err != nil {
		return err
	}

	l.tag(memo, o.tags)
	return nil
}

// Reset atomically clears every registration in this locator. Scopes
// already created from it, and instances already handed out, are
// unaffected.
func (l *Locator) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.singletons = make(map[reflect.Type]any)
	l.transients = make(map[reflect.Type]factory)
	l.named = make(map[string]factory)
	l.tagged = make(map[string][]factory)
}

// register installs f under svcType, or under name when name is non-empty.
// Named entries bypass the type tables and the lifetime entirely. The
// caller holds l.mu.
func (l *Locator) register(svcType reflect.Type, name string, f factory, lifetime Lifetime) error {
	if name != "" {
		l.named[name] = f
		return nil
	}

	switch lifetime {
	case Singleton:
		if _, exists := l.singletons[svcType]; exists {
			return AlreadyRegisteredError{ServiceType: svcType}
		}
		v, err := f(l, newResolveCtx())
		if err != nil {
			return err
		}
		l.singletons[svcType] = v
	case Transient:
		l.transients[svcType] = f
	}
	return nil
}

// tag appends one independent wrapper over fn per tag. The caller holds
// l.mu and has already validated the tags.
func (l *Locator) tag(fn func() any, tags []string) {
	for _, t := range tags {
		l.tagged[t] = append(l.tagged[t], wrap(fn))
	}
}

// adaptFactory validates that fn is a func() T and adapts it to an untyped
// closure, returning the closure and T as the registration key.
func adaptFactory(fn any) (func() any, reflect.Type, error) {
	if fn == nil {
		return nil, nil, ErrFactoryNil
	}

	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func || t.NumIn() != 0 || t.NumOut() != 1 {
		return nil, nil, InvalidFactoryError{FactoryType: t}
	}

	call := func() any {
		return v.Call(nil)[0].Interface()
	}
	return call, t.Out(0), nil
}

func applyOptions(opts []RegisterOption) (registerOptions, error) {
	var o registerOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	for _, tag := range o.tags {
		if tag == "" {
			return o, ErrTagEmpty
		}
	}
	return o, nil
}

// wrap adapts a plain user factory to the internal factory shape.
func wrap(fn func() any) factory {
	return func(*Locator, *resolveCtx) (any, error) {
		return fn(), nil
	}
}
