// Package locator provides a runtime service registry and resolver: a
// process-local facility that lets independent parts of a program register
// how a value of a given type (or named or tagged variant) is constructed,
// and later retrieve an instance with control over whether one shared
// instance or a fresh instance is produced per request.
//
// # Overview
//
// A Locator owns four independent tables: type-keyed singletons, type-keyed
// transient factories, name-keyed factories, and tag-keyed factory
// collections. Registration populates the tables; resolution reads them,
// invoking factories as needed; CreateScope snapshots them into a new,
// independent locator.
//
//	loc := locator.New()
//	loc.Register(func() *Config { return LoadConfig() }, locator.Singleton)
//	loc.RegisterConstructor(NewUserService, locator.Transient)
//
//	svc, err := locator.Resolve[*UserService](loc)
//
// # Lifetimes
//
//   - Singleton: the factory is invoked once, at registration time, and the
//     result is cached and shared. Registering a second singleton for the
//     same type fails with AlreadyRegisteredError.
//   - Transient: the factory is stored and invoked on every resolution. A
//     later transient registration for the same type replaces the earlier
//     one silently.
//
// Named registrations (WithName) live in their own namespace, ignore the
// lifetime, and are invoked fresh on every named resolution. RegisterLazy
// wraps a factory in a memoizing adapter before applying ordinary
// registration rules; lazy plus Transient therefore constructs once on
// first resolution and returns the cached value afterwards.
//
// # Constructor injection
//
// RegisterConstructor accepts a function whose parameters are resolved from
// the same locator on each construction, recursively. RegisterType does the
// same for a struct type's exported fields. A missing dependency is
// substituted with its zero value rather than failing the chain; a circular
// constructor dependency fails with CircularDependencyError.
//
// # Tags
//
// WithTags appends an independent wrapper over the factory to each tag's
// collection. GetByTag invokes every wrapper in registration order. Because
// the tag wrapper closes over the user factory rather than delegating to
// the type entry, a Transient tagged registration yields a distinct
// instance via GetByTag versus Get — contracted behavior, not a bug.
// RegisterInstance, by contrast, appends the instance itself, so its tag
// entries share identity with the type entry.
//
// # Scopes
//
// CreateScope returns a new locator seeded with a shallow snapshot of the
// parent's singleton and transient tables, with caller-supplied overrides
// installed at highest precedence. The scope is fully independent of its
// parent afterwards.
//
// # Concurrency
//
// Every operation on a locator runs under one exclusive critical section
// per locator instance, held for the duration of the operation including
// singleton factory execution. Factories are niladic and must not call
// back into the locator they are registered with (the lock is not
// reentrant); constructors that need dependencies declare them as
// parameters via RegisterConstructor or RegisterType instead.
package locator
