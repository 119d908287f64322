// Package ioc provides a minimal, reflection-based dependency injection
// container for Go applications: three service lifetimes, constructor
// injection, enumerable ("give me every implementation") resolution, and
// scope-per-unit-of-work disposal.
//
// # Overview
//
// Register constructors against a Collection, build a root
// ServiceProvider from it, and resolve:
//
//	services := ioc.New()
//	services.AddSingleton(NewLogger)
//	services.AddTransient(NewUserService)
//
//	provider := services.BuildProvider()
//	defer provider.Close()
//
//	userService, err := ioc.Resolve[*UserService](provider)
//
// # Service Lifetimes
//
//   - Singleton: one instance, shared across the whole application.
//   - Scoped: one instance per Scope (a request, a job run).
//   - Transient: a fresh instance on every resolution.
//
// # Dependency Injection
//
// Constructors declare their dependencies as parameters and return the
// constructed value, optionally along with an error:
//
//	func NewUserService(db *Database, logger Logger) (*UserService, error) {
//	    return &UserService{db: db, logger: logger}, nil
//	}
//
// The container resolves each parameter by its own registered type
// before invoking the constructor.
//
// # Enumerable Resolution
//
// Registering several constructors against the same interface and
// asking for a slice of it returns every one, in registration order:
//
//	services.AddTransient(NewUserHandler)
//	services.AddTransient(NewAdminHandler)
//	handlers, err := ioc.ResolveAll[http.Handler](provider)
//
// # Open Generics
//
// Go's reflect package cannot recover a generic instantiation's type
// arguments at runtime, so an open-generic registration supplies a
// GenericFactory that dispatches on the closed type itself:
//
//	var repoSample Repo[struct{}]
//	services.AddOpenGeneric(reflect.TypeOf(repoSample), ioc.Scoped,
//	    func(closed reflect.Type, p ioc.Provider) (any, error) {
//	        return newRepoFor(closed, p)
//	    })
//
// # Scopes
//
// Create a Scope for each unit of work; Scoped services resolved
// through it are cached and disposed together when it closes:
//
//	scope := provider.CreateScope(ctx)
//	defer scope.Close()
//	service, err := ioc.Resolve[*UserService](scope)
//
// # Disposal
//
// An instance implementing Disposable or AsyncDisposable that a Provider
// or Scope constructs is tracked by that owner and released in LIFO
// order when the owner is closed: Close calls only Close, CloseContext
// prefers CloseContext and falls back to Close. A Transient resolved
// directly from the root ServiceProvider, and a value registered with
// AddInstance, are not tracked.
//
// # Modules
//
// Group related registrations so a failure names the module it came
// from:
//
//	var DatabaseModule = ioc.Module("database",
//	    ioc.WithSingleton(NewConnectionPool),
//	    ioc.WithScoped(NewUserRepository),
//	)
//	services.Apply(DatabaseModule)
//
// # Thread Safety
//
// Collection, ServiceProvider and Scope are safe for concurrent use.
// Singleton and Scoped construction is at-most-once even under
// concurrent first access.
package ioc
