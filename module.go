package ioc

// ModuleOption is one registration step within a Module. It is sugar
// over Collection.Register and the Add* helpers, not a new binding
// concept (SPEC_FULL.md's non-goals note on Module): every ModuleOption still ends
// up calling the same Collection methods a caller could call directly.
type ModuleOption func(*Collection) error

// Module groups related registrations under a name, so registration
// failures can be attributed to the module that caused them (grounded
// on the teacher's module.go).
//
// Example:
//
//	var DatabaseModule = ioc.Module("database",
//	    ioc.WithSingleton(NewConnectionPool),
//	    ioc.WithScoped(NewUserRepository),
//	)
func Module(name string, options ...ModuleOption) ModuleOption {
	return func(c *Collection) error {
		for _, opt := range options {
			if opt == nil {
				continue
			}
			if err := opt(c); err != nil {
				return &ModuleError{Module: name, Cause: err}
			}
		}
		return nil
	}
}

// WithModule nests another module's options under this one.
func WithModule(module ModuleOption) ModuleOption {
	return func(c *Collection) error {
		if module == nil {
			return nil
		}
		return module(c)
	}
}

// WithSingleton is a ModuleOption for a Singleton-lifetime constructor.
func WithSingleton(constructor any) ModuleOption {
	return func(c *Collection) error {
		return c.AddSingleton(constructor)
	}
}

// WithScoped is a ModuleOption for a Scoped-lifetime constructor.
func WithScoped(constructor any) ModuleOption {
	return func(c *Collection) error {
		return c.AddScoped(constructor)
	}
}

// WithTransient is a ModuleOption for a Transient-lifetime constructor.
func WithTransient(constructor any) ModuleOption {
	return func(c *Collection) error {
		return c.AddTransient(constructor)
	}
}

// Apply runs every option against c in order, stopping at the first
// error.
func (c *Collection) Apply(options ...ModuleOption) error {
	for _, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}
