package ioc

import "github.com/coriolis-labs/ioc/internal/lifetime"

// Disposable is implemented by services that hold a resource needing
// synchronous cleanup (a *sql.DB, an open file, a subscription). An
// instance implementing Disposable that a Provider or Scope constructs
// is tracked by it and closed, in LIFO order, when that Provider or
// Scope is closed. A Transient resolved directly from the root
// ServiceProvider and a value registered with AddInstance are not
// tracked.
type Disposable = lifetime.Disposable

// AsyncDisposable is implemented by services whose cleanup should
// observe a context deadline (a connection pool that drains in-flight
// requests before closing). CloseContext is preferred over Close when
// the owning Provider or Scope is closed via CloseContext.
type AsyncDisposable = lifetime.AsyncDisposable
