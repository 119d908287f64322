package collaborators

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coriolis-labs/ioc"
)

// scopeContextKey is how GinServer attaches the per-request *ioc.Scope
// to the *gin.Context, so Handle can retrieve it without threading it
// through every handler signature.
type scopeContextKey struct{}

// GinServer runs an *gin.Engine wired to root, opening one ioc.Scope per
// request and closing it when the request completes — adapted from the
// teacher's own gin integration subpackage, which does the same thing
// against godi.Provider/godi.Scope instead of ioc's.
type GinServer struct {
	engine *gin.Engine
	root   ioc.Provider
	log    Logger
}

// NewGinServer builds a GinServer. register is called once with the
// engine, before Run starts serving, so the caller can attach routes
// that use Handle.
func NewGinServer(root ioc.Provider, log Logger, register func(*gin.Engine)) *GinServer {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(scopeMiddleware(root, log))

	if register != nil {
		register(engine)
	}

	return &GinServer{engine: engine, root: root, log: log}
}

// Run implements Server.
func (s *GinServer) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	}
}

// scopeMiddleware creates an ioc.Scope per request, attaches it to the
// request context, and closes it once the handler chain returns.
func scopeMiddleware(root ioc.Provider, log Logger) gin.HandlerFunc {
	type scoper interface {
		CreateScope(context.Context) *ioc.Scope
	}

	sp, ok := root.(scoper)
	if !ok {
		panic("collaborators: GinServer requires a root *ioc.ServiceProvider")
	}

	return func(c *gin.Context) {
		scope := sp.CreateScope(c.Request.Context())
		defer func() {
			if err := scope.Close(); err != nil && log != nil {
				log.Error("failed to close request scope", err)
			}
		}()

		c.Request = c.Request.WithContext(context.WithValue(scope.Context(), scopeContextKey{}, scope))
		c.Next()
	}
}

// scopeFromContext retrieves the *ioc.Scope attached by scopeMiddleware.
func scopeFromContext(ctx context.Context) (*ioc.Scope, bool) {
	scope, ok := ctx.Value(scopeContextKey{}).(*ioc.Scope)
	return scope, ok
}

// Handle wraps a controller method for type-safe resolution from the
// request's scope: T is resolved from the scope attached by
// scopeMiddleware, then method is invoked with it and the *gin.Context.
//
// Example:
//
//	g.GET("/users/:id", collaborators.Handle(UserController.GetByID))
func Handle[T any](method func(T, *gin.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := scopeFromContext(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "request scope missing"})
			return
		}

		controller, err := ioc.Resolve[T](scope)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		method(controller, c)
	}
}
