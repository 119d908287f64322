// Command diserver is a small demo service wiring the collaborators
// adapters (logging, configuration, HTTP serving) through an ioc
// container, exercising Singleton, Scoped and Transient registrations
// against a real (if tiny) request path.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/coriolis-labs/ioc"
	"github.com/coriolis-labs/ioc/collaborators"
)

// greeterRepository is a Singleton: one instance, shared across every
// request.
type greeterRepository struct {
	greetings int
}

func newGreeterRepository() *greeterRepository {
	return &greeterRepository{}
}

func (r *greeterRepository) recordGreeting() int {
	r.greetings++
	return r.greetings
}

// requestLog is Scoped: one instance per request, carrying the shared
// repository and the logger.
type requestLog struct {
	repo *greeterRepository
	log  collaborators.Logger
}

func newRequestLog(repo *greeterRepository, log collaborators.Logger) *requestLog {
	return &requestLog{repo: repo, log: log}
}

// greeterController is Transient: constructed fresh for every
// resolution within a request's scope.
type greeterController struct {
	reqLog *requestLog
}

func newGreeterController(reqLog *requestLog) *greeterController {
	return &greeterController{reqLog: reqLog}
}

func (gc *greeterController) Greet(c *gin.Context) {
	count := gc.reqLog.repo.recordGreeting()
	gc.reqLog.log.Info("greeted", "count", count, "name", c.Param("name"))
	c.JSON(http.StatusOK, gin.H{"message": "hello, " + c.Param("name"), "greeting_number": count})
}

func main() {
	cfg := collaborators.NewEnvConfigSource()
	log := collaborators.NewZerologLogger()

	services := ioc.New()
	if err := ioc.Bootstrap(services); err != nil {
		log.Error("bootstrap failed", err)
		os.Exit(1)
	}

	if err := services.AddSingleton(newGreeterRepository); err != nil {
		log.Error("failed to register greeter repository", err)
		os.Exit(1)
	}
	if err := ioc.AddInstance[collaborators.Logger](services, log); err != nil {
		log.Error("failed to register logger", err)
		os.Exit(1)
	}
	if err := services.AddScoped(newRequestLog); err != nil {
		log.Error("failed to register request log", err)
		os.Exit(1)
	}
	if err := services.AddTransient(newGreeterController); err != nil {
		log.Error("failed to register greeter controller", err)
		os.Exit(1)
	}

	provider := services.BuildProvider()
	defer provider.Close()

	server := collaborators.NewGinServer(provider, log, func(g *gin.Engine) {
		g.GET("/greet/:name", collaborators.Handle((*greeterController).Greet))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.String("port", "8080")
	log.Info("starting server", "addr", addr)
	if err := server.Run(ctx, addr); err != nil && err != http.ErrServerClosed {
		log.Error("server stopped", err)
		os.Exit(1)
	}
}
