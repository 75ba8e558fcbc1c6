package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"chat-server/internal/config"
	"chat-server/internal/domain/identity"
	"chat-server/internal/infrastructure"
	middleware "chat-server/internal/interfaces/httpserver/middlewares"
	"chat-server/internal/interfaces/httpserver/routes/auth"
	v1 "chat-server/internal/interfaces/httpserver/routes/v1"
)

type HTTPServer struct {
	engine    *gin.Engine
	infra     *infrastructure.Infrastructure
	resolver  *identity.Resolver
	v1Route   *v1.V1Route
	authRoute *auth.AuthRoute
	config    *config.Config
}

func NewHTTPServer(
	v1Route *v1.V1Route,
	authRoute *auth.AuthRoute,
	resolver *identity.Resolver,
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
) *HTTPServer {
	if config.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	server := HTTPServer{
		engine:    gin.New(),
		infra:     infra,
		resolver:  resolver,
		v1Route:   v1Route,
		authRoute: authRoute,
		config:    cfg,
	}
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(infra.Logger))
	server.engine.Use(middleware.CORSMiddleware())
	server.engine.Use(middleware.MetricsMiddleware())

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// not ready until the signing keys have been fetched
	server.engine.GET("/readyz", func(c *gin.Context) {
		if !infra.SessionValidator.Ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "waiting for jwks"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	return &server
}

func (httpServer *HTTPServer) Run() error {
	// Public routes (no auth required)
	root := httpServer.engine.Group("/")

	// Protected routes (auth middleware applied)
	protected := httpServer.engine.Group("/")
	protected.Use(middleware.AuthMiddleware(httpServer.resolver, httpServer.infra.Logger))

	httpServer.authRoute.RegisterRouter(root)
	httpServer.v1Route.RegisterPublicRouter(root)
	httpServer.v1Route.RegisterRouter(protected)

	return httpServer.engine.Run(fmt.Sprintf(":%d", httpServer.config.HTTPPort))
}
