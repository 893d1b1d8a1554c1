package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bilemo-api/internal/auth"
	"bilemo-api/internal/service"
)

// Config carries the collaborators of the HTTP layer.
type Config struct {
	Clients        service.ClientService
	Users          service.UserService
	Query          service.UserQueryService
	Phones         service.PhoneService
	Tokens         *auth.TokenService
	Logger         *logrus.Logger
	Metrics        *Metrics
	CacheMaxAge    time.Duration
	RequestTimeout time.Duration
	// AllowedOrigins lists the CORS origins; empty or "*" allows any.
	AllowedOrigins []string
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	clients        service.ClientService
	users          service.UserService
	query          service.UserQueryService
	phones         service.PhoneService
	tokens         *auth.TokenService
	logger         *logrus.Logger
	metrics        *Metrics
	cacheMaxAge    time.Duration
	requestTimeout time.Duration
	allowedOrigins []string
}

func NewHandler(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.CacheMaxAge <= 0 {
		cfg.CacheMaxAge = time.Hour
	}
	return &Handler{
		clients:        cfg.Clients,
		users:          cfg.Users,
		query:          cfg.Query,
		phones:         cfg.Phones,
		tokens:         cfg.Tokens,
		logger:         cfg.Logger,
		metrics:        cfg.Metrics,
		cacheMaxAge:    cfg.CacheMaxAge,
		requestTimeout: cfg.RequestTimeout,
		allowedOrigins: cfg.AllowedOrigins,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger))
	router.Use(corsMiddleware(h.allowedOrigins))
	if h.metrics != nil {
		router.Use(h.metrics.Middleware())
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}
	if h.requestTimeout > 0 {
		router.Use(requestTimeout(h.requestTimeout))
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
		api.POST("/register", h.register)
		api.POST("/login_check", h.login)
	}

	secured := api.Group("")
	secured.Use(h.requireClient)
	{
		secured.GET("/users", h.listUsers)
		secured.GET("/users/:id", h.getUser)
		secured.POST("/users", h.createUser)
		secured.DELETE("/users/:id", h.deleteUser)
		secured.GET("/phones", h.listPhones)
		secured.GET("/phones/:id", h.getPhone)
	}
}

// corsMiddleware answers preflights itself. A request from an origin outside
// the allow list gets no CORS headers, so browsers block it.
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowAny := len(origins) == 0
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "*" {
			allowAny = true
		}
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		h := c.Writer.Header()
		switch {
		case allowAny:
			h.Set("Access-Control-Allow-Origin", "*")
		case origin != "" && allowed[origin]:
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
		default:
			origin = ""
		}
		if allowAny || origin != "" {
			h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, If-Modified-Since")
			h.Set("Access-Control-Expose-Headers", "Location, Last-Modified, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
