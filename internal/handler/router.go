package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"supplier-quotes/internal/handler/api"
	"supplier-quotes/internal/handler/middleware"
	"supplier-quotes/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, quoteHandler *api.QuoteHandler, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, quoteHandler, authMiddleware, rateLimiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, quoteHandler *api.QuoteHandler, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// reads are served from the in-process snapshot; only calls that reach the backing store are throttled
	limited := []gin.HandlerFunc{rateLimiter.Middleware()}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		quotes := apiGroup.Group("/quotes")
		addRoutes(quotes, []route{
			{Method: http.MethodGet, Path: "", Handler: quoteHandler.List},
			{Method: http.MethodPost, Path: "", Handler: quoteHandler.Create, Mw: limited},
			{Method: http.MethodGet, Path: "/metrics", Handler: quoteHandler.Metrics},
			{Method: http.MethodPost, Path: "/refresh", Handler: quoteHandler.Refresh, Mw: limited},
			{Method: http.MethodGet, Path: "/:id", Handler: quoteHandler.Get},
			{Method: http.MethodPatch, Path: "/:id", Handler: quoteHandler.Update, Mw: limited},
			{Method: http.MethodPost, Path: "/:id/accept", Handler: quoteHandler.Accept, Mw: limited},
			{Method: http.MethodPost, Path: "/:id/reject", Handler: quoteHandler.Reject, Mw: limited},
			{Method: http.MethodGet, Path: "/:id/pdf", Handler: quoteHandler.PDF, Mw: limited},
		})

		deals := apiGroup.Group("/deals")
		addRoutes(deals, []route{
			{Method: http.MethodGet, Path: "/:id/comparison", Handler: quoteHandler.CompareDeal},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
