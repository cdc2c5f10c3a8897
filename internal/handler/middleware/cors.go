package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"supplier-quotes/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Browsers only hand these to scripts when exposed: the PDF download name and
// the rate limiter's back-off hint.
var quoteExposeHeaders = []string{"Content-Disposition", "Retry-After"}

// NewCORSMiddleware builds the CORS policy for the quote API. Configured lists
// always include the methods and headers the quote routes depend on.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     withRequired(cfg.AllowMethods, http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions),
		AllowHeaders:     withRequired(cfg.AllowHeaders, "Content-Type", "Authorization"),
		ExposeHeaders:    withRequired(cfg.ExposeHeaders, quoteExposeHeaders...),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized",
		"allow_origins", corsCfg.AllowOrigins,
		"allow_methods", corsCfg.AllowMethods,
		"expose_headers", corsCfg.ExposeHeaders)
	return cors.New(corsCfg)
}

func withRequired(configured []string, required ...string) []string {
	out := slices.Clone(configured)
	for _, r := range required {
		if !slices.ContainsFunc(out, func(v string) bool { return http.CanonicalHeaderKey(v) == http.CanonicalHeaderKey(r) }) {
			out = append(out, r)
		}
	}
	return out
}
