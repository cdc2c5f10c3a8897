package components

import (
	"supplier-quotes/internal/handler"
	"supplier-quotes/internal/handler/api"
	"supplier-quotes/internal/handler/middleware"
	"supplier-quotes/internal/infra/pdf"
	"supplier-quotes/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		fx.Annotate(
			pdf.NewGenerator,
			fx.As(new(api.PDFRenderer)),
		),
		api.NewQuoteHandler,
		middleware.NewAuthMiddleware,
		func(cfg config.Config) *middleware.RateLimiter {
			return middleware.NewRateLimiter(cfg.RateLimit)
		},
	),
	fx.Invoke(handler.NewRouter),
)
