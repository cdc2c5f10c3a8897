package bootstrap

import (
	"log/slog"

	"supplier-quotes/internal/handler/middleware"
	"supplier-quotes/internal/pkg/config"
	"supplier-quotes/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewTokenValidator,
	),
)

// NewTokenValidator returns a nil validator, which disables bearer auth, when no secret is configured.
func NewTokenValidator(cfg config.Config, logger *slog.Logger) middleware.TokenValidator {
	if cfg.JWT.Secret == "" {
		logger.Warn("JWT_SECRET is empty, API authentication is disabled")
		return nil
	}
	return jwt.NewVerifier(cfg.JWT.Secret)
}
