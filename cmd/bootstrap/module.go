package bootstrap

import (
	"supplier-quotes/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	components.PersistenceModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
	EventsModule,
	RefresherModule,
)
