package app

import (
	"github.com/carousell/ct-go/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/pharmakit/storefront/internal/config"
	"github.com/pharmakit/storefront/internal/repo/gateway"
	"github.com/pharmakit/storefront/internal/shell"
	"github.com/pharmakit/storefront/internal/store"
	"github.com/pharmakit/storefront/internal/usecase"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newSessionStore,

			store.NewLocalCart,
			store.NewLocalWishlist,

			gateway.NewClient,
			gateway.NewCatalogClient,
			gateway.NewCartClient,
			gateway.NewWishlistClient,
			gateway.NewOrdersClient,
			gateway.NewAuthClient,

			usecase.NewSessionGate,
			usecase.NewCartService,
			usecase.NewWishlistService,
			usecase.NewCheckoutService,

			shell.New,
		),
		fx.Supply(conf),
		fx.Invoke(funcs...),
	)
}
