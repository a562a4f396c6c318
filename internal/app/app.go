package app

import (
	"github.com/carousell/ct-go/pkg/logger"
	"github.com/todomarket/whatsapp-bot/internal/cart"
	"github.com/todomarket/whatsapp-bot/internal/catalog"
	"github.com/todomarket/whatsapp-bot/internal/config"
	"github.com/todomarket/whatsapp-bot/internal/repo/metacatalog"
	"github.com/todomarket/whatsapp-bot/internal/repo/waba"
	"github.com/todomarket/whatsapp-bot/internal/server"
	"github.com/todomarket/whatsapp-bot/internal/usecase"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"
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
			server.NewController,

			usecase.NewOrderUsecase,

			catalog.NewDefaultClassifier,
			catalog.NewStore,
			cart.NewLedger,

			metacatalog.NewClient,
			waba.NewClient,
		),
		fx.Supply(conf),
		fx.Invoke(WarmCatalog),
		fx.Invoke(funcs...),
	)
}
