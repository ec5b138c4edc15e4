package app

import (
	"context"
	"net/http"

	"github.com/ilindan-dev/notify-relay/internal/config"
	deliveryHTTP "github.com/ilindan-dev/notify-relay/internal/delivery/http"
	"github.com/ilindan-dev/notify-relay/internal/logger"
	"github.com/ilindan-dev/notify-relay/internal/notifiers"
	"go.uber.org/fx"
)

// APIModule defines the Fx module for the relay application.
var APIModule = fx.Options(
	fx.Provide(
		// Core components
		config.NewConfig,
		logger.NewLogger,

		// Outbound side
		notifiers.NewDispatcher,
		func(d *notifiers.Dispatcher) deliveryHTTP.Dispatcher { return d },

		// Inbound side
		deliveryHTTP.NewHandlers,
		deliveryHTTP.NewServer,
	),

	fx.Invoke(func(server *deliveryHTTP.Server, lc fx.Lifecycle) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						panic(err)
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return server.Shutdown(ctx)
			},
		})
	}),
)
