package srv

import (
	"context"
	"time"

	"github.com/sandevgo/condobot/pkg/log"
)

const DefaultShutdownTimeout = 10 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", service)
			}
		}(service)
	}
}

// ShutdownServices waits for ctx to be cancelled and then stops services in
// reverse order, each bounded by DefaultShutdownTimeout.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()
	logger := log.FromCtx(ctx)

	for i := len(services) - 1; i >= 0; i-- {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultShutdownTimeout)
		if err := services[i].Shutdown(sctx); err != nil {
			logger.Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
		cancel()
	}
}
