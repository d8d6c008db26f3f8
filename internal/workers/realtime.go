package workers

import (
	"context"
	"errors"

	"github.com/ogdevs/backoffice-client/internal/auth"
	"github.com/ogdevs/backoffice-client/internal/logger"
)

// Connector is the realtime channel as seen by its worker.
type Connector interface {
	Connect(ctx context.Context) error
	Disconnect()
}

type realtimeWorker struct {
	channel Connector
	logger  *logger.Logger
}

// NewRealtimeWorker keeps channel open for as long as the worker runs. A
// missing credential stops the worker; transport failures are left to the
// channel's own reconnect policy.
func NewRealtimeWorker(channel Connector, log *logger.Logger) Worker {
	return &realtimeWorker{channel: channel, logger: log}
}

func (w *realtimeWorker) Run(ctx context.Context) error {
	defer w.channel.Disconnect()

	if err := w.channel.Connect(ctx); err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			return err
		}
		w.logger.Warn().Err(err).Str("func", "realtimeWorker.Run").Msg("initial connect failed, reconnect scheduled")
	}

	<-ctx.Done()
	return nil
}
