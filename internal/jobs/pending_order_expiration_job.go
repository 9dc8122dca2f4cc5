package jobs

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PendingOrderExpirationJob cancels pending orders whose payment never
// completed. Runs every five minutes; the pending TTL decides which orders
// are old enough to expire.
type PendingOrderExpirationJob struct {
	handler    commands.ExpirePendingOrdersCommandHandler
	pendingTTL time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewPendingOrderExpirationJob creates the expiration sweep job.
func NewPendingOrderExpirationJob(
	handler commands.ExpirePendingOrdersCommandHandler,
	pendingTTL time.Duration,
	logger *slog.Logger,
) *PendingOrderExpirationJob {
	return &PendingOrderExpirationJob{
		handler:    handler,
		pendingTTL: pendingTTL,
		cron:       cron.New(),
		logger:     logger.With("component", "pending_order_expiration_job"),
	}
}

// Start schedules the sweep to run every five minutes.
func (j *PendingOrderExpirationJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewExpirePendingOrdersCommand(j.pendingTTL)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pending order expiration job misconfigured", "error", err)
			return
		}

		expired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pending order expiration job failed", "error", err)
			return
		}
		if expired > 0 {
			j.logger.InfoContext(ctx, "Expired stale pending orders", "count", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Pending order expiration job started (running every five minutes)",
		"pendingTTL", j.pendingTTL)
	return nil
}

// Stop stops the expiration job.
func (j *PendingOrderExpirationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending order expiration job stopped")
}
