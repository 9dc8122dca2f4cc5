package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"
)

// SweepConfig carries the age thresholds of the scheduled sweeps.
type SweepConfig struct {
	// PendingOrderTTL is how long an order may sit in pending before the
	// expiration sweep cancels it.
	PendingOrderTTL time.Duration

	// ReturnReminderAge is how long a return may sit in awaiting_shipment
	// before the customer gets a reminder.
	ReturnReminderAge time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	pendingOrderExpirationJob *PendingOrderExpirationJob
	returnReminderJob         *ReturnReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	expireHandler commands.ExpirePendingOrdersCommandHandler,
	reminderHandler commands.SendReturnRemindersCommandHandler,
	config SweepConfig,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		pendingOrderExpirationJob: NewPendingOrderExpirationJob(expireHandler, config.PendingOrderTTL, logger),
		returnReminderJob:         NewReturnReminderJob(reminderHandler, config.ReturnReminderAge, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.pendingOrderExpirationJob.Start(); err != nil {
		return fmt.Errorf("failed to start pending order expiration job: %w", err)
	}

	if err := jm.returnReminderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.pendingOrderExpirationJob.Stop()
		return fmt.Errorf("failed to start return reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pendingOrderExpirationJob.Stop()
	jm.returnReminderJob.Stop()
}
