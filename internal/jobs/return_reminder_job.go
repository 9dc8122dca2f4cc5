package jobs

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ReturnReminderJob emails customers who were approved for return shipping
// but have not shipped anything back. Runs once a day at 09:00 server time,
// so reminders land during customer waking hours.
type ReturnReminderJob struct {
	handler     commands.SendReturnRemindersCommandHandler
	reminderAge time.Duration
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewReturnReminderJob creates the daily reminder job.
func NewReturnReminderJob(
	handler commands.SendReturnRemindersCommandHandler,
	reminderAge time.Duration,
	logger *slog.Logger,
) *ReturnReminderJob {
	return &ReturnReminderJob{
		handler:     handler,
		reminderAge: reminderAge,
		cron:        cron.New(),
		logger:      logger.With("component", "return_reminder_job"),
	}
}

// Start schedules the reminder sweep to run daily at 09:00.
func (j *ReturnReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 9 * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewSendReturnRemindersCommand(j.reminderAge)
		if err != nil {
			j.logger.ErrorContext(ctx, "Return reminder job misconfigured", "error", err)
			return
		}

		sent, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Return reminder job failed", "error", err)
			return
		}
		if sent > 0 {
			j.logger.InfoContext(ctx, "Sent return shipment reminders", "count", sent)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Return reminder job started (running daily at 09:00)",
		"reminderAge", j.reminderAge)
	return nil
}

// Stop stops the reminder job.
func (j *ReturnReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Return reminder job stopped")
}
