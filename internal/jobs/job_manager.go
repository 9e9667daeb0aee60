package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Schedules are cron expressions with a leading seconds field.
type Schedules struct {
	Replenishment  string
	OverdueRefresh string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	replenishmentJob *ReplenishmentJob
	overdueJob       *OverdueInvoiceJob
}

func NewJobManager(
	schedules Schedules,
	replenishment ReplenishmentHandler,
	overdue OverdueHandler,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		replenishmentJob: NewReplenishmentJob(replenishment, schedules.Replenishment, logger),
		overdueJob:       NewOverdueInvoiceJob(overdue, schedules.OverdueRefresh, logger),
	}
}

// StartAll starts all scheduled jobs. A job that fails to start stops the
// ones already running.
func (jm *JobManager) StartAll() error {
	if err := jm.replenishmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start replenishment job: %w", err)
	}

	if err := jm.overdueJob.Start(); err != nil {
		jm.replenishmentJob.Stop()
		return fmt.Errorf("failed to start overdue invoice job: %w", err)
	}

	return nil
}

func (jm *JobManager) StopAll() {
	jm.overdueJob.Stop()
	jm.replenishmentJob.Stop()
}
