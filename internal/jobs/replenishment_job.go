package jobs

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReplenishmentHandler is satisfied by *commands.CheckAndGenerateDraftOrdersCommandHandler.
type ReplenishmentHandler interface {
	Handle(ctx context.Context, command commands.CheckAndGenerateDraftOrdersCommand) (commands.ReplenishmentSummary, error)
}

// ReplenishmentJob scans every active store for low stock and creates or
// refreshes the store's draft replenishment order.
type ReplenishmentJob struct {
	handler  ReplenishmentHandler
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewReplenishmentJob(handler ReplenishmentHandler, schedule string, logger *zap.Logger) *ReplenishmentJob {
	return &ReplenishmentJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.Named("replenishment_job"),
	}
}

// Run performs one scan. Per-store failures are logged and do not stop the
// remaining stores.
func (j *ReplenishmentJob) Run(ctx context.Context) {
	cmd, err := commands.NewCheckAndGenerateDraftOrdersCommand(nil)
	if err != nil {
		j.logger.Error("Replenishment command rejected", zap.Error(err))
		return
	}

	summary, err := j.handler.Handle(ctx, cmd)
	for _, store := range summary.Stores {
		if store.Outcome == commands.ReplenishmentFailed {
			j.logger.Warn("Store replenishment failed",
				zap.String("store_id", store.StoreID.String()),
				zap.Error(store.Err),
			)
		}
	}
	if err != nil && len(summary.Stores) == 0 {
		j.logger.Error("Replenishment scan failed", zap.Error(err))
		return
	}

	j.logger.Info("Replenishment scan finished",
		zap.Int("created", summary.Count(commands.ReplenishmentCreated)),
		zap.Int("updated", summary.Count(commands.ReplenishmentUpdated)),
		zap.Int("skipped", summary.Count(commands.ReplenishmentSkipped)),
		zap.Int("failed", summary.Count(commands.ReplenishmentFailed)),
	)
}

func (j *ReplenishmentJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Replenishment job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running scan to finish.
func (j *ReplenishmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Replenishment job stopped")
}
