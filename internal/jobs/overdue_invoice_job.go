package jobs

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OverdueHandler is satisfied by *commands.RefreshOverdueInvoicesCommandHandler.
type OverdueHandler interface {
	Handle(ctx context.Context, command commands.RefreshOverdueInvoicesCommand) (int, error)
}

// OverdueInvoiceJob marks open invoices past their due date as OVERDUE.
type OverdueInvoiceJob struct {
	handler  OverdueHandler
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewOverdueInvoiceJob(handler OverdueHandler, schedule string, logger *zap.Logger) *OverdueInvoiceJob {
	return &OverdueInvoiceJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.Named("overdue_invoice_job"),
	}
}

func (j *OverdueInvoiceJob) Run(ctx context.Context) {
	changed, err := j.handler.Handle(ctx, commands.NewRefreshOverdueInvoicesCommand())
	if err != nil {
		j.logger.Error("Overdue invoice refresh failed", zap.Error(err))
		return
	}
	if changed > 0 {
		j.logger.Info("Invoices marked overdue", zap.Int("count", changed))
	}
}

func (j *OverdueInvoiceJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Overdue invoice job started", zap.String("schedule", j.schedule))
	return nil
}

func (j *OverdueInvoiceJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Overdue invoice job stopped")
}
