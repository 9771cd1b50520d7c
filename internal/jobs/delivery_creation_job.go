package jobs

import (
	"context"
	"log/slog"

	"mealdash/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DeliveryCreationJob manages the scheduled creation of deliveries.
// Runs every second to sweep ready-for-pickup orders into pending deliveries
// so couriers can see them.
type DeliveryCreationJob struct {
	handler commands.CreateDeliveriesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDeliveryCreationJob creates a new job for delivery creation.
// Uses CreateDeliveriesCommandHandler to process the sweep every second.
func NewDeliveryCreationJob(handler commands.CreateDeliveriesCommandHandler, logger *slog.Logger) *DeliveryCreationJob {
	return &DeliveryCreationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "delivery_creation_job"),
	}
}

// Start begins the delivery creation job to run every second.
func (j *DeliveryCreationJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewCreateDeliveriesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Delivery creation job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery creation job started (running every second)")
	return nil
}

// Stop stops the delivery creation job.
func (j *DeliveryCreationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery creation job stopped")
}
