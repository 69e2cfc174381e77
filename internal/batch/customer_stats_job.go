package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lunchly/internal/domain/customer"
	"lunchly/internal/infrastructure/monitoring"
)

// CustomerStatsReader is the part of the customer repository the job reads.
type CustomerStatsReader interface {
	Count(ctx context.Context) (int64, error)
	BestCustomers(ctx context.Context) ([]*customer.Customer, error)
}

// CustomerStatsJob refreshes the customer gauges and logs the current best
// customers leaderboard.
type CustomerStatsJob struct {
	reader CustomerStatsReader
	logger *slog.Logger
}

func NewCustomerStatsJob(reader CustomerStatsReader, logger *slog.Logger) *CustomerStatsJob {
	if reader == nil || logger == nil {
		panic("CustomerStatsJob dependencies cannot be nil")
	}
	return &CustomerStatsJob{
		reader: reader,
		logger: logger.With("job", "CustomerStats"),
	}
}

func (j *CustomerStatsJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting customer stats job")

	total, countErr := j.reader.Count(ctx)
	if countErr != nil {
		j.logger.ErrorContext(ctx, "Failed to count customers", slog.Any("error", countErr))
		countErr = fmt.Errorf("count customers: %w", countErr)
	}

	best, bestErr := j.reader.BestCustomers(ctx)
	if bestErr != nil {
		j.logger.ErrorContext(ctx, "Failed to load best customers", slog.Any("error", bestErr))
		bestErr = fmt.Errorf("best customers: %w", bestErr)
	}

	if err := errors.Join(countErr, bestErr); err != nil {
		j.logger.WarnContext(ctx, "Customer stats job finished with errors", slog.Duration("duration", time.Since(startTime)))
		return err
	}

	monitoring.RecordCustomerStats(total, len(best))

	leaderboard := make([]string, 0, len(best))
	for i, c := range best {
		leaderboard = append(leaderboard, fmt.Sprintf("%d. %s (#%d)", i+1, c.FullName(), c.CustomerID))
	}
	j.logger.InfoContext(ctx, "Customer stats job finished",
		slog.Duration("duration", time.Since(startTime)),
		slog.Int64("customers_total", total),
		slog.Any("best_customers", leaderboard),
	)
	return nil
}
