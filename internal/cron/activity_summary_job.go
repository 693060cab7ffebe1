package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/logger"
)

const defaultActivityWindow = 24 * time.Hour

// ActivitySummaryJobParams configure the ledger activity digest.
type ActivitySummaryJobParams struct {
	Logger *logger.Logger
	Ledger adjustmentCounter
	Window time.Duration
}

type adjustmentCounter interface {
	CountSince(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewActivitySummaryJob builds the job that logs how many ledger entries
// were recorded in the trailing window. A quiet ledger on a busy site is
// usually a sign doses are moving without being recorded.
func NewActivitySummaryJob(params ActivitySummaryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("adjustment counter required")
	}
	window := params.Window
	if window <= 0 {
		window = defaultActivityWindow
	}
	return &activitySummaryJob{
		logg:   params.Logger,
		ledger: params.Ledger,
		window: window,
		now:    time.Now,
	}, nil
}

type activitySummaryJob struct {
	logg   *logger.Logger
	ledger adjustmentCounter
	window time.Duration
	now    func() time.Time
}

func (j *activitySummaryJob) Name() string { return "activity-summary" }

func (j *activitySummaryJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.window)
	count, err := j.ledger.CountSince(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("activity summary: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":      cutoff,
		"adjustments": count,
	})
	j.logg.Info(logCtx, "adjustment activity summary")
	return nil
}
