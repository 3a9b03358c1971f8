// internal/planner/stats.go
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/focusdeck/focusdeck/internal/models"
)

// SubmitFocusData reports a finished focus session to the backend and
// refreshes the stats mirror so the new seconds show up immediately.
func (c *Controller) SubmitFocusData(ctx context.Context, durationSeconds int64, taskID int) error {
	userID, ok := c.session.UserID()
	if !ok {
		return ErrNoUser
	}

	data := models.TomatoFocusData{
		UserID:            userID,
		DurationInSeconds: durationSeconds,
		Timestamp:         c.now().UTC().Format(time.RFC3339),
		TaskID:            taskID,
	}
	if err := c.gw.SubmitFocusData(ctx, data); err != nil {
		return fmt.Errorf("submit focus data: %w", err)
	}
	return c.LoadStats(ctx)
}

// UpdateStatsView changes the stats dashboard parameters. Parameters
// the backend computes (trend length, date range, allocation period)
// trigger a reload; the status filter is applied locally and does not.
func (c *Controller) UpdateStatsView(ctx context.Context, view StatsView) error {
	c.mu.Lock()
	reload := view.TrendLength != c.statsView.TrendLength ||
		view.TaskDateRange != c.statsView.TaskDateRange ||
		view.TimeAllocationPeriod != c.statsView.TimeAllocationPeriod
	c.statsView = view
	c.mu.Unlock()

	if !reload {
		return nil
	}
	return c.LoadStats(ctx)
}
