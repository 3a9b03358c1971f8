// internal/gateway/user_api.go
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/focusdeck/focusdeck/internal/models"
)

// StatsQuery selects what the stats dashboard asks the backend for.
type StatsQuery struct {
	TrendLength          int    // trend points, e.g. 12 for the last 12 weeks
	TaskDateRange        int    // days covered by the status summary
	TimeAllocationPeriod string // "daily", "weekly" or "tags"
}

func (c *Client) GetProfile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodGet, "/user/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d", userID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) error {
	return c.doJSON(ctx, http.MethodPut, "/user/update", nil, req, nil)
}

func (c *Client) GetUserStats(ctx context.Context, userID int, q StatsQuery) (*models.UserStats, error) {
	query := url.Values{
		"userId":               {strconv.Itoa(userID)},
		"trendLength":          {strconv.Itoa(q.TrendLength)},
		"taskDateRange":        {strconv.Itoa(q.TaskDateRange)},
		"timeAllocationPeriod": {q.TimeAllocationPeriod},
	}
	var out models.UserStats
	if err := c.doJSON(ctx, http.MethodGet, "/user/stats", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitFocusData(ctx context.Context, data models.TomatoFocusData) error {
	return c.doJSON(ctx, http.MethodPost, "/user/focus", nil, data, nil)
}
