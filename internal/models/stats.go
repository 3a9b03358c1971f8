// internal/models/stats.go
package models

// CompletionRatePoint is one point on the completion-rate trend line.
// Period is a short label such as "W22" or "Jun"; Rate is 0..1.
type CompletionRatePoint struct {
	Period string  `json:"period"`
	Rate   float64 `json:"rate"`
}

// TimeAllocationPoint describes the share of focus time spent on a category.
type TimeAllocationPoint struct {
	Category   string  `json:"category"`
	Percentage float64 `json:"percentage"`
}

// TaskStatusSummary counts tasks by status over the selected date range.
type TaskStatusSummary struct {
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

// UserStats is the dashboard payload returned by the backend.
type UserStats struct {
	CompletedTasks      int                   `json:"completedTasks"`
	InProgressTasks     int                   `json:"inProgressTasks"`
	TotalTeams          int                   `json:"totalTeams"`
	TotalFocusTime      int64                 `json:"totalFocusTime"` // seconds
	CompletionRateTrend []CompletionRatePoint `json:"completionRateTrend"`
	RecentTaskSummary   TaskStatusSummary     `json:"recentTaskSummary"`
	TimeAllocation      []TimeAllocationPoint `json:"timeAllocationReport"`
	Suggestions         []string              `json:"suggestions"`
}
