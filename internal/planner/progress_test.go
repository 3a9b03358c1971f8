// internal/planner/progress_test.go
package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/focusdeck/focusdeck/internal/models"
)

func intPtr(v int) *int { return &v }

func TestProgressNoChildren(t *testing.T) {
	tests := []struct {
		name   string
		status models.TaskStatus
		want   float64
	}{
		{"done task is complete", models.StatusDone, 100},
		{"todo task is zero", models.StatusTodo, 0},
		{"in-progress task is zero", models.StatusInProgress, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := models.Task{ID: 1, Status: tt.status, Weight: 1}
			assert.Equal(t, tt.want, progressOf(&task, []models.Task{task}))
		})
	}
}

func TestProgressWeighted(t *testing.T) {
	parent := models.Task{ID: 1, Status: models.StatusTodo, Weight: 1}
	all := []models.Task{
		parent,
		{ID: 2, ParentTaskID: intPtr(1), Weight: 3, Status: models.StatusDone},
		{ID: 3, ParentTaskID: intPtr(1), Weight: 1, Status: models.StatusTodo},
	}

	assert.InDelta(t, 75.0, progressOf(&parent, all), 0.001)
}

func TestProgressIgnoresGrandchildren(t *testing.T) {
	parent := models.Task{ID: 1, Status: models.StatusTodo, Weight: 1}
	all := []models.Task{
		parent,
		{ID: 2, ParentTaskID: intPtr(1), Weight: 1, Status: models.StatusTodo},
		// grandchild, done, must not count toward task 1
		{ID: 3, ParentTaskID: intPtr(2), Weight: 1, Status: models.StatusDone},
	}

	assert.Equal(t, 0.0, progressOf(&parent, all))
}

func TestProgressInvariantUnderChildOrder(t *testing.T) {
	parent := models.Task{ID: 1, Status: models.StatusTodo, Weight: 1}
	a := models.Task{ID: 2, ParentTaskID: intPtr(1), Weight: 2, Status: models.StatusDone}
	b := models.Task{ID: 3, ParentTaskID: intPtr(1), Weight: 2, Status: models.StatusTodo}

	forward := progressOf(&parent, []models.Task{parent, a, b})
	reversed := progressOf(&parent, []models.Task{parent, b, a})
	assert.Equal(t, forward, reversed)
	assert.InDelta(t, 50.0, forward, 0.001)
}

func TestProgressZeroWeightChildren(t *testing.T) {
	parent := models.Task{ID: 1, Status: models.StatusTodo, Weight: 1}
	all := []models.Task{
		parent,
		{ID: 2, ParentTaskID: intPtr(1), Weight: 0, Status: models.StatusDone},
	}

	// Zero total weight falls back to the childless rule: not DONE, so 0.
	assert.Equal(t, 0.0, progressOf(&parent, all))
}

func TestTeamProgressRootGranularity(t *testing.T) {
	ctrl := newTestController(t)
	ctrl.tasks = []models.Task{
		{ID: 1, TeamID: intPtr(7), Weight: 1, Status: models.StatusDone},
		{ID: 2, TeamID: intPtr(7), Weight: 3, Status: models.StatusTodo},
		// sub-task of 2: done but must not feed team progress
		{ID: 3, TeamID: intPtr(7), ParentTaskID: intPtr(2), Weight: 10, Status: models.StatusDone},
		// other team
		{ID: 4, TeamID: intPtr(8), Weight: 1, Status: models.StatusDone},
	}

	assert.InDelta(t, 25.0, ctrl.TeamProgress(7), 0.001)
}

func TestTeamProgressEmptyTeam(t *testing.T) {
	ctrl := newTestController(t)
	assert.Equal(t, 0.0, ctrl.TeamProgress(99))
}
