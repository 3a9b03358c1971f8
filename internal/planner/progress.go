// internal/planner/progress.go
package planner

import "github.com/focusdeck/focusdeck/internal/models"

// progressOf computes a task's completion percentage. A task with no
// direct children is 100 when DONE and 0 otherwise. With children, the
// result is the weight-weighted share of completed direct children;
// grandchildren do not aggregate upward.
func progressOf(task *models.Task, all []models.Task) float64 {
	var totalWeight, completedWeight int
	for i := range all {
		child := &all[i]
		if child.ParentTaskID == nil || *child.ParentTaskID != task.ID {
			continue
		}
		totalWeight += child.Weight
		if child.Status == models.StatusDone {
			completedWeight += child.Weight
		}
	}

	if totalWeight == 0 {
		if task.Status == models.StatusDone {
			return 100
		}
		return 0
	}
	return float64(completedWeight) / float64(totalWeight) * 100
}

// Progress returns the task's completion percentage, 0 for unknown IDs.
func (c *Controller) Progress(taskID int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	task := c.taskByID(taskID)
	if task == nil {
		return 0
	}
	return progressOf(task, c.tasks)
}

// TeamProgress aggregates completion over the team's root tasks, each
// weighted by its own weight. Sub-task weights do not feed in; a root
// task counts as done or not done as a whole.
func (c *Controller) TeamProgress(teamID int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var totalWeight, completedWeight int
	for i := range c.tasks {
		task := &c.tasks[i]
		if task.TeamID == nil || *task.TeamID != teamID || task.ParentTaskID != nil {
			continue
		}
		totalWeight += task.Weight
		if task.Status == models.StatusDone {
			completedWeight += task.Weight
		}
	}

	if totalWeight == 0 {
		return 0
	}
	return float64(completedWeight) / float64(totalWeight) * 100
}
