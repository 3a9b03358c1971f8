// internal/planner/authz.go
package planner

import "github.com/focusdeck/focusdeck/internal/models"

// canModify decides whether a user may mutate a task. Personal tasks are
// always editable. Team tasks require membership: admins edit anything,
// members edit tasks assigned to them or assigned to nobody. The backend
// enforces the same rule authoritatively; this check only avoids doomed
// remote calls.
func canModify(task *models.Task, team *models.Team, userID int) bool {
	if !task.IsTeamTask || task.TeamID == nil {
		return true
	}
	if team == nil {
		return false
	}

	role, ok := team.RoleOf(userID)
	if !ok {
		return false
	}
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleMember:
		return task.AssignedTo == nil || *task.AssignedTo == userID
	default:
		return false
	}
}

// CanModify reports whether the logged-in user may mutate the task.
func (c *Controller) CanModify(taskID int) bool {
	userID, ok := c.session.UserID()
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	task := c.taskByID(taskID)
	if task == nil {
		return false
	}
	return canModify(task, c.teamOf(task), userID)
}
