// internal/planner/teams.go
package planner

import (
	"context"
	"fmt"

	"github.com/focusdeck/focusdeck/internal/models"
)

// CreateTeam creates a team with the caller as its admin.
func (c *Controller) CreateTeam(ctx context.Context, name, description string) (*models.Team, error) {
	userID, ok := c.session.UserID()
	if !ok {
		return nil, ErrNoUser
	}

	team := models.Team{
		Name:        name,
		Description: description,
		Members:     map[int]models.Role{userID: models.RoleAdmin},
	}
	created, err := c.gw.CreateTeam(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}

	c.mu.Lock()
	c.teams = append(c.teams, *created)
	c.mu.Unlock()
	return created, nil
}

// UpdateTeamInfo renames a team. Admin only.
func (c *Controller) UpdateTeamInfo(ctx context.Context, teamID int, name, description string) error {
	updated, err := c.adminCopy(teamID)
	if err != nil {
		return err
	}
	updated.Name = name
	updated.Description = description

	if err := c.gw.UpdateTeam(ctx, teamID, *updated); err != nil {
		return fmt.Errorf("update team: %w", err)
	}

	c.mu.Lock()
	if team := c.teamByID(teamID); team != nil {
		team.Name = name
		team.Description = description
	}
	c.mu.Unlock()
	return nil
}

// RequestJoin files a join request for the caller.
func (c *Controller) RequestJoin(ctx context.Context, teamID int) error {
	userID, ok := c.session.UserID()
	if !ok {
		return ErrNoUser
	}

	c.mu.Lock()
	if team := c.teamByID(teamID); team != nil && team.HasMember(userID) {
		c.mu.Unlock()
		return ErrAlreadyMember
	}
	c.mu.Unlock()

	if err := c.gw.JoinTeam(ctx, teamID, userID); err != nil {
		return fmt.Errorf("request join: %w", err)
	}

	c.mu.Lock()
	if team := c.teamByID(teamID); team != nil {
		team.PendingJoinRequests = append(removeID(team.PendingJoinRequests, userID), userID)
	}
	c.mu.Unlock()
	return nil
}

// ApproveJoin promotes a pending join request to membership. Admin only.
func (c *Controller) ApproveJoin(ctx context.Context, teamID, applicantID int) error {
	updated, err := c.adminCopy(teamID)
	if err != nil {
		return err
	}
	updated.PendingJoinRequests = removeID(updated.PendingJoinRequests, applicantID)
	updated.Members[applicantID] = models.RoleMember

	if err := c.gw.UpdateTeam(ctx, teamID, *updated); err != nil {
		return fmt.Errorf("approve join: %w", err)
	}

	c.mu.Lock()
	if team := c.teamByID(teamID); team != nil {
		team.PendingJoinRequests = removeID(team.PendingJoinRequests, applicantID)
		if team.Members == nil {
			team.Members = make(map[int]models.Role)
		}
		team.Members[applicantID] = models.RoleMember
	}
	c.mu.Unlock()
	return nil
}

// AssignTask assigns a team task to a member. Admin only; the assignee
// must already belong to the team.
func (c *Controller) AssignTask(ctx context.Context, teamID, taskID, assigneeID int) error {
	if _, err := c.adminCopy(teamID); err != nil {
		return err
	}

	c.mu.Lock()
	team := c.teamByID(teamID)
	if team == nil || !team.HasMember(assigneeID) {
		c.mu.Unlock()
		return ErrNotTeamMember
	}
	c.mu.Unlock()

	if err := c.gw.AssignTask(ctx, teamID, taskID, assigneeID); err != nil {
		return fmt.Errorf("assign task: %w", err)
	}

	c.mu.Lock()
	if task := c.taskByID(taskID); task != nil {
		id := assigneeID
		task.AssignedTo = &id
	}
	c.mu.Unlock()
	return nil
}

// RemoveMember removes a member from a team. Admin only; admins leave
// via a different path, so removing yourself is rejected.
func (c *Controller) RemoveMember(ctx context.Context, teamID, memberID int) error {
	userID, ok := c.session.UserID()
	if !ok {
		return ErrNoUser
	}
	if memberID == userID {
		return ErrCannotTargetSelf
	}
	if _, err := c.adminCopy(teamID); err != nil {
		return err
	}

	if err := c.gw.RemoveMember(ctx, teamID, memberID); err != nil {
		return fmt.Errorf("remove member: %w", err)
	}

	c.mu.Lock()
	if team := c.teamByID(teamID); team != nil {
		delete(team.Members, memberID)
	}
	c.mu.Unlock()
	return nil
}

// UpdateMemberRole changes another member's role. Admin only.
func (c *Controller) UpdateMemberRole(ctx context.Context, teamID, memberID int, newRole models.Role) error {
	userID, ok := c.session.UserID()
	if !ok {
		return ErrNoUser
	}
	if memberID == userID {
		return ErrCannotTargetSelf
	}
	if _, err := c.adminCopy(teamID); err != nil {
		return err
	}

	c.mu.Lock()
	team := c.teamByID(teamID)
	if team == nil || !team.HasMember(memberID) {
		c.mu.Unlock()
		return ErrNotTeamMember
	}
	c.mu.Unlock()

	if err := c.gw.UpdateMemberRole(ctx, teamID, memberID, newRole); err != nil {
		return fmt.Errorf("update member role: %w", err)
	}

	c.mu.Lock()
	if team := c.teamByID(teamID); team != nil {
		team.Members[memberID] = newRole
	}
	c.mu.Unlock()
	return nil
}

// DissolveTeam deletes a team and drops its tasks from the local
// mirror. Admin only.
func (c *Controller) DissolveTeam(ctx context.Context, teamID int) error {
	if _, err := c.adminCopy(teamID); err != nil {
		return err
	}

	if err := c.gw.DeleteTeam(ctx, teamID); err != nil {
		return fmt.Errorf("dissolve team: %w", err)
	}

	c.mu.Lock()
	for i := range c.teams {
		if c.teams[i].ID == teamID {
			c.teams = append(c.teams[:i], c.teams[i+1:]...)
			break
		}
	}
	kept := c.tasks[:0]
	for _, task := range c.tasks {
		if task.TeamID != nil && *task.TeamID == teamID {
			continue
		}
		kept = append(kept, task)
	}
	c.tasks = kept
	c.mu.Unlock()
	return nil
}

// adminCopy verifies the caller is an admin of the team and returns a
// deep-enough copy safe to mutate outside the lock.
func (c *Controller) adminCopy(teamID int) (*models.Team, error) {
	userID, ok := c.session.UserID()
	if !ok {
		return nil, ErrNoUser
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	team := c.teamByID(teamID)
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if role, _ := team.RoleOf(userID); role != models.RoleAdmin {
		return nil, ErrAdminRequired
	}

	cp := *team
	cp.Members = make(map[int]models.Role, len(team.Members))
	for id, role := range team.Members {
		cp.Members[id] = role
	}
	cp.Tasks = append([]int(nil), team.Tasks...)
	cp.PendingJoinRequests = append([]int(nil), team.PendingJoinRequests...)
	return &cp, nil
}
