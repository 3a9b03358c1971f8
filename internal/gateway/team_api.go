// internal/gateway/team_api.go
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/focusdeck/focusdeck/internal/models"
)

type UpdateMemberRoleRequest struct {
	NewRole models.Role `json:"newRole"`
}

func (c *Client) CreateTeam(ctx context.Context, team models.Team) (*models.Team, error) {
	var out models.Team
	if err := c.doJSON(ctx, http.MethodPost, "/teams", nil, team, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTeams(ctx context.Context, userID int) ([]models.Team, error) {
	query := url.Values{"userId": {strconv.Itoa(userID)}}
	var out []models.Team
	if err := c.doJSON(ctx, http.MethodGet, "/teams", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateTeam(ctx context.Context, teamID int, team models.Team) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/teams/%d", teamID), nil, team, nil)
}

func (c *Client) DeleteTeam(ctx context.Context, teamID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/teams/%d", teamID), nil, nil, nil)
}

func (c *Client) JoinTeam(ctx context.Context, teamID, userID int) error {
	query := url.Values{"userId": {strconv.Itoa(userID)}}
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/teams/%d/join", teamID), query, nil, nil)
}

func (c *Client) AssignTask(ctx context.Context, teamID, taskID, userID int) error {
	query := url.Values{"userId": {strconv.Itoa(userID)}}
	path := fmt.Sprintf("/teams/%d/tasks/%d/assign", teamID, taskID)
	return c.doJSON(ctx, http.MethodPost, path, query, nil, nil)
}

func (c *Client) RemoveMember(ctx context.Context, teamID, userID int) error {
	path := fmt.Sprintf("/teams/%d/members/%d", teamID, userID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) UpdateMemberRole(ctx context.Context, teamID, userID int, newRole models.Role) error {
	path := fmt.Sprintf("/teams/%d/members/%d/role", teamID, userID)
	return c.doJSON(ctx, http.MethodPut, path, nil, UpdateMemberRoleRequest{NewRole: newRole}, nil)
}
