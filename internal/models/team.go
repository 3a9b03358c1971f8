// internal/models/team.go
package models

// Role of a user within a team or on an attachment ACL.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Team groups members and the tasks that belong to them. Members maps
// user IDs to their role; Tasks holds the IDs of the team's tasks.
type Team struct {
	ID                  int          `json:"id"`
	Name                string       `json:"name"`
	Description         string       `json:"description"`
	Members             map[int]Role `json:"members"`
	Tasks               []int        `json:"tasks"`
	PendingJoinRequests []int        `json:"pendingJoinRequests,omitempty"`
}

// RoleOf returns the member's role and whether the user belongs to the team.
func (t *Team) RoleOf(userID int) (Role, bool) {
	role, ok := t.Members[userID]
	return role, ok
}

// HasMember reports whether the user belongs to the team.
func (t *Team) HasMember(userID int) bool {
	_, ok := t.Members[userID]
	return ok
}
