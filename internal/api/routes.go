// internal/api/routes.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/focusdeck/focusdeck/internal/planner"
	"github.com/focusdeck/focusdeck/internal/tomato"
)

// Server wires the HTTP surface front-ends attach to. Handlers are thin
// JSON glue over the controller, the user service and the timer.
type Server struct {
	controller *planner.Controller
	users      *planner.UserService
	timer      *tomato.Timer
}

func NewServer(controller *planner.Controller, users *planner.UserService, timer *tomato.Timer) *Server {
	return &Server{
		controller: controller,
		users:      users,
		timer:      timer,
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// session / account
	api.HandleFunc("/session/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/session/logout", s.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/session/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/session/code", s.handleSendCode).Methods(http.MethodPost)
	api.HandleFunc("/session/password", s.handleChangePassword).Methods(http.MethodPut)
	api.HandleFunc("/profile", s.handleGetProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile", s.handleUpdateProfile).Methods(http.MethodPut)

	// tasks
	api.HandleFunc("/tasks", s.handleListTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", s.handleCreateTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/deleted", s.handleListDeletedTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks/reorder", s.handleReorder).Methods(http.MethodPut)
	api.HandleFunc("/tasks/priority-sort", s.handleToggleSort).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id:[0-9]+}", s.handleUpdateTask).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{id:[0-9]+}", s.handleSoftDeleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{id:[0-9]+}/subtasks", s.handleCreateSubTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id:[0-9]+}/due-date", s.handleUpdateDueDate).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{id:[0-9]+}/complete", s.handleCompleteTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id:[0-9]+}/start", s.handleStartTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id:[0-9]+}/restore", s.handleRestoreTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id:[0-9]+}/permanent", s.handlePermanentDelete).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{id:[0-9]+}/progress", s.handleTaskProgress).Methods(http.MethodGet)

	// attachments
	api.HandleFunc("/tasks/{id:[0-9]+}/attachments", s.handleUploadAttachment).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id:[0-9]+}/attachments/recycled", s.handleRecycledAttachments).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id:[0-9]+}/attachments/{aid:[0-9]+}", s.handleDownloadAttachment).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id:[0-9]+}/attachments/{aid:[0-9]+}", s.handleDeleteAttachment).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{id:[0-9]+}/attachments/{aid:[0-9]+}/restore", s.handleRestoreAttachment).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id:[0-9]+}/attachments/{aid:[0-9]+}/permissions", s.handleAttachmentPermissions).Methods(http.MethodPut)

	// teams
	api.HandleFunc("/teams", s.handleListTeams).Methods(http.MethodGet)
	api.HandleFunc("/teams", s.handleCreateTeam).Methods(http.MethodPost)
	api.HandleFunc("/teams/{id:[0-9]+}", s.handleUpdateTeam).Methods(http.MethodPut)
	api.HandleFunc("/teams/{id:[0-9]+}", s.handleDissolveTeam).Methods(http.MethodDelete)
	api.HandleFunc("/teams/{id:[0-9]+}/join", s.handleRequestJoin).Methods(http.MethodPost)
	api.HandleFunc("/teams/{id:[0-9]+}/approve/{uid:[0-9]+}", s.handleApproveJoin).Methods(http.MethodPost)
	api.HandleFunc("/teams/{id:[0-9]+}/tasks/{tid:[0-9]+}/assign/{uid:[0-9]+}", s.handleAssignTask).Methods(http.MethodPost)
	api.HandleFunc("/teams/{id:[0-9]+}/members/{uid:[0-9]+}", s.handleRemoveMember).Methods(http.MethodDelete)
	api.HandleFunc("/teams/{id:[0-9]+}/members/{uid:[0-9]+}/role", s.handleUpdateMemberRole).Methods(http.MethodPut)
	api.HandleFunc("/teams/{id:[0-9]+}/progress", s.handleTeamProgress).Methods(http.MethodGet)

	// stats / focus
	api.HandleFunc("/stats", s.handleGetStats).Methods(http.MethodGet)
	api.HandleFunc("/stats/view", s.handleUpdateStatsView).Methods(http.MethodPut)
	api.HandleFunc("/focus", s.handleSubmitFocus).Methods(http.MethodPost)

	// tomato timer
	api.HandleFunc("/tomato", s.handleTomatoState).Methods(http.MethodGet)
	api.HandleFunc("/tomato/start", s.handleTomatoStart).Methods(http.MethodPost)
	api.HandleFunc("/tomato/pause", s.handleTomatoPause).Methods(http.MethodPost)
	api.HandleFunc("/tomato/resume", s.handleTomatoResume).Methods(http.MethodPost)
	api.HandleFunc("/tomato/stop", s.handleTomatoStop).Methods(http.MethodPost)

	return r
}
