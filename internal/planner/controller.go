// internal/planner/controller.go
package planner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/focusdeck/focusdeck/internal/gateway"
	"github.com/focusdeck/focusdeck/internal/models"
)

const (
	maxAttachmentSize  = 10 << 20  // single file
	maxAttachmentTotal = 100 << 20 // per task, live attachments
)

var (
	ErrNoUser             = errors.New("no user logged in")
	ErrNotPermitted       = errors.New("not permitted to modify this task")
	ErrTaskNotFound       = errors.New("task not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrAttachmentTooBig   = errors.New("attachment exceeds the 10 MiB limit")
	ErrAttachmentQuota    = errors.New("attachments exceed the 100 MiB per-task limit")
	ErrAdminRequired      = errors.New("team admin role required")
	ErrNotTeamMember      = errors.New("user is not a team member")
	ErrAlreadyMember      = errors.New("already a team member")
	ErrCannotTargetSelf   = errors.New("cannot apply this action to yourself")
)

// Gateway is the slice of the REST client the controller drives.
// Declared here so tests can substitute a fake backend.
type Gateway interface {
	CreateTask(ctx context.Context, task models.Task) (*models.Task, error)
	GetTasks(ctx context.Context, userID int) ([]models.Task, error)
	UpdateTask(ctx context.Context, taskID int, task models.Task) error
	DeleteTask(ctx context.Context, taskID int) error
	CompleteTask(ctx context.Context, taskID int) error
	ReorderTasks(ctx context.Context, tasks []models.Task) error

	UploadAttachment(ctx context.Context, taskID int, fileName string, file io.Reader) (*models.Attachment, error)
	DownloadAttachment(ctx context.Context, taskID, attachmentID int) (io.ReadCloser, error)
	DeleteAttachment(ctx context.Context, taskID, attachmentID int) error
	RestoreAttachment(ctx context.Context, taskID, attachmentID int) error
	UpdateAttachmentPermissions(ctx context.Context, taskID, attachmentID int, permissions map[int]models.Role) error

	CreateTeam(ctx context.Context, team models.Team) (*models.Team, error)
	GetTeams(ctx context.Context, userID int) ([]models.Team, error)
	UpdateTeam(ctx context.Context, teamID int, team models.Team) error
	DeleteTeam(ctx context.Context, teamID int) error
	JoinTeam(ctx context.Context, teamID, userID int) error
	AssignTask(ctx context.Context, teamID, taskID, userID int) error
	RemoveMember(ctx context.Context, teamID, userID int) error
	UpdateMemberRole(ctx context.Context, teamID, userID int, newRole models.Role) error

	GetUserStats(ctx context.Context, userID int, q gateway.StatsQuery) (*models.UserStats, error)
	SubmitFocusData(ctx context.Context, data models.TomatoFocusData) error
}

// Reminders is the scheduling surface the controller drives on task
// lifecycle events.
type Reminders interface {
	Schedule(ctx context.Context, task models.Task) error
	Cancel(ctx context.Context, taskID int) error
}

// UserSource identifies the logged-in user.
type UserSource interface {
	UserID() (int, bool)
}

// StatsView holds the stats dashboard parameters. The first three are
// sent to the backend; StatusFilter only filters locally.
type StatsView struct {
	TrendLength          int
	TaskDateRange        int
	TimeAllocationPeriod string
	StatusFilter         string
}

// Controller is the client-side state holder: the in-memory mirror of
// the user's tasks and teams, the recycle bins, and the derived values
// computed over them. All state lives behind one mutex; accessors return
// copies. Remote calls happen before the local mirror changes, so a
// failed call leaves local state untouched.
type Controller struct {
	gw        Gateway
	reminders Reminders
	session   UserSource
	now       func() time.Time
	retention time.Duration

	mu             sync.Mutex
	tasks          []models.Task
	deletedTasks   []models.Task
	teams          []models.Team
	recycledFiles  map[int][]models.Attachment // taskID -> soft-deleted attachments
	stats          *models.UserStats
	statsView      StatsView
	sortByPriority bool
}

func NewController(gw Gateway, reminders Reminders, session UserSource, retentionDays int) *Controller {
	if retentionDays <= 0 {
		retentionDays = 7
	}
	return &Controller{
		gw:            gw,
		reminders:     reminders,
		session:       session,
		now:           time.Now,
		retention:     time.Duration(retentionDays) * 24 * time.Hour,
		recycledFiles: make(map[int][]models.Attachment),
		statsView: StatsView{
			TrendLength:          12,
			TaskDateRange:        7,
			TimeAllocationPeriod: "weekly",
		},
	}
}

// ---- loading ----

// LoadTasks pulls the user's tasks and rebuilds the local mirror,
// splitting soft-deleted tasks and attachments into their recycle bins.
func (c *Controller) LoadTasks(ctx context.Context) error {
	userID, ok := c.session.UserID()
	if !ok {
		return ErrNoUser
	}

	fetched, err := c.gw.GetTasks(ctx, userID)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = c.tasks[:0]
	c.deletedTasks = c.deletedTasks[:0]
	c.recycledFiles = make(map[int][]models.Attachment)

	for _, task := range fetched {
		live := task.Attachments[:0:0]
		for _, a := range task.Attachments {
			if a.IsDeleted {
				c.recycledFiles[task.ID] = append(c.recycledFiles[task.ID], a)
			} else {
				live = append(live, a)
			}
		}
		task.Attachments = live

		if task.IsDeleted {
			c.deletedTasks = append(c.deletedTasks, task)
		} else {
			c.tasks = append(c.tasks, task)
		}
	}
	return nil
}

// LoadTeams pulls the user's teams.
func (c *Controller) LoadTeams(ctx context.Context) error {
	userID, ok := c.session.UserID()
	if !ok {
		return ErrNoUser
	}

	teams, err := c.gw.GetTeams(ctx, userID)
	if err != nil {
		return fmt.Errorf("load teams: %w", err)
	}

	c.mu.Lock()
	c.teams = teams
	c.mu.Unlock()
	return nil
}

// LoadStats refreshes the stats mirror using the current view params.
func (c *Controller) LoadStats(ctx context.Context) error {
	userID, ok := c.session.UserID()
	if !ok {
		return ErrNoUser
	}

	c.mu.Lock()
	q := gateway.StatsQuery{
		TrendLength:          c.statsView.TrendLength,
		TaskDateRange:        c.statsView.TaskDateRange,
		TimeAllocationPeriod: c.statsView.TimeAllocationPeriod,
	}
	c.mu.Unlock()

	stats, err := c.gw.GetUserStats(ctx, userID, q)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	c.mu.Lock()
	c.stats = stats
	c.mu.Unlock()
	return nil
}

// ---- snapshots ----

// Tasks returns the live tasks in display order: manual order, or
// priority order while the priority sort is toggled on.
func (c *Controller) Tasks() []models.Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Task, len(c.tasks))
	copy(out, c.tasks)

	if c.sortByPriority {
		sort.SliceStable(out, func(i, j int) bool {
			ri, rj := out[i].Priority.Rank(), out[j].Priority.Rank()
			if ri != rj {
				return ri > rj
			}
			return firstTagChar(out[i].Tags) < firstTagChar(out[j].Tags)
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Order < out[j].Order
		})
	}
	return out
}

func firstTagChar(tags []string) rune {
	if len(tags) == 0 || tags[0] == "" {
		return 0
	}
	return []rune(strings.ToLower(tags[0]))[0]
}

func (c *Controller) DeletedTasks() []models.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Task, len(c.deletedTasks))
	copy(out, c.deletedTasks)
	return out
}

func (c *Controller) Teams() []models.Team {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Team, len(c.teams))
	copy(out, c.teams)
	return out
}

// RecycledAttachments returns the task's soft-deleted attachments.
func (c *Controller) RecycledAttachments(taskID int) []models.Attachment {
	c.mu.Lock()
	defer c.mu.Unlock()
	src := c.recycledFiles[taskID]
	out := make([]models.Attachment, len(src))
	copy(out, src)
	return out
}

func (c *Controller) Stats() *models.UserStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stats == nil {
		return nil
	}
	cp := *c.stats
	return &cp
}

func (c *Controller) CurrentStatsView() StatsView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statsView
}

// ---- task commands ----

// CreateTask creates a task at the end of the manual order, mirrors it
// locally and arms its reminders.
func (c *Controller) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	if _, ok := c.session.UserID(); !ok {
		return nil, ErrNoUser
	}
	if task.Weight <= 0 {
		task.Weight = 1
	}

	c.mu.Lock()
	task.Order = len(c.tasks)
	c.mu.Unlock()

	created, err := c.gw.CreateTask(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	c.mu.Lock()
	c.tasks = append(c.tasks, *created)
	if created.IsTeamTask && created.TeamID != nil {
		if team := c.teamByID(*created.TeamID); team != nil {
			team.Tasks = append(team.Tasks, created.ID)
		}
	}
	c.mu.Unlock()

	if err := c.reminders.Schedule(ctx, *created); err != nil {
		log.Printf("schedule reminders for task %d: %v", created.ID, err)
	}
	return created, nil
}

// CreateSubTask creates a child under a parent, inheriting the parent's
// team association.
func (c *Controller) CreateSubTask(ctx context.Context, parentID int, task models.Task) (*models.Task, error) {
	c.mu.Lock()
	parent := c.taskByID(parentID)
	if parent == nil {
		c.mu.Unlock()
		return nil, ErrTaskNotFound
	}
	task.ParentTaskID = &parentID
	task.IsTeamTask = parent.IsTeamTask
	task.TeamID = parent.TeamID
	c.mu.Unlock()

	return c.CreateTask(ctx, task)
}

// UpdateTask replaces a task after an authorization check. A denial
// issues no remote call.
func (c *Controller) UpdateTask(ctx context.Context, task models.Task) error {
	if err := c.requireModify(task.ID); err != nil {
		return err
	}

	if err := c.gw.UpdateTask(ctx, task.ID, task); err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	c.mu.Lock()
	if existing := c.taskByID(task.ID); existing != nil {
		*existing = task
	}
	c.mu.Unlock()
	return nil
}

// UpdateDueDate edits a task's due date and is the one mutation that
// resets its alarms: cancel, update, reschedule.
func (c *Controller) UpdateDueDate(ctx context.Context, taskID int, dueDate string) error {
	if err := c.requireModify(taskID); err != nil {
		return err
	}

	c.mu.Lock()
	existing := c.taskByID(taskID)
	if existing == nil {
		c.mu.Unlock()
		return ErrTaskNotFound
	}
	updated := *existing
	updated.DueDate = dueDate
	c.mu.Unlock()

	if err := c.reminders.Cancel(ctx, taskID); err != nil {
		return fmt.Errorf("cancel reminders: %w", err)
	}
	if err := c.gw.UpdateTask(ctx, taskID, updated); err != nil {
		return fmt.Errorf("update due date: %w", err)
	}

	c.mu.Lock()
	if existing := c.taskByID(taskID); existing != nil {
		existing.DueDate = dueDate
	}
	c.mu.Unlock()

	if err := c.reminders.Schedule(ctx, updated); err != nil {
		log.Printf("reschedule reminders for task %d: %v", taskID, err)
	}
	return nil
}

func (c *Controller) MarkCompleted(ctx context.Context, taskID int) error {
	if err := c.requireModify(taskID); err != nil {
		return err
	}
	if err := c.gw.CompleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("complete task: %w", err)
	}

	c.mu.Lock()
	if task := c.taskByID(taskID); task != nil {
		task.Status = models.StatusDone
	}
	c.mu.Unlock()
	return nil
}

func (c *Controller) MarkInProgress(ctx context.Context, taskID int) error {
	if err := c.requireModify(taskID); err != nil {
		return err
	}

	c.mu.Lock()
	existing := c.taskByID(taskID)
	if existing == nil {
		c.mu.Unlock()
		return ErrTaskNotFound
	}
	updated := *existing
	updated.Status = models.StatusInProgress
	c.mu.Unlock()

	if err := c.gw.UpdateTask(ctx, taskID, updated); err != nil {
		return fmt.Errorf("mark in progress: %w", err)
	}

	c.mu.Lock()
	if task := c.taskByID(taskID); task != nil {
		task.Status = models.StatusInProgress
	}
	c.mu.Unlock()
	return nil
}

// Reorder assigns manual order by position in orderedIDs and pushes the
// new ordering to the backend. IDs not present keep their old order.
func (c *Controller) Reorder(ctx context.Context, orderedIDs []int) error {
	c.mu.Lock()
	position := make(map[int]int, len(orderedIDs))
	for i, id := range orderedIDs {
		position[id] = i
	}
	reordered := make([]models.Task, 0, len(orderedIDs))
	for i := range c.tasks {
		if pos, ok := position[c.tasks[i].ID]; ok {
			t := c.tasks[i]
			t.Order = pos
			reordered = append(reordered, t)
		}
	}
	c.mu.Unlock()

	if err := c.gw.ReorderTasks(ctx, reordered); err != nil {
		return fmt.Errorf("reorder tasks: %w", err)
	}

	c.mu.Lock()
	for i := range c.tasks {
		if pos, ok := position[c.tasks[i].ID]; ok {
			c.tasks[i].Order = pos
		}
	}
	c.mu.Unlock()
	return nil
}

// ToggleSortByPriority flips between manual order and priority order.
// Purely a view concern; nothing is sent to the backend.
func (c *Controller) ToggleSortByPriority() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortByPriority = !c.sortByPriority
	return c.sortByPriority
}

// ---- soft delete / restore / sweep ----

// SoftDeleteTask stamps the task deleted and moves it to the recycle
// bin. Its alarms stay armed; only a due-date edit resets alarms.
func (c *Controller) SoftDeleteTask(ctx context.Context, taskID int) error {
	if err := c.requireModify(taskID); err != nil {
		return err
	}

	c.mu.Lock()
	existing := c.taskByID(taskID)
	if existing == nil {
		c.mu.Unlock()
		return ErrTaskNotFound
	}
	updated := *existing
	updated.IsDeleted = true
	updated.DeletedAt = c.now().UTC().Format(time.RFC3339)
	c.mu.Unlock()

	if err := c.gw.UpdateTask(ctx, taskID, updated); err != nil {
		return fmt.Errorf("soft delete task: %w", err)
	}

	c.mu.Lock()
	c.removeTask(taskID)
	c.deletedTasks = append(c.deletedTasks, updated)
	if updated.TeamID != nil {
		if team := c.teamByID(*updated.TeamID); team != nil {
			team.Tasks = removeID(team.Tasks, taskID)
		}
	}
	c.mu.Unlock()
	return nil
}

// RestoreTask brings a task back from the recycle bin: status resets to
// TODO and it re-enters the manual order at the end.
func (c *Controller) RestoreTask(ctx context.Context, taskID int) error {
	c.mu.Lock()
	idx := -1
	for i := range c.deletedTasks {
		if c.deletedTasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return ErrTaskNotFound
	}
	restored := c.deletedTasks[idx]
	restored.IsDeleted = false
	restored.DeletedAt = ""
	restored.Status = models.StatusTodo
	restored.Order = len(c.tasks)
	c.mu.Unlock()

	if err := c.gw.UpdateTask(ctx, taskID, restored); err != nil {
		return fmt.Errorf("restore task: %w", err)
	}

	c.mu.Lock()
	c.deletedTasks = append(c.deletedTasks[:idx], c.deletedTasks[idx+1:]...)
	c.tasks = append(c.tasks, restored)
	if restored.TeamID != nil {
		if team := c.teamByID(*restored.TeamID); team != nil {
			team.Tasks = append(removeID(team.Tasks, taskID), taskID)
		}
	}
	c.mu.Unlock()
	return nil
}

// PermanentlyDeleteTask removes a recycled task for good.
func (c *Controller) PermanentlyDeleteTask(ctx context.Context, taskID int) error {
	if err := c.gw.DeleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	c.mu.Lock()
	for i := range c.deletedTasks {
		if c.deletedTasks[i].ID == taskID {
			c.deletedTasks = append(c.deletedTasks[:i], c.deletedTasks[i+1:]...)
			break
		}
	}
	delete(c.recycledFiles, taskID)
	c.mu.Unlock()
	return nil
}

// SweepExpired permanently removes recycled tasks and attachments whose
// deletion stamp is at least the retention period old. Unparseable
// stamps are skipped; the entry stays until a stamp can be read.
func (c *Controller) SweepExpired(ctx context.Context) error {
	now := c.now()

	c.mu.Lock()
	var expiredTasks []int
	for i := range c.deletedTasks {
		if c.expired(c.deletedTasks[i].DeletedAt, now) {
			expiredTasks = append(expiredTasks, c.deletedTasks[i].ID)
		}
	}
	type recycled struct{ taskID, attachmentID int }
	var expiredFiles []recycled
	for taskID, files := range c.recycledFiles {
		for i := range files {
			if c.expired(files[i].DeletedAt, now) {
				expiredFiles = append(expiredFiles, recycled{taskID, files[i].ID})
			}
		}
	}
	c.mu.Unlock()

	for _, id := range expiredTasks {
		if err := c.PermanentlyDeleteTask(ctx, id); err != nil {
			log.Printf("sweep task %d: %v", id, err)
		}
	}
	for _, f := range expiredFiles {
		if err := c.gw.DeleteAttachment(ctx, f.taskID, f.attachmentID); err != nil {
			log.Printf("sweep attachment %d of task %d: %v", f.attachmentID, f.taskID, err)
			continue
		}
		c.mu.Lock()
		c.recycledFiles[f.taskID] = removeAttachment(c.recycledFiles[f.taskID], f.attachmentID)
		c.mu.Unlock()
	}
	return nil
}

func (c *Controller) expired(deletedAt string, now time.Time) bool {
	if deletedAt == "" {
		return false
	}
	stamp, err := time.Parse(time.RFC3339, deletedAt)
	if err != nil {
		return false
	}
	return now.Sub(stamp) >= c.retention
}

// ---- helpers (callers hold c.mu unless noted) ----

func (c *Controller) taskByID(id int) *models.Task {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			return &c.tasks[i]
		}
	}
	return nil
}

func (c *Controller) teamByID(id int) *models.Team {
	for i := range c.teams {
		if c.teams[i].ID == id {
			return &c.teams[i]
		}
	}
	return nil
}

func (c *Controller) teamOf(task *models.Task) *models.Team {
	if task.TeamID == nil {
		return nil
	}
	return c.teamByID(*task.TeamID)
}

func (c *Controller) removeTask(id int) {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			return
		}
	}
}

// requireModify acquires its own lock.
func (c *Controller) requireModify(taskID int) error {
	userID, ok := c.session.UserID()
	if !ok {
		return ErrNoUser
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	task := c.taskByID(taskID)
	if task == nil {
		return ErrTaskNotFound
	}
	if !canModify(task, c.teamOf(task), userID) {
		return ErrNotPermitted
	}
	return nil
}

func removeID(ids []int, id int) []int {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func removeAttachment(files []models.Attachment, id int) []models.Attachment {
	for i := range files {
		if files[i].ID == id {
			return append(files[:i], files[i+1:]...)
		}
	}
	return files
}
