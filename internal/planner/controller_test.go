// internal/planner/controller_test.go
package planner

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusdeck/focusdeck/internal/gateway"
	"github.com/focusdeck/focusdeck/internal/models"
)

// fakeGateway is an in-memory stand-in for the remote backend that
// counts calls so tests can assert what went over the wire.
type fakeGateway struct {
	nextID int

	createCalls  int
	updateCalls  int
	deleteCalls  []int
	statsCalls   int
	reorderCalls int

	deletedAttachments [][2]int
}

func (f *fakeGateway) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	f.createCalls++
	f.nextID++
	task.ID = f.nextID
	return &task, nil
}

func (f *fakeGateway) GetTasks(ctx context.Context, userID int) ([]models.Task, error) {
	return nil, nil
}

func (f *fakeGateway) UpdateTask(ctx context.Context, taskID int, task models.Task) error {
	f.updateCalls++
	return nil
}

func (f *fakeGateway) DeleteTask(ctx context.Context, taskID int) error {
	f.deleteCalls = append(f.deleteCalls, taskID)
	return nil
}

func (f *fakeGateway) CompleteTask(ctx context.Context, taskID int) error { return nil }

func (f *fakeGateway) ReorderTasks(ctx context.Context, tasks []models.Task) error {
	f.reorderCalls++
	return nil
}

func (f *fakeGateway) UploadAttachment(ctx context.Context, taskID int, fileName string, file io.Reader) (*models.Attachment, error) {
	f.nextID++
	return &models.Attachment{ID: f.nextID, FileName: fileName}, nil
}

func (f *fakeGateway) DownloadAttachment(ctx context.Context, taskID, attachmentID int) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("data")), nil
}

func (f *fakeGateway) DeleteAttachment(ctx context.Context, taskID, attachmentID int) error {
	f.deletedAttachments = append(f.deletedAttachments, [2]int{taskID, attachmentID})
	return nil
}

func (f *fakeGateway) RestoreAttachment(ctx context.Context, taskID, attachmentID int) error {
	return nil
}

func (f *fakeGateway) UpdateAttachmentPermissions(ctx context.Context, taskID, attachmentID int, permissions map[int]models.Role) error {
	return nil
}

func (f *fakeGateway) CreateTeam(ctx context.Context, team models.Team) (*models.Team, error) {
	f.nextID++
	team.ID = f.nextID
	return &team, nil
}

func (f *fakeGateway) GetTeams(ctx context.Context, userID int) ([]models.Team, error) {
	return nil, nil
}

func (f *fakeGateway) UpdateTeam(ctx context.Context, teamID int, team models.Team) error { return nil }
func (f *fakeGateway) DeleteTeam(ctx context.Context, teamID int) error                   { return nil }
func (f *fakeGateway) JoinTeam(ctx context.Context, teamID, userID int) error             { return nil }
func (f *fakeGateway) AssignTask(ctx context.Context, teamID, taskID, userID int) error   { return nil }
func (f *fakeGateway) RemoveMember(ctx context.Context, teamID, userID int) error         { return nil }
func (f *fakeGateway) UpdateMemberRole(ctx context.Context, teamID, userID int, newRole models.Role) error {
	return nil
}

func (f *fakeGateway) GetUserStats(ctx context.Context, userID int, q gateway.StatsQuery) (*models.UserStats, error) {
	f.statsCalls++
	return &models.UserStats{}, nil
}

func (f *fakeGateway) SubmitFocusData(ctx context.Context, data models.TomatoFocusData) error {
	return nil
}

type fakeReminders struct {
	scheduled []int
	cancelled []int
}

func (f *fakeReminders) Schedule(ctx context.Context, task models.Task) error {
	f.scheduled = append(f.scheduled, task.ID)
	return nil
}

func (f *fakeReminders) Cancel(ctx context.Context, taskID int) error {
	f.cancelled = append(f.cancelled, taskID)
	return nil
}

type fakeSession struct{ userID int }

func (f fakeSession) UserID() (int, bool) {
	if f.userID == 0 {
		return 0, false
	}
	return f.userID, true
}

func newTestController(t *testing.T) *Controller {
	t.Helper()
	return NewController(&fakeGateway{}, &fakeReminders{}, fakeSession{userID: 1}, 7)
}

func testFixture(t *testing.T) (*Controller, *fakeGateway, *fakeReminders) {
	t.Helper()
	gw := &fakeGateway{}
	rem := &fakeReminders{}
	return NewController(gw, rem, fakeSession{userID: 1}, 7), gw, rem
}

func TestCreateTaskAppendsAtEndAndSchedules(t *testing.T) {
	ctrl, _, rem := testFixture(t)
	ctx := context.Background()

	first, err := ctrl.CreateTask(ctx, models.Task{Title: "one"})
	require.NoError(t, err)
	second, err := ctrl.CreateTask(ctx, models.Task{Title: "two"})
	require.NoError(t, err)

	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)
	assert.Equal(t, 1, first.Weight, "weight defaults to 1")
	assert.Equal(t, []int{first.ID, second.ID}, rem.scheduled)
}

func TestCreateSubTaskInheritsTeam(t *testing.T) {
	ctrl, _, _ := testFixture(t)
	ctx := context.Background()

	ctrl.teams = []models.Team{{ID: 7, Members: map[int]models.Role{1: models.RoleAdmin}}}
	parent, err := ctrl.CreateTask(ctx, models.Task{Title: "parent", IsTeamTask: true, TeamID: intPtr(7)})
	require.NoError(t, err)

	child, err := ctrl.CreateSubTask(ctx, parent.ID, models.Task{Title: "child"})
	require.NoError(t, err)

	require.NotNil(t, child.ParentTaskID)
	assert.Equal(t, parent.ID, *child.ParentTaskID)
	assert.True(t, child.IsTeamTask)
	require.NotNil(t, child.TeamID)
	assert.Equal(t, 7, *child.TeamID)
}

func TestUpdateTaskDeniedIssuesNoRemoteCall(t *testing.T) {
	gw := &fakeGateway{}
	rem := &fakeReminders{}
	// caller is user 2, a plain member
	ctrl := NewController(gw, rem, fakeSession{userID: 2}, 7)
	ctrl.teams = []models.Team{{ID: 7, Members: map[int]models.Role{
		1: models.RoleAdmin,
		2: models.RoleMember,
		3: models.RoleMember,
	}}}
	ctrl.tasks = []models.Task{{ID: 10, IsTeamTask: true, TeamID: intPtr(7), AssignedTo: intPtr(3)}}

	err := ctrl.UpdateTask(context.Background(), models.Task{ID: 10, Title: "hijack"})
	assert.ErrorIs(t, err, ErrNotPermitted)
	assert.Zero(t, gw.updateCalls)
}

func TestUpdateDueDateResetsAlarms(t *testing.T) {
	ctrl, _, rem := testFixture(t)
	ctx := context.Background()

	task, err := ctrl.CreateTask(ctx, models.Task{Title: "due", DueDate: "2025-06-10"})
	require.NoError(t, err)
	rem.scheduled = nil

	require.NoError(t, ctrl.UpdateDueDate(ctx, task.ID, "2025-06-20"))

	assert.Equal(t, []int{task.ID}, rem.cancelled)
	assert.Equal(t, []int{task.ID}, rem.scheduled)
	assert.Equal(t, "2025-06-20", ctrl.Tasks()[0].DueDate)
}

func TestSoftDeleteKeepsAlarms(t *testing.T) {
	ctrl, _, rem := testFixture(t)
	ctx := context.Background()

	task, err := ctrl.CreateTask(ctx, models.Task{Title: "doomed"})
	require.NoError(t, err)

	require.NoError(t, ctrl.SoftDeleteTask(ctx, task.ID))

	assert.Empty(t, rem.cancelled, "deletion must not cancel alarms")
	assert.Empty(t, ctrl.Tasks())
	deleted := ctrl.DeletedTasks()
	require.Len(t, deleted, 1)
	assert.True(t, deleted[0].IsDeleted)
	assert.NotEmpty(t, deleted[0].DeletedAt)
}

func TestRestoreTaskResetsStatusAndOrder(t *testing.T) {
	ctrl, _, _ := testFixture(t)
	ctx := context.Background()

	doomed, err := ctrl.CreateTask(ctx, models.Task{Title: "doomed", Status: models.StatusInProgress})
	require.NoError(t, err)
	_, err = ctrl.CreateTask(ctx, models.Task{Title: "keeper"})
	require.NoError(t, err)

	require.NoError(t, ctrl.SoftDeleteTask(ctx, doomed.ID))
	require.NoError(t, ctrl.RestoreTask(ctx, doomed.ID))

	tasks := ctrl.Tasks()
	require.Len(t, tasks, 2)
	restored := tasks[len(tasks)-1]
	assert.Equal(t, doomed.ID, restored.ID)
	assert.Equal(t, models.StatusTodo, restored.Status)
	assert.False(t, restored.IsDeleted)
	assert.Empty(t, restored.DeletedAt)
	assert.Equal(t, 1, restored.Order, "restored task re-enters at the end")
}

func TestSweepExpiredBoundary(t *testing.T) {
	ctrl, gw, _ := testFixture(t)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	ctrl.now = func() time.Time { return now }

	ctrl.deletedTasks = []models.Task{
		{ID: 1, IsDeleted: true, DeletedAt: now.Add(-7 * 24 * time.Hour).Format(time.RFC3339)},
		{ID: 2, IsDeleted: true, DeletedAt: now.Add(-(6*24 + 23) * time.Hour).Format(time.RFC3339)},
		{ID: 3, IsDeleted: true, DeletedAt: "not-a-timestamp"},
	}

	require.NoError(t, ctrl.SweepExpired(context.Background()))

	assert.Equal(t, []int{1}, gw.deleteCalls, "exactly 7 days is eligible, 6d23h and bad stamps are not")
	assert.Len(t, ctrl.DeletedTasks(), 2)
}

func TestSweepExpiredAttachments(t *testing.T) {
	ctrl, gw, _ := testFixture(t)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	ctrl.now = func() time.Time { return now }

	ctrl.recycledFiles[5] = []models.Attachment{
		{ID: 50, IsDeleted: true, DeletedAt: now.Add(-8 * 24 * time.Hour).Format(time.RFC3339)},
		{ID: 51, IsDeleted: true, DeletedAt: now.Add(-time.Hour).Format(time.RFC3339)},
	}

	require.NoError(t, ctrl.SweepExpired(context.Background()))

	assert.Equal(t, [][2]int{{5, 50}}, gw.deletedAttachments)
	assert.Len(t, ctrl.RecycledAttachments(5), 1)
}

func TestSortByPriority(t *testing.T) {
	ctrl, _, _ := testFixture(t)
	ctrl.tasks = []models.Task{
		{ID: 1, Order: 0, Priority: models.PriorityLow, Tags: []string{"beta"}},
		{ID: 2, Order: 1, Priority: models.PriorityHighest, Tags: []string{"zulu"}},
		{ID: 3, Order: 2, Priority: models.PriorityHighest, Tags: []string{"Alpha"}},
		{ID: 4, Order: 3, Priority: models.PriorityMedium},
	}

	ctrl.ToggleSortByPriority()
	got := ctrl.Tasks()
	ids := []int{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	// highest priority first; equal priority breaks on the first tag's
	// first character, case-insensitive
	assert.Equal(t, []int{3, 2, 4, 1}, ids)

	ctrl.ToggleSortByPriority()
	got = ctrl.Tasks()
	ids = []int{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	assert.Equal(t, []int{1, 2, 3, 4}, ids, "manual order returns after the second toggle")
}

func TestUploadAttachmentLimits(t *testing.T) {
	ctrl, _, _ := testFixture(t)
	ctx := context.Background()

	task, err := ctrl.CreateTask(ctx, models.Task{Title: "files"})
	require.NoError(t, err)

	_, err = ctrl.UploadAttachment(ctx, task.ID, "huge.bin", maxAttachmentSize+1, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrAttachmentTooBig)

	// fill the quota, then one more byte must be refused
	ctrl.mu.Lock()
	ctrl.taskByID(task.ID).Attachments = []models.Attachment{{ID: 99, SizeInBytes: maxAttachmentTotal}}
	ctrl.mu.Unlock()

	_, err = ctrl.UploadAttachment(ctx, task.ID, "small.txt", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrAttachmentQuota)
}

func TestRestoreAttachmentRechecksQuota(t *testing.T) {
	ctrl, _, _ := testFixture(t)
	ctx := context.Background()

	task, err := ctrl.CreateTask(ctx, models.Task{Title: "files"})
	require.NoError(t, err)

	ctrl.mu.Lock()
	ctrl.taskByID(task.ID).Attachments = []models.Attachment{{ID: 1, SizeInBytes: maxAttachmentTotal - 10}}
	ctrl.mu.Unlock()
	ctrl.recycledFiles[task.ID] = []models.Attachment{{ID: 2, SizeInBytes: 100, IsDeleted: true}}

	err = ctrl.RestoreAttachment(ctx, task.ID, 2)
	assert.ErrorIs(t, err, ErrAttachmentQuota)
	assert.Len(t, ctrl.RecycledAttachments(task.ID), 1, "failed restore keeps the file recycled")
}

func TestRequestJoinAlreadyMember(t *testing.T) {
	ctrl, _, _ := testFixture(t)
	ctrl.teams = []models.Team{{ID: 7, Members: map[int]models.Role{1: models.RoleMember}}}

	err := ctrl.RequestJoin(context.Background(), 7)
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestRemoveMemberRejectsSelf(t *testing.T) {
	ctrl, _, _ := testFixture(t)
	ctrl.teams = []models.Team{{ID: 7, Members: map[int]models.Role{1: models.RoleAdmin}}}

	err := ctrl.RemoveMember(context.Background(), 7, 1)
	assert.ErrorIs(t, err, ErrCannotTargetSelf)
}

func TestTeamAdminGates(t *testing.T) {
	gw := &fakeGateway{}
	ctrl := NewController(gw, &fakeReminders{}, fakeSession{userID: 2}, 7)
	ctrl.teams = []models.Team{{ID: 7, Members: map[int]models.Role{
		1: models.RoleAdmin,
		2: models.RoleMember,
	}}}

	ctx := context.Background()
	assert.ErrorIs(t, ctrl.UpdateTeamInfo(ctx, 7, "new", ""), ErrAdminRequired)
	assert.ErrorIs(t, ctrl.ApproveJoin(ctx, 7, 5), ErrAdminRequired)
	assert.ErrorIs(t, ctrl.DissolveTeam(ctx, 7), ErrAdminRequired)
	assert.ErrorIs(t, ctrl.AssignTask(ctx, 7, 1, 1), ErrAdminRequired)
}

func TestUpdateStatsViewReloadsOnlyForBackendParams(t *testing.T) {
	ctrl, gw, _ := testFixture(t)
	ctx := context.Background()

	view := ctrl.CurrentStatsView()
	view.StatusFilter = "DONE"
	require.NoError(t, ctrl.UpdateStatsView(ctx, view))
	assert.Zero(t, gw.statsCalls, "status filter is local only")

	view.TrendLength = 24
	require.NoError(t, ctrl.UpdateStatsView(ctx, view))
	assert.Equal(t, 1, gw.statsCalls)
}
