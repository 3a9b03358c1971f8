// internal/models/task.go
package models

import "time"

// Priority levels, lowest to highest urgency.
type Priority string

const (
	PriorityLowest  Priority = "LOWEST"
	PriorityLow     Priority = "LOW"
	PriorityMedium  Priority = "MEDIUM"
	PriorityHigh    Priority = "HIGH"
	PriorityHighest Priority = "HIGHEST"
)

// Rank returns the ordinal position of the priority for sorting.
// Unknown values rank below LOWEST.
func (p Priority) Rank() int {
	switch p {
	case PriorityLowest:
		return 1
	case PriorityLow:
		return 2
	case PriorityMedium:
		return 3
	case PriorityHigh:
		return 4
	case PriorityHighest:
		return 5
	default:
		return 0
	}
}

// Task status values. StatusExpired is never persisted by this client;
// it is only inferred transiently by comparing the due date to today.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
	StatusExpired    TaskStatus = "EXPIRED"
)

type RecurringType string

const (
	RecurringDaily   RecurringType = "DAILY"
	RecurringWeekly  RecurringType = "WEEKLY"
	RecurringMonthly RecurringType = "MONTHLY"
)

// ReminderMethod is a delivery channel for a scheduled reminder.
type ReminderMethod string

const (
	RemindInApp       ReminderMethod = "IN_APP"
	RemindFloatWindow ReminderMethod = "FLOAT_WINDOW"
	RemindSMS         ReminderMethod = "SMS"
	RemindEmail       ReminderMethod = "EMAIL"
)

// ReminderSettings configures when and how a task reminds.
// RemindAtTimes entries are relative offsets before the due instant,
// encoded as "<n><unit>" with unit d, h or m (e.g. "2d", "30m").
type ReminderSettings struct {
	ReminderMethods   []ReminderMethod `json:"reminderMethods"`
	RemindAtTimes     []string         `json:"remindAtTimes"`
	DailyReminderTime string           `json:"dailyReminderTime,omitempty"` // "HH:mm"
	RemindOnAppOpen   bool             `json:"remindOnAppOpen"`
}

type ChecklistItem struct {
	ID          int    `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

// Attachment is independently soft-deletable and carries its own
// per-member permission map.
type Attachment struct {
	ID             int          `json:"id"`
	FileName       string       `json:"fileName"`
	SizeInBytes    int64        `json:"sizeInBytes"`
	IsDeleted      bool         `json:"isDeleted"`
	DeletedAt      string       `json:"deletedAt,omitempty"` // UTC ISO-8601
	AttachmentLink string       `json:"attachmentLink,omitempty"`
	Permissions    map[int]Role `json:"permissions,omitempty"`
}

// Task mirrors the backend task record. DueDate is a calendar date with no
// time component ("2006-01-02"); the reminder layer treats it as 23:59:59
// wall clock. ParentTaskID forms a single-level parent/child hierarchy.
type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Tags        []string   `json:"tags"`
	Status      TaskStatus `json:"status"`
	DueDate     string     `json:"dueDate"`
	Order       int        `json:"order"`

	Checklist []ChecklistItem `json:"checklist,omitempty"`

	IsRecurring      bool          `json:"isRecurring"`
	RecurringType    RecurringType `json:"recurringType,omitempty"`
	RecurringEndDate string        `json:"recurringEndDate,omitempty"`
	RecurringOnDays  []int         `json:"recurringOnDays,omitempty"`

	ReminderSettings *ReminderSettings `json:"reminderSettings,omitempty"`

	IsDeleted bool   `json:"isDeleted"`
	DeletedAt string `json:"deletedAt,omitempty"` // UTC ISO-8601

	Attachments []Attachment `json:"attachments,omitempty"`

	AssignedTo   *int `json:"assignedTo,omitempty"`
	IsTeamTask   bool `json:"isTeamTask"`
	TeamID       *int `json:"teamId,omitempty"`
	ParentTaskID *int `json:"parentTaskId,omitempty"`
	Weight       int  `json:"weight"`
}

// DueInstant resolves the task's due date to its end-of-day wall-clock
// instant in the given location. Returns an error for a malformed date.
func (t *Task) DueInstant(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", t.DueDate, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, loc), nil
}

// AttachmentsTotalSize sums the sizes of the task's live attachments.
func (t *Task) AttachmentsTotalSize() int64 {
	var total int64
	for _, a := range t.Attachments {
		total += a.SizeInBytes
	}
	return total
}
