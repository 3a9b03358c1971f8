// internal/store/alarm_repository.go
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Alarm kinds.
const (
	AlarmKindOffset = "offset" // one-shot, fires at TriggerAt
	AlarmKindDaily  = "daily"  // repeats every day at DailyTime
)

// DailySlot identifies the repeating daily alarm of a task in the
// registry, distinct from the numbered offset slots.
const DailySlot = "daily"

// AlarmRecord is one scheduled reminder in the persisted registry. The
// registry keys alarms by (task, slot) so cancellation stays exact even
// after the task's reminder settings change. The fire payload is embedded
// so the dispatcher never needs controller state.
type AlarmRecord struct {
	ID          string `gorm:"primaryKey"`
	TaskID      int    `gorm:"index"`
	Slot        string // offset index ("0", "1", ...) or DailySlot
	Kind        string
	TriggerAt   time.Time // zero for daily alarms
	DailyTime   string    // "HH:mm", empty for offset alarms
	Title       string
	Description string
	Methods     string // comma-joined reminder method names
	CreatedAt   time.Time
}

// MethodNames splits the stored delivery methods.
func (a *AlarmRecord) MethodNames() []string {
	if a.Methods == "" {
		return nil
	}
	return strings.Split(a.Methods, ",")
}

// JoinMethods encodes delivery methods for storage.
func JoinMethods(names []string) string {
	return strings.Join(names, ",")
}

// AlarmRepository persists the alarm registry.
type AlarmRepository struct {
	db *gorm.DB
}

func NewAlarmRepository(db *gorm.DB) *AlarmRepository {
	return &AlarmRepository{db: db}
}

func (r *AlarmRepository) Create(ctx context.Context, rec *AlarmRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("create alarm record: %w", err)
	}
	return nil
}

func (r *AlarmRepository) ListAll(ctx context.Context) ([]AlarmRecord, error) {
	var recs []AlarmRecord
	if err := r.db.WithContext(ctx).Order("task_id, slot").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list alarm records: %w", err)
	}
	return recs, nil
}

func (r *AlarmRepository) ListByTask(ctx context.Context, taskID int) ([]AlarmRecord, error) {
	var recs []AlarmRecord
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list alarm records for task %d: %w", taskID, err)
	}
	return recs, nil
}

// DeleteByTask drops every registry row of a task and returns the removed
// rows so the scheduler can stop their timers.
func (r *AlarmRepository) DeleteByTask(ctx context.Context, taskID int) ([]AlarmRecord, error) {
	recs, err := r.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Delete(&AlarmRecord{}).Error; err != nil {
		return nil, fmt.Errorf("delete alarm records for task %d: %w", taskID, err)
	}
	return recs, nil
}

func (r *AlarmRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&AlarmRecord{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete alarm record %s: %w", id, err)
	}
	return nil
}
