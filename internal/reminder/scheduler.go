// internal/reminder/scheduler.go
package reminder

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/focusdeck/focusdeck/internal/models"
	"github.com/focusdeck/focusdeck/internal/store"
)

// dispatchTimeout bounds delivery work triggered by a fired alarm.
const dispatchTimeout = 10 * time.Second

// Scheduler turns a task's reminder settings into armed alarms and keeps
// the persisted registry in sync with them. Every alarm is one registry
// row keyed by (task, slot); cancellation walks the registry instead of
// re-deriving identities from the current settings, so editing a task's
// reminder list can never orphan an armed alarm.
type Scheduler struct {
	mu         sync.Mutex
	alarms     *store.AlarmRepository
	dispatcher *Dispatcher
	cron       *cron.Cron
	loc        *time.Location
	now        func() time.Time

	timers  map[string]*time.Timer  // registry row id -> armed one-shot
	entries map[string]cron.EntryID // registry row id -> daily cron entry

	// noTimers disables arming real timers; registry bookkeeping still
	// happens. Tests fire records by hand.
	noTimers bool
}

func NewScheduler(alarms *store.AlarmRepository, dispatcher *Dispatcher, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		alarms:     alarms,
		dispatcher: dispatcher,
		cron:       cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		loc:        loc,
		now:        time.Now,
		timers:     make(map[string]*time.Timer),
		entries:    make(map[string]cron.EntryID),
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron runner and every armed one-shot. Registry rows are
// kept; Restore re-arms them on the next start.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

// Schedule registers alarms for a task's reminder settings. A malformed
// due date skips only the offset reminders; the daily reminder still
// proceeds. Offsets whose trigger time already passed are skipped
// silently.
func (s *Scheduler) Schedule(ctx context.Context, task models.Task) error {
	rs := task.ReminderSettings
	if rs == nil {
		return nil
	}

	methods := make([]string, len(rs.ReminderMethods))
	for i, m := range rs.ReminderMethods {
		methods[i] = string(m)
	}
	encoded := store.JoinMethods(methods)
	now := s.now()

	if due, err := task.DueInstant(s.loc); err != nil {
		log.Printf("task %d has malformed due date %q, skipping offset reminders", task.ID, task.DueDate)
	} else {
		for i, offset := range rs.RemindAtTimes {
			trigger := TriggerTime(due, offset)
			if !trigger.After(now) {
				continue
			}

			rec := &store.AlarmRecord{
				ID:          uuid.NewString(),
				TaskID:      task.ID,
				Slot:        strconv.Itoa(i),
				Kind:        store.AlarmKindOffset,
				TriggerAt:   trigger,
				Title:       task.Title,
				Description: task.Description,
				Methods:     encoded,
			}
			if err := s.alarms.Create(ctx, rec); err != nil {
				return err
			}
			s.armOffset(*rec, trigger.Sub(now))
		}
	}

	if rs.DailyReminderTime != "" {
		spec, err := DailyCronSpec(rs.DailyReminderTime)
		if err != nil {
			log.Printf("task %d has malformed daily reminder time %q, skipping", task.ID, rs.DailyReminderTime)
			return nil
		}

		rec := &store.AlarmRecord{
			ID:          uuid.NewString(),
			TaskID:      task.ID,
			Slot:        store.DailySlot,
			Kind:        store.AlarmKindDaily,
			DailyTime:   rs.DailyReminderTime,
			Title:       task.Title,
			Description: task.Description,
			Methods:     encoded,
		}
		if err := s.alarms.Create(ctx, rec); err != nil {
			return err
		}
		if err := s.armDaily(*rec, spec); err != nil {
			return err
		}
	}

	return nil
}

// Cancel drops every alarm of a task: registry rows, armed timers and
// cron entries.
func (s *Scheduler) Cancel(ctx context.Context, taskID int) error {
	recs, err := s.alarms.DeleteByTask(ctx, taskID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		if timer, ok := s.timers[rec.ID]; ok {
			timer.Stop()
			delete(s.timers, rec.ID)
		}
		if entryID, ok := s.entries[rec.ID]; ok {
			s.cron.Remove(entryID)
			delete(s.entries, rec.ID)
		}
	}
	return nil
}

// Restore re-arms persisted alarms after a restart. One-shots whose
// trigger passed while the process was down are dropped, matching the
// schedule-time rule that past triggers never fire.
func (s *Scheduler) Restore(ctx context.Context) error {
	recs, err := s.alarms.ListAll(ctx)
	if err != nil {
		return err
	}

	now := s.now()
	for _, rec := range recs {
		switch rec.Kind {
		case store.AlarmKindOffset:
			if !rec.TriggerAt.After(now) {
				if err := s.alarms.Delete(ctx, rec.ID); err != nil {
					return err
				}
				continue
			}
			s.armOffset(rec, rec.TriggerAt.Sub(now))

		case store.AlarmKindDaily:
			spec, err := DailyCronSpec(rec.DailyTime)
			if err != nil {
				log.Printf("dropping daily alarm %s with malformed time %q", rec.ID, rec.DailyTime)
				if err := s.alarms.Delete(ctx, rec.ID); err != nil {
					return err
				}
				continue
			}
			if err := s.armDaily(rec, spec); err != nil {
				return err
			}
		}
	}
	return nil
}

// NotifyOnAppOpen raises an immediate in-app reminder for every live
// task that opted into it.
func (s *Scheduler) NotifyOnAppOpen(ctx context.Context, tasks []models.Task) {
	for _, task := range tasks {
		rs := task.ReminderSettings
		if task.IsDeleted || rs == nil || !rs.RemindOnAppOpen {
			continue
		}
		s.dispatcher.Dispatch(ctx, task.Title, task.Description, []string{string(models.RemindInApp)})
	}
}

func (s *Scheduler) armOffset(rec store.AlarmRecord, in time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.noTimers {
		return
	}
	s.timers[rec.ID] = time.AfterFunc(in, func() {
		s.fireOffset(rec)
	})
}

func (s *Scheduler) armDaily(rec store.AlarmRecord, spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.noTimers {
		return nil
	}
	entryID, err := s.cron.AddFunc(spec, func() {
		s.fireDaily(rec)
	})
	if err != nil {
		return err
	}
	s.entries[rec.ID] = entryID
	return nil
}

// fireOffset delivers a one-shot alarm and retires its registry row.
func (s *Scheduler) fireOffset(rec store.AlarmRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	s.dispatcher.Dispatch(ctx, rec.Title, rec.Description, rec.MethodNames())

	if err := s.alarms.Delete(ctx, rec.ID); err != nil {
		log.Printf("retire alarm %s: %v", rec.ID, err)
	}
	s.mu.Lock()
	delete(s.timers, rec.ID)
	s.mu.Unlock()
}

// fireDaily delivers a repeating alarm; the registry row stays.
func (s *Scheduler) fireDaily(rec store.AlarmRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()
	s.dispatcher.Dispatch(ctx, rec.Title, rec.Description, rec.MethodNames())
}
