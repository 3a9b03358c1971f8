// internal/tomato/timer.go
package tomato

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/focusdeck/focusdeck/internal/notify"
)

// Timer states.
type State string

const (
	StateIdle    State = "IDLE"
	StateWorking State = "WORKING"
	StateBreak   State = "BREAK"
)

const (
	WorkDuration  = 25 * time.Minute
	BreakDuration = 5 * time.Minute

	// minFocusReport guards against recording spurious zero-length
	// sessions when a user stops immediately after starting.
	minFocusReport = time.Second
)

// FocusFunc receives the duration of a finished focus session in
// seconds: the full work duration on auto-completion, the elapsed time
// on an early stop.
type FocusFunc func(durationSeconds int64)

// Snapshot is a read-only view of the timer. Display and Sweep both
// derive from the same remaining-time value, so the text and the arc
// can never drift apart.
type Snapshot struct {
	State     State         `json:"state"`
	Running   bool          `json:"running"`
	Paused    bool          `json:"paused"`
	Remaining time.Duration `json:"-"`
	Display   string        `json:"display"` // "mm:ss"
	Sweep     float64       `json:"sweep"`   // elapsed fraction, 0..1
}

// Timer is the focus countdown state machine: IDLE starts a 25-minute
// work phase, which rolls into a 5-minute break, which resets to IDLE.
type Timer struct {
	mu        sync.Mutex
	state     State
	paused    bool
	total     time.Duration
	remaining time.Duration
	stopCh    chan struct{}

	tickEvery time.Duration
	onFocus   FocusFunc
	notifier  notify.Notifier
}

// NewTimer builds a timer ticking at 1-second resolution. The notifier
// may be nil.
func NewTimer(notifier notify.Notifier) *Timer {
	return newTimer(time.Second, notifier)
}

// newTimer with tickEvery == 0 never ticks on its own; tests advance it
// by calling tick directly.
func newTimer(tickEvery time.Duration, notifier notify.Notifier) *Timer {
	return &Timer{
		state:     StateIdle,
		tickEvery: tickEvery,
		notifier:  notifier,
	}
}

// OnFocusComplete registers the focus-session callback. Must be set
// before Start.
func (t *Timer) OnFocusComplete(fn FocusFunc) {
	t.mu.Lock()
	t.onFocus = fn
	t.mu.Unlock()
}

// Start begins a work phase. Only valid from IDLE.
func (t *Timer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateIdle {
		return fmt.Errorf("cannot start from state %s", t.state)
	}

	t.state = StateWorking
	t.paused = false
	t.total = WorkDuration
	t.remaining = WorkDuration
	t.startLoopLocked()
	return nil
}

// Stop ends the session early. An early stop during a work phase
// reports the elapsed time when it exceeds the one-second floor; a stop
// during a break reports nothing.
func (t *Timer) Stop() {
	t.mu.Lock()
	var report int64
	if t.state == StateWorking {
		elapsed := t.total - t.remaining
		if elapsed > minFocusReport {
			report = int64(elapsed / time.Second)
		}
	}
	fn := t.onFocus
	t.resetLocked()
	t.mu.Unlock()

	if report > 0 && fn != nil {
		fn(report)
	}
}

// Pause freezes the countdown. No-op unless running and unpaused.
func (t *Timer) Pause() {
	t.mu.Lock()
	if t.state != StateIdle && !t.paused {
		t.paused = true
	}
	t.mu.Unlock()
}

// Resume continues a paused countdown from where it froze.
func (t *Timer) Resume() {
	t.mu.Lock()
	if t.state != StateIdle && t.paused {
		t.paused = false
	}
	t.mu.Unlock()
}

// OnHostBackground force-pauses a running, unpaused timer. Called by
// the host when its surface goes to the background.
func (t *Timer) OnHostBackground() {
	t.mu.Lock()
	runningUnpaused := t.state != StateIdle && !t.paused
	t.mu.Unlock()
	if runningUnpaused {
		t.Pause()
	}
}

// OnHostNavigateAway force-stops a running, unpaused timer. Called by
// the host when the user leaves the timer surface.
func (t *Timer) OnHostNavigateAway() {
	t.mu.Lock()
	runningUnpaused := t.state != StateIdle && !t.paused
	t.mu.Unlock()
	if runningUnpaused {
		t.Stop()
	}
}

// Snapshot returns the current view of the timer.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := Snapshot{
		State:     t.state,
		Running:   t.state != StateIdle,
		Paused:    t.paused,
		Remaining: t.remaining,
	}
	mins := int(t.remaining / time.Minute)
	secs := int(t.remaining/time.Second) % 60
	snap.Display = fmt.Sprintf("%02d:%02d", mins, secs)
	if t.total > 0 {
		snap.Sweep = float64(t.total-t.remaining) / float64(t.total)
	}
	return snap
}

func (t *Timer) startLoopLocked() {
	if t.tickEvery == 0 {
		return
	}
	stopCh := make(chan struct{})
	t.stopCh = stopCh

	go func() {
		ticker := time.NewTicker(t.tickEvery)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				t.tick()
			}
		}
	}()
}

// tick advances the countdown by one second and drives the phase
// transitions.
func (t *Timer) tick() {
	t.mu.Lock()
	if t.state == StateIdle || t.paused {
		t.mu.Unlock()
		return
	}

	t.remaining -= time.Second
	if t.remaining > 0 {
		t.mu.Unlock()
		return
	}

	switch t.state {
	case StateWorking:
		report := int64(t.total / time.Second)
		fn := t.onFocus
		t.state = StateBreak
		t.total = BreakDuration
		t.remaining = BreakDuration
		t.mu.Unlock()

		if fn != nil {
			fn(report)
		}
		t.push("Focus complete", "Time for a 5 minute break")

	case StateBreak:
		t.resetLocked()
		t.mu.Unlock()
		t.push("Break over", "Ready for the next focus session")

	default:
		t.mu.Unlock()
	}
}

// resetLocked returns the timer to IDLE. Caller holds t.mu.
func (t *Timer) resetLocked() {
	t.state = StateIdle
	t.paused = false
	t.total = 0
	t.remaining = 0
	if t.stopCh != nil {
		close(t.stopCh)
		t.stopCh = nil
	}
}

func (t *Timer) push(title, message string) {
	if t.notifier == nil {
		return
	}
	if err := t.notifier.Push(title, message); err != nil {
		log.Printf("timer notification failed: %v", err)
	}
}
