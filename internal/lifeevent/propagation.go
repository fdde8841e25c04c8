// Package lifeevent recomputes dependent life-board events when a birth
// event is moved: school start follows at birth age + 6 and graduation at
// birth age + 22. Moves are debounced per event so rapid drags collapse
// into a single recompute (last write wins).
package lifeevent

import (
	"fmt"
	"sync"
	"time"
)

// Fixed age offsets between a birth event and its dependents.
const (
	SchoolStartOffset = 6
	GraduationOffset  = 22
)

// DefaultDebounce is the delay between the last move and the recompute.
const DefaultDebounce = 400 * time.Millisecond

// LinkedUpdate carries the recomputed dependent ages and a user-visible
// description of the change.
type LinkedUpdate struct {
	EventID        string `json:"eventId"`
	BirthAge       int    `json:"birthAge"`
	SchoolStartAge int    `json:"schoolStartAge"`
	GraduationAge  int    `json:"graduationAge"`
	Description    string `json:"description"`
}

// LinkedUpdateFunc receives the update after the debounce elapses.
type LinkedUpdateFunc func(LinkedUpdate)

// Propagator debounces birth-event moves and fires the linked update.
// Each birth event is tracked independently; a second move of the same
// event before the delay elapses cancels the pending recompute and
// reschedules it.
type Propagator struct {
	delay    time.Duration
	callback LinkedUpdateFunc

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

// NewPropagator creates a propagator firing callback after each settled
// move. A non-positive delay falls back to DefaultDebounce.
func NewPropagator(delay time.Duration, callback LinkedUpdateFunc) *Propagator {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Propagator{
		delay:    delay,
		callback: callback,
		timers:   make(map[string]*time.Timer),
	}
}

// MoveBirthEvent records a birth event's new age, from drag-and-drop or a
// numeric-field edit, and schedules the dependent recompute.
func (p *Propagator) MoveBirthEvent(eventID string, birthAge int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if timer, ok := p.timers[eventID]; ok {
		timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(p.delay, func() {
		p.fire(eventID, birthAge, timer)
	})
	p.timers[eventID] = timer
}

// Cancel drops any pending recompute for the event. Cancelling an event
// with nothing pending is a no-op.
func (p *Propagator) Cancel(eventID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if timer, ok := p.timers[eventID]; ok {
		timer.Stop()
		delete(p.timers, eventID)
	}
}

// Close cancels all pending recomputes so no late mutation can run after
// the owning session is torn down. Close is idempotent.
func (p *Propagator) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, timer := range p.timers {
		timer.Stop()
		delete(p.timers, id)
	}
	p.closed = true
}

func (p *Propagator) fire(eventID string, birthAge int, timer *time.Timer) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	// A move can replace the entry after this timer fires but before it
	// reaches the lock. Only the firing timer's own entry is cleared, so
	// Cancel can still find the replacement.
	if p.timers[eventID] == timer {
		delete(p.timers, eventID)
	}
	callback := p.callback
	p.mu.Unlock()

	update := Recompute(eventID, birthAge)
	if callback != nil {
		callback(update)
	}
}

// Recompute derives the dependent ages for a birth age. Exposed for the
// direct-edit path, which skips the debounce.
func Recompute(eventID string, birthAge int) LinkedUpdate {
	schoolStart := birthAge + SchoolStartOffset
	graduation := birthAge + GraduationOffset
	return LinkedUpdate{
		EventID:        eventID,
		BirthAge:       birthAge,
		SchoolStartAge: schoolStart,
		GraduationAge:  graduation,
		Description: fmt.Sprintf("Birth moved to age %d: school start updated to age %d, graduation to age %d",
			birthAge, schoolStart, graduation),
	}
}
