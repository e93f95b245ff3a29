package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/gymstats/workout"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
)

const (
	// deadlineKey is suffixed with the owner, "" when anonymous.
	deadlineKey   = "rest.deadline:"
	checkInterval = time.Second
)

type Status string

const (
	StatusIdle    Status = "IDLE"
	StatusRunning Status = "RUNNING"
	StatusExpired Status = "EXPIRED"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type deadline struct {
	Owner           string    `json:"owner,omitempty"`
	EndAt           time.Time `json:"endAt"`
	SessionID       string    `json:"sessionId"`
	OccurrenceIndex int       `json:"occurrenceIndex"`
	FinalSlot       bool      `json:"finalSlot"`
}

// Expiry describes a rest period that just ended.
type Expiry struct {
	Owner           string    `json:"owner,omitempty"`
	SessionID       string    `json:"sessionId"`
	OccurrenceIndex int       `json:"occurrenceIndex"`
	FinalSlot       bool      `json:"finalSlot"`
	EndAt           time.Time `json:"endAt"`
}

type Snapshot struct {
	Status           Status     `json:"status"`
	EndAt            *time.Time `json:"endAt,omitempty"`
	RemainingSeconds int        `json:"remainingSeconds"`
	SessionID        string     `json:"sessionId,omitempty"`
	FinalSlot        bool       `json:"finalSlot"`
}

type ownerTimer struct {
	status  Status
	current *deadline
}

// Timer is a deadline based countdown, one per user. Remaining time is always
// derived from the stored deadline and the clock, never from counted ticks.
type Timer struct {
	clock    Clock
	store    KVStore
	notifier Notifier
	identity IdentityProvider
	metrics  *metrics.Manager

	mu       sync.Mutex
	advancer Advancer
	timers   map[string]*ownerTimer
}

// NewTimer creates an idle timer. A nil clock means the system clock and a nil
// identity puts every caller on the anonymous timer.
func NewTimer(store KVStore, notifier Notifier, identity IdentityProvider, metricsManager *metrics.Manager, clock Clock) *Timer {
	if clock == nil {
		clock = systemClock{}
	}
	return &Timer{
		clock:    clock,
		store:    store,
		notifier: notifier,
		identity: identity,
		metrics:  metricsManager,
		timers:   make(map[string]*ownerTimer),
	}
}

func (t *Timer) SetAdvancer(a Advancer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.advancer = a
}

// RestStarted starts the timer for a recorded set.
func (t *Timer) RestStarted(ctx context.Context, event workout.RestEvent) {
	if err := t.Start(ctx, event); err != nil {
		log.Errorf("start rest timer for session %s: %s", event.SessionID, err)
	}
}

// Start (re)arms the timer of the event owner. A running deadline is replaced,
// never extended.
func (t *Timer) Start(ctx context.Context, event workout.RestEvent) error {
	if event.Seconds <= 0 {
		return fmt.Errorf("invalid rest duration: %d seconds", event.Seconds)
	}

	dl := &deadline{
		Owner:           event.Owner,
		EndAt:           t.clock.Now().Add(time.Duration(event.Seconds) * time.Second),
		SessionID:       event.SessionID,
		OccurrenceIndex: event.OccurrenceIndex,
		FinalSlot:       event.FinalSlot,
	}
	raw, err := json.Marshal(dl)
	if err != nil {
		return fmt.Errorf("marshal deadline: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.store.PutValue(ctx, deadlineKey+dl.Owner, raw); err != nil {
		return fmt.Errorf("persist deadline: %w", err)
	}
	t.timers[dl.Owner] = &ownerTimer{status: StatusRunning, current: dl}
	t.metrics.CounterRestTimersStarted.Inc()
	log.Debugf("rest timer started: %ds, ends at %s", event.Seconds, dl.EndAt.Format(time.RFC3339))

	return nil
}

// Cancel clears the timer of the ctx user. It is a no-op when nothing is running.
func (t *Timer) Cancel(ctx context.Context) error {
	return t.cancel(ctx, t.owner(ctx))
}

func (t *Timer) cancel(ctx context.Context, owner string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.store.DeleteValue(ctx, deadlineKey+owner); err != nil {
		return fmt.Errorf("clear deadline: %w", err)
	}
	delete(t.timers, owner)
	return nil
}

// Snapshot returns the timer of the ctx user.
func (t *Timer) Snapshot(ctx context.Context) Snapshot {
	owner := t.owner(ctx)
	t.mu.Lock()
	defer t.mu.Unlock()

	ot, ok := t.timers[owner]
	if !ok {
		return Snapshot{Status: StatusIdle}
	}
	s := Snapshot{Status: ot.status}
	if ot.current == nil {
		return s
	}
	endAt := ot.current.EndAt
	s.EndAt = &endAt
	s.SessionID = ot.current.SessionID
	s.FinalSlot = ot.current.FinalSlot
	s.RemainingSeconds = remainingSeconds(endAt, t.clock.Now())
	return s
}

// Check expires every timer whose deadline has passed and reports whether any did.
// After an expiry the workout moves past the rested exercise only if it is still
// the active one and complete.
func (t *Timer) Check(ctx context.Context) bool {
	now := t.clock.Now()

	t.mu.Lock()
	var expired []*deadline
	for owner, ot := range t.timers {
		if ot.status != StatusRunning || ot.current == nil || remainingSeconds(ot.current.EndAt, now) > 0 {
			continue
		}
		expired = append(expired, ot.current)
		ot.current = nil
		ot.status = StatusExpired
		if err := t.store.DeleteValue(ctx, deadlineKey+owner); err != nil {
			log.Errorf("clear expired deadline: %s", err)
		}
	}
	advancer := t.advancer
	t.mu.Unlock()

	for _, dl := range expired {
		t.expire(ctx, dl, advancer)
	}
	return len(expired) > 0
}

func (t *Timer) expire(ctx context.Context, dl *deadline, advancer Advancer) {
	t.metrics.CounterRestTimersExpired.Inc()
	if t.notifier != nil {
		t.notifier.Vibrate(ctx)
		t.notifier.NotifyRestEnd(ctx, Expiry{
			Owner:           dl.Owner,
			SessionID:       dl.SessionID,
			OccurrenceIndex: dl.OccurrenceIndex,
			FinalSlot:       dl.FinalSlot,
			EndAt:           dl.EndAt,
		})
	}

	if advancer == nil {
		return
	}
	moved, err := advancer.AdvanceFrom(ctx, dl.Owner, dl.SessionID, dl.OccurrenceIndex)
	if err != nil {
		log.Errorf("advance after rest: %s", err)
		return
	}
	if !moved {
		log.Debugf("rest ended, workout %s stays where it is", dl.SessionID)
	}
}

// Restore loads the persisted deadlines. Deadlines that passed while the process
// was down are cleared without side effects.
func (t *Timer) Restore(ctx context.Context) error {
	values, err := t.store.ListValues(ctx, deadlineKey)
	if err != nil {
		return fmt.Errorf("read deadlines: %w", err)
	}

	now := t.clock.Now()
	for key, raw := range values {
		owner := strings.TrimPrefix(key, deadlineKey)

		var dl deadline
		if err := json.Unmarshal(raw, &dl); err != nil {
			log.Warnf("dropping unreadable rest deadline %q: %s", key, err)
			if err := t.cancel(ctx, owner); err != nil {
				return err
			}
			continue
		}
		if remainingSeconds(dl.EndAt, now) <= 0 {
			log.Debugf("rest deadline %s already passed, clearing", dl.EndAt.Format(time.RFC3339))
			if err := t.cancel(ctx, owner); err != nil {
				return err
			}
			continue
		}

		dl.Owner = owner
		t.mu.Lock()
		t.timers[owner] = &ownerTimer{status: StatusRunning, current: &dl}
		t.mu.Unlock()
		log.Infof("rest timer restored, ends at %s", dl.EndAt.Format(time.RFC3339))
	}
	return nil
}

// Run checks the deadlines once per second until ctx is done.
func (t *Timer) Run(ctx context.Context) {
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Debugln("rest timer loop stopped")
			return
		case <-ticker.C:
			t.Check(ctx)
		}
	}
}

func (t *Timer) owner(ctx context.Context) string {
	if t.identity == nil {
		return ""
	}
	userID, ok := t.identity.UserID(ctx)
	if !ok {
		return ""
	}
	return userID
}

// remainingSeconds rounds up, so a deadline 0.2s away still reports one second.
func remainingSeconds(endAt, now time.Time) int {
	left := endAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Seconds()))
}
