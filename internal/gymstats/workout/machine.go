package workout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/gymstats/ledger"
	"github.com/2beens/liftlog/internal/gymstats/local"
	"github.com/2beens/liftlog/internal/gymstats/training"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

const (
	activeStateKey     = "workout.active:"
	defaultRestSeconds = 90
)

var (
	ErrNoActiveSession    = errors.New("no active workout session")
	ErrInvalidSet         = errors.New("invalid set")
	ErrOccurrenceComplete = errors.New("exercise already complete")
)

// RestEvent is emitted when a rest period should start.
type RestEvent struct {
	// Owner is the user the workout belongs to, "" when anonymous.
	Owner           string `json:"owner,omitempty"`
	Seconds         int    `json:"seconds"`
	SessionID       string `json:"sessionId"`
	OccurrenceIndex int    `json:"occurrenceIndex"`
	// FinalSlot is set when the recorded set completed its exercise.
	FinalSlot bool `json:"finalSlot"`
}

type SetInput struct {
	Reps        int      `json:"reps"`
	Weight      *float64 `json:"weight,omitempty"`
	RIR         *int     `json:"rir,omitempty"`
	TechniqueOK *bool    `json:"techniqueOk,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// State is a snapshot of the running workout.
type State struct {
	Session     training.Session        `json:"session"`
	ActiveIndex int                     `json:"activeIndex"`
	NextSlot    *training.SetDefinition `json:"nextSlot,omitempty"`
	Finished    bool                    `json:"finished"`
}

type activePointer struct {
	SessionID   string `json:"sessionId"`
	ActiveIndex int    `json:"activeIndex"`
}

type activeWorkout struct {
	session training.Session
	index   int
}

type MachineParams struct {
	Ledger       SessionLedger
	Templates    TemplateSource
	History      HistorySource
	State        StateStore
	Identity     IdentityProvider
	RestListener RestListener
	Metrics      *metrics.Manager
	RestSeconds  int
	// PlateIncrement is the quantization step used for recommendations.
	PlateIncrement float64
}

// Machine drives one workout per user: which exercise is active, which slot is
// next, and what gets written to the ledger when a set is recorded. The user
// comes from the request context; calls without one share the anonymous workout.
type Machine struct {
	ledger    SessionLedger
	templates TemplateSource
	history   HistorySource
	state     StateStore
	identity  IdentityProvider
	listener  RestListener
	metrics   *metrics.Manager

	restSeconds int
	increment   float64
	now         func() time.Time

	mu       sync.Mutex
	workouts map[string]*activeWorkout
	// loaded marks owners whose pointer was already read from the state store
	loaded map[string]bool
}

func NewMachine(params MachineParams) *Machine {
	restSeconds := params.RestSeconds
	if restSeconds <= 0 {
		restSeconds = defaultRestSeconds
	}
	return &Machine{
		ledger:      params.Ledger,
		templates:   params.Templates,
		history:     params.History,
		state:       params.State,
		identity:    params.Identity,
		listener:    params.RestListener,
		metrics:     params.Metrics,
		restSeconds: restSeconds,
		increment:   params.PlateIncrement,
		now:         time.Now,
		workouts:    make(map[string]*activeWorkout),
		loaded:      make(map[string]bool),
	}
}

// Start instantiates the routine as today's session and makes it active.
func (m *Machine) Start(ctx context.Context, routineName string) (_ State, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workout.start")
	span.SetAttributes(attribute.String("routine.name", routineName))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	routine, err := m.templates.Get(ctx, routineName)
	if err != nil {
		return State{}, err
	}

	owner := m.owner(ctx)
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.ledger.UpsertSession(ctx, training.NewSession(routine, m.now()))
	if err != nil {
		return State{}, fmt.Errorf("save new session: %w", err)
	}

	w := &activeWorkout{session: session}
	m.workouts[owner] = w
	m.loaded[owner] = true
	m.persistPointer(ctx, owner, w)
	log.Infof("workout %s started from routine %q", session.SessionID, routineName)

	return w.snapshot(), nil
}

// Resume reloads the active workout of the ctx user from the state store.
// It reports false when there is nothing to resume.
func (m *Machine) Resume(ctx context.Context) (bool, error) {
	owner := m.owner(ctx)
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.loaded, owner)
	w, err := m.workout(ctx, owner)
	if err != nil {
		return false, err
	}
	return w != nil, nil
}

func (m *Machine) Current(ctx context.Context) (State, error) {
	owner := m.owner(ctx)
	m.mu.Lock()
	defer m.mu.Unlock()

	w, err := m.activeWorkout(ctx, owner)
	if err != nil {
		return State{}, err
	}
	return w.snapshot(), nil
}

// RecordSet logs the next slot of the active exercise, persists the session and
// starts a rest period. A set for an already complete exercise is rejected, so
// CompletedCount never passes TotalPlanned.
func (m *Machine) RecordSet(ctx context.Context, input SetInput) (_ State, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workout.recordSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if input.Reps < 0 {
		return State{}, fmt.Errorf("%w: negative reps", ErrInvalidSet)
	}
	if input.Weight != nil && *input.Weight < 0 {
		return State{}, fmt.Errorf("%w: negative weight", ErrInvalidSet)
	}

	owner := m.owner(ctx)
	m.mu.Lock()
	w, err := m.activeWorkout(ctx, owner)
	if err != nil {
		m.mu.Unlock()
		return State{}, err
	}
	if len(w.session.Occurrences) == 0 {
		m.mu.Unlock()
		return State{}, fmt.Errorf("%w: workout has no exercises", ErrInvalidSet)
	}

	updated := w.session.Clone()
	occ := &updated.Occurrences[w.index]
	slot, ok := occ.NextSlot()
	if !ok {
		m.mu.Unlock()
		return State{}, ErrOccurrenceComplete
	}

	occ.CompletedLogs = append(occ.CompletedLogs, training.SetLog{
		Kind:        slot.Kind,
		Order:       slot.Order,
		Reps:        input.Reps,
		Weight:      input.Weight,
		RIR:         input.RIR,
		TechniqueOK: input.TechniqueOK,
		Note:        input.Note,
		CreatedAt:   m.now(),
	})
	occ.CompletedCount = min(occ.CompletedCount+1, occ.TotalPlanned)

	saved, err := m.ledger.UpsertSession(ctx, updated)
	if err != nil {
		m.mu.Unlock()
		return State{}, fmt.Errorf("save session: %w", err)
	}
	w.session = saved
	m.metrics.CounterSetsRecorded.Inc()

	event := RestEvent{
		Owner:           owner,
		Seconds:         m.restSeconds,
		SessionID:       saved.SessionID,
		OccurrenceIndex: w.index,
		FinalSlot:       saved.Occurrences[w.index].Complete(),
	}
	state := w.snapshot()
	m.mu.Unlock()

	if m.listener != nil {
		m.listener.RestStarted(ctx, event)
	}

	return state, nil
}

// Advance moves to the next exercise. It has no effect on the last one.
func (m *Machine) Advance(ctx context.Context) (State, error) {
	owner := m.owner(ctx)
	m.mu.Lock()
	defer m.mu.Unlock()

	w, err := m.activeWorkout(ctx, owner)
	if err != nil {
		return State{}, err
	}
	m.advance(ctx, owner, w)
	return w.snapshot(), nil
}

// AdvanceFrom moves the owner's workout past the exercise at fromIndex, but only
// while that workout is still sessionID, fromIndex is still the active exercise
// and that exercise is complete. It reports whether the workout moved.
func (m *Machine) AdvanceFrom(ctx context.Context, owner, sessionID string, fromIndex int) (bool, error) {
	if owner != "" {
		ctx = auth.WithUserID(ctx, owner)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	w, err := m.workout(ctx, owner)
	if err != nil {
		return false, err
	}
	if w == nil || w.session.SessionID != sessionID || w.index != fromIndex {
		return false, nil
	}
	if fromIndex < 0 || fromIndex >= len(w.session.Occurrences) || !w.session.Occurrences[fromIndex].Complete() {
		return false, nil
	}
	return m.advance(ctx, owner, w), nil
}

// Select makes the exercise at index active, regardless of completion.
func (m *Machine) Select(ctx context.Context, index int) (State, error) {
	owner := m.owner(ctx)
	m.mu.Lock()
	defer m.mu.Unlock()

	w, err := m.activeWorkout(ctx, owner)
	if err != nil {
		return State{}, err
	}
	if index < 0 || index >= len(w.session.Occurrences) {
		return State{}, fmt.Errorf("%w: exercise index %d out of range", ErrInvalidSet, index)
	}

	w.index = index
	m.persistPointer(ctx, owner, w)
	return w.snapshot(), nil
}

// Finish forgets the active workout. The session itself stays in the ledger.
func (m *Machine) Finish(ctx context.Context) error {
	owner := m.owner(ctx)
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.activeWorkout(ctx, owner); err != nil {
		return err
	}
	if err := m.state.DeleteValue(ctx, activeStateKey+owner); err != nil {
		return fmt.Errorf("clear active workout: %w", err)
	}
	delete(m.workouts, owner)
	return nil
}

func (m *Machine) owner(ctx context.Context) string {
	if m.identity == nil {
		return ""
	}
	userID, ok := m.identity.UserID(ctx)
	if !ok {
		return ""
	}
	return userID
}

// activeWorkout is workout with a missing one reported as ErrNoActiveSession.
func (m *Machine) activeWorkout(ctx context.Context, owner string) (*activeWorkout, error) {
	w, err := m.workout(ctx, owner)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrNoActiveSession
	}
	return w, nil
}

// workout returns the owner's workout, nil when there is none. The first call
// per owner reads the pointer left by a previous run. Expects m.mu to be held.
func (m *Machine) workout(ctx context.Context, owner string) (*activeWorkout, error) {
	if m.loaded[owner] {
		return m.workouts[owner], nil
	}

	w, err := m.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if w == nil {
		delete(m.workouts, owner)
	} else {
		m.workouts[owner] = w
	}
	m.loaded[owner] = true
	return w, nil
}

func (m *Machine) load(ctx context.Context, owner string) (*activeWorkout, error) {
	key := activeStateKey + owner
	raw, err := m.state.GetValue(ctx, key)
	if errors.Is(err, local.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read active workout: %w", err)
	}

	var pointer activePointer
	if err := json.Unmarshal(raw, &pointer); err != nil {
		return nil, fmt.Errorf("decode active workout: %w", err)
	}

	session, err := m.ledger.GetSession(ctx, pointer.SessionID)
	if errors.Is(err, ledger.ErrSessionNotFound) {
		log.Warnf("active workout %s no longer exists, clearing", pointer.SessionID)
		return nil, m.state.DeleteValue(ctx, key)
	}
	if err != nil {
		return nil, err
	}

	return &activeWorkout{
		session: session,
		index:   clamp(pointer.ActiveIndex, 0, len(session.Occurrences)-1),
	}, nil
}

// advance expects m.mu to be held.
func (m *Machine) advance(ctx context.Context, owner string, w *activeWorkout) bool {
	next := clamp(w.index+1, 0, len(w.session.Occurrences)-1)
	if next == w.index {
		return false
	}
	w.index = next
	m.persistPointer(ctx, owner, w)
	return true
}

func (w *activeWorkout) snapshot() State {
	s := State{
		Session:     w.session.Clone(),
		ActiveIndex: w.index,
		Finished:    true,
	}
	for i := range s.Session.Occurrences {
		if !s.Session.Occurrences[i].Complete() {
			s.Finished = false
			break
		}
	}
	if len(s.Session.Occurrences) > 0 {
		if slot, ok := s.Session.Occurrences[w.index].NextSlot(); ok {
			s.NextSlot = &slot
		}
	}
	return s
}

// persistPointer expects m.mu to be held. Failures are logged only.
func (m *Machine) persistPointer(ctx context.Context, owner string, w *activeWorkout) {
	raw, err := json.Marshal(activePointer{
		SessionID:   w.session.SessionID,
		ActiveIndex: w.index,
	})
	if err != nil {
		log.Errorf("marshal active workout: %s", err)
		return
	}
	if err := m.state.PutValue(ctx, activeStateKey+owner, raw); err != nil {
		log.Errorf("persist active workout %s: %s", w.session.SessionID, err)
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
