package routines

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/gymstats/remote"
	"github.com/2beens/liftlog/internal/gymstats/training"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

const remoteTimeout = 10 * time.Second

// ErrInvalidRoutine wraps the normalization errors of a saved template list.
var ErrInvalidRoutine = errors.New("invalid routine")

// pendingPush is the remote work queued for one user: the latest full list to
// upsert and the names removed since the last push.
type pendingPush struct {
	ctx       context.Context
	templates []training.RoutineTemplate
	deletes   []string
}

// Store owns the routine templates of the current identity; calls without one
// work on the anonymous partition and stay local. The local copy is written
// synchronously. Remote saves run in the background, only the latest pending
// list per user is sent, and remote templates are only removed by name.
type Store struct {
	local    LocalStore
	remote   RemoteStore
	identity IdentityProvider
	metrics  *metrics.Manager

	mu      sync.Mutex
	closed  bool
	pending map[string]*pendingPush
	signal  chan struct{}
	wg      sync.WaitGroup
}

func NewStore(
	localStore LocalStore,
	remoteStore RemoteStore,
	identity IdentityProvider,
	metricsManager *metrics.Manager,
) *Store {
	s := &Store{
		local:    localStore,
		remote:   remoteStore,
		identity: identity,
		metrics:  metricsManager,
		pending:  make(map[string]*pendingPush),
		signal:   make(chan struct{}, 1),
	}

	s.wg.Add(1)
	go s.pushLoop()

	return s
}

// LoadTemplates returns the local templates merged with the remote ones when an
// identity is present. The remote copy wins same-named entries and the merged
// list is written back locally. An unreachable remote leaves the local list as is.
func (s *Store) LoadTemplates(ctx context.Context) (_ []training.RoutineTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "routines.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	userID, identified := s.owner(ctx)
	localTemplates, err := s.local.LoadTemplates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("local load: %w", err)
	}
	if !identified {
		return localTemplates, nil
	}

	remoteCtx, cancel := context.WithTimeout(ctx, remoteTimeout)
	remoteTemplates, remoteErr := s.remote.ListTemplates(remoteCtx, userID)
	cancel()
	if remoteErr != nil {
		s.remoteFailed("list", remoteErr)
		return localTemplates, nil
	}

	merged := Merge(localTemplates, remoteTemplates)
	if err := s.local.SaveTemplates(ctx, userID, merged); err != nil {
		return nil, fmt.Errorf("local save merged: %w", err)
	}
	span.SetAttributes(attribute.Int("templates.count", len(merged)))

	return merged, nil
}

// SaveTemplates normalizes and stores the whole list. Names must be unique.
// Templates dropped from the stored list are removed remotely by name.
func (s *Store) SaveTemplates(ctx context.Context, templates []training.RoutineTemplate) (_ []training.RoutineTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "routines.save")
	span.SetAttributes(attribute.Int("templates.count", len(templates)))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	userID, _ := s.owner(ctx)
	current, err := s.local.LoadTemplates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("local load: %w", err)
	}
	return s.save(ctx, current, templates)
}

// ImportFromText parses raw, merges it over the current templates (incoming wins)
// and saves the result. Nothing is applied when the payload is invalid.
func (s *Store) ImportFromText(ctx context.Context, raw []byte) (_ []training.RoutineTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "routines.import")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	incoming, err := ParseImport(raw)
	if err != nil {
		return nil, err
	}

	userID, _ := s.owner(ctx)
	current, err := s.local.LoadTemplates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("local load: %w", err)
	}

	saved, err := s.save(ctx, current, Merge(current, incoming))
	if err != nil {
		return nil, err
	}
	s.metrics.CounterTemplatesImported.Add(float64(len(incoming)))
	log.Debugf("imported %d routine templates", len(incoming))

	return saved, nil
}

// Get returns a locally stored template by name.
func (s *Store) Get(ctx context.Context, name string) (training.RoutineTemplate, error) {
	userID, _ := s.owner(ctx)
	templates, err := s.local.LoadTemplates(ctx, userID)
	if err != nil {
		return training.RoutineTemplate{}, fmt.Errorf("local load: %w", err)
	}
	for _, t := range templates {
		if t.Name == name {
			return t, nil
		}
	}
	return training.RoutineTemplate{}, fmt.Errorf("%w: %s", ErrRoutineNotFound, name)
}

// Edit applies fn to the current local list and saves its result.
func (s *Store) Edit(ctx context.Context, fn func([]training.RoutineTemplate) ([]training.RoutineTemplate, error)) ([]training.RoutineTemplate, error) {
	userID, _ := s.owner(ctx)
	current, err := s.local.LoadTemplates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("local load: %w", err)
	}
	edited, err := fn(current)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, current, edited)
}

// save normalizes templates, replaces the local list and queues the remote
// upsert plus the deletion of names present in previous only.
func (s *Store) save(ctx context.Context, previous, templates []training.RoutineTemplate) ([]training.RoutineTemplate, error) {
	normalized := make([]training.RoutineTemplate, 0, len(templates))
	seen := make(map[string]bool, len(templates))
	for _, t := range templates {
		n, err := NormalizeRoutine(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRoutine, err)
		}
		if seen[n.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, n.Name)
		}
		seen[n.Name] = true
		normalized = append(normalized, n)
	}

	userID, identified := s.owner(ctx)
	if err := s.local.SaveTemplates(ctx, userID, normalized); err != nil {
		return nil, fmt.Errorf("local save: %w", err)
	}

	if identified {
		var removed []string
		for _, p := range previous {
			if !seen[p.Name] {
				removed = append(removed, p.Name)
			}
		}
		s.schedulePush(ctx, userID, normalized, removed)
	}

	return normalized, nil
}

// Close waits for the pending remote saves.
func (s *Store) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.signal)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// owner returns the user id in ctx, "" when anonymous.
func (s *Store) owner(ctx context.Context) (string, bool) {
	userID, ok := s.identity.UserID(ctx)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func (s *Store) schedulePush(ctx context.Context, userID string, templates []training.RoutineTemplate, removed []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		log.Warnf("routine store closed, remote save of %d templates dropped", len(templates))
		return
	}

	p, ok := s.pending[userID]
	if !ok {
		p = &pendingPush{}
		s.pending[userID] = p
	}
	p.ctx = context.WithoutCancel(ctx)
	p.templates = templates
	for _, name := range removed {
		if !slices.Contains(p.deletes, name) {
			p.deletes = append(p.deletes, name)
		}
	}

	select {
	case s.signal <- struct{}{}:
	default:
		// a signal is already queued, it will pick up the latest lists
	}
}

func (s *Store) pushLoop() {
	defer s.wg.Done()
	for range s.signal {
		s.pushPending()
	}
	// drain what was scheduled right before Close
	s.pushPending()
}

func (s *Store) pushPending() {
	s.mu.Lock()
	jobs := s.pending
	s.pending = make(map[string]*pendingPush)
	s.mu.Unlock()

	for userID, job := range jobs {
		s.push(userID, job)
	}
}

// push deletes before upserting, so a name removed and then re-added ends up stored.
func (s *Store) push(userID string, job *pendingPush) {
	ctx, cancel := context.WithTimeout(job.ctx, remoteTimeout)
	defer cancel()

	if len(job.deletes) > 0 {
		if err := s.remote.DeleteTemplates(ctx, userID, job.deletes); err != nil {
			s.remoteFailed("delete", err)
		}
	}
	if err := s.remote.SaveTemplates(ctx, userID, job.templates); err != nil {
		s.remoteFailed("save", err)
	}
}

func (s *Store) remoteFailed(op string, err error) {
	if errors.Is(err, remote.ErrUnavailable) {
		log.Debugf("remote templates %s skipped: %s", op, err)
		return
	}
	s.metrics.CounterRemoteSyncFailures.WithLabelValues("template", op).Inc()
	log.Warnf("remote templates %s failed: %s", op, err)
}
