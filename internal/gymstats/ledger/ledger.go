package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/gymstats/local"
	"github.com/2beens/liftlog/internal/gymstats/remote"
	"github.com/2beens/liftlog/internal/gymstats/training"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

var ErrSessionNotFound = errors.New("session not found")

const (
	pushQueueSize = 256
	remoteTimeout = 10 * time.Second
)

type pushJob struct {
	ctx     context.Context
	userID  string
	session training.Session
}

// Ledger owns the sessions of the current identity. Every call is scoped to the
// user id found in ctx; calls without one work on the anonymous partition and
// never reach the remote store. Writes go to the local store first and are then
// pushed to the remote store in the background, in submission order. Remote
// failures are logged and counted, never returned.
type Ledger struct {
	local    LocalStore
	remote   RemoteStore
	identity IdentityProvider
	metrics  *metrics.Manager
	now      func() time.Time

	mu        sync.Mutex
	closed    bool
	pushQueue chan pushJob
	wg        sync.WaitGroup
}

func New(
	localStore LocalStore,
	remoteStore RemoteStore,
	identity IdentityProvider,
	metricsManager *metrics.Manager,
) *Ledger {
	l := &Ledger{
		local:     localStore,
		remote:    remoteStore,
		identity:  identity,
		metrics:   metricsManager,
		now:       time.Now,
		pushQueue: make(chan pushJob, pushQueueSize),
	}

	l.wg.Add(1)
	go l.pushLoop()

	return l
}

// UpsertSession stamps UpdatedAt, writes the whole session locally and
// schedules the remote write. Only local failures are returned.
func (l *Ledger) UpsertSession(ctx context.Context, session training.Session) (_ training.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "ledger.upsertSession")
	span.SetAttributes(attribute.String("session.id", session.SessionID))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if session.SessionID == "" {
		return training.Session{}, errors.New("session id empty")
	}

	session = session.Clone()
	now := l.now()
	if !now.After(session.UpdatedAt) {
		now = session.UpdatedAt.Add(time.Millisecond)
	}
	session.UpdatedAt = now

	userID, identified := l.owner(ctx)
	if err := l.local.UpsertSession(ctx, userID, session); err != nil {
		return training.Session{}, fmt.Errorf("local upsert: %w", err)
	}
	l.metrics.CounterSessionsSaved.Inc()

	if identified {
		l.schedulePush(ctx, userID, session)
	}

	return session, nil
}

func (l *Ledger) GetSession(ctx context.Context, sessionID string) (training.Session, error) {
	userID, _ := l.owner(ctx)
	session, err := l.local.GetSession(ctx, userID, sessionID)
	if errors.Is(err, local.ErrNotFound) {
		return training.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return training.Session{}, fmt.Errorf("local get: %w", err)
	}
	return session, nil
}

// ListSessions returns the local copy of the caller's sessions, most recent first.
func (l *Ledger) ListSessions(ctx context.Context) ([]training.Session, error) {
	userID, _ := l.owner(ctx)
	sessions, err := l.local.ListSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("local list: %w", err)
	}
	return sessions, nil
}

// Sync loads the remote sessions (when an identity is present), merges them with
// the local copy by session id, stores the merged view locally and re-pushes the
// local sessions the remote is missing or holds older versions of.
// If the remote is unreachable the local copy is returned unchanged.
func (l *Ledger) Sync(ctx context.Context) (_ []training.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "ledger.sync")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	localSessions, err := l.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	userID, ok := l.owner(ctx)
	if !ok {
		return localSessions, nil
	}

	remoteCtx, cancel := context.WithTimeout(ctx, remoteTimeout)
	remoteSessions, remoteErr := l.remote.ListSessions(remoteCtx, userID)
	cancel()
	if remoteErr != nil {
		l.remoteFailed("list", remoteErr)
		return localSessions, nil
	}

	merged, toLocal, toRemote := Merge(localSessions, remoteSessions)
	span.SetAttributes(
		attribute.Int("sync.to_local", len(toLocal)),
		attribute.Int("sync.to_remote", len(toRemote)),
	)

	if len(toLocal) > 0 {
		if err := l.local.UpsertSessions(ctx, userID, toLocal); err != nil {
			return nil, fmt.Errorf("local upsert merged: %w", err)
		}
	}
	for _, s := range toRemote {
		l.schedulePush(ctx, userID, s)
	}

	return merged, nil
}

// Merge combines both lists by session id. The newer UpdatedAt wins, ties go to
// the remote copy. It returns the merged list (most recent first), the sessions
// the local store must take over and the ones the remote store must receive.
func Merge(localSessions, remoteSessions []training.Session) (merged, toLocal, toRemote []training.Session) {
	byID := make(map[string]training.Session, len(localSessions)+len(remoteSessions))
	for _, s := range localSessions {
		byID[s.SessionID] = s
	}

	seenRemote := make(map[string]bool, len(remoteSessions))
	for _, r := range remoteSessions {
		seenRemote[r.SessionID] = true
		l, found := byID[r.SessionID]
		if found && l.UpdatedAt.After(r.UpdatedAt) {
			toRemote = append(toRemote, l)
			continue
		}
		byID[r.SessionID] = r
		if !found || !sameVersion(l, r) {
			toLocal = append(toLocal, r)
		}
	}
	for _, s := range localSessions {
		if !seenRemote[s.SessionID] {
			toRemote = append(toRemote, s)
		}
	}

	merged = make([]training.Session, 0, len(byID))
	for _, s := range byID {
		merged = append(merged, s)
	}
	sortByRecency(merged)
	sortByRecency(toRemote)

	return merged, toLocal, toRemote
}

// owner returns the user id in ctx, "" when anonymous.
func (l *Ledger) owner(ctx context.Context) (string, bool) {
	userID, ok := l.identity.UserID(ctx)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func sameVersion(a, b training.Session) bool {
	return a.UpdatedAt.Equal(b.UpdatedAt)
}

func sortByRecency(sessions []training.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].DateTime.Equal(sessions[j].DateTime) {
			return sessions[i].SessionID < sessions[j].SessionID
		}
		return sessions[i].DateTime.After(sessions[j].DateTime)
	})
}

// Close stops accepting remote pushes and waits for the queued ones.
func (l *Ledger) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.pushQueue)
	}
	l.mu.Unlock()
	l.wg.Wait()
}

func (l *Ledger) schedulePush(ctx context.Context, userID string, session training.Session) {
	job := pushJob{
		ctx:     context.WithoutCancel(ctx),
		userID:  userID,
		session: session,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		log.Warnf("ledger closed, remote push of session %s dropped", session.SessionID)
		return
	}

	select {
	case l.pushQueue <- job:
	default:
		l.remoteFailed("upsert", fmt.Errorf("push queue full, session %s dropped", session.SessionID))
	}
}

func (l *Ledger) pushLoop() {
	defer l.wg.Done()
	for job := range l.pushQueue {
		ctx, cancel := context.WithTimeout(job.ctx, remoteTimeout)
		if err := l.remote.UpsertSession(ctx, job.userID, job.session); err != nil {
			l.remoteFailed("upsert", fmt.Errorf("session %s: %w", job.session.SessionID, err))
		} else {
			log.Tracef("session %s pushed to remote", job.session.SessionID)
		}
		cancel()
	}
}

func (l *Ledger) remoteFailed(op string, err error) {
	if errors.Is(err, remote.ErrUnavailable) {
		log.Debugf("remote ledger %s skipped: %s", op, err)
		return
	}
	l.metrics.CounterRemoteSyncFailures.WithLabelValues("session", op).Inc()
	log.Warnf("remote ledger %s failed: %s", op, err)
}
