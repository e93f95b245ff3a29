package history

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/cache"
	"github.com/2beens/liftlog/internal/gymstats/training"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

const fuzzyCacheTTL = 5 * time.Minute

type Query struct {
	ExerciseID string
	Version    int
	Kind       training.SetKind
	Order      int
	Before     time.Time
	// UserID scopes the fuzzy fallback; empty disables it.
	UserID string
}

type Lookup struct {
	sessions SessionSource
	fuzzy    FuzzySource
	cache    cache.Cache
}

// NewLookup creates a history lookup. fuzzy and c may be nil.
func NewLookup(sessions SessionSource, fuzzy FuzzySource, c cache.Cache) *Lookup {
	return &Lookup{
		sessions: sessions,
		fuzzy:    fuzzy,
		cache:    c,
	}
}

// FindPriorResult returns the most recent result for the slot logged before q.Before.
// The name-pattern fallback only runs when no session matches by identity, and its
// failures are never returned.
func (l *Lookup) FindPriorResult(ctx context.Context, q Query) (_ *training.PriorResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "history.findPriorResult")
	span.SetAttributes(
		attribute.String("exercise.id", q.ExerciseID),
		attribute.Int("exercise.version", q.Version),
		attribute.String("slot.kind", string(q.Kind)),
		attribute.Int("slot.order", q.Order),
	)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessions, err := l.sessions.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	if res := FindInSessions(sessions, q); res != nil {
		return res, nil
	}

	if l.fuzzy == nil || q.UserID == "" {
		return nil, nil
	}

	return l.findFuzzy(ctx, q), nil
}

func (l *Lookup) findFuzzy(ctx context.Context, q Query) *training.PriorResult {
	pattern := NamePattern(q.ExerciseID)
	if pattern == "" {
		return nil
	}

	cacheKey := fmt.Sprintf("%s|%s|%s|%d|%d", q.UserID, pattern, q.Kind, q.Order, q.Before.Unix())
	if l.cache != nil {
		if cached, found := l.cache.Get(cacheKey); found {
			var res *training.PriorResult
			if err := json.Unmarshal(cached, &res); err == nil {
				return res
			}
		}
	}

	res, err := l.fuzzy.FindPriorByNamePattern(ctx, q.UserID, pattern, q.Kind, q.Order, q.Before)
	if err != nil {
		log.Warnf("history fuzzy fallback [%s]: %s", pattern, err)
		return nil
	}
	if res != nil {
		res.Fuzzy = true
		if !res.DateTime.IsZero() && !res.DateTime.Before(q.Before) {
			// the remote side must honor the cutoff, but never trust it blindly
			return nil
		}
	}

	if l.cache != nil {
		if resBytes, err := json.Marshal(res); err == nil {
			if err := l.cache.Set(cacheKey, resBytes, fuzzyCacheTTL); err != nil {
				log.Debugf("history fuzzy cache set: %s", err)
			}
		}
	}

	return res
}

// FindInSessions scans sessions dated before q.Before, newest first, and returns
// the last log for the slot in the first occurrence matching the exercise identity.
func FindInSessions(sessions []training.Session, q Query) *training.PriorResult {
	candidates := make([]*training.Session, 0, len(sessions))
	for i := range sessions {
		if sessions[i].DateTime.Before(q.Before) {
			candidates = append(candidates, &sessions[i])
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DateTime.After(candidates[j].DateTime)
	})

	ref := training.ExerciseIdentity{ID: q.ExerciseID, Version: q.Version}
	for _, s := range candidates {
		for oi := range s.Occurrences {
			occ := &s.Occurrences[oi]
			if occ.Ref != ref {
				continue
			}
			last, ok := occ.LastLog(q.Kind, q.Order)
			if !ok {
				continue
			}
			res := &training.PriorResult{
				Reps:      last.Reps,
				SessionID: s.SessionID,
				DateTime:  s.DateTime,
			}
			if last.Weight != nil {
				w := *last.Weight
				res.Weight = &w
			}
			return res
		}
	}

	return nil
}

var separators = regexp.MustCompile(`[\s\-_.]+`)

// NamePattern turns an exercise id like "bench-press" into the LIKE pattern "%bench%press%".
func NamePattern(exerciseID string) string {
	var tokens []string
	for _, tok := range separators.Split(strings.ToLower(strings.TrimSpace(exerciseID)), -1) {
		if tok == "" {
			continue
		}
		// strip LIKE wildcards coming from the id itself
		tok = strings.ReplaceAll(tok, "%", "")
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return ""
	}
	return "%" + strings.Join(tokens, "%") + "%"
}
