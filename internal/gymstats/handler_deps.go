package gymstats

import (
	"context"

	"github.com/2beens/liftlog/internal/gymstats/history"
	"github.com/2beens/liftlog/internal/gymstats/rest"
	"github.com/2beens/liftlog/internal/gymstats/training"
	"github.com/2beens/liftlog/internal/gymstats/workout"
)

type sessionLedger interface {
	ListSessions(ctx context.Context) ([]training.Session, error)
	GetSession(ctx context.Context, sessionID string) (training.Session, error)
	Sync(ctx context.Context) ([]training.Session, error)
}

type workoutMachine interface {
	Start(ctx context.Context, routineName string) (workout.State, error)
	Current(ctx context.Context) (workout.State, error)
	RecordSet(ctx context.Context, input workout.SetInput) (workout.State, error)
	Advance(ctx context.Context) (workout.State, error)
	Select(ctx context.Context, index int) (workout.State, error)
	Finish(ctx context.Context) error
	Recommend(ctx context.Context, kind training.SetKind, order int) (workout.Suggestion, error)
}

type priorFinder interface {
	FindPriorResult(ctx context.Context, q history.Query) (*training.PriorResult, error)
}

type routineStore interface {
	LoadTemplates(ctx context.Context) ([]training.RoutineTemplate, error)
	SaveTemplates(ctx context.Context, templates []training.RoutineTemplate) ([]training.RoutineTemplate, error)
	ImportFromText(ctx context.Context, raw []byte) ([]training.RoutineTemplate, error)
	Edit(ctx context.Context, fn func([]training.RoutineTemplate) ([]training.RoutineTemplate, error)) ([]training.RoutineTemplate, error)
}

type restTimer interface {
	Snapshot(ctx context.Context) rest.Snapshot
	Cancel(ctx context.Context) error
}
