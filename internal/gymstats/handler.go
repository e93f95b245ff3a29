package gymstats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/gymstats/history"
	"github.com/2beens/liftlog/internal/gymstats/ledger"
	"github.com/2beens/liftlog/internal/gymstats/progression"
	"github.com/2beens/liftlog/internal/gymstats/routines"
	"github.com/2beens/liftlog/internal/gymstats/training"
	"github.com/2beens/liftlog/internal/gymstats/workout"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

const maxImportBytes = 1 << 20

type SessionSummary struct {
	SessionID   string        `json:"sessionId"`
	DateTime    time.Time     `json:"dateTime"`
	WorkoutName string        `json:"workoutName"`
	KPIs        training.KPIs `json:"kpis"`
}

type SessionsListResponse struct {
	Sessions []SessionSummary `json:"sessions"`
	Total    int              `json:"total"`
}

type RoutinesResponse struct {
	Routines []training.RoutineTemplate `json:"routines"`
}

type Handler struct {
	ledger   sessionLedger
	workout  workoutMachine
	history  priorFinder
	routines routineStore
	rest     restTimer
}

func NewHandler(
	sessionLedger sessionLedger,
	machine workoutMachine,
	finder priorFinder,
	store routineStore,
	timer restTimer,
) *Handler {
	return &Handler{
		ledger:   sessionLedger,
		workout:  machine,
		history:  finder,
		routines: store,
		rest:     timer,
	}
}

// HandleListSessions lists sessions, most recent first. With ?sync=true the
// remote ledger is merged in before listing.
func (handler *Handler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.sessions.list")
	defer span.End()

	var (
		sessions []training.Session
		err      error
	)
	if r.URL.Query().Get("sync") == "true" {
		sessions, err = handler.ledger.Sync(ctx)
	} else {
		sessions, err = handler.ledger.ListSessions(ctx)
	}
	if err != nil {
		handler.writeError(w, "list sessions", err)
		return
	}

	resp := SessionsListResponse{
		Sessions: make([]SessionSummary, 0, len(sessions)),
		Total:    len(sessions),
	}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, SessionSummary{
			SessionID:   s.SessionID,
			DateTime:    s.DateTime,
			WorkoutName: s.WorkoutName,
			KPIs:        s.KPIs(),
		})
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (handler *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.sessions.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	session, err := handler.ledger.GetSession(ctx, id)
	if err != nil {
		handler.writeError(w, "get session "+id, err)
		return
	}

	pkg.WriteJSON(w, session, http.StatusOK)
}

func (handler *Handler) HandleStartWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workout.start")
	defer span.End()

	var req struct {
		Routine string `json:"routine"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Routine) == "" {
		http.Error(w, "error, routine name empty", http.StatusBadRequest)
		return
	}

	state, err := handler.workout.Start(ctx, req.Routine)
	if err != nil {
		handler.writeError(w, "start workout", err)
		return
	}

	pkg.WriteJSON(w, state, http.StatusCreated)
}

func (handler *Handler) HandleCurrentWorkout(w http.ResponseWriter, r *http.Request) {
	state, err := handler.workout.Current(r.Context())
	if err != nil {
		handler.writeError(w, "current workout", err)
		return
	}
	pkg.WriteJSON(w, state, http.StatusOK)
}

func (handler *Handler) HandleRecordSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workout.set")
	defer span.End()

	var input workout.SetInput
	if !decodeJSON(w, r, &input) {
		return
	}

	state, err := handler.workout.RecordSet(ctx, input)
	if err != nil {
		handler.writeError(w, "record set", err)
		return
	}

	log.Debugf("set recorded [%s]: %d reps", state.Session.SessionID, input.Reps)
	pkg.WriteJSON(w, state, http.StatusCreated)
}

func (handler *Handler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	state, err := handler.workout.Advance(r.Context())
	if err != nil {
		handler.writeError(w, "advance workout", err)
		return
	}
	pkg.WriteJSON(w, state, http.StatusOK)
}

func (handler *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	state, err := handler.workout.Select(r.Context(), req.Index)
	if err != nil {
		handler.writeError(w, "select exercise", err)
		return
	}
	pkg.WriteJSON(w, state, http.StatusOK)
}

func (handler *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	if err := handler.workout.Finish(r.Context()); err != nil {
		handler.writeError(w, "finish workout", err)
		return
	}
	pkg.WriteJSONResponseOK(w, `{"finished":true}`)
}

// HandleRecommendation suggests the load for ?kind=&order= of the active
// exercise, or for its next pending slot when kind is omitted.
func (handler *Handler) HandleRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workout.recommendation")
	defer span.End()

	var (
		kind  training.SetKind
		order int
	)
	if kindStr := r.URL.Query().Get("kind"); kindStr != "" {
		parsed, err := training.ParseSetKind(kindStr)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		kind = parsed
		order = 1
		if orderStr := r.URL.Query().Get("order"); orderStr != "" {
			if order, err = strconv.Atoi(orderStr); err != nil || order < 1 {
				http.Error(w, "error, order must be a positive number", http.StatusBadRequest)
				return
			}
		}
	}

	suggestion, err := handler.workout.Recommend(ctx, kind, order)
	if err != nil {
		handler.writeError(w, "recommendation", err)
		return
	}
	pkg.WriteJSON(w, suggestion, http.StatusOK)
}

// HandlePriorResult looks up ?exercise=&version=&kind=&order=&before= (RFC3339, default now).
func (handler *Handler) HandlePriorResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.history.prior")
	defer span.End()

	q, err := priorQueryFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	prior, err := handler.history.FindPriorResult(ctx, q)
	if err != nil {
		handler.writeError(w, "find prior result", err)
		return
	}
	if prior == nil {
		pkg.WriteJSONResponseOK(w, `{"found":false}`)
		return
	}
	pkg.WriteJSON(w, struct {
		Found bool `json:"found"`
		*training.PriorResult
	}{true, prior}, http.StatusOK)
}

func priorQueryFromRequest(r *http.Request) (history.Query, error) {
	params := r.URL.Query()
	q := history.Query{
		ExerciseID: params.Get("exercise"),
		Version:    1,
		Order:      1,
		Before:     time.Now(),
	}
	if q.ExerciseID == "" {
		return q, errors.New("error, exercise empty")
	}

	kind, err := training.ParseSetKind(params.Get("kind"))
	if err != nil {
		return q, err
	}
	q.Kind = kind

	if v := params.Get("version"); v != "" {
		if q.Version, err = strconv.Atoi(v); err != nil {
			return q, errors.New("error, version NaN")
		}
	}
	if v := params.Get("order"); v != "" {
		if q.Order, err = strconv.Atoi(v); err != nil {
			return q, errors.New("error, order NaN")
		}
	}
	if v := params.Get("before"); v != "" {
		if q.Before, err = time.Parse(time.RFC3339, v); err != nil {
			return q, fmt.Errorf("error, before: %w", err)
		}
	}
	q.UserID, _ = auth.UserIDFromContext(r.Context())

	return q, nil
}

func (handler *Handler) HandleGetRoutines(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.routines.get")
	defer span.End()

	templates, err := handler.routines.LoadTemplates(ctx)
	if err != nil {
		handler.writeError(w, "load routines", err)
		return
	}
	pkg.WriteJSON(w, RoutinesResponse{Routines: templates}, http.StatusOK)
}

func (handler *Handler) HandleSaveRoutines(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.routines.save")
	defer span.End()

	var req RoutinesResponse
	if !decodeJSON(w, r, &req) {
		return
	}

	saved, err := handler.routines.SaveTemplates(ctx, req.Routines)
	if err != nil {
		handler.writeError(w, "save routines", err)
		return
	}
	pkg.WriteJSON(w, RoutinesResponse{Routines: saved}, http.StatusOK)
}

// HandleImportRoutines accepts a JSON or YAML body with one routine or a list of them.
func (handler *Handler) HandleImportRoutines(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.routines.import")
	defer span.End()

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes+1))
	if err != nil {
		http.Error(w, "error, read body", http.StatusBadRequest)
		return
	}
	if len(raw) > maxImportBytes {
		http.Error(w, "error, import too large", http.StatusRequestEntityTooLarge)
		return
	}

	saved, err := handler.routines.ImportFromText(ctx, raw)
	if err != nil {
		handler.writeError(w, "import routines", err)
		return
	}
	pkg.WriteJSON(w, RoutinesResponse{Routines: saved}, http.StatusOK)
}

func (handler *Handler) HandleAddRoutine(w http.ResponseWriter, r *http.Request) {
	handler.editRoutines(w, r, http.StatusCreated, func(list []training.RoutineTemplate) ([]training.RoutineTemplate, error) {
		out, _ := routines.AddRoutine(list)
		return out, nil
	})
}

func (handler *Handler) HandleRenameRoutine(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	name := mux.Vars(r)["name"]
	handler.editRoutines(w, r, http.StatusOK, func(list []training.RoutineTemplate) ([]training.RoutineTemplate, error) {
		return routines.RenameRoutine(list, name, req.Name)
	})
}

func (handler *Handler) HandleDeleteRoutine(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	handler.editRoutines(w, r, http.StatusOK, func(list []training.RoutineTemplate) ([]training.RoutineTemplate, error) {
		return routines.DeleteRoutine(list, name)
	})
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	name := mux.Vars(r)["name"]
	handler.editRoutines(w, r, http.StatusCreated, func(list []training.RoutineTemplate) ([]training.RoutineTemplate, error) {
		out, _, err := routines.AddExercise(list, name, req.Name)
		return out, err
	})
}

func (handler *Handler) HandleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	handler.editRoutines(w, r, http.StatusOK, func(list []training.RoutineTemplate) ([]training.RoutineTemplate, error) {
		return routines.DeleteExercise(list, vars["name"], vars["exid"])
	})
}

func (handler *Handler) HandleAddSet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind string `json:"kind"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	var kind training.SetKind
	if req.Kind != "" {
		parsed, err := training.ParseSetKind(req.Kind)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		kind = parsed
	}

	vars := mux.Vars(r)
	handler.editRoutines(w, r, http.StatusCreated, func(list []training.RoutineTemplate) ([]training.RoutineTemplate, error) {
		return routines.AddSet(list, vars["name"], vars["exid"], kind)
	})
}

func (handler *Handler) HandleDeleteSet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		http.Error(w, "error, index NaN", http.StatusBadRequest)
		return
	}
	handler.editRoutines(w, r, http.StatusOK, func(list []training.RoutineTemplate) ([]training.RoutineTemplate, error) {
		return routines.DeleteSet(list, vars["name"], vars["exid"], index)
	})
}

func (handler *Handler) editRoutines(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	fn func([]training.RoutineTemplate) ([]training.RoutineTemplate, error),
) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.routines.edit")
	defer span.End()

	saved, err := handler.routines.Edit(ctx, fn)
	if err != nil {
		handler.writeError(w, "edit routines", err)
		return
	}
	pkg.WriteJSON(w, RoutinesResponse{Routines: saved}, status)
}

func (handler *Handler) HandleRestStatus(w http.ResponseWriter, r *http.Request) {
	pkg.WriteJSON(w, handler.rest.Snapshot(r.Context()), http.StatusOK)
}

func (handler *Handler) HandleRestCancel(w http.ResponseWriter, r *http.Request) {
	if err := handler.rest.Cancel(r.Context()); err != nil {
		handler.writeError(w, "cancel rest", err)
		return
	}
	pkg.WriteJSON(w, handler.rest.Snapshot(r.Context()), http.StatusOK)
}

// HandlePlates converts ?weight= for ?equipment= (default barbell) into the total load.
func (handler *Handler) HandlePlates(w http.ResponseWriter, r *http.Request) {
	equipment := training.Equipment(r.URL.Query().Get("equipment"))
	if equipment == "" {
		equipment = training.EquipmentBarbell
	}
	if !equipment.Valid() {
		http.Error(w, "error, unknown equipment", http.StatusBadRequest)
		return
	}

	weight, err := strconv.ParseFloat(r.URL.Query().Get("weight"), 64)
	if err != nil || weight < 0 {
		http.Error(w, "error, weight must be a non-negative number", http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, progression.Plates(equipment, weight), http.StatusOK)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Tracef("unmarshal json params [%s]: %s", r.URL.Path, err)
		http.Error(w, "error, invalid json body", http.StatusBadRequest)
		return false
	}
	return true
}

func (handler *Handler) writeError(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrSessionNotFound),
		errors.Is(err, routines.ErrRoutineNotFound),
		errors.Is(err, routines.ErrExerciseNotFound),
		errors.Is(err, routines.ErrSetNotFound):
		status = http.StatusNotFound
	case errors.Is(err, workout.ErrNoActiveSession),
		errors.Is(err, workout.ErrOccurrenceComplete),
		errors.Is(err, routines.ErrDuplicateName):
		status = http.StatusConflict
	case errors.Is(err, workout.ErrInvalidSet),
		errors.Is(err, routines.ErrInvalidImport),
		errors.Is(err, routines.ErrInvalidRoutine):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		log.Errorf("%s: %s", op, err)
		pkg.WriteErrorResponse(w, op+" failed", status)
		return
	}
	log.Debugf("%s: %s", op, err)
	pkg.WriteErrorResponse(w, err.Error(), status)
}
