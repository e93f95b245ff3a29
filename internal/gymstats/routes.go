package gymstats

import "github.com/gorilla/mux"

// RegisterRoutes mounts the gymstats API on r.
func RegisterRoutes(r *mux.Router, h *Handler) {
	r.HandleFunc("/gymstats/sessions", h.HandleListSessions).Methods("GET", "OPTIONS").Name("list-sessions")
	r.HandleFunc("/gymstats/sessions/{id}", h.HandleGetSession).Methods("GET", "OPTIONS").Name("get-session")

	r.HandleFunc("/gymstats/workout", h.HandleCurrentWorkout).Methods("GET", "OPTIONS").Name("current-workout")
	r.HandleFunc("/gymstats/workout/start", h.HandleStartWorkout).Methods("POST", "OPTIONS").Name("start-workout")
	r.HandleFunc("/gymstats/workout/sets", h.HandleRecordSet).Methods("POST", "OPTIONS").Name("record-set")
	r.HandleFunc("/gymstats/workout/advance", h.HandleAdvance).Methods("POST", "OPTIONS").Name("advance-workout")
	r.HandleFunc("/gymstats/workout/select", h.HandleSelect).Methods("POST", "OPTIONS").Name("select-exercise")
	r.HandleFunc("/gymstats/workout/finish", h.HandleFinish).Methods("POST", "OPTIONS").Name("finish-workout")
	r.HandleFunc("/gymstats/workout/recommendation", h.HandleRecommendation).Methods("GET", "OPTIONS").Name("recommendation")

	r.HandleFunc("/gymstats/history/prior", h.HandlePriorResult).Methods("GET", "OPTIONS").Name("prior-result")

	r.HandleFunc("/gymstats/routines", h.HandleGetRoutines).Methods("GET", "OPTIONS").Name("get-routines")
	r.HandleFunc("/gymstats/routines", h.HandleSaveRoutines).Methods("PUT", "OPTIONS").Name("save-routines")
	r.HandleFunc("/gymstats/routines/import", h.HandleImportRoutines).Methods("POST", "OPTIONS").Name("import-routines")
	r.HandleFunc("/gymstats/routines/new", h.HandleAddRoutine).Methods("POST", "OPTIONS").Name("add-routine")
	r.HandleFunc("/gymstats/routines/{name}", h.HandleRenameRoutine).Methods("PUT", "OPTIONS").Name("rename-routine")
	r.HandleFunc("/gymstats/routines/{name}", h.HandleDeleteRoutine).Methods("DELETE", "OPTIONS").Name("delete-routine")
	r.HandleFunc("/gymstats/routines/{name}/exercises", h.HandleAddExercise).Methods("POST", "OPTIONS").Name("add-exercise")
	r.HandleFunc("/gymstats/routines/{name}/exercises/{exid}", h.HandleDeleteExercise).Methods("DELETE", "OPTIONS").Name("delete-exercise")
	r.HandleFunc("/gymstats/routines/{name}/exercises/{exid}/sets", h.HandleAddSet).Methods("POST", "OPTIONS").Name("add-set")
	r.HandleFunc("/gymstats/routines/{name}/exercises/{exid}/sets/{index}", h.HandleDeleteSet).Methods("DELETE", "OPTIONS").Name("delete-set")

	r.HandleFunc("/gymstats/rest", h.HandleRestStatus).Methods("GET", "OPTIONS").Name("rest-status")
	r.HandleFunc("/gymstats/rest", h.HandleRestCancel).Methods("DELETE", "OPTIONS").Name("rest-cancel")

	r.HandleFunc("/gymstats/plates", h.HandlePlates).Methods("GET", "OPTIONS").Name("plates")
}
