package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/status"
	"github.com/lixenwraith/deskrush/system"
)

func addRoutes(r chi.Router, metrics *status.Registry, level LevelSource) {
	r.Get("/healthz", handleHealth())
	r.Get("/status", handleStatus(metrics, level))
	r.Get("/stations/{id}", handleStation(level))
}

type stationView struct {
	ID          string `json:"id"`
	State       string `json:"state"`
	Task        string `json:"task,omitempty"`
	Required    string `json:"required,omitempty"`
	RemainingMS int64  `json:"remaining_ms,omitempty"`
}

type pawnView struct {
	ID       string  `json:"id"`
	Identity string  `json:"identity"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Dragging bool    `json:"dragging"`
	Locked   bool    `json:"locked"`
	Zone     string  `json:"zone,omitempty"`
}

type levelView struct {
	Frame           int64         `json:"frame"`
	ElapsedMS       int64         `json:"elapsed_ms"`
	RemainingMS     int64         `json:"remaining_ms"`
	Expired         bool          `json:"expired"`
	SpawnIntervalMS int64         `json:"spawn_interval_ms"`
	Stations        []stationView `json:"stations"`
	Pawns           []pawnView    `json:"pawns"`
}

type statusResponse struct {
	Level   levelView      `json:"level"`
	Metrics map[string]any `json:"metrics"`
}

func newStationView(st system.StationView) stationView {
	v := stationView{ID: string(st.ID), State: st.State.String()}
	if st.State != component.TaskIdle {
		v.Task = st.Task
		v.Required = string(st.Required)
		v.RemainingMS = st.Remaining.Milliseconds()
	}
	return v
}

func newLevelView(snap system.Snapshot) levelView {
	v := levelView{
		Frame:           snap.Frame,
		ElapsedMS:       snap.Elapsed.Milliseconds(),
		RemainingMS:     snap.Remaining.Milliseconds(),
		Expired:         snap.Expired,
		SpawnIntervalMS: snap.Interval.Milliseconds(),
		Stations:        make([]stationView, 0, len(snap.Stations)),
		Pawns:           make([]pawnView, 0, len(snap.Pawns)),
	}
	for _, st := range snap.Stations {
		v.Stations = append(v.Stations, newStationView(st))
	}
	for _, p := range snap.Pawns {
		v.Pawns = append(v.Pawns, pawnView{
			ID:       string(p.ID),
			Identity: string(p.Identity),
			X:        p.Position.X,
			Y:        p.Position.Y,
			Z:        p.Position.Z,
			Dragging: p.Drag.IsDragging,
			Locked:   p.Drag.IsLocked,
			Zone:     string(p.Drag.CurrentZone),
		})
	}
	return v
}

func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func handleStatus(metrics *status.Registry, level LevelSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, statusResponse{
			Level:   newLevelView(level.Snapshot()),
			Metrics: metrics.Snapshot(),
		})
	}
}

func handleStation(level LevelSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		for _, st := range level.Snapshot().Stations {
			if string(st.ID) == id {
				writeJSON(w, http.StatusOK, newStationView(st))
				return
			}
		}
		writeError(w, http.StatusNotFound, "unknown station "+id)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
