package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ishant3366/minealert/internal/drone"
	"github.com/ishant3366/minealert/internal/export"
	"github.com/ishant3366/minealert/internal/models"
	"github.com/ishant3366/minealert/internal/sim"
	"github.com/ishant3366/minealert/internal/utils"
)

const engineTimeout = 2 * time.Second

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// telemetry returns the current drone snapshot.
func (s *Server) telemetry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), engineTimeout)
	defer cancel()

	st, err := s.eng.Telemetry(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// command handles the non-directional control actions.
func (s *Server) command(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var cmdType sim.CommandType
	switch name {
	case "takeoff":
		cmdType = sim.CmdTakeoff
	case "land":
		cmdType = sim.CmdLand
	case "return-home":
		cmdType = sim.CmdReturnHome
	case "emergency-stop":
		cmdType = sim.CmdEmergencyStop
	default:
		http.Error(w, "unknown command", http.StatusNotFound)
		return
	}

	s.eng.Submit(sim.Command{Type: cmdType})
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted", "command": name})
}

// moveCommand handles the six directional moves.
func (s *Server) moveCommand(w http.ResponseWriter, r *http.Request) {
	dir := mux.Vars(r)["dir"]

	var cmd sim.Command
	switch dir {
	case "forward":
		cmd = sim.Command{Type: sim.CmdMove, Dir: drone.North}
	case "backward":
		cmd = sim.Command{Type: sim.CmdMove, Dir: drone.South}
	case "right":
		cmd = sim.Command{Type: sim.CmdMove, Dir: drone.East}
	case "left":
		cmd = sim.Command{Type: sim.CmdMove, Dir: drone.West}
	case "up":
		cmd = sim.Command{Type: sim.CmdClimb}
	case "down":
		cmd = sim.Command{Type: sim.CmdDescend}
	default:
		http.Error(w, "unknown direction", http.StatusNotFound)
		return
	}

	s.eng.Submit(cmd)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted", "command": "move", "direction": dir})
}

// listDetections returns stored detections, optionally filtered by
// classification.
func (s *Server) listDetections(w http.ResponseWriter, r *http.Request) {
	var (
		detections []models.Detection
		err        error
	)
	if class := r.URL.Query().Get("classification"); class != "" {
		detections, err = s.store.ListDetectionsByClassification(class)
	} else {
		detections, err = s.store.ListDetections()
	}
	if err != nil {
		http.Error(w, "failed to load detections", http.StatusInternalServerError)
		return
	}
	if detections == nil {
		detections = []models.Detection{}
	}
	writeJSON(w, http.StatusOK, detections)
}

func (s *Server) detectionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.DetectionStats()
	if err != nil {
		http.Error(w, "failed to load stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// eventView decorates a stored event with its display timestamp.
type eventView struct {
	models.Event
	RelativeTime string `json:"relative_time"`
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	events, err := s.store.ListEvents(limit)
	if err != nil {
		http.Error(w, "failed to load events", http.StatusInternalServerError)
		return
	}
	now := time.Now().UTC()
	views := make([]eventView, 0, len(events))
	for _, e := range events {
		views = append(views, eventView{Event: e, RelativeTime: utils.FormatRelative(e.Time, now)})
	}
	writeJSON(w, http.StatusOK, views)
}

// systemStatus reports the dashboard status panel: the AI pipeline and the
// drone link, each with its display color.
func (s *Server) systemStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), engineTimeout)
	defer cancel()

	connection := "Connected"
	if _, err := s.eng.Telemetry(ctx); err != nil {
		connection = "Disconnected"
	}
	const ai = "Online"
	writeJSON(w, http.StatusOK, map[string]string{
		"ai_status":        ai,
		"ai_color":         utils.StatusColor(ai),
		"connection":       connection,
		"connection_color": utils.StatusColor(connection),
	})
}

// sensors returns simulated metal and thermal readings. Position defaults
// to the drone's current location.
func (s *Server) sensors(w http.ResponseWriter, r *http.Request) {
	var lat, lon float64

	q := r.URL.Query()
	if q.Get("lat") != "" || q.Get("lon") != "" {
		var err error
		if lat, err = strconv.ParseFloat(q.Get("lat"), 64); err != nil {
			http.Error(w, "invalid lat", http.StatusBadRequest)
			return
		}
		if lon, err = strconv.ParseFloat(q.Get("lon"), 64); err != nil {
			http.Error(w, "invalid lon", http.StatusBadRequest)
			return
		}
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), engineTimeout)
		defer cancel()
		st, err := s.eng.Telemetry(ctx)
		if err != nil {
			http.Error(w, err.Error(), http.StatusRequestTimeout)
			return
		}
		lat, lon = st.Latitude, st.Longitude
	}

	now := time.Now()
	field := s.eng.Field()
	writeJSON(w, http.StatusOK, map[string]any{
		"latitude":  lat,
		"longitude": lon,
		"metal":     field.MetalReading(lat, lon),
		"thermal":   field.ThermalReading(lat, lon, now),
	})
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	detections, err := s.store.ListDetections()
	if err != nil {
		http.Error(w, "failed to load detections", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename("csv", time.Now())))
	if err := export.WriteCSV(w, detections); err != nil {
		s.log.Error("csv export failed", zap.Error(err))
	}
}

func (s *Server) exportJSON(w http.ResponseWriter, r *http.Request) {
	detections, err := s.store.ListDetections()
	if err != nil {
		http.Error(w, "failed to load detections", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename("json", time.Now())))
	if err := export.WriteJSON(w, detections); err != nil {
		s.log.Error("json export failed", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// headers are already sent; nothing useful left to do
		return
	}
}
