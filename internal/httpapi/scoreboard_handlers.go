package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"example.com/scoreboard/internal/scoreboard"
	"example.com/scoreboard/internal/store"
)

// ResultsLister reads archived results. Nil when no database is configured.
type ResultsLister interface {
	Recent(ctx context.Context, limit int) ([]store.Result, error)
}

type ScoreboardHandler struct {
	Board   *scoreboard.Service
	Results ResultsLister
	Log     *slog.Logger

	PingInterval time.Duration // websocket feed keepalive
}

type TeamsRequest struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// ScoreRequest keeps the scores as raw JSON numbers so that 1.5 can be
// told apart from 1.
type ScoreRequest struct {
	Home      string      `json:"home"`
	Away      string      `json:"away"`
	HomeScore json.Number `json:"homeScore"`
	AwayScore json.Number `json:"awayScore"`
}

func (h *ScoreboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}
	writeJSON(w, http.StatusOK, h.Board.Summary())
}

func (h *ScoreboardHandler) StartMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	var req TeamsRequest
	if !decodeTeams(w, r, &req) {
		return
	}

	if err := h.Board.Start(r.Context(), req.Home, req.Away); err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, scoreboard.Match{Home: req.Home, Away: req.Away})
}

func (h *ScoreboardHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use PUT")
		return
	}

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	req.Home = strings.TrimSpace(req.Home)
	req.Away = strings.TrimSpace(req.Away)
	if req.Home == "" || req.Away == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "home and away are required")
		return
	}

	homeScore, err := scoreboard.ParseScore(req.HomeScore)
	if err != nil {
		writeBoardError(w, err)
		return
	}
	awayScore, err := scoreboard.ParseScore(req.AwayScore)
	if err != nil {
		writeBoardError(w, err)
		return
	}

	if err := h.Board.UpdateScore(r.Context(), req.Home, req.Away, homeScore, awayScore); err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreboard.Match{
		Home:      req.Home,
		Away:      req.Away,
		HomeScore: homeScore,
		AwayScore: awayScore,
	})
}

func (h *ScoreboardHandler) FinishMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	var req TeamsRequest
	if !decodeTeams(w, r, &req) {
		return
	}

	final, err := h.Board.Finish(r.Context(), req.Home, req.Away)
	if err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, final)
}

func (h *ScoreboardHandler) RecentResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}
	if h.Results == nil {
		writeError(w, http.StatusNotFound, "results_disabled", "result archive is not configured")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "limit must be an integer")
			return
		}
		limit = n
	}

	results, err := h.Results.Recent(r.Context(), limit)
	if err != nil {
		h.Log.Error("load results", "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to load results")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func decodeTeams(w http.ResponseWriter, r *http.Request, req *TeamsRequest) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return false
	}
	req.Home = strings.TrimSpace(req.Home)
	req.Away = strings.TrimSpace(req.Away)

	if req.Home == "" || req.Away == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "home and away are required")
		return false
	}
	return true
}
