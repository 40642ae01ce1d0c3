package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"example.com/scoreboard/internal/scoreboard"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, errCode, msg string) {
	writeJSON(w, code, ErrorResponse{Code: errCode, Message: msg})
}

// writeBoardError maps scoreboard errors onto HTTP statuses.
func writeBoardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scoreboard.ErrInvalidTeams):
		writeError(w, http.StatusBadRequest, "invalid_teams", err.Error())
	case errors.Is(err, scoreboard.ErrInvalidScore):
		writeError(w, http.StatusBadRequest, "invalid_score", err.Error())
	case errors.Is(err, scoreboard.ErrDuplicateMatch):
		writeError(w, http.StatusConflict, "duplicate_match", err.Error())
	case errors.Is(err, scoreboard.ErrMatchNotFound):
		writeError(w, http.StatusNotFound, "match_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
