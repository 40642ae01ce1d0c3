package httpapi

import (
	"log/slog"
	"net/http"
)

// NewRouter wires the scoreboard routes. Reads are public, changes need an
// operator token.
func NewRouter(h *ScoreboardHandler, verifier TokenVerifier, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	if h.Log == nil {
		h.Log = log
	}

	requireOperator := AuthMiddleware(verifier)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/summary", h.Summary)
	mux.HandleFunc("/api/results", h.RecentResults)
	mux.HandleFunc("/ws/summary", h.Feed)

	mux.Handle("/api/matches", requireOperator(http.HandlerFunc(h.StartMatch)))
	mux.Handle("/api/matches/score", requireOperator(http.HandlerFunc(h.UpdateScore)))
	mux.Handle("/api/matches/finish", requireOperator(http.HandlerFunc(h.FinishMatch)))

	return RequestID(AccessLog(log)(mux))
}
