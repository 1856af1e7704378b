// Package api serves decisions over HTTP: a request position is POSTed
// as JSON and the chosen direction comes back as a JSON string.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/domino14/trailbot/board"
	"github.com/domino14/trailbot/bot"
	"github.com/domino14/trailbot/negamax"
)

// Largest request body accepted; a 15x15 board is well under this.
const maxRequestBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

// NewRouter creates the router for the decision endpoint.
func NewRouter(b *bot.Bot) http.Handler {
	r := mux.NewRouter()
	r.Use(recovery)
	r.Use(logging)

	h := &decideHandler{bot: b}
	r.HandleFunc("/", h.Decide).Methods(http.MethodPost)
	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)
	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type decideHandler struct {
	bot *bot.Bot
}

func (h *decideHandler) Decide(w http.ResponseWriter, r *http.Request) {
	tstart := time.Now()
	data, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req board.Request
	if err := json.Unmarshal(data, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	b, err := board.FromRequest(req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	log.Debug().Msgf("request board:\n%s", b)

	d, err := h.bot.DecideBoard(r.Context(), b, h.bot.Config().Depth())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	log.Info().Str("move", d.String()).
		Int64("elapsed-ms", time.Since(tstart).Milliseconds()).
		Msg("decided")
	writeJSON(w, http.StatusOK, d)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, board.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, negamax.ErrNoMoves):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		// client went away
		return 499
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("decide-failed")
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}
