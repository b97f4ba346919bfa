// Package server exposes tallying over HTTP.
//
//	GET  /tally       200 "Vote tally active"
//	POST /tally       202 with the JSON encoded result string
//	GET  /tally/last  200 with the last result, or 404 before any
//
// Malformed requests, invalid configuration, and timeouts are answered with
// 400.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jcorbin/tally/internal/logging"
	"github.com/jcorbin/tally/internal/report"
	"github.com/jcorbin/tally/internal/tally"
)

// DefaultMaxBody bounds request bodies when Server.MaxBody is zero.
const DefaultMaxBody = 32 << 20

// Server handles tally requests.
type Server struct {
	// Config supplies every option that a request leaves unset.
	Config tally.Config

	// MaxBody bounds request body size in bytes.
	MaxBody int64

	// Last, if not nil, stores every successful result.
	Last report.Store

	Logger *slog.Logger
}

// Handler returns the server's routes, wrapped in request logging.
func (srv *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tally", srv.handleStatus)
	mux.HandleFunc("POST /tally", srv.handleTally)
	mux.HandleFunc("GET /tally/last", srv.handleLast)
	return logging.Middleware(srv.Logger, mux)
}

func (srv *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Vote tally active"))
}

func (srv *Server) handleTally(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.FromContext(ctx, srv.Logger)

	maxBody := srv.MaxBody
	if maxBody <= 0 {
		maxBody = DefaultMaxBody
	}
	req, err := tally.DecodeRequest(http.MaxBytesReader(w, r.Body, maxBody), srv.Config)
	if err != nil {
		writeError(w, "Malformed JSON", "Could not decode the request body. The JSON was incorrect.")
		return
	}

	result, err := tally.Run(ctx, req, log)
	switch {
	case errors.Is(err, tally.ErrTimeout):
		log.WarnContext(ctx, "tally timed out", "posts", len(req.Posts), "err", err)
		writeError(w, "Operation timed out.", "")
		return
	case errors.Is(err, tally.ErrInvalidConfig):
		writeError(w, "Invalid config", err.Error())
		return
	case err != nil:
		log.ErrorContext(ctx, "tally failed", "err", err)
		http.Error(w, "tally failed", http.StatusInternalServerError)
		return
	}

	if srv.Last != nil {
		if err := report.Save(srv.Last, result); err != nil {
			log.ErrorContext(ctx, "unable to save tally", "err", err)
		}
	}
	log.InfoContext(ctx, "tallied", "op", req.Op, "posts", len(req.Posts))
	writeJSON(w, http.StatusAccepted, result)
}

func (srv *Server) handleLast(w http.ResponseWriter, r *http.Request) {
	if srv.Last == nil {
		http.NotFound(w, r)
		return
	}
	last, err := report.Load(srv.Last)
	if errors.Is(err, report.ErrNotExists) {
		http.NotFound(w, r)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(last))
}

type errorBody struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

func writeError(w http.ResponseWriter, title, description string) {
	writeJSON(w, http.StatusBadRequest, errorBody{title, description})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
