// Package httpapi serves reports over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/grantsscope/wrapped/internal/buildinfo"
	apperrors "github.com/grantsscope/wrapped/internal/errors"
	"github.com/grantsscope/wrapped/internal/model"
)

// Reporter builds the report for one address.
type Reporter interface {
	Lookup(ctx context.Context, addr string) (model.Report, error)
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

type handler struct {
	reports Reporter
	log     zerolog.Logger
}

// NewRouter wires the routes and middleware.
func NewRouter(reports Reporter, log zerolog.Logger) http.Handler {
	h := &handler{reports: reports, log: log}

	r := chi.NewRouter()
	r.Use(
		RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		Logger(log),
	)

	r.Get("/v1/healthz", h.health)
	r.Get("/v1/wrapped/{address}", h.wrapped)

	return r
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.String(),
	})
}

func (h *handler) wrapped(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.Lookup(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		code := apperrors.GetCode(err)
		status := code.HTTPStatus()
		if status >= http.StatusInternalServerError {
			h.log.Error().Err(err).Str("request_id", RequestIDFromContext(r.Context())).Str("code", string(code)).Msg("lookup failed")
		}
		writeJSON(w, status, ErrorResponse{Code: code, Message: code.UserMessage()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
