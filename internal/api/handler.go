package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/probekit/pkg/classify"
	"github.com/dmitrymomot/probekit/pkg/logger"
	"github.com/dmitrymomot/probekit/pkg/memo"
	"github.com/dmitrymomot/probekit/pkg/probe"
)

// Reporter receives the encoded params of every classification.
type Reporter interface {
	Log(ctx context.Context, params []classify.Param) string
}

// Handler serves the classification endpoints.
type Handler struct {
	memo     *memo.Memo
	reporter Reporter
	logger   *slog.Logger
	newID    func() string
}

type HandlerOption func(*Handler)

// WithReporter forwards every classification to r.
func WithReporter(r Reporter) HandlerOption {
	return func(h *Handler) { h.reporter = r }
}

func WithLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithIDGenerator replaces the UUID generator for environments that arrive
// without an id.
func WithIDGenerator(fn func() string) HandlerOption {
	return func(h *Handler) {
		if fn != nil {
			h.newID = fn
		}
	}
}

func NewHandler(m *memo.Memo, opts ...HandlerOption) *Handler {
	h := &Handler{
		memo:   m,
		logger: logger.Discard(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ClassifyRequest is the body of POST /v1/classify.
type ClassifyRequest struct {
	EnvironmentID string         `json:"environment_id,omitempty"`
	Signature     string         `json:"signature"`
	Snapshot      probe.Snapshot `json:"snapshot"`
}

// EntryResponse is one memoised classification.
type EntryResponse struct {
	EnvironmentID string            `json:"environment_id"`
	Result        classify.Result   `json:"result"`
	Encoded       map[string]string `json:"encoded"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type FieldResponse struct {
	EnvironmentID string `json:"environment_id"`
	Field         string `json:"field"`
	Value         string `json:"value"`
}

func entryResponse(e memo.Entry) EntryResponse {
	encoded := make(map[string]string, len(e.Encoded.Values))
	for _, name := range classify.Fields() {
		if v, ok := e.Encoded.Lookup(name); ok {
			encoded[name] = v
		}
	}
	return EntryResponse{
		EnvironmentID: e.EnvironmentID,
		Result:        e.Result,
		Encoded:       encoded,
		UpdatedAt:     e.UpdatedAt,
	}
}

// Classify handles POST /v1/classify.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := bindJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	if strings.TrimSpace(req.Signature) == "" {
		respondError(w, ErrMissingSignature)
		return
	}

	ctx := r.Context()
	envID := req.EnvironmentID
	if envID == "" {
		envID = h.newID()
	}

	e, err := h.memo.Classify(ctx, envID, req.Snapshot.Probe(), probe.NewSignature(req.Signature))
	if err != nil && !errors.Is(err, memo.ErrStoreUnavailable) {
		respondError(w, err)
		return
	}
	// the result stands even when it could not be memoised

	if h.reporter != nil {
		h.reporter.Log(ctx, e.Encoded.Params())
	}

	h.logger.InfoContext(ctx, "environment classified",
		logger.EnvironmentID(envID),
		logger.Family(e.Result.Family.String()),
		slog.Bool("trustworthy", e.Result.Trustworthy),
	)
	respond(w, http.StatusOK, entryResponse(e))
}

// Environment handles GET /v1/environments/{id}.
func (h *Handler) Environment(w http.ResponseWriter, r *http.Request) {
	e, err := h.memo.Last(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logFailure(r, err)
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, entryResponse(e))
}

// Field handles GET /v1/environments/{id}/fields/{field}. Field names are
// matched case-insensitively.
func (h *Handler) Field(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	field := strings.ToUpper(chi.URLParam(r, "field"))

	v, err := h.memo.Read(r.Context(), id, field)
	if err != nil {
		h.logFailure(r, err)
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, FieldResponse{EnvironmentID: id, Field: field, Value: v})
}

func (h *Handler) logFailure(r *http.Request, err error) {
	if errors.Is(err, memo.ErrNotFound) || errors.Is(err, classify.ErrUnknownField) {
		return
	}
	h.logger.ErrorContext(r.Context(), "environment lookup failed",
		logger.EnvironmentID(chi.URLParam(r, "id")),
		logger.Error(err),
	)
}
