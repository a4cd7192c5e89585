// Package handler exposes the audit log read endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"custodia/internal/audit"
	"custodia/internal/authz"
	mw "custodia/internal/platform/middleware"
	id "custodia/pkg/domain"
	"custodia/pkg/platform/httputil"
)

// Store is the read side of the audit log the handler needs.
type Store interface {
	ListByEvidence(ctx context.Context, evidenceID id.EvidenceID, order audit.Order) ([]audit.Entry, error)
	ListByActor(ctx context.Context, actorID id.UserID, order audit.Order) ([]audit.Entry, error)
}

// Handler serves the audit endpoints.
type Handler struct {
	store  Store
	gate   authz.Gate
	logger *slog.Logger
}

func New(store Store, gate authz.Gate, logger *slog.Logger) *Handler {
	return &Handler{store: store, gate: gate, logger: logger}
}

// Register mounts the audit endpoints.
func (h *Handler) Register(r chi.Router) {
	r.With(mw.RequirePermission(h.gate, authz.OpAuditView, h.logger)).
		Get("/audit/evidence/{id}", h.HandleListByEvidence)
	r.With(mw.RequirePermission(h.gate, authz.OpAuditView, h.logger)).
		Get("/audit/user/{id}", h.HandleListByActor)
}

// HandleListByEvidence handles GET /audit/evidence/{id}.
func (h *Handler) HandleListByEvidence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	evidenceID, err := id.ParseEvidenceID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entries, err := h.store.ListByEvidence(ctx, evidenceID, orderFrom(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "audit query failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromEntries(entries))
}

// HandleListByActor handles GET /audit/user/{id}.
func (h *Handler) HandleListByActor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actorID, err := id.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entries, err := h.store.ListByActor(ctx, actorID, orderFrom(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "audit query failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromEntries(entries))
}

func orderFrom(r *http.Request) audit.Order {
	if strings.EqualFold(r.URL.Query().Get("order"), "desc") {
		return audit.OrderDesc
	}
	return audit.OrderAsc
}

type entryResponse struct {
	LogID      int64     `json:"log_id"`
	ActorID    string    `json:"actor_id,omitempty"`
	EvidenceID string    `json:"evidence_id"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

func fromEntries(entries []audit.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		resp := entryResponse{
			LogID:      e.LogID,
			EvidenceID: e.EvidenceID.String(),
			Action:     e.Action,
			OccurredAt: e.OccurredAt,
		}
		if !e.ActorID.IsNil() {
			resp.ActorID = e.ActorID.String()
		}
		out = append(out, resp)
	}
	return out
}
