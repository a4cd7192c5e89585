// Package handler wires evidence endpoints to the evidence service.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"custodia/internal/authz"
	"custodia/internal/evidence"
	"custodia/internal/identity"
	mw "custodia/internal/platform/middleware"
	id "custodia/pkg/domain"
	"custodia/pkg/platform/httputil"
	"custodia/pkg/requestcontext"
)

// Service defines the evidence operations the handler needs.
type Service interface {
	Intake(ctx context.Context, cmd evidence.IntakeCommand) (*evidence.Item, error)
	Get(ctx context.Context, evidenceID id.EvidenceID) (*evidence.Item, error)
	ListByCase(ctx context.Context, caseID id.CaseID) ([]evidence.Item, error)
	ListPublic(ctx context.Context) ([]evidence.Listing, error)
	SetStatus(ctx context.Context, evidenceID id.EvidenceID, status string) error
	Remove(ctx context.Context, evidenceID id.EvidenceID) error
}

// Resolver maps public-path person identifiers onto person records.
type Resolver interface {
	Resolve(ctx context.Context, lookup identity.Lookup) (*identity.Person, error)
}

// Handler serves the evidence endpoints.
type Handler struct {
	service  Service
	resolver Resolver
	gate     authz.Gate
	logger   *slog.Logger
}

func New(service Service, resolver Resolver, gate authz.Gate, logger *slog.Logger) *Handler {
	return &Handler{service: service, resolver: resolver, gate: gate, logger: logger}
}

// Register mounts the authenticated evidence endpoints.
func (h *Handler) Register(r chi.Router) {
	r.With(mw.RequirePermission(h.gate, authz.OpEvidenceIntake, h.logger)).
		Post("/evidence", h.HandleIntake)
	r.With(mw.RequirePermission(h.gate, authz.OpEvidenceView, h.logger)).
		Get("/evidence/{id}", h.HandleGet)
	r.With(mw.RequirePermission(h.gate, authz.OpEvidenceView, h.logger)).
		Get("/evidence/case/{caseID}", h.HandleListByCase)
	r.With(mw.RequirePermission(h.gate, authz.OpEvidenceStatusUpdate, h.logger)).
		Put("/evidence/{id}", h.HandleSetStatus)
	r.With(mw.RequirePermission(h.gate, authz.OpEvidenceRemove, h.logger)).
		Delete("/evidence/{id}", h.HandleRemove)
}

// RegisterPublic mounts the unauthenticated evidence endpoints.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/evidence/public", h.HandleListPublic)
	r.Post("/evidence/public", h.HandleIntakePublic)
}

// HandleIntake handles POST /evidence. The collector is the authenticated
// caller.
func (h *Handler) HandleIntake(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form, err := parseIntakeForm(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cmd, err := form.command()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	cmd.CollectedBy = requestcontext.UserID(ctx)

	item, err := h.service.Intake(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "evidence intake failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, fromItem(item))
}

// HandleIntakePublic handles POST /evidence/public. Collector identifiers
// are resolved best effort; an unresolvable collector leaves the item
// unattributed rather than failing the intake.
func (h *Handler) HandleIntakePublic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form, err := parseIntakeForm(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cmd, err := form.command()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	lookup := form.collectorLookup()
	if !lookup.Empty() {
		if person, err := h.resolver.Resolve(ctx, lookup); err == nil {
			cmd.CollectedBy = person.ID
		}
	}

	item, err := h.service.Intake(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "public evidence intake failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, fromItem(item))
}

// HandleGet handles GET /evidence/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	evidenceID, err := id.ParseEvidenceID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	item, err := h.service.Get(ctx, evidenceID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromItem(item))
}

// HandleListByCase handles GET /evidence/case/{caseID}.
func (h *Handler) HandleListByCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, err := id.ParseCaseID(chi.URLParam(r, "caseID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	items, err := h.service.ListByCase(ctx, caseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromItems(items))
}

// HandleListPublic handles GET /evidence/public.
func (h *Handler) HandleListPublic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listings, err := h.service.ListPublic(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if listings == nil {
		listings = []evidence.Listing{}
	}
	httputil.WriteJSON(w, http.StatusOK, listings)
}

// HandleSetStatus handles PUT /evidence/{id}.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	evidenceID, err := id.ParseEvidenceID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[setStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.SetStatus(ctx, evidenceID, req.Status); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, statusResponse{Status: req.Status})
}

// HandleRemove handles DELETE /evidence/{id}.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	evidenceID, err := id.ParseEvidenceID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Remove(ctx, evidenceID); err != nil {
		h.logger.ErrorContext(ctx, "evidence removal failed",
			"request_id", requestcontext.RequestID(ctx),
			"evidence_id", evidenceID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
