// Package handler wires case endpoints to the case service.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"custodia/internal/authz"
	"custodia/internal/cases"
	"custodia/internal/identity"
	mw "custodia/internal/platform/middleware"
	id "custodia/pkg/domain"
	"custodia/pkg/platform/httputil"
	"custodia/pkg/requestcontext"
)

// Service defines the case operations the handler needs.
type Service interface {
	Create(ctx context.Context, cmd cases.CreateCommand) (*cases.Case, error)
	Get(ctx context.Context, caseID id.CaseID) (*cases.Detail, error)
	List(ctx context.Context) ([]cases.Case, error)
	SetStatus(ctx context.Context, caseID id.CaseID, status string) error
}

// Resolver maps public-path person identifiers onto person records.
type Resolver interface {
	Resolve(ctx context.Context, lookup identity.Lookup) (*identity.Person, error)
}

// Handler serves the case endpoints.
type Handler struct {
	service  Service
	resolver Resolver
	gate     authz.Gate
	logger   *slog.Logger
}

func New(service Service, resolver Resolver, gate authz.Gate, logger *slog.Logger) *Handler {
	return &Handler{service: service, resolver: resolver, gate: gate, logger: logger}
}

// Register mounts the authenticated case endpoints.
func (h *Handler) Register(r chi.Router) {
	r.With(mw.RequirePermission(h.gate, authz.OpCaseCreate, h.logger)).
		Post("/cases", h.HandleCreate)
	r.With(mw.RequirePermission(h.gate, authz.OpCaseList, h.logger)).
		Get("/cases", h.HandleList)
	r.With(mw.RequirePermission(h.gate, authz.OpCaseView, h.logger)).
		Get("/cases/{id}", h.HandleGet)
	r.With(mw.RequirePermission(h.gate, authz.OpCaseUpdate, h.logger)).
		Put("/cases/{id}", h.HandleSetStatus)
}

// RegisterPublic mounts the unauthenticated case endpoints.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/cases/public", h.HandleList)
	r.Post("/cases/public", h.HandleCreatePublic)
}

// HandleCreate handles POST /cases.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[createRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	cmd, err := req.command()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	c, err := h.service.Create(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "case creation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, fromCase(c))
}

// HandleCreatePublic handles POST /cases/public. The assignee hint is
// resolved best effort; an unresolvable assignee leaves the case unassigned.
func (h *Handler) HandleCreatePublic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[publicCreateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	cmd := cases.CreateCommand{Title: req.Title, Description: req.Description}
	lookup := req.assigneeLookup()
	if !lookup.Empty() {
		if person, err := h.resolver.Resolve(ctx, lookup); err == nil {
			cmd.AssignedTo = person.ID
		}
	}

	c, err := h.service.Create(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "public case creation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, fromCase(c))
}

// HandleGet handles GET /cases/{id}, returning the case with its evidence.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, err := id.ParseCaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	detail, err := h.service.Get(ctx, caseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromDetail(detail))
}

// HandleList handles GET /cases and GET /cases/public.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := h.service.List(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromCases(list))
}

// HandleSetStatus handles PUT /cases/{id}.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caseID, err := id.ParseCaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[setStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.SetStatus(ctx, caseID, req.Status); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, setStatusResponse{Status: req.Status})
}
