// Package handler wires custody transfer endpoints to the transfer service.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,Resolver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"custodia/internal/authz"
	"custodia/internal/identity"
	mw "custodia/internal/platform/middleware"
	"custodia/internal/transfer"
	id "custodia/pkg/domain"
	"custodia/pkg/platform/httputil"
	"custodia/pkg/requestcontext"
)

// Service defines the transfer operations the handler needs.
type Service interface {
	ExecuteImmediate(ctx context.Context, cmd transfer.Command) (*transfer.Request, error)
	OpenRequest(ctx context.Context, cmd transfer.Command) (*transfer.Request, error)
	Decide(ctx context.Context, transferID id.TransferID, decision transfer.Decision, remarks string) (*transfer.Request, error)
	ListByEvidence(ctx context.Context, evidenceID id.EvidenceID) ([]transfer.Request, error)
	ListAll(ctx context.Context) ([]transfer.Listing, error)
}

// Resolver maps public-path person identifiers onto person records.
type Resolver interface {
	Resolve(ctx context.Context, lookup identity.Lookup) (*identity.Person, error)
}

// Handler serves the transfer endpoints.
type Handler struct {
	service  Service
	resolver Resolver
	gate     authz.Gate
	logger   *slog.Logger
}

func New(service Service, resolver Resolver, gate authz.Gate, logger *slog.Logger) *Handler {
	return &Handler{service: service, resolver: resolver, gate: gate, logger: logger}
}

// Register mounts the authenticated transfer endpoints.
func (h *Handler) Register(r chi.Router) {
	r.With(mw.RequirePermission(h.gate, authz.OpTransferImmediate, h.logger)).
		Post("/transfers", h.HandleExecuteImmediate)
	r.With(mw.RequirePermission(h.gate, authz.OpTransferView, h.logger)).
		Get("/transfers/{evidenceID}", h.HandleListByEvidence)
	r.With(mw.RequirePermission(h.gate, authz.OpTransferDecide, h.logger)).
		Post("/transfers/{id}/approve", h.decideHandler(transfer.DecisionApprove))
	r.With(mw.RequirePermission(h.gate, authz.OpTransferDecide, h.logger)).
		Post("/transfers/{id}/reject", h.decideHandler(transfer.DecisionReject))
}

// RegisterPublic mounts the unauthenticated transfer endpoints.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/transfers", h.HandleListAll)
	r.Post("/transfers/public", h.HandleOpenRequestPublic)
}

// HandleExecuteImmediate handles POST /transfers: the privileged path where
// creation and approval are one step.
func (h *Handler) HandleExecuteImmediate(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.ExecuteImmediate(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "immediate transfer failed",
			"request_id", requestID,
			"evidence_id", req.EvidenceID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, fromRequest(result))
}

// HandleOpenRequestPublic handles POST /transfers/public. Both participants
// must resolve or the request is refused; custody stays put until a
// decision.
func (h *Handler) HandleOpenRequestPublic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[publicCreateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	evidenceID, err := req.evidenceID()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	from, err := h.resolver.Resolve(ctx, req.fromLookup())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	to, err := h.resolver.Resolve(ctx, req.toLookup())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.OpenRequest(ctx, transfer.Command{
		EvidenceID: evidenceID,
		FromUser:   from.ID,
		ToUser:     to.ID,
		Remarks:    req.Remarks,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "public transfer request failed",
			"request_id", requestID,
			"evidence_id", req.EvidenceID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, fromRequest(result))
}

func (h *Handler) decideHandler(decision transfer.Decision) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		transferID, err := id.ParseTransferID(chi.URLParam(r, "id"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}

		// The remarks body is optional; an empty or absent body is fine.
		var req decideRequest
		_ = decodeLenient(r, &req)

		result, err := h.service.Decide(ctx, transferID, decision, req.Remarks)
		if err != nil {
			h.logger.WarnContext(ctx, "transfer decision refused",
				"request_id", requestcontext.RequestID(ctx),
				"transfer_id", transferID.String(),
				"decision", string(decision),
				"error", err,
			)
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, fromRequest(result))
	}
}

// HandleListByEvidence handles GET /transfers/{evidenceID}.
func (h *Handler) HandleListByEvidence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	evidenceID, err := id.ParseEvidenceID(chi.URLParam(r, "evidenceID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	requests, err := h.service.ListByEvidence(ctx, evidenceID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromRequests(requests))
}

// HandleListAll handles GET /transfers.
func (h *Handler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listings, err := h.service.ListAll(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if listings == nil {
		listings = []transfer.Listing{}
	}
	httputil.WriteJSON(w, http.StatusOK, listings)
}
