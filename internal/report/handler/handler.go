// Package handler wires analysis report endpoints to the report service.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"custodia/internal/authz"
	"custodia/internal/identity"
	mw "custodia/internal/platform/middleware"
	"custodia/internal/report"
	id "custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/platform/httputil"
	"custodia/pkg/requestcontext"
)

const maxUploadBytes = 32 << 20

// Service defines the report operations the handler needs.
type Service interface {
	Create(ctx context.Context, cmd report.CreateCommand) (*report.Report, error)
	ListByEvidence(ctx context.Context, evidenceID id.EvidenceID) ([]report.Report, error)
	ListRecent(ctx context.Context) ([]report.Listing, error)
}

// Handler serves the report endpoints.
type Handler struct {
	service Service
	gate    authz.Gate
	logger  *slog.Logger
}

func New(service Service, gate authz.Gate, logger *slog.Logger) *Handler {
	return &Handler{service: service, gate: gate, logger: logger}
}

// Register mounts the authenticated report endpoints.
func (h *Handler) Register(r chi.Router) {
	r.With(mw.RequirePermission(h.gate, authz.OpReportCreate, h.logger)).
		Post("/reports", h.HandleCreate)
	r.With(mw.RequirePermission(h.gate, authz.OpReportView, h.logger)).
		Get("/reports/{evidenceID}", h.HandleListByEvidence)
}

// RegisterPublic mounts the unauthenticated report endpoints.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/reports/public", h.HandleListRecent)
	r.Post("/reports/public", h.HandleCreate)
}

// HandleCreate handles POST /reports and POST /reports/public. Attribution
// falls to the service: authenticated callers are credited directly, public
// submissions resolve through the analyst hints and fallbacks.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cmd, err := parseCreateForm(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Create(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "report creation failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, fromReport(result))
}

// HandleListByEvidence handles GET /reports/{evidenceID}.
func (h *Handler) HandleListByEvidence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	evidenceID, err := id.ParseEvidenceID(chi.URLParam(r, "evidenceID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	reports, err := h.service.ListByEvidence(ctx, evidenceID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromReports(reports))
}

// HandleListRecent handles GET /reports/public.
func (h *Handler) HandleListRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listings, err := h.service.ListRecent(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if listings == nil {
		listings = []report.Listing{}
	}
	httputil.WriteJSON(w, http.StatusOK, listings)
}

type createForm struct {
	EvidenceID   string `json:"evidence_id"`
	Findings     string `json:"findings"`
	AnalystEmail string `json:"analyst_email"`
	AnalystBadge string `json:"analyst_badge"`
	AnalystName  string `json:"analyst_name"`
}

func parseCreateForm(r *http.Request) (report.CreateCommand, error) {
	var (
		form createForm
		file *report.Attachment
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return report.CreateCommand{}, dErrors.New(dErrors.CodeBadRequest, "invalid multipart body")
		}
		form = createForm{
			EvidenceID:   r.FormValue("evidence_id"),
			Findings:     r.FormValue("findings"),
			AnalystEmail: r.FormValue("analyst_email"),
			AnalystBadge: r.FormValue("analyst_badge"),
			AnalystName:  r.FormValue("analyst_name"),
		}
		upload, header, err := r.FormFile("file")
		if err == nil {
			file = &report.Attachment{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Body:        upload,
			}
		} else if !errors.Is(err, http.ErrMissingFile) {
			return report.CreateCommand{}, dErrors.New(dErrors.CodeBadRequest, "invalid file upload")
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			return report.CreateCommand{}, dErrors.New(dErrors.CodeBadRequest, "invalid request body")
		}
	}

	cmd := report.CreateCommand{
		Findings: form.Findings,
		Analyst: identity.Lookup{
			Email: form.AnalystEmail,
			Badge: form.AnalystBadge,
			Name:  form.AnalystName,
		},
		File: file,
	}
	if form.EvidenceID != "" {
		evidenceID, err := id.ParseEvidenceID(form.EvidenceID)
		if err != nil {
			return cmd, err
		}
		cmd.EvidenceID = evidenceID
	}
	return cmd, nil
}
