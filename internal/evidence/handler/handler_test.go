package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"custodia/internal/audit"
	"custodia/internal/authz"
	"custodia/internal/evidence"
	"custodia/internal/identity"
	"custodia/internal/platform/blob"
	id "custodia/pkg/domain"
	txpkg "custodia/pkg/platform/tx"
	"custodia/pkg/requestcontext"
)

type HandlerSuite struct {
	suite.Suite
	store  *evidence.InMemoryStore
	people *identity.InMemoryStore
	audits *audit.InMemoryStore
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.store = evidence.NewInMemoryStore()
	s.people = identity.NewInMemoryStore()
	s.audits = audit.NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := evidence.NewService(s.store, evidence.NewInMemoryStorageStore(), s.audits,
		blob.NewInMemory(), nil, txpkg.NewInMemoryRunner(), nil, logger)
	h := New(svc, identity.NewDirectory(s.people), authz.NewGate(), logger)

	s.router = chi.NewRouter()
	h.Register(s.router)
	h.RegisterPublic(s.router)
}

func (s *HandlerSuite) do(method, target string, body any, role id.Role) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	ctx := requestcontext.WithRole(req.Context(), role)
	if role != id.RolePublic {
		ctx = requestcontext.WithUserID(ctx, id.UserID(uuid.New()))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req.WithContext(ctx))
	return w
}

func (s *HandlerSuite) seedItem(status string) *evidence.Item {
	item := &evidence.Item{
		ID:            id.EvidenceID(uuid.New()),
		CaseID:        id.CaseID(uuid.New()),
		EvidenceType:  "Hard Drive",
		CurrentStatus: status,
		CollectedOn:   time.Now(),
	}
	s.Require().NoError(s.store.Create(context.Background(), item))
	return item
}

func (s *HandlerSuite) TestIntake() {
	w := s.do(http.MethodPost, "/evidence", map[string]string{
		"case_id":          uuid.NewString(),
		"evidence_type":    "Laptop",
		"description":      "seized at scene",
		"storage_location": "Locker A3",
	}, id.RoleInvestigator)

	s.Equal(http.StatusCreated, w.Code)

	var body map[string]any
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&body))
	s.Equal("Collected", body["current_status"])
	s.NotEmpty(body["collected_by"])
}

func (s *HandlerSuite) TestIntakeForbiddenForLabStaff() {
	w := s.do(http.MethodPost, "/evidence", map[string]string{}, id.RoleLabStaff)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerSuite) TestIntakeValidation() {
	w := s.do(http.MethodPost, "/evidence", map[string]string{
		"evidence_type": "Laptop",
	}, id.RoleAdmin)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestIntakeMultipartWithFile() {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	s.Require().NoError(mw.WriteField("case_id", uuid.NewString()))
	s.Require().NoError(mw.WriteField("evidence_type", "SD Card"))
	part, err := mw.CreateFormFile("file", "image.dd")
	s.Require().NoError(err)
	_, err = part.Write([]byte("raw-image"))
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/evidence", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	ctx := requestcontext.WithRole(req.Context(), id.RoleAdmin)
	ctx = requestcontext.WithUserID(ctx, id.UserID(uuid.New()))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req.WithContext(ctx))

	s.Equal(http.StatusCreated, w.Code)

	var body map[string]any
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&body))
	s.Contains(body["file_key"], "image.dd")
}

func (s *HandlerSuite) TestPublicIntakeResolvesCollector() {
	collector := &identity.Person{
		ID:    id.UserID(uuid.New()),
		Name:  "Dana Reyes",
		Email: "dana@pd.example",
		Role:  id.RoleInvestigator,
	}
	s.Require().NoError(s.people.Create(context.Background(), collector))

	w := s.do(http.MethodPost, "/evidence/public", map[string]string{
		"case_id":            uuid.NewString(),
		"evidence_type":      "Phone",
		"collected_by_email": "dana@pd.example",
	}, id.RolePublic)

	s.Equal(http.StatusCreated, w.Code)

	var body map[string]any
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&body))
	s.Equal(collector.ID.String(), body["collected_by"])
}

func (s *HandlerSuite) TestPublicIntakeUnresolvableCollectorStillSucceeds() {
	w := s.do(http.MethodPost, "/evidence/public", map[string]string{
		"case_id":           uuid.NewString(),
		"evidence_type":     "Phone",
		"collected_by_name": "Nobody Known",
	}, id.RolePublic)

	s.Equal(http.StatusCreated, w.Code)

	var body map[string]any
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&body))
	s.Empty(body["collected_by"])
}

func (s *HandlerSuite) TestGetNotFound() {
	w := s.do(http.MethodGet, "/evidence/"+uuid.NewString(), nil, id.RoleInvestigator)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestSetStatusWritesAudit() {
	item := s.seedItem(evidence.StatusCollected)

	w := s.do(http.MethodPut, "/evidence/"+item.ID.String(),
		map[string]string{"status": "Under Analysis"}, id.RoleLabStaff)

	s.Equal(http.StatusOK, w.Code)
	s.Require().Len(s.audits.All(), 1)
	s.Equal("STATUS:Under Analysis", s.audits.All()[0].Action)
}

func (s *HandlerSuite) TestRemove() {
	item := s.seedItem(evidence.StatusArchived)

	w := s.do(http.MethodDelete, "/evidence/"+item.ID.String(), nil, id.RoleAdmin)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlerSuite) TestRemoveForbiddenForInvestigator() {
	item := s.seedItem(evidence.StatusArchived)

	w := s.do(http.MethodDelete, "/evidence/"+item.ID.String(), nil, id.RoleInvestigator)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerSuite) TestRemoveConflictWhileUnderAnalysis() {
	item := s.seedItem(evidence.StatusUnderAnalysis)

	w := s.do(http.MethodDelete, "/evidence/"+item.ID.String(), nil, id.RoleAdmin)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerSuite) TestPublicListing() {
	s.seedItem(evidence.StatusCollected)

	w := s.do(http.MethodGet, "/evidence/public", nil, id.RolePublic)
	s.Equal(http.StatusOK, w.Code)

	var body []map[string]any
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&body))
	s.Len(body, 1)
}
