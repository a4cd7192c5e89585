package handler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"custodia/internal/evidence"
	"custodia/internal/identity"
	id "custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
)

// maxUploadBytes bounds multipart intake bodies.
const maxUploadBytes = 32 << 20

// intakeForm is the wire shape of an intake request. It arrives either as
// JSON or as multipart form data when a file rides along.
type intakeForm struct {
	CaseID       string `json:"case_id"`
	EvidenceType string `json:"evidence_type"`
	Description  string `json:"description"`
	StorageName  string `json:"storage_location"`

	CollectedByEmail string `json:"collected_by_email"`
	CollectedByBadge string `json:"collected_by_badge"`
	CollectedByName  string `json:"collected_by_name"`

	file *evidence.FileUpload
}

func parseIntakeForm(r *http.Request) (*intakeForm, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return parseMultipartIntake(r)
	}

	var form intakeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	return &form, nil
}

func parseMultipartIntake(r *http.Request) (*intakeForm, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid multipart body")
	}
	form := &intakeForm{
		CaseID:           r.FormValue("case_id"),
		EvidenceType:     r.FormValue("evidence_type"),
		Description:      r.FormValue("description"),
		StorageName:      r.FormValue("storage_location"),
		CollectedByEmail: r.FormValue("collected_by_email"),
		CollectedByBadge: r.FormValue("collected_by_badge"),
		CollectedByName:  r.FormValue("collected_by_name"),
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		form.file = &evidence.FileUpload{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid file upload")
	}
	return form, nil
}

func (f *intakeForm) command() (evidence.IntakeCommand, error) {
	cmd := evidence.IntakeCommand{
		EvidenceType: f.EvidenceType,
		Description:  f.Description,
		StorageName:  f.StorageName,
		File:         f.file,
	}
	if f.CaseID != "" {
		caseID, err := id.ParseCaseID(f.CaseID)
		if err != nil {
			return cmd, err
		}
		cmd.CaseID = caseID
	}
	return cmd, nil
}

func (f *intakeForm) collectorLookup() identity.Lookup {
	return identity.Lookup{
		Email: f.CollectedByEmail,
		Badge: f.CollectedByBadge,
		Name:  f.CollectedByName,
	}
}

type setStatusRequest struct {
	Status string `json:"status"`
}
