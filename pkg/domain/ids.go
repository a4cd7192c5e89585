package domain

import (
	"github.com/google/uuid"

	dErrors "custodia/pkg/domain-errors"
)

// Typed entity identifiers. Wrapping uuid.UUID in distinct types makes
// cross-entity assignment a compile error (passing a CaseID where an
// EvidenceID is expected cannot happen silently).
type (
	UserID     uuid.UUID
	CaseID     uuid.UUID
	EvidenceID uuid.UUID
	TransferID uuid.UUID
	ReportID   uuid.UUID
	StorageID  uuid.UUID
)

func (id UserID) String() string     { return uuid.UUID(id).String() }
func (id CaseID) String() string     { return uuid.UUID(id).String() }
func (id EvidenceID) String() string { return uuid.UUID(id).String() }
func (id TransferID) String() string { return uuid.UUID(id).String() }
func (id ReportID) String() string   { return uuid.UUID(id).String() }
func (id StorageID) String() string  { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id CaseID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id EvidenceID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id TransferID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ReportID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id StorageID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

// parseUUID enforces the trust-boundary rule for all IDs: valid, non-empty,
// non-nil UUIDs only.
func parseUUID(raw, field string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is not a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must not be the nil UUID")
	}
	return parsed, nil
}

func ParseUserID(raw string) (UserID, error) {
	u, err := parseUUID(raw, "user id")
	return UserID(u), err
}

func ParseCaseID(raw string) (CaseID, error) {
	u, err := parseUUID(raw, "case id")
	return CaseID(u), err
}

func ParseEvidenceID(raw string) (EvidenceID, error) {
	u, err := parseUUID(raw, "evidence id")
	return EvidenceID(u), err
}

func ParseTransferID(raw string) (TransferID, error) {
	u, err := parseUUID(raw, "transfer id")
	return TransferID(u), err
}

func ParseReportID(raw string) (ReportID, error) {
	u, err := parseUUID(raw, "report id")
	return ReportID(u), err
}

func ParseStorageID(raw string) (StorageID, error) {
	u, err := parseUUID(raw, "storage id")
	return StorageID(u), err
}
