// Package models holds the custody movement records and the request bodies
// that create them.
package models

import (
	"encoding/json"
	"strings"

	"custody/internal/temporal"
	"custody/pkg/domain"
	dErrors "custody/pkg/domain-errors"
)

// Movement is a change of custody location or legal status. It is the root
// of a subject's custody tree.
type Movement struct {
	ID               domain.MovementID `json:"id"`
	SubjectID        domain.SubjectID  `json:"subjectId"`
	MovedAt          temporal.Value    `json:"timestamp"`
	FacilityID       RefID             `json:"facilityId"`
	FacilityName     string            `json:"facilityName"`
	CourtID          RefID             `json:"courtId"`
	CourtName        string            `json:"courtName"`
	MovementTypeID   RefID             `json:"movementTypeId"`
	MovementTypeName string            `json:"movementTypeName"`
	MotiveID         RefID             `json:"motiveId"`
	MotiveName       string            `json:"motiveName"`
}

// CellAssignment records the room a subject occupied after a movement.
type CellAssignment struct {
	ID         domain.CellAssignmentID `json:"id"`
	MovementID domain.MovementID       `json:"movementId"`
	Room       string                  `json:"room"`
	AssignedAt temporal.Value          `json:"timestamp"`
	MotiveID   RefID                   `json:"motiveId"`
	MotiveName string                  `json:"motiveName"`
	SectorID   RefID                   `json:"sectorId"`
	SectorName string                  `json:"sectorName"`
	RegimeID   RefID                   `json:"regimeId"`
	RegimeName string                  `json:"regimeName"`
}

// LegalDocument is metadata about a ruling that justifies a movement or a
// cell assignment. Parent is never nil on a stored document.
type LegalDocument struct {
	ID                   domain.DocumentID `json:"id"`
	Parent               Parent            `json:"-"`
	DocumentTypeID       RefID             `json:"documentTypeId"`
	DocumentTypeName     string            `json:"documentTypeName"`
	Number               string            `json:"number"`
	IssuedOn             temporal.Value    `json:"issueDate"`
	IssuingAuthorityID   RefID             `json:"issuingAuthorityId"`
	IssuingAuthorityName string            `json:"issuingAuthorityName"`
	Rationale            string            `json:"rationale"`
	Executor             string            `json:"executor"`
}

// MarshalJSON flattens Parent into parentId and parentKind.
func (d LegalDocument) MarshalJSON() ([]byte, error) {
	type plain LegalDocument
	out := struct {
		plain
		ParentID   int64      `json:"parentId"`
		ParentKind ParentKind `json:"parentKind"`
	}{plain: plain(d)}
	if d.Parent != nil {
		out.ParentID = d.Parent.RowID()
		out.ParentKind = d.Parent.Kind()
	}
	return json.Marshal(out)
}

// AuthorityKind names who performed a procedure action.
type AuthorityKind string

const (
	AuthorityInvestigatingOfficer AuthorityKind = "investigating_officer"
	AuthorityProsecution          AuthorityKind = "prosecution"
)

func (k AuthorityKind) IsValid() bool {
	return k == AuthorityInvestigatingOfficer || k == AuthorityProsecution
}

// ParseAuthorityKind accepts the stored spelling and its camel-case form.
func ParseAuthorityKind(s string) (AuthorityKind, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "")) {
	case "investigatingofficer":
		return AuthorityInvestigatingOfficer, nil
	case "prosecution":
		return AuthorityProsecution, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "authorityKind must be 'investigating_officer' or 'prosecution'")
}

// ProcedureEntry is a criminal-procedure action tied to a movement.
type ProcedureEntry struct {
	ID            domain.ProcedureEntryID `json:"id"`
	MovementID    domain.MovementID       `json:"movementId"`
	Date          temporal.Value          `json:"date"`
	AuthorityKind AuthorityKind           `json:"authorityKind"`
}

// Snapshot is the four flat collections read for one subject.
type Snapshot struct {
	Movements  []Movement
	Cells      []CellAssignment
	Documents  []LegalDocument
	Procedures []ProcedureEntry
}

// CascadeResult counts the rows removed by a movement delete.
type CascadeResult struct {
	CellDocuments     int64 `json:"cellDocuments"`
	MovementDocuments int64 `json:"movementDocuments"`
	Cells             int64 `json:"cells"`
	Procedures        int64 `json:"procedures"`
}

// OrphanReport counts legal documents whose parent row no longer exists.
type OrphanReport struct {
	MovementDocuments int64 `json:"movementDocuments"`
	CellDocuments     int64 `json:"cellDocuments"`
	DryRun            bool  `json:"dryRun"`
}

func (r OrphanReport) Total() int64 {
	return r.MovementDocuments + r.CellDocuments
}

// Order selects the movement ordering of a tree read.
type Order string

const (
	// OrderDesc is the current-state view, newest first.
	OrderDesc Order = "desc"
	// OrderAsc is the chronological trail.
	OrderAsc Order = "asc"
)

// ParseOrder defaults to OrderDesc for empty input.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc":
		return OrderDesc, nil
	case "asc":
		return OrderAsc, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "order must be 'asc' or 'desc'")
}
