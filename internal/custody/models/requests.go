package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"custody/internal/temporal"
	"custody/pkg/domain"
	dErrors "custody/pkg/domain-errors"
)

// Validate checks the struct tags on request bodies.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkTags runs the tag rules and reports the first failure as a
// validation error.
func checkTags(req any) error {
	err := Validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid request")
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return dErrors.New(dErrors.CodeValidation, fe.Field()+" is required")
	case "max":
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be %s characters or less", fe.Field(), fe.Param()))
	case "gt":
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param()))
	}
	return dErrors.New(dErrors.CodeValidation, fe.Field()+" is invalid")
}

// MovementRequest is the body of create and update movement. Update replaces
// every field; an omitted reference becomes NULL.
type MovementRequest struct {
	Timestamp      string `json:"timestamp" validate:"required,max=32"`
	FacilityID     RefID  `json:"facilityId"`
	CourtID        RefID  `json:"courtId"`
	MovementTypeID RefID  `json:"movementTypeId"`
	MotiveID       RefID  `json:"motiveId"`

	movedAt temporal.Value
}

func (r *MovementRequest) Normalize() {
	if r == nil {
		return
	}
	r.Timestamp = strings.TrimSpace(r.Timestamp)
}

// Follows validation order: Required -> Syntax.
func (r *MovementRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	r.Normalize()
	if err := checkTags(r); err != nil {
		return err
	}
	v, err := temporal.Parse(r.Timestamp, temporal.DateTime)
	if err != nil {
		return err
	}
	r.movedAt = v
	return nil
}

// Movement builds the record to store. Call after Validate.
func (r *MovementRequest) Movement(id domain.MovementID, subject domain.SubjectID) Movement {
	return Movement{
		ID:             id,
		SubjectID:      subject,
		MovedAt:        r.movedAt,
		FacilityID:     r.FacilityID,
		CourtID:        r.CourtID,
		MovementTypeID: r.MovementTypeID,
		MotiveID:       r.MotiveID,
	}
}

// CellAssignmentRequest is the body of POST /movements/{id}/cells.
type CellAssignmentRequest struct {
	Room      string `json:"room" validate:"required,max=32"`
	Timestamp string `json:"timestamp" validate:"required,max=32"`
	MotiveID  RefID  `json:"motiveId"`
	SectorID  RefID  `json:"sectorId"`
	RegimeID  RefID  `json:"regimeId"`

	assignedAt temporal.Value
}

func (r *CellAssignmentRequest) Normalize() {
	if r == nil {
		return
	}
	r.Room = strings.TrimSpace(r.Room)
	r.Timestamp = strings.TrimSpace(r.Timestamp)
}

func (r *CellAssignmentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	r.Normalize()
	if err := checkTags(r); err != nil {
		return err
	}
	v, err := temporal.Parse(r.Timestamp, temporal.DateTime)
	if err != nil {
		return err
	}
	r.assignedAt = v
	return nil
}

func (r *CellAssignmentRequest) CellAssignment(movementID domain.MovementID) CellAssignment {
	return CellAssignment{
		MovementID: movementID,
		Room:       r.Room,
		AssignedAt: r.assignedAt,
		MotiveID:   r.MotiveID,
		SectorID:   r.SectorID,
		RegimeID:   r.RegimeID,
	}
}

// LegalDocumentRequest is the body of POST /movements/docs.
type LegalDocumentRequest struct {
	ParentID           int64  `json:"parentId" validate:"required,gt=0"`
	ParentKind         string `json:"parentKind" validate:"required"`
	DocumentTypeID     RefID  `json:"documentTypeId"`
	Number             string `json:"number" validate:"max=64"`
	IssueDate          string `json:"issueDate" validate:"max=32"`
	IssuingAuthorityID RefID  `json:"issuingAuthorityId"`
	Rationale          string `json:"rationale" validate:"max=2000"`
	Executor           string `json:"executor" validate:"max=255"`

	parent   Parent
	issuedOn temporal.Value
}

func (r *LegalDocumentRequest) Normalize() {
	if r == nil {
		return
	}
	r.ParentKind = strings.TrimSpace(r.ParentKind)
	r.Number = strings.TrimSpace(r.Number)
	r.IssueDate = strings.TrimSpace(r.IssueDate)
	r.Rationale = strings.TrimSpace(r.Rationale)
	r.Executor = strings.TrimSpace(r.Executor)
}

func (r *LegalDocumentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	r.Normalize()
	if err := checkTags(r); err != nil {
		return err
	}
	kind, err := ParseParentKind(r.ParentKind)
	if err != nil {
		return err
	}
	parent, err := NewParent(kind, r.ParentID)
	if err != nil {
		return err
	}
	r.parent = parent
	r.issuedOn = temporal.Value{}
	if r.IssueDate != "" {
		v, err := temporal.Parse(r.IssueDate, temporal.Date)
		if err != nil {
			return err
		}
		r.issuedOn = v
	}
	return nil
}

func (r *LegalDocumentRequest) LegalDocument() LegalDocument {
	return LegalDocument{
		Parent:             r.parent,
		DocumentTypeID:     r.DocumentTypeID,
		Number:             r.Number,
		IssuedOn:           r.issuedOn,
		IssuingAuthorityID: r.IssuingAuthorityID,
		Rationale:          r.Rationale,
		Executor:           r.Executor,
	}
}

// ProcedureEntryRequest is the body of POST /movements/{id}/up.
type ProcedureEntryRequest struct {
	Date          string `json:"date" validate:"required,max=32"`
	AuthorityKind string `json:"authorityKind" validate:"required"`

	date temporal.Value
	kind AuthorityKind
}

func (r *ProcedureEntryRequest) Normalize() {
	if r == nil {
		return
	}
	r.Date = strings.TrimSpace(r.Date)
	r.AuthorityKind = strings.TrimSpace(r.AuthorityKind)
}

func (r *ProcedureEntryRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	r.Normalize()
	if err := checkTags(r); err != nil {
		return err
	}
	kind, err := ParseAuthorityKind(r.AuthorityKind)
	if err != nil {
		return err
	}
	v, err := temporal.Parse(r.Date, temporal.Date)
	if err != nil {
		return err
	}
	r.kind = kind
	r.date = v
	return nil
}

func (r *ProcedureEntryRequest) ProcedureEntry(movementID domain.MovementID) ProcedureEntry {
	return ProcedureEntry{
		MovementID:    movementID,
		Date:          r.date,
		AuthorityKind: r.kind,
	}
}
