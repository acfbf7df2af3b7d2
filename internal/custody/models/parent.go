package models

import (
	"strings"

	"custody/pkg/domain"
	dErrors "custody/pkg/domain-errors"
)

// ParentKind is the legal_documents.parent_kind discriminator.
type ParentKind string

const (
	ParentKindMovement       ParentKind = "movement"
	ParentKindCellAssignment ParentKind = "cell_assignment"
)

// ParseParentKind accepts the stored spelling and its camel-case form
// ("Movement", "CellAssignment").
func ParseParentKind(s string) (ParentKind, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "")) {
	case "movement":
		return ParentKindMovement, nil
	case "cellassignment":
		return ParentKindCellAssignment, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "parentKind must be 'movement' or 'cell_assignment'")
}

// Parent is the owner of a LegalDocument: exactly one of MovementParent or
// CellParent.
type Parent interface {
	Kind() ParentKind
	RowID() int64
	isParent()
}

type MovementParent struct {
	MovementID domain.MovementID
}

func (MovementParent) Kind() ParentKind { return ParentKindMovement }
func (p MovementParent) RowID() int64   { return int64(p.MovementID) }
func (MovementParent) isParent()        {}

type CellParent struct {
	CellAssignmentID domain.CellAssignmentID
}

func (CellParent) Kind() ParentKind { return ParentKindCellAssignment }
func (p CellParent) RowID() int64   { return int64(p.CellAssignmentID) }
func (CellParent) isParent()        {}

// NewParent builds the Parent variant for a stored (kind, id) pair.
func NewParent(kind ParentKind, id int64) (Parent, error) {
	if id <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "parentId must be a positive integer")
	}
	switch kind {
	case ParentKindMovement:
		return MovementParent{MovementID: domain.MovementID(id)}, nil
	case ParentKindCellAssignment:
		return CellParent{CellAssignmentID: domain.CellAssignmentID(id)}, nil
	}
	return nil, dErrors.New(dErrors.CodeValidation, "unknown parent kind: "+string(kind))
}
