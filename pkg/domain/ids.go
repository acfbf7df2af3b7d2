package domain

import (
	"strconv"
	"strings"

	dErrors "custody/pkg/domain-errors"
)

// SubjectID is the national identifier of a tracked person.
// Invariant: 4 to 20 ASCII letters or digits, no surrounding whitespace.
//
// Usage: construct via ParseSubjectID at trust boundaries; direct casting
// bypasses validation.
type SubjectID string

const (
	minSubjectIDLen = 4
	maxSubjectIDLen = 20
)

// ParseSubjectID constructs a SubjectID from external input.
//
// Errors: returns CodeInvalidInput when the value is empty, has the wrong
// length, or contains anything other than ASCII letters and digits.
func ParseSubjectID(s string) (SubjectID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "subject id cannot be empty")
	}
	if len(s) < minSubjectIDLen || len(s) > maxSubjectIDLen {
		return "", dErrors.New(dErrors.CodeInvalidInput, "subject id must be 4 to 20 characters")
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return "", dErrors.New(dErrors.CodeInvalidInput, "subject id must be alphanumeric")
		}
	}
	return SubjectID(s), nil
}

func (s SubjectID) String() string { return string(s) }

func (s SubjectID) IsNil() bool { return s == "" }

// Row identifiers. Distinct types keep a cell assignment id from being passed
// where a movement id is expected.
type (
	MovementID       int64
	CellAssignmentID int64
	DocumentID       int64
	ProcedureEntryID int64
)

func (id MovementID) String() string       { return strconv.FormatInt(int64(id), 10) }
func (id CellAssignmentID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id DocumentID) String() string       { return strconv.FormatInt(int64(id), 10) }
func (id ProcedureEntryID) String() string { return strconv.FormatInt(int64(id), 10) }

func ParseMovementID(s string) (MovementID, error) {
	v, err := parseRowID(s, "movement")
	return MovementID(v), err
}

func ParseCellAssignmentID(s string) (CellAssignmentID, error) {
	v, err := parseRowID(s, "cell assignment")
	return CellAssignmentID(v), err
}

func ParseDocumentID(s string) (DocumentID, error) {
	v, err := parseRowID(s, "document")
	return DocumentID(v), err
}

func ParseProcedureEntryID(s string) (ProcedureEntryID, error) {
	v, err := parseRowID(s, "procedure entry")
	return ProcedureEntryID(v), err
}

// parseRowID accepts positive base-10 integers only.
func parseRowID(s, what string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, what+" id cannot be empty")
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+what+" id")
	}
	return v, nil
}
