package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	dErrors "custody/pkg/domain-errors"
)

// RefID is an optional reference into a lookup dictionary. The zero RefID is
// absent and is stored as NULL, never as 0 or an empty string.
type RefID struct {
	id    int64
	valid bool
}

// Ref returns a present reference.
func Ref(id int64) RefID { return RefID{id: id, valid: true} }

func (r RefID) Valid() bool { return r.valid }

func (r RefID) Int64() int64 { return r.id }

func (r RefID) String() string {
	if !r.valid {
		return ""
	}
	return strconv.FormatInt(r.id, 10)
}

func (r RefID) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(r.id, 10)), nil
}

// UnmarshalJSON accepts a number, a numeric string, "" or null.
func (r *RefID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = RefID{}
		return nil
	}
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return errInvalidRef
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*r = RefID{}
			return nil
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return errInvalidRef
	}
	*r = Ref(id)
	return nil
}

var errInvalidRef = dErrors.New(dErrors.CodeValidation, "reference id must be a positive integer")

// Value implements driver.Valuer.
func (r RefID) Value() (driver.Value, error) {
	if !r.valid {
		return nil, nil
	}
	return r.id, nil
}

// Scan implements sql.Scanner.
func (r *RefID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = RefID{}
	case int64:
		*r = Ref(v)
	case []byte:
		return r.scanString(string(v))
	case string:
		return r.scanString(v)
	default:
		return fmt.Errorf("scan RefID: unsupported type %T", src)
	}
	return nil
}

func (r *RefID) scanString(s string) error {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("scan RefID: %w", err)
	}
	*r = Ref(id)
	return nil
}
