// Package reference serves the read-only lookup dictionaries (facilities,
// courts, movement types, motives and the rest) behind GET /meta/movements.
package reference

// Kind names one dictionary in the reference_items table.
type Kind string

const (
	KindFacility         Kind = "facility"
	KindCourt            Kind = "court"
	KindMovementType     Kind = "movement_type"
	KindMotive           Kind = "motive"
	KindCellMotive       Kind = "cell_motive"
	KindSector           Kind = "sector"
	KindRegime           Kind = "regime"
	KindDocumentType     Kind = "document_type"
	KindIssuingAuthority Kind = "issuing_authority"
)

// Kinds lists every dictionary served.
var Kinds = []Kind{
	KindFacility,
	KindCourt,
	KindMovementType,
	KindMotive,
	KindCellMotive,
	KindSector,
	KindRegime,
	KindDocumentType,
	KindIssuingAuthority,
}

// Row is one reference_items row.
type Row struct {
	Kind Kind   `db:"kind"`
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type Item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Dictionaries is the /meta/movements payload. Every list is non-nil.
type Dictionaries struct {
	Facilities         []Item `json:"facilities"`
	Courts             []Item `json:"courts"`
	MovementTypes      []Item `json:"movementTypes"`
	Motives            []Item `json:"motives"`
	CellMotives        []Item `json:"cellMotives"`
	Sectors            []Item `json:"sectors"`
	Regimes            []Item `json:"regimes"`
	DocumentTypes      []Item `json:"documentTypes"`
	IssuingAuthorities []Item `json:"issuingAuthorities"`
}

func (d *Dictionaries) list(k Kind) *[]Item {
	switch k {
	case KindFacility:
		return &d.Facilities
	case KindCourt:
		return &d.Courts
	case KindMovementType:
		return &d.MovementTypes
	case KindMotive:
		return &d.Motives
	case KindCellMotive:
		return &d.CellMotives
	case KindSector:
		return &d.Sectors
	case KindRegime:
		return &d.Regimes
	case KindDocumentType:
		return &d.DocumentTypes
	case KindIssuingAuthority:
		return &d.IssuingAuthorities
	}
	return nil
}

// Group builds Dictionaries from flat rows, keeping row order within a kind.
// Rows of unknown kinds are ignored.
func Group(rows []Row) *Dictionaries {
	d := &Dictionaries{}
	for _, k := range Kinds {
		*d.list(k) = []Item{}
	}
	for _, r := range rows {
		if l := d.list(r.Kind); l != nil {
			*l = append(*l, Item{ID: r.ID, Name: r.Name})
		}
	}
	return d
}
