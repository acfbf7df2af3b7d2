// Package tree rebuilds a subject's custody tree from the flat collections the
// store returns.
package tree

import (
	"custody/internal/custody/models"
	"custody/pkg/domain"
)

// Node is one movement with everything it owns. The slices are never nil so
// they encode as [] rather than null.
type Node struct {
	models.Movement
	Docs  []models.LegalDocument  `json:"docs"`
	Cells []CellNode              `json:"cells"`
	Up    []models.ProcedureEntry `json:"up"`
}

// CellNode is a cell assignment with its own documents.
type CellNode struct {
	models.CellAssignment
	Docs []models.LegalDocument `json:"docs"`
}

// Dropped counts rows whose parent was not in the snapshot.
type Dropped struct {
	Cells      int
	Documents  int
	Procedures int
}

func (d Dropped) Total() int { return d.Cells + d.Documents + d.Procedures }

// index holds parent id -> children. Documents are split by parent kind so a
// movement and a cell assignment sharing a numeric id never see each other's
// documents.
type index struct {
	cells         map[domain.MovementID][]models.CellAssignment
	movementDocs  map[domain.MovementID][]models.LegalDocument
	cellDocs      map[domain.CellAssignmentID][]models.LegalDocument
	procedures    map[domain.MovementID][]models.ProcedureEntry
	movementIDs   map[domain.MovementID]struct{}
	attachedCells map[domain.CellAssignmentID]struct{}
}

func buildIndex(s models.Snapshot) index {
	ix := index{
		cells:         make(map[domain.MovementID][]models.CellAssignment),
		movementDocs:  make(map[domain.MovementID][]models.LegalDocument),
		cellDocs:      make(map[domain.CellAssignmentID][]models.LegalDocument),
		procedures:    make(map[domain.MovementID][]models.ProcedureEntry),
		movementIDs:   make(map[domain.MovementID]struct{}, len(s.Movements)),
		attachedCells: make(map[domain.CellAssignmentID]struct{}, len(s.Cells)),
	}
	for _, m := range s.Movements {
		ix.movementIDs[m.ID] = struct{}{}
	}
	for _, c := range s.Cells {
		ix.cells[c.MovementID] = append(ix.cells[c.MovementID], c)
		if _, ok := ix.movementIDs[c.MovementID]; ok {
			ix.attachedCells[c.ID] = struct{}{}
		}
	}
	for _, d := range s.Documents {
		switch p := d.Parent.(type) {
		case models.MovementParent:
			ix.movementDocs[p.MovementID] = append(ix.movementDocs[p.MovementID], d)
		case models.CellParent:
			ix.cellDocs[p.CellAssignmentID] = append(ix.cellDocs[p.CellAssignmentID], d)
		}
	}
	for _, p := range s.Procedures {
		ix.procedures[p.MovementID] = append(ix.procedures[p.MovementID], p)
	}
	return ix
}

// Assemble nests cells, documents and procedure entries under their
// movements. Movements keep the order of s.Movements; children keep the order
// they were fetched in. Rows whose parent is missing are left out and counted.
func Assemble(s models.Snapshot) ([]Node, Dropped) {
	ix := buildIndex(s)

	nodes := make([]Node, 0, len(s.Movements))
	for _, m := range s.Movements {
		node := Node{
			Movement: m,
			Docs:     nonNil(ix.movementDocs[m.ID]),
			Cells:    make([]CellNode, 0, len(ix.cells[m.ID])),
			Up:       nonNil(ix.procedures[m.ID]),
		}
		for _, c := range ix.cells[m.ID] {
			node.Cells = append(node.Cells, CellNode{
				CellAssignment: c,
				Docs:           nonNil(ix.cellDocs[c.ID]),
			})
		}
		nodes = append(nodes, node)
	}

	return nodes, countDropped(s, ix)
}

func countDropped(s models.Snapshot, ix index) Dropped {
	var d Dropped
	for _, c := range s.Cells {
		if _, ok := ix.movementIDs[c.MovementID]; !ok {
			d.Cells++
		}
	}
	for _, p := range s.Procedures {
		if _, ok := ix.movementIDs[p.MovementID]; !ok {
			d.Procedures++
		}
	}
	for _, doc := range s.Documents {
		switch p := doc.Parent.(type) {
		case models.MovementParent:
			if _, ok := ix.movementIDs[p.MovementID]; !ok {
				d.Documents++
			}
		case models.CellParent:
			if _, ok := ix.attachedCells[p.CellAssignmentID]; !ok {
				d.Documents++
			}
		default:
			d.Documents++
		}
	}
	return d
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
