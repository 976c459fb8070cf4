package contracts

import "errors"

// Formula is an ordered sequence of tokens of a single cell
type Formula []string

// CellSnapshot is the read-only view of a cell that a formula referencing it may observe
type CellSnapshot struct {
	HasFormula bool
	Error      string
	Value      float64
}

// CellRecord is a cell as it is persisted in a sheet
type CellRecord struct {
	Label   string
	Formula Formula
	Value   float64
	Error   string
}

func (r *CellRecord) Snapshot() CellSnapshot {
	return CellSnapshot{
		HasFormula: len(r.Formula) != 0,
		Error:      r.Error,
		Value:      r.Value,
	}
}

// Cell is the API representation of a cell
type Cell struct {
	Label   string `json:"label"`
	Formula string `json:"formula"`
	Value   string `json:"value"`
	Error   string `json:"error"`
	Display string `json:"display"`
}

type CellList map[string]*Cell

var CellNotFoundError = errors.New("cell not found")

var CellLabelError = errors.New("cell label should be column letters followed by row number (A1, BC23)")

var CircularReferenceError = errors.New("circular reference detected")
