package contracts

import "errors"

type SheetRepository interface {
	SetCell(sheetId string, label string, text string) (*Cell, error)
	GetCell(sheetId string, label string) (*Cell, error)
	GetCellList(sheetId string) (CellList, error)
	EvaluateFormula(sheetId string, text string) (*Cell, error)
}

var SheetNotFoundError = errors.New("sheet not found")
