package contracts

import "go.etcd.io/bbolt"

type CellDependencyTree interface {
	// SetDependsOn
	/**
	 * Example, for formula `A1 = B1 + C1`:
	 * `dependantLabel` depends on `dependingOnLabels`
	 *  SetDependsOn(tx, sheetId, "A1", []string{"B1", "C1"})
	 * `E1 = A1 * C1`
	 *  SetDependsOn(tx, sheetId, "E1", []string{"A1", "C1"})
	 */
	SetDependsOn(tx *bbolt.Tx, sheetId []byte, dependantLabel string, dependingOnLabels []string) error

	// GetDependants
	/**
	 * For formulas
	 *    - `A1 = B1 + C1` => A1 is dependant of B1 and C1;
	 *    - `E1 = A1 * C1` => E1 is dependant of A1 and C1;
	 *      recursively, E1 is dependant of B1 (via A1)
	 * GetDependants("B1") should return ["A1", "E1"]
	 */
	GetDependants(tx *bbolt.Tx, sheetId []byte, dependingOnLabel string) []string

	// GetDependingOn returns direct precedents of the cell, in formula order
	GetDependingOn(tx *bbolt.Tx, sheetId []byte, dependantLabel string) []string

	// SortDependants orders labels so that every cell comes after the cells it depends on
	SortDependants(tx *bbolt.Tx, sheetId []byte, labels []string) []string
}
