package contracts

import "errors"

var TokenizeError = errors.New("formula can not be tokenized")

type FormulaTokenizer interface {
	Tokenize(text string) (Formula, error)
	ExtractCellReferences(formula Formula) []string
	Join(formula Formula) string
}

type Canonicalizer interface {
	Canonicalize(label string) string
}
