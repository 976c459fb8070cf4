package main

import (
	"fmt"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/parser/lexer"
	"sheetCalc/contracts"
	"strings"
)

const FormulaPrefix = "="

type FormulaTokenizer struct {
	canonicalizer contracts.Canonicalizer
}

func NewFormulaTokenizer(canonicalizer contracts.Canonicalizer) *FormulaTokenizer {
	return &FormulaTokenizer{canonicalizer: canonicalizer}
}

// Tokenize splits formula text (with or without leading `=`) into evaluator tokens
func (t *FormulaTokenizer) Tokenize(text string) (contracts.Formula, error) {
	source := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), FormulaPrefix))
	if source == "" {
		return contracts.Formula{}, nil
	}

	lexed, err := lexer.Lex(file.NewSource(source))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.TokenizeError, err)
	}

	formula := make(contracts.Formula, 0, len(lexed))
	for _, token := range lexed {
		switch token.Kind {
		case lexer.EOF:
			continue

		case lexer.Identifier:
			label := t.canonicalizer.Canonicalize(token.Value)
			if !IsCellReference(label) {
				return nil, fmt.Errorf("%w: `%s` is not a cell reference", contracts.TokenizeError, token.Value)
			}
			formula = append(formula, label)

		case lexer.Number, lexer.Operator, lexer.Bracket:
			if !IsNumber(token.Value) && !IsOperator(token.Value) &&
				!IsOpenParenthesis(token.Value) && !IsCloseParenthesis(token.Value) {
				return nil, fmt.Errorf("%w: unsupported token `%s`", contracts.TokenizeError, token.Value)
			}
			formula = append(formula, token.Value)

		default:
			return nil, fmt.Errorf("%w: unsupported token `%s`", contracts.TokenizeError, token.Value)
		}
	}

	return formula, nil
}

// ExtractCellReferences returns distinct referenced labels in order of appearance
func (t *FormulaTokenizer) ExtractCellReferences(formula contracts.Formula) []string {
	references := make([]string, 0)
	seen := map[string]bool{}

	for _, token := range formula {
		if IsCellReference(token) && !seen[token] {
			seen[token] = true
			references = append(references, token)
		}
	}

	return references
}

func (t *FormulaTokenizer) Join(formula contracts.Formula) string {
	return strings.Join(formula, " ")
}
