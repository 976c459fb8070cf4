package main

import (
	"math"
	"sheetCalc/contracts"
)

type FormulaEvaluator struct {
	resolver     contracts.CellResolver
	result       float64
	errorMessage string
}

// stackStatus is the outcome of a single stack operation.
// A status with abort set stops the evaluation, otherwise the code is kept and evaluation goes on.
type stackStatus struct {
	code  string
	abort bool
}

var statusOk = stackStatus{}

func abortWith(code string) stackStatus {
	return stackStatus{code: code, abort: true}
}

func NewFormulaEvaluator(resolver contracts.CellResolver) *FormulaEvaluator {
	return &FormulaEvaluator{resolver: resolver}
}

func NewFormulaEvaluatorFactory() contracts.FormulaEvaluatorFactory {
	return func(resolver contracts.CellResolver) contracts.FormulaEvaluator {
		return NewFormulaEvaluator(resolver)
	}
}

// Evaluate computes the formula, the outcome is available through Result and Error
func (e *FormulaEvaluator) Evaluate(formula contracts.Formula) {
	outcome := e.Calculate(formula)
	e.result = outcome.Value
	e.errorMessage = outcome.Error
}

func (e *FormulaEvaluator) Result() float64 {
	return e.result
}

func (e *FormulaEvaluator) Error() string {
	return e.errorMessage
}

func (e *FormulaEvaluator) Calculate(formula contracts.Formula) contracts.EvaluationResult {
	if len(formula) == 0 {
		return contracts.EvaluationResult{Value: 0, Error: contracts.ErrorEmptyFormula}
	}

	// number followed by a single dangling token, e.g. `3 +`
	if len(formula) == 2 && IsNumber(formula[0]) {
		return contracts.EvaluationResult{Value: parseNumber(formula[0]), Error: contracts.ErrorInvalidFormula}
	}

	value, status := e.evaluateTokens(formula)
	if status.abort {
		return failedResult(status.code)
	}

	return contracts.EvaluationResult{Value: value, Error: status.code}
}

func failedResult(code string) contracts.EvaluationResult {
	if code == contracts.ErrorDivideByZero {
		return contracts.EvaluationResult{Value: math.Inf(1), Error: code}
	}

	return contracts.EvaluationResult{Value: 0, Error: code}
}

func (e *FormulaEvaluator) evaluateTokens(tokens contracts.Formula) (float64, stackStatus) {
	operands := make([]float64, 0, len(tokens)/2+1)
	operators := make([]string, 0, len(tokens)/2)

	// recoverable status, reported along with the value when nothing aborts
	kept := statusOk

	apply := func(operator string) bool {
		var status stackStatus
		operands, status = applyOperator(operands, operator)
		if status.abort {
			kept = status
			return false
		}
		if status.code != "" {
			kept = status
		}
		return true
	}

	for _, token := range tokens {
		switch {
		case IsNumber(token):
			operands = append(operands, parseNumber(token))

		case IsCellReference(token):
			value, code := e.resolveCell(token)
			if code != "" {
				return 0, abortWith(code)
			}
			operands = append(operands, value)

		case IsOperator(token):
			for len(operators) > 0 && hasHigherOrEqualPrecedence(operators[len(operators)-1], token) {
				operator := operators[len(operators)-1]
				operators = operators[:len(operators)-1]
				if !apply(operator) {
					return 0, kept
				}
			}
			operators = append(operators, token)

		case IsOpenParenthesis(token):
			operators = append(operators, token)

		case IsCloseParenthesis(token):
			for len(operators) > 0 && !IsOpenParenthesis(operators[len(operators)-1]) {
				operator := operators[len(operators)-1]
				operators = operators[:len(operators)-1]
				if !apply(operator) {
					return 0, kept
				}
			}
			if len(operators) == 0 {
				return 0, abortWith(contracts.ErrorMissingParentheses)
			}
			operators = operators[:len(operators)-1]
		}
	}

	for len(operators) > 0 {
		operator := operators[len(operators)-1]
		operators = operators[:len(operators)-1]

		if IsOpenParenthesis(operator) {
			return 0, abortWith(contracts.ErrorMissingParentheses)
		}
		if !apply(operator) {
			return 0, kept
		}
	}

	if len(operands) != 1 {
		return 0, abortWith(contracts.ErrorInvalidFormula)
	}

	return operands[0], kept
}

// applyOperator pops two operands and pushes the outcome of the operator.
// Missing operands leave the stack untouched and are not fatal.
func applyOperator(operands []float64, operator string) ([]float64, stackStatus) {
	if len(operands) < 2 {
		return operands, stackStatus{code: contracts.ErrorInvalidFormula}
	}

	right := operands[len(operands)-1]
	left := operands[len(operands)-2]
	operands = operands[:len(operands)-2]

	var value float64
	switch operator {
	case "+":
		value = left + right
	case "-":
		value = left - right
	case "*":
		value = left * right
	case "/":
		if right == 0 {
			return operands, abortWith(contracts.ErrorDivideByZero)
		}
		value = left / right
	default:
		return operands, abortWith(contracts.ErrorInvalidOperator)
	}

	return append(operands, value), statusOk
}

/**
 * resolveCell returns
 *  - [0, error] if the referenced cell has an error (other than empty formula)
 *  - [0, invalidCell] if the referenced cell has no formula
 *  - [value, ""] otherwise
 */
func (e *FormulaEvaluator) resolveCell(label string) (float64, string) {
	if e.resolver == nil {
		return 0, contracts.ErrorInvalidCell
	}

	cell := e.resolver.GetCellByLabel(label)

	if cell.Error != "" && cell.Error != contracts.ErrorEmptyFormula {
		return 0, cell.Error
	}

	if !cell.HasFormula {
		return 0, contracts.ErrorInvalidCell
	}

	return cell.Value, ""
}
