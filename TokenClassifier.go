package main

import (
	"regexp"
	"strconv"
)

const (
	OpenParenthesis  = "("
	CloseParenthesis = ")"
)

// unsigned or signed decimal with optional exponent: 3, -2.5, .5, 1e3
var numberRegex = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)

var cellLabelRegex = regexp.MustCompile(`^[A-Z]+[1-9]\d*$`)

var operatorPrecedence = map[string]int{
	"+": 1,
	"-": 1,
	"*": 2,
	"/": 2,
}

func IsNumber(token string) bool {
	return numberRegex.MatchString(token)
}

func IsCellReference(token string) bool {
	return cellLabelRegex.MatchString(token)
}

func IsOperator(token string) bool {
	_, ok := operatorPrecedence[token]
	return ok
}

func IsOpenParenthesis(token string) bool {
	return token == OpenParenthesis
}

func IsCloseParenthesis(token string) bool {
	return token == CloseParenthesis
}

// parseNumber expects a token accepted by IsNumber. Out of range literals become ±Inf
func parseNumber(token string) float64 {
	value, _ := strconv.ParseFloat(token, 64)
	return value
}

// hasHigherOrEqualPrecedence reports whether the pending stack top must be applied before incoming
func hasHigherOrEqualPrecedence(stackTop string, incoming string) bool {
	topPrecedence, ok := operatorPrecedence[stackTop]
	if !ok {
		return false
	}

	return topPrecedence >= operatorPrecedence[incoming]
}
