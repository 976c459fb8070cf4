package contracts

// Error codes are rendered directly by clients, keep the literals stable
const (
	ErrorPartial            = "#ERR"
	ErrorDivideByZero       = "#DIV/0!"
	ErrorInvalidCell        = "#REF!"
	ErrorInvalidFormula     = "#ERR"
	ErrorInvalidNumber      = "#ERR"
	ErrorInvalidOperator    = "#ERR"
	ErrorMissingParentheses = "#ERR"
	ErrorEmptyFormula       = "#EMPTY!"
)
