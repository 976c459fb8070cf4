package contracts

// CellResolver gives the evaluator access to the cells referenced by a formula
type CellResolver interface {
	GetCellByLabel(label string) CellSnapshot
}

type CellResolverFunc func(label string) CellSnapshot

func (f CellResolverFunc) GetCellByLabel(label string) CellSnapshot {
	return f(label)
}

// EvaluationResult always carries some value, success is signaled by an empty Error
type EvaluationResult struct {
	Value float64
	Error string
}

func (r EvaluationResult) Ok() bool {
	return r.Error == ""
}

type FormulaEvaluator interface {
	Evaluate(formula Formula)
	Result() float64
	Error() string
	Calculate(formula Formula) EvaluationResult
}

type FormulaEvaluatorFactory func(resolver CellResolver) FormulaEvaluator

// CellSnapshotsGetter returns records for the given labels, nil for unknown labels
type CellSnapshotsGetter func(labels []string) []*CellRecord

type EvaluationRecorder interface {
	ObserveEvaluation(formula Formula, result EvaluationResult)
}
