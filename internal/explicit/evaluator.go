package explicit

import (
	"math"

	"github.com/dkilfoyle/Primes/internal/specfunc"
)

// Evaluator computes J(x) from a fixed zero list via the explicit formula
//
//	J(x) = li(x) - sum_rho li(x^rho) - ln 2 + tail(x)
//
// truncated to the first Terms zero pairs. An Evaluator is immutable after
// construction and safe for concurrent use; every call is deterministic in
// its argument.
type Evaluator struct {
	gateway specfunc.Gateway
	zeros   []float64
	terms   int
	tail    TailStrategy
}

// NewEvaluator builds an evaluator over the first terms entries of zeros.
// A nil tail defaults to ConstantTail.
func NewEvaluator(gw specfunc.Gateway, zeros []float64, terms int, tail TailStrategy) *Evaluator {
	if tail == nil {
		tail = ConstantTail{}
	}
	if terms < 0 {
		terms = 0
	}
	if terms > len(zeros) {
		terms = len(zeros)
	}
	return &Evaluator{gateway: gw, zeros: zeros, terms: terms, tail: tail}
}

// Terms reports how many zero pairs each evaluation sums.
func (e *Evaluator) Terms() int { return e.terms }

// JFromZeros estimates J(x) for x >= 2. Domain and gateway failures
// propagate unmodified.
func (e *Evaluator) JFromZeros(x float64) (float64, error) {
	zeroSum, err := SumZeroTerms(x, e.zeros, e.terms, e.gateway)
	if err != nil {
		return 0, err
	}
	li, err := e.gateway.Li(x)
	if err != nil {
		return 0, err
	}
	return li - zeroSum - math.Ln2 + e.tail.Tail(x), nil
}
