// Package explicit evaluates Riemann's explicit formula for the weighted
// prime-power counting function J(x) from a list of nontrivial zeta zeros.
package explicit

import (
	"math"

	"github.com/dkilfoyle/Primes/internal/numerr"
	"github.com/dkilfoyle/Primes/internal/specfunc"
)

// SumZeroTerms computes the zero-pair contribution sum_rho li(x^rho) over
// the first k zeros, x >= 2.
//
// The series over zeros is only conditionally convergent: it has a defined
// value only when each zero 1/2+ti is summed together with its conjugate
// 1/2-ti, in ascending order of t. This function is the only entry point to
// the sum and adds both conjugate Ei values inside the loop body before
// accumulating, so an unpaired partial sum cannot be observed from outside.
// With the principal log branch the two imaginary parts cancel exactly and
// the accumulated value is real.
//
// Truncation at k terms is an explicit approximation; the truncation error
// is unbounded here and is a documented accuracy limitation of the caller.
func SumZeroTerms(x float64, zeros []float64, k int, gw specfunc.Gateway) (float64, error) {
	if x < 2 {
		return 0, &numerr.DomainError{
			Op:     "explicit.SumZeroTerms",
			Value:  x,
			Reason: "explicit formula requires x >= 2",
		}
	}
	if k < 0 {
		k = 0
	}
	if k > len(zeros) {
		k = len(zeros)
	}
	logx := math.Log(x)
	sum := 0.0
	for _, t := range zeros[:k] {
		up, err := gw.Ei(complex(0.5*logx, t*logx))
		if err != nil {
			return 0, err
		}
		down, err := gw.Ei(complex(0.5*logx, -t*logx))
		if err != nil {
			return 0, err
		}
		// Conjugate pair: imaginary parts cancel, real parts add.
		sum += real(up + down)
	}
	return sum, nil
}
