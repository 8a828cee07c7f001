// Package inversion recovers pi(x) from a prime-power counting function
// J(x) by Mobius inversion over the fractional roots of x:
//
//	pi(x) = sum_{n>=1, x^(1/n)>=2} mu(n)/n * J(x^(1/n))
//
// The inversion is an exact identity, not an approximation; all estimation
// error lives in the supplied J.
package inversion

import (
	"math"

	"github.com/dkilfoyle/Primes/internal/mobius"
	"github.com/dkilfoyle/Primes/internal/numerr"
)

// JFunc is any prime-power counting function J(x). It may be the
// zeros-based explicit-formula evaluator or an exact sieve-backed J; the
// inversion does not care which, so the two can cross-validate each other.
type JFunc func(x float64) (float64, error)

// DefaultMaxN bounds the root iteration. x^(1/n) falls below 2 within 30
// steps for every x up to 2^30 (~10^9); an x needing more is a
// configuration mismatch, reported rather than looped past.
const DefaultMaxN = mobius.MaxN

// RootTerm records one contributing root of the inversion, kept for
// inspection and testing.
type RootTerm struct {
	N      int     `json:"n"`
	Root   float64 `json:"root"`
	Weight float64 `json:"weight"`
	J      float64 `json:"j"`
	Term   float64 `json:"term"`
}

// Estimate is the result of one inversion: the pi(x) total and the full
// per-root breakdown in evaluation order.
type Estimate struct {
	Total     float64    `json:"total"`
	Breakdown []RootTerm `json:"breakdown"`
}

// PiEstimate inverts j at x >= 2. maxN <= 0 selects DefaultMaxN. Roots
// with mu(n) = 0 contribute nothing and skip the J evaluation; that is an
// optimization with no observable effect. If the iteration would pass maxN
// with the root still >= 2, a ConvergenceError is returned.
func PiEstimate(x float64, j JFunc, maxN int) (*Estimate, error) {
	if x < 2 {
		return nil, &numerr.DomainError{
			Op:     "inversion.PiEstimate",
			Value:  x,
			Reason: "pi estimate requires x >= 2",
		}
	}
	if maxN <= 0 {
		maxN = DefaultMaxN
	}

	est := &Estimate{}
	for n := 1; ; n++ {
		// Snap roots a few ulps off an integer so the loop boundary agrees
		// with the exact J at perfect powers like 8^(1/3).
		root := math.Pow(x, 1/float64(n))
		if r := math.Round(root); math.Abs(root-r) < 1e-9 {
			root = r
		}
		if root < 2 {
			break
		}
		if n > maxN {
			return nil, &numerr.ConvergenceError{
				Op:     "inversion.PiEstimate",
				Limit:  maxN,
				Reason: "unexpectedly many roots: x too large for maxN",
			}
		}
		mu, err := mobius.Mu(n)
		if err != nil {
			return nil, err
		}
		if mu == 0 {
			continue
		}
		weight := float64(mu) / float64(n)
		jv, err := j(root)
		if err != nil {
			return nil, err
		}
		term := weight * jv
		est.Breakdown = append(est.Breakdown, RootTerm{
			N:      n,
			Root:   root,
			Weight: weight,
			J:      jv,
			Term:   term,
		})
		est.Total += term
	}
	return est, nil
}
