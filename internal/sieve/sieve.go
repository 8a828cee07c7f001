// Package sieve provides ground truth for validating the explicit-formula
// estimate: exact prime counting by Eratosthenes and the exact weighted
// prime-power counting function J built on it. Nothing here participates
// in the estimation path.
package sieve

import (
	"math"

	"github.com/dkilfoyle/Primes/internal/numerr"
)

// Sieve holds an Eratosthenes sieve up to a fixed limit. Immutable after
// construction, safe for concurrent reads.
type Sieve struct {
	limit int
	// piPrefix[i] = number of primes <= i.
	piPrefix []int32
	primes   []int
}

// New sieves all primes up to limit (limit >= 2).
func New(limit int) (*Sieve, error) {
	if limit < 2 {
		return nil, &numerr.DomainError{
			Op:     "sieve.New",
			Value:  float64(limit),
			Reason: "sieve limit must be >= 2",
		}
	}
	composite := make([]bool, limit+1)
	for i := 2; i*i <= limit; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}
	s := &Sieve{limit: limit, piPrefix: make([]int32, limit+1)}
	count := int32(0)
	for i := 2; i <= limit; i++ {
		if !composite[i] {
			count++
			s.primes = append(s.primes, i)
		}
		s.piPrefix[i] = count
	}
	return s, nil
}

// Limit reports the largest x the sieve covers.
func (s *Sieve) Limit() int { return s.limit }

// PiExact returns pi(x), the exact count of primes <= x.
func (s *Sieve) PiExact(x int) (int, error) {
	if x < 0 || x > s.limit {
		return 0, &numerr.DomainError{
			Op:     "sieve.PiExact",
			Value:  float64(x),
			Reason: "x outside sieved range",
		}
	}
	if x < 2 {
		return 0, nil
	}
	return int(s.piPrefix[x]), nil
}

// JExact returns the exact J(x) = sum_{n>=1} pi(x^(1/n))/n, the function
// the explicit formula estimates. Terms vanish once x^(1/n) < 2.
func (s *Sieve) JExact(x float64) (float64, error) {
	if x < 2 {
		return 0, nil
	}
	if x > float64(s.limit) {
		return 0, &numerr.DomainError{
			Op:     "sieve.JExact",
			Value:  x,
			Reason: "x outside sieved range",
		}
	}
	total := 0.0
	for n := 1; ; n++ {
		// Snap roots that land a few ulps off an integer, so exact prime
		// powers like 8^(1/3) are not lost to pow rounding.
		root := math.Pow(x, 1/float64(n))
		if r := math.Round(root); math.Abs(root-r) < 1e-9 {
			root = r
		}
		if root < 2 {
			break
		}
		pi, err := s.PiExact(int(root))
		if err != nil {
			return 0, err
		}
		total += float64(pi) / float64(n)
	}
	return total, nil
}

// NthPrime returns the i-th prime (1-based) within the sieved range.
func (s *Sieve) NthPrime(i int) (int, error) {
	if i < 1 || i > len(s.primes) {
		return 0, &numerr.DomainError{
			Op:     "sieve.NthPrime",
			Value:  float64(i),
			Reason: "index outside sieved primes",
		}
	}
	return s.primes[i-1], nil
}

// PiFloor returns pi(floor(x)) for fractional x, the form the inversion's
// ground-truth J needs.
func (s *Sieve) PiFloor(x float64) (int, error) {
	return s.PiExact(int(math.Floor(x)))
}
