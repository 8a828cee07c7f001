// Package mobius provides a static table of the Mobius function mu(n).
package mobius

import "github.com/dkilfoyle/Primes/internal/numerr"

// MaxN is the largest n the table covers. The inversion loop never needs
// more: x^(1/31) < 2 for every x within double-precision reach of the
// explicit formula, so a lookup past MaxN is a caller bug, not a gap to
// paper over with zeros.
const MaxN = 30

// mu[n-1] = mu(n) for n in 1..MaxN.
var mu = [MaxN]int{
	1, -1, -1, 0, -1, 1, -1, 0, 0, 1,
	-1, 0, -1, 1, 1, 0, -1, 0, -1, 0,
	1, 1, -1, 0, 0, 1, 0, 0, -1, -1,
}

// Mu returns mu(n) for 1 <= n <= MaxN. Outside that range it returns a
// DomainError rather than silently reporting zero.
func Mu(n int) (int, error) {
	if n < 1 || n > MaxN {
		return 0, &numerr.DomainError{
			Op:     "mobius.Mu",
			Value:  float64(n),
			Reason: "n outside tabulated range 1..30",
		}
	}
	return mu[n-1], nil
}
