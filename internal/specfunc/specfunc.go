// Package specfunc provides the special functions the explicit formula
// consumes: the real logarithmic integral li(x) and the exponential
// integral Ei(z) continued to complex arguments.
//
// Branch convention: Ei uses the principal complex logarithm (imaginary
// part in (-pi, pi]), so Ei(conj(z)) == conj(Ei(z)) everywhere off the
// negative real axis. The zero-pair sum relies on that symmetry for exact
// conjugate cancellation.
package specfunc

import (
	"math"
	"math/cmplx"

	"github.com/dkilfoyle/Primes/internal/numerr"
)

// Gateway is the contract the explicit-formula evaluator consumes. Both
// methods are pure; failures mean the series did not converge for the given
// argument and must surface to the caller unmodified.
type Gateway interface {
	// Li returns the logarithmic integral li(x) = Ei(ln x) for x > 0, x != 1.
	Li(x float64) (float64, error)
	// Ei returns the exponential integral of z on the principal branch.
	Ei(z complex128) (complex128, error)
}

const (
	// eulerGamma is the Euler-Mascheroni constant.
	eulerGamma = 0.57721566490153286060651209008240243

	// maxSeriesTerms caps both the power series and the asymptotic
	// expansion. Hitting the cap means the argument is pathological for
	// double precision.
	maxSeriesTerms = 2000

	// seriesTol is the relative tolerance at which a series is accepted.
	seriesTol = 1e-15

	// asymCutoff splits Ei between the convergent power series (below)
	// and the divergent asymptotic expansion truncated at its smallest
	// term (above). Below the cutoff the series loses at most ~3 digits
	// to cancellation; above it the asymptotic remainder is smaller than
	// the series round-off.
	asymCutoff = 12.0
)

// Library is the double-precision implementation of Gateway. It is
// stateless and safe for concurrent use.
type Library struct{}

// NewLibrary returns the default double-precision gateway.
func NewLibrary() *Library {
	return &Library{}
}

// Li returns li(x) for x > 0, x != 1. The integral diverges at x = 1 and is
// undefined at x <= 0; both report a DomainError.
func (l *Library) Li(x float64) (float64, error) {
	if x <= 0 || x == 1 {
		return 0, &numerr.DomainError{
			Op:     "specfunc.Li",
			Value:  x,
			Reason: "li(x) requires x > 0, x != 1",
		}
	}
	return l.realEi(math.Log(x))
}

// Ei returns the exponential integral of z. Real arguments stay on the real
// path (principal value on the negative axis); complex arguments use the
// power series for small |z| and the asymptotic expansion otherwise.
func (l *Library) Ei(z complex128) (complex128, error) {
	if imag(z) == 0 {
		v, err := l.realEi(real(z))
		return complex(v, 0), err
	}
	if cmplx.Abs(z) >= asymCutoff {
		return l.eiAsymptotic(z)
	}
	return l.eiSeries(z)
}

// realEi evaluates Ei(u) for real u != 0 with the everywhere-convergent
// series gamma + ln|u| + sum u^k/(k*k!). For u > 0 all terms are positive,
// so there is no cancellation even for large u.
func (l *Library) realEi(u float64) (float64, error) {
	if u == 0 {
		return 0, &numerr.DomainError{
			Op:     "specfunc.Ei",
			Value:  0,
			Reason: "Ei diverges at 0",
		}
	}
	sum := eulerGamma + math.Log(math.Abs(u))
	term := 1.0
	for k := 1; k <= maxSeriesTerms; k++ {
		term *= u / float64(k)
		next := sum + term/float64(k)
		if math.Abs(term/float64(k)) <= seriesTol*math.Abs(next) {
			return next, nil
		}
		sum = next
	}
	return 0, &numerr.ConvergenceError{
		Op:     "specfunc.Ei",
		Limit:  maxSeriesTerms,
		Reason: "power series did not converge",
	}
}

// eiSeries is the complex power series, usable for |z| below asymCutoff.
func (l *Library) eiSeries(z complex128) (complex128, error) {
	sum := complex(eulerGamma, 0) + cmplx.Log(z)
	term := complex(1, 0)
	for k := 1; k <= maxSeriesTerms; k++ {
		term *= z / complex(float64(k), 0)
		delta := term / complex(float64(k), 0)
		sum += delta
		if cmplx.Abs(delta) <= seriesTol*cmplx.Abs(sum) {
			return sum, nil
		}
	}
	return 0, &numerr.ConvergenceError{
		Op:     "specfunc.Ei",
		Limit:  maxSeriesTerms,
		Reason: "power series did not converge",
	}
}

// eiAsymptotic is the divergent expansion e^z/z * sum k!/z^k, truncated at
// its smallest term, plus the i*pi Stokes contribution that keeps the
// result on the principal branch off the real axis. The truncation error
// is of the order of the smallest term, which for |z| >= asymCutoff is
// below the accuracy the zero sum needs.
func (l *Library) eiAsymptotic(z complex128) (complex128, error) {
	sum := complex(1, 0)
	term := complex(1, 0)
	last := math.Inf(1)
	for k := 1; k <= maxSeriesTerms; k++ {
		term *= complex(float64(k), 0) / z
		mag := cmplx.Abs(term)
		if mag >= last {
			// Terms started growing again; stop at the minimum.
			break
		}
		sum += term
		last = mag
		if mag <= seriesTol*cmplx.Abs(sum) {
			break
		}
	}
	out := cmplx.Exp(z) / z * sum
	if imag(z) > 0 {
		out += complex(0, math.Pi)
	} else {
		out -= complex(0, math.Pi)
	}
	return out, nil
}
