package explicit

import "math"

// TailStrategy supplies the tail-integral term of the explicit formula,
// integral_x^inf dt / (t(t^2-1) ln t). Two strategies exist because the
// exact per-x integral costs a quadrature on every J evaluation while the
// term itself is bounded by its value at x=2 and falls off like
// 1/(2x^2 ln x); which side of that trade to take is a caller decision.
type TailStrategy interface {
	Tail(x float64) float64
	Name() string
}

// TailBound is the value of the tail integral at x=2, its supremum over
// the domain of the explicit formula.
const TailBound = 0.1400101011432869

// ConstantTail approximates the tail integral with the fixed value
// TailBound regardless of x. For large x this overstates the term by
// nearly the whole constant, which is the documented accuracy limitation
// of the cheap strategy: the error it introduces in pi(x) stays below
// TailBound after Mobius weighting.
type ConstantTail struct{}

func (ConstantTail) Tail(float64) float64 { return TailBound }
func (ConstantTail) Name() string         { return "constant" }

// IntegralTail evaluates the tail integral per call with adaptive Simpson
// quadrature on [x, X] plus the analytic remainder beyond X, where the
// integrand is within round-off of 1/(t^3 ln t).
type IntegralTail struct{}

func (IntegralTail) Name() string { return "integral" }

func (IntegralTail) Tail(x float64) float64 {
	f := func(t float64) float64 {
		return 1 / (t * (t*t - 1) * math.Log(t))
	}
	upper := math.Max(1000*x, 1e6)
	mid := 0.5 * (x + upper)
	fa, fm, fb := f(x), f(mid), f(upper)
	whole := (upper - x) / 6 * (fa + 4*fm + fb)
	sum := adaptiveSimpson(f, x, upper, fa, fm, fb, whole, 48)
	// Remainder: integral_X^inf dt/(t^3 ln t) < 1/(2 X^2 ln X).
	return sum + 1/(2*upper*upper*math.Log(upper))
}

func adaptiveSimpson(f func(float64) float64, a, b, fa, fm, fb, whole float64, depth int) float64 {
	m := 0.5 * (a + b)
	lm, rm := 0.5*(a+m), 0.5*(m+b)
	flm, frm := f(lm), f(rm)
	left := (m - a) / 6 * (fa + 4*flm + fm)
	right := (b - m) / 6 * (fm + 4*frm + fb)
	if depth <= 0 || math.Abs(left+right-whole) < 1e-14 {
		return left + right
	}
	return adaptiveSimpson(f, a, m, fa, flm, fm, left, depth-1) +
		adaptiveSimpson(f, m, b, fm, frm, fb, right, depth-1)
}
