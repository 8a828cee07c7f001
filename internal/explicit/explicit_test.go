package explicit

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkilfoyle/Primes/internal/numerr"
	"github.com/dkilfoyle/Primes/internal/specfunc"
	"github.com/dkilfoyle/Primes/internal/zetazeros"
)

func TestSumZeroTermsEmpty(t *testing.T) {
	gw := specfunc.NewLibrary()

	sum, err := SumZeroTerms(1e6, zetazeros.Default(), 0, gw)
	require.NoError(t, err)
	assert.Zero(t, sum)

	sum, err = SumZeroTerms(1e6, nil, 5, gw)
	require.NoError(t, err)
	assert.Zero(t, sum)

	sum, err = SumZeroTerms(1e6, zetazeros.Default(), -3, gw)
	require.NoError(t, err)
	assert.Zero(t, sum)
}

func TestSumZeroTermsDomain(t *testing.T) {
	gw := specfunc.NewLibrary()
	for _, x := range []float64{1.99, 1, 0, -5} {
		_, err := SumZeroTerms(x, zetazeros.Default(), 10, gw)
		var de *numerr.DomainError
		require.True(t, errors.As(err, &de), "x=%g", x)
	}
}

// Reference value from an independent evaluation of the same truncated sum.
func TestSumZeroTermsReference(t *testing.T) {
	gw := specfunc.NewLibrary()
	sum, err := SumZeroTerms(1e6, zetazeros.Default(), 100, gw)
	require.NoError(t, err)
	assert.InDelta(t, 26.042865299841075, sum, 1e-6)
}

// Each conjugate pair must contribute an exactly real term: with the
// principal branch, Ei of conjugate arguments are floating-point
// conjugates, so the imaginary parts cancel without residue.
func TestPairImaginaryCancellation(t *testing.T) {
	gw := specfunc.NewLibrary()
	logx := math.Log(1e6)
	for _, zt := range zetazeros.Default()[:50] {
		up, err := gw.Ei(complex(0.5*logx, zt*logx))
		require.NoError(t, err)
		down, err := gw.Ei(complex(0.5*logx, -zt*logx))
		require.NoError(t, err)
		assert.Zero(t, imag(up+down), "t=%g", zt)
	}
}

// The truncated sum does not converge monotonically, but the amplitude of
// individual pair contributions shrinks as the zeros climb: the largest
// single-pair term in a late window must be smaller than in an early one.
func TestZeroTermAmplitudesShrink(t *testing.T) {
	gw := specfunc.NewLibrary()
	zeros := zetazeros.Default()

	window := func(lo, hi int) float64 {
		maxAbs := 0.0
		for k := lo; k < hi; k++ {
			before, err := SumZeroTerms(1e6, zeros, k, gw)
			require.NoError(t, err)
			after, err := SumZeroTerms(1e6, zeros, k+1, gw)
			require.NoError(t, err)
			if d := math.Abs(after - before); d > maxAbs {
				maxAbs = d
			}
		}
		return maxAbs
	}

	early := window(0, 10)
	mid := window(90, 100)
	late := window(990, 1000)
	assert.Greater(t, early, mid)
	assert.Greater(t, mid, late)
}

func TestConstantTail(t *testing.T) {
	tail := ConstantTail{}
	assert.Equal(t, TailBound, tail.Tail(2))
	assert.Equal(t, TailBound, tail.Tail(1e6))
	assert.Equal(t, "constant", tail.Name())
}

func TestIntegralTail(t *testing.T) {
	tail := IntegralTail{}

	// At x=2 the integral equals the documented bound.
	assert.InDelta(t, TailBound, tail.Tail(2), 1e-9)

	// The term decays like 1/(2x^2 ln x); by x=10^6 it is negligible.
	assert.Less(t, tail.Tail(1e6), 1e-12)
	assert.Greater(t, tail.Tail(1e6), 0.0)

	// Strictly decreasing in x.
	prev := tail.Tail(2)
	for _, x := range []float64{5, 10, 100, 1e4} {
		cur := tail.Tail(x)
		assert.Less(t, cur, prev, "x=%g", x)
		prev = cur
	}
}

// Reference value from an independent evaluation of the same formula.
func TestJFromZerosReference(t *testing.T) {
	gw := specfunc.NewLibrary()
	eval := NewEvaluator(gw, zetazeros.Default(), 1000, ConstantTail{})

	j, err := eval.JFromZeros(1e6)
	require.NoError(t, err)
	assert.InDelta(t, 78599.87180825415, j, 1e-5)
}

func TestJFromZerosDeterministic(t *testing.T) {
	gw := specfunc.NewLibrary()
	eval := NewEvaluator(gw, zetazeros.Default(), 200, ConstantTail{})

	a, err := eval.JFromZeros(12345.0)
	require.NoError(t, err)
	b, err := eval.JFromZeros(12345.0)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestJFromZerosDomainPropagates(t *testing.T) {
	gw := specfunc.NewLibrary()
	eval := NewEvaluator(gw, zetazeros.Default(), 10, nil)

	_, err := eval.JFromZeros(1.5)
	var de *numerr.DomainError
	require.True(t, errors.As(err, &de))
}

func TestEvaluatorTermsClamped(t *testing.T) {
	gw := specfunc.NewLibrary()
	eval := NewEvaluator(gw, zetazeros.Default(), 5000, nil)
	assert.Equal(t, 1000, eval.Terms())

	eval = NewEvaluator(gw, zetazeros.Default(), -1, nil)
	assert.Zero(t, eval.Terms())
}
