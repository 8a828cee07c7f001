// Package report assembles the per-x comparison table between the
// explicit-formula estimate and exact prime counts.
package report

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dkilfoyle/Primes/internal/inversion"
	"github.com/dkilfoyle/Primes/internal/sieve"
)

// Row is one line of the comparison table. Exactly one of Estimate/Err is
// meaningful: a failing x records its error here and never aborts the rest
// of the batch.
type Row struct {
	X           float64              `json:"x"`
	GroundTruth *int                 `json:"ground_truth,omitempty"`
	Estimate    float64              `json:"estimate"`
	AbsErr      float64              `json:"abs_err"`
	RelErr      float64              `json:"rel_err"`
	Breakdown   []inversion.RootTerm `json:"breakdown,omitempty"`
	Err         string               `json:"error,omitempty"`
}

// Report is the full table plus the parameters that produced it.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	ZeroTerms   int       `json:"zero_terms"`
	MaxN        int       `json:"max_n"`
	TailName    string    `json:"tail"`
	Rows        []Row     `json:"rows"`
}

// Builder runs estimate batches. Each x is an independent unit of work:
// the zero list and Mobius table are read-only, so rows fan out over a
// bounded errgroup with no coordination beyond slot assignment.
type Builder struct {
	j         inversion.JFunc
	maxN      int
	zeroTerms int
	tailName  string
	ground    *sieve.Sieve // optional
	keepTerms bool
	workers   int
	logger    *logrus.Logger
}

// NewBuilder wires a batch builder around the supplied J function. ground
// may be nil when no exact column is wanted; workers <= 0 means serial.
func NewBuilder(j inversion.JFunc, zeroTerms, maxN int, tailName string, ground *sieve.Sieve, workers int, logger *logrus.Logger) *Builder {
	if logger == nil {
		logger = logrus.New()
	}
	if workers <= 0 {
		workers = 1
	}
	return &Builder{
		j:         j,
		maxN:      maxN,
		zeroTerms: zeroTerms,
		tailName:  tailName,
		ground:    ground,
		workers:   workers,
		logger:    logger,
	}
}

// KeepBreakdowns retains the per-root terms on every row. Off by default;
// the breakdown is inspection data, not part of the table proper.
func (b *Builder) KeepBreakdowns(keep bool) *Builder {
	b.keepTerms = keep
	return b
}

// Build evaluates every x and returns the table in input order. Row
// failures are isolated per row; the returned error only reports batch
// infrastructure problems, of which there are currently none possible.
func (b *Builder) Build(xs []float64) *Report {
	rep := &Report{
		GeneratedAt: time.Now(),
		ZeroTerms:   b.zeroTerms,
		MaxN:        b.maxN,
		TailName:    b.tailName,
		Rows:        make([]Row, len(xs)),
	}

	var g errgroup.Group
	g.SetLimit(b.workers)
	for i, x := range xs {
		i, x := i, x
		g.Go(func() error {
			rep.Rows[i] = b.buildRow(x)
			return nil
		})
	}
	// Workers never return errors; failures live in the rows.
	_ = g.Wait()
	return rep
}

func (b *Builder) buildRow(x float64) Row {
	row := Row{X: x, AbsErr: math.NaN(), RelErr: math.NaN()}

	est, err := inversion.PiEstimate(x, b.j, b.maxN)
	if err != nil {
		b.logger.Warnf("estimate failed for x=%g: %v", x, err)
		row.Err = err.Error()
		return row
	}
	row.Estimate = est.Total
	if b.keepTerms {
		row.Breakdown = est.Breakdown
	}

	if b.ground != nil && x <= float64(b.ground.Limit()) {
		exact, err := b.ground.PiFloor(x)
		if err == nil {
			row.GroundTruth = &exact
			row.AbsErr = math.Abs(est.Total - float64(exact))
			if exact != 0 {
				row.RelErr = row.AbsErr / float64(exact)
			}
		}
	}
	return row
}
