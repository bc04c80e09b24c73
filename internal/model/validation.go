package model

import "time"

// Validation verdict strings. The verdict is advisory output for a human or an
// external gate; nothing in the pipeline consumes it.
const (
	VerdictValidated        = "validated"
	VerdictNeedsImprovement = "needs improvement"
)

// CorrelationResult is one Pearson test between labels and an independent signal.
type CorrelationResult struct {
	Coefficient float64
	PValue      float64
	SampleSize  int
	Skipped     bool // true when the test was downgraded for lack of signal
}

// Significant reports whether the test cleared the p < 0.01 threshold.
func (c CorrelationResult) Significant() bool {
	return !c.Skipped && c.PValue < 0.01
}

// CategoryRanking is one row of the per-category mean-label ranking used by the
// sanity check.
type CategoryRanking struct {
	Category   string
	MeanMonths float64
	Count      int
}

// SanityCheckResult records how many expected-durable and expected-fragile
// keywords landed where the ranking says they should.
type SanityCheckResult struct {
	DurableMatches int
	FragileMatches int
	Top            []CategoryRanking
	Bottom         []CategoryRanking
	Passed         bool
}

// ValidationReport is the advisory output of the validation engine. It never
// feeds back into label synthesis.
type ValidationReport struct {
	CreatedAt     time.Time
	Repurchase    CorrelationResult
	Price         CorrelationResult
	Sanity        SanityCheckResult
	LowConfidence bool // transaction window too short for gap statistics
	Verdict       string
}
