package recommend

import (
	"context"

	"github.com/tanya972/ThreadLife/internal/common"
	"github.com/tanya972/ThreadLife/internal/service"
)

// RetryingPredictor wraps a LifespanPredictor with retry behavior. External
// models are the one remote call in the pipeline; transient failures should
// not immediately push every candidate onto the ratio fallback.
type RetryingPredictor struct {
	inner service.LifespanPredictor
	opts  service.RetryOptions
}

// NewRetryingPredictor wraps the given predictor. Zero-valued options take the
// package retry defaults.
func NewRetryingPredictor(inner service.LifespanPredictor, opts service.RetryOptions) *RetryingPredictor {
	return &RetryingPredictor{inner: inner, opts: opts}
}

// Predict calls the wrapped predictor, retrying transient failures.
func (p *RetryingPredictor) Predict(ctx context.Context, row service.FeatureRow) (float64, error) {
	var result float64
	err := common.WithRetry(ctx, func() error {
		var err error
		result, err = p.inner.Predict(ctx, row)
		return err
	}, p.opts)
	return result, err
}
