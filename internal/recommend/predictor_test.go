package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanya972/ThreadLife/internal/common"
	"github.com/tanya972/ThreadLife/internal/service"
)

type flakyPredictor struct {
	failures int
	calls    int
}

func (f *flakyPredictor) Predict(_ context.Context, _ service.FeatureRow) (float64, error) {
	f.calls++
	if f.calls <= f.failures {
		return 0, errors.New("model temporarily unavailable")
	}
	return 42, nil
}

func fastRetryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestRetryingPredictor_RecoversFromTransientFailure(t *testing.T) {
	inner := &flakyPredictor{failures: 2}
	p := NewRetryingPredictor(inner, fastRetryOptions())

	result, err := p.Predict(context.Background(), service.FeatureRow{})
	require.NoError(t, err)
	assert.InDelta(t, 42.0, result, 1e-9)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingPredictor_ExhaustsRetries(t *testing.T) {
	inner := &flakyPredictor{failures: 10}
	p := NewRetryingPredictor(inner, fastRetryOptions())

	_, err := p.Predict(context.Background(), service.FeatureRow{})
	assert.ErrorIs(t, err, common.ErrMaxRetries)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingPredictor_NonRetryableError(t *testing.T) {
	inner := &stubPredictor{err: &common.RetryableError{
		Err:       errors.New("malformed feature row"),
		Retryable: false,
	}}
	p := NewRetryingPredictor(inner, fastRetryOptions())

	_, err := p.Predict(context.Background(), service.FeatureRow{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrMaxRetries)
	assert.Equal(t, 1, inner.calls)
}
