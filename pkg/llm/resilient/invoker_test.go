package resilient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-promptcraft-be/internal/pkg/apperr"
	"ai-promptcraft-be/internal/pkg/logger"
	"ai-promptcraft-be/pkg/llm"
)

// scriptedProvider returns one scripted outcome per attempt.
type scriptedProvider struct {
	calls   int
	outcome func(attempt int) (*llm.Completion, error)
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.Completion, error) {
	p.calls++
	return p.outcome(p.calls)
}

func newTestInvoker(p llm.LLMProvider) (*Invoker, *[]time.Duration) {
	inv := NewInvoker(p, logger.NewRecordingLogger())
	var delays []time.Duration
	inv.sleep = func(d time.Duration) {
		delays = append(delays, d)
	}
	return inv, &delays
}

func TestInvokeSuccessFirstAttempt(t *testing.T) {
	provider := &scriptedProvider{outcome: func(int) (*llm.Completion, error) {
		return &llm.Completion{Text: "ok", Usage: llm.Usage{TotalTokens: 42}}, nil
	}}
	inv, delays := newTestInvoker(provider)

	completion, err := inv.Invoke(context.Background(), nil, 0.3, 100)
	require.NoError(t, err)
	assert.Equal(t, "ok", completion.Text)
	assert.Equal(t, 1, provider.calls)
	assert.Empty(t, *delays)
}

func TestInvokeRateLimitExhaustsWithDoubledDelays(t *testing.T) {
	provider := &scriptedProvider{outcome: func(int) (*llm.Completion, error) {
		return nil, apperr.Newf(apperr.KindRateLimited, "too many requests")
	}}
	inv, delays := newTestInvoker(provider)

	_, err := inv.Invoke(context.Background(), nil, 0.3, 100)
	require.Error(t, err)
	assert.Equal(t, apperr.KindRateLimited, apperr.KindOf(err))
	assert.Equal(t, 3, provider.calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *delays)
}

func TestInvokeServerErrorsUseStandardDelays(t *testing.T) {
	provider := &scriptedProvider{outcome: func(int) (*llm.Completion, error) {
		return nil, apperr.Newf(apperr.KindServiceUnavailable, "upstream 502")
	}}
	inv, delays := newTestInvoker(provider)

	_, err := inv.Invoke(context.Background(), nil, 0.3, 100)
	require.Error(t, err)
	assert.Equal(t, apperr.KindServiceUnavailable, apperr.KindOf(err))
	assert.Equal(t, 3, provider.calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *delays)
}

func TestInvokeTerminalErrorsNeverRetry(t *testing.T) {
	for _, kind := range []apperr.Kind{apperr.KindPayloadTooLarge, apperr.KindMisconfigured} {
		provider := &scriptedProvider{outcome: func(int) (*llm.Completion, error) {
			return nil, apperr.New(kind, nil)
		}}
		inv, delays := newTestInvoker(provider)

		_, err := inv.Invoke(context.Background(), nil, 0.3, 100)
		require.Error(t, err)
		assert.Equal(t, kind, apperr.KindOf(err))
		assert.Equal(t, 1, provider.calls, "terminal %s must not retry", kind)
		assert.Empty(t, *delays)
	}
}

func TestInvokeRecoversAfterTransientFailure(t *testing.T) {
	provider := &scriptedProvider{outcome: func(attempt int) (*llm.Completion, error) {
		if attempt < 3 {
			return nil, apperr.Newf(apperr.KindTimeout, "timed out")
		}
		return &llm.Completion{Text: "recovered"}, nil
	}}
	inv, delays := newTestInvoker(provider)

	completion, err := inv.Invoke(context.Background(), nil, 0.3, 100)
	require.NoError(t, err)
	assert.Equal(t, "recovered", completion.Text)
	assert.Equal(t, 3, provider.calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *delays)
}

func TestInvokeLogsEveryAttempt(t *testing.T) {
	provider := &scriptedProvider{outcome: func(int) (*llm.Completion, error) {
		return nil, apperr.Newf(apperr.KindTimeout, "timed out")
	}}
	rec := logger.NewRecordingLogger()
	inv := NewInvoker(provider, rec)
	inv.sleep = func(time.Duration) {}

	_, err := inv.Invoke(context.Background(), nil, 0.3, 100)
	require.Error(t, err)

	attempts := 0
	for _, e := range rec.ByModule("llm_invoker") {
		if e.Message == "Completion attempt failed" {
			attempts++
		}
	}
	assert.Equal(t, 3, attempts)
}
