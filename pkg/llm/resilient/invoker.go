package resilient

import (
	"context"
	"time"

	"ai-promptcraft-be/internal/pkg/apperr"
	"ai-promptcraft-be/internal/pkg/logger"
	"ai-promptcraft-be/pkg/llm"
)

const maxAttempts = 3

// backoffSchedule is indexed by the attempt that just failed (0-based).
// Rate-limit failures wait twice the scheduled delay.
var backoffSchedule = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	4 * time.Second,
}

// Invoker wraps an LLMProvider with bounded, classified retries. The wrapped
// provider must return apperr-classified errors; anything unclassified is
// treated as retryable and surfaces as a generic failure.
type Invoker struct {
	provider llm.LLMProvider
	logger   logger.ILogger

	// sleep is swappable so tests can observe delays without waiting.
	sleep func(time.Duration)
}

func NewInvoker(provider llm.LLMProvider, log logger.ILogger) *Invoker {
	return &Invoker{
		provider: provider,
		logger:   log,
		sleep:    time.Sleep,
	}
}

// Invoke replays the same messages verbatim for up to maxAttempts. Terminal
// errors (payload too large, bad credential) surface immediately; retryable
// ones exhaust the schedule and then surface with their classification.
func (inv *Invoker) Invoke(ctx context.Context, messages []llm.Message, temperature float64, maxOutputTokens int) (*llm.Completion, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		start := time.Now()
		completion, err := inv.provider.Chat(ctx, messages,
			llm.WithTemperature(temperature),
			llm.WithMaxTokens(maxOutputTokens),
		)
		elapsed := time.Since(start)

		if err == nil {
			inv.logger.Info("llm_invoker", "Completion attempt succeeded", map[string]interface{}{
				"attempt":      attempt,
				"duration_ms":  elapsed.Milliseconds(),
				"usage_tokens": completion.Usage.TotalTokens,
			})
			return completion, nil
		}

		kind := apperr.KindOf(err)
		retryable := apperr.IsRetryable(err)
		inv.logger.Warn("llm_invoker", "Completion attempt failed", map[string]interface{}{
			"attempt":     attempt,
			"duration_ms": elapsed.Milliseconds(),
			"kind":        kind.String(),
			"retryable":   retryable,
			"error":       err.Error(),
		})

		if !retryable {
			return nil, err
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}

		delay := backoffSchedule[attempt-1]
		if kind == apperr.KindRateLimited {
			delay *= 2
		}
		inv.sleep(delay)
	}

	inv.logger.Error("llm_invoker", "Completion retries exhausted", map[string]interface{}{
		"attempts": maxAttempts,
		"kind":     apperr.KindOf(lastErr).String(),
	})
	return nil, lastErr
}
