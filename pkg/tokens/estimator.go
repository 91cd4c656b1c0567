package tokens

import (
	"ai-promptcraft-be/internal/pkg/logger"
)

// charsPerToken is a rough average for English text against GPT-style
// tokenizers. It is an approximation, not exact tokenization; only the budget
// behavior below is a contract.
const charsPerToken = 4

// completionHeadroom reserves this share of the context window for the
// model's reply. A request passes validation only when its estimated input
// stays within the remaining share.
const completionHeadroom = 0.20

// Estimator approximates provider-side token consumption from text length.
type Estimator struct {
	logger logger.ILogger
}

func NewEstimator(log logger.ILogger) *Estimator {
	return &Estimator{logger: log}
}

// Estimate returns the approximate token count for a block of text.
func (e *Estimator) Estimate(text string) int {
	if text == "" {
		return 0
	}
	// Round up so short fragments still count.
	return (len(text) + charsPerToken - 1) / charsPerToken
}

// Validate sums the estimates for the three request components and checks
// them against the context budget minus completion headroom. Advisory only:
// the provider still enforces its own limit.
func (e *Estimator) Validate(systemText, userText, webText string, maxContextTokens int) bool {
	systemTokens := e.Estimate(systemText)
	userTokens := e.Estimate(userText)
	webTokens := e.Estimate(webText)
	totalTokens := systemTokens + userTokens + webTokens

	maxAllowed := int(float64(maxContextTokens) * (1 - completionHeadroom))
	ok := totalTokens <= maxAllowed

	e.logger.Info("token_budget", "Token budget check", map[string]interface{}{
		"system_tokens": systemTokens,
		"user_tokens":   userTokens,
		"web_tokens":    webTokens,
		"total_tokens":  totalTokens,
		"max_allowed":   maxAllowed,
		"passed":        ok,
	})

	return ok
}
