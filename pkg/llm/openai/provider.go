package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-promptcraft-be/internal/pkg/apperr"
	"ai-promptcraft-be/pkg/llm"
)

// OpenAIProvider talks to an OpenAI-compatible chat-completions endpoint,
// non-streaming. Errors are classified into apperr kinds so the resilient
// invoker can tell retryable failures from terminal ones.
type OpenAIProvider struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Client    *http.Client
}

// Ensure OpenAIProvider implements LLMProvider
var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(baseURL, apiKey, modelName string, timeout time.Duration) *OpenAIProvider {
	return &OpenAIProvider{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// --- Interface Implementation ---

func (o *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.Completion, error) {
	// 1. Process Options
	options := &llm.Options{
		Temperature: 0.7, // Default
	}
	for _, opt := range opts {
		opt(options)
	}

	// 2. Map generic messages
	messages := make([]chatMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = llm.RoleAssistant
		}
		messages[i] = chatMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	// 3. Prepare Payload
	model := o.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := chatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: options.Temperature,
		Stream:      false,
	}
	if options.MaxTokens > 0 {
		reqPayload.MaxTokens = options.MaxTokens
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, apperr.Newf(apperr.KindInternal, "marshal request: %v", err)
	}

	// 4. Send Request
	url := o.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, apperr.Newf(apperr.KindInternal, "create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.APIKey)

	resp, err := o.Client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Newf(apperr.KindInternal, "read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, bodyBytes)
	}

	// 5. Parse Response
	var completionResp chatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &completionResp); err != nil {
		return nil, apperr.Newf(apperr.KindInternal, "unmarshal response: %v", err)
	}

	var text string
	if len(completionResp.Choices) > 0 {
		text = completionResp.Choices[0].Message.Content
	}

	return &llm.Completion{
		Text: text,
		Usage: llm.Usage{
			PromptTokens:     completionResp.Usage.PromptTokens,
			CompletionTokens: completionResp.Usage.CompletionTokens,
			TotalTokens:      completionResp.Usage.TotalTokens,
		},
	}, nil
}

// classifyStatus maps a non-200 provider status to the error taxonomy.
// Checked in priority order: rate limit, payload size, credential, 5xx.
func classifyStatus(status int, body []byte) error {
	detail := fmt.Errorf("provider status %d: %s", status, truncate(body, 512))

	switch {
	case status == http.StatusTooManyRequests:
		return apperr.New(apperr.KindRateLimited, detail)
	case status == http.StatusRequestEntityTooLarge:
		return apperr.New(apperr.KindPayloadTooLarge, detail)
	case status == http.StatusRequestTimeout:
		return apperr.New(apperr.KindTimeout, detail)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperr.New(apperr.KindMisconfigured, detail)
	case status >= 500:
		return apperr.New(apperr.KindServiceUnavailable, detail)
	default:
		return apperr.New(apperr.KindInternal, detail)
	}
}

// classifyTransportError maps client-side failures (DNS, connect, timeout).
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.New(apperr.KindTimeout, err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperr.New(apperr.KindTimeout, err)
	}
	return apperr.Newf(apperr.KindTimeout, "connection failed: %v", err)
}

func truncate(body []byte, limit int) string {
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
