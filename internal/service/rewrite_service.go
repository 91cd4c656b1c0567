package service

import (
	"context"
	"fmt"
	"strings"

	"ai-promptcraft-be/internal/config"
	"ai-promptcraft-be/internal/constant"
	"ai-promptcraft-be/internal/dto"
	"ai-promptcraft-be/internal/pkg/apperr"
	"ai-promptcraft-be/internal/pkg/logger"
	"ai-promptcraft-be/pkg/llm"
	"ai-promptcraft-be/pkg/normalizer"
	"ai-promptcraft-be/pkg/search"
	"ai-promptcraft-be/pkg/tokens"
)

type IRewriteService interface {
	Rewrite(ctx context.Context, req *dto.RewriteRequest) (*dto.RewriteResponse, error)
	SelfImprove(ctx context.Context, req *dto.SelfImproveRequest) (*dto.SelfImproveResponse, error)
	Modes() []dto.ModeInfo
}

// CompletionInvoker is the retry-wrapped completion call. Satisfied by
// *resilient.Invoker; stubbed in tests.
type CompletionInvoker interface {
	Invoke(ctx context.Context, messages []llm.Message, temperature float64, maxOutputTokens int) (*llm.Completion, error)
}

// IAugmenter fetches optional web context. Satisfied by *search.Augmenter.
type IAugmenter interface {
	Augment(ctx context.Context, userText string) search.Augmentation
}

type rewriteService struct {
	cfg        *config.Config
	invoker    CompletionInvoker
	augmenter  IAugmenter
	estimator  *tokens.Estimator
	normalizer *normalizer.Normalizer
	logger     logger.ILogger
}

func NewRewriteService(
	cfg *config.Config,
	invoker CompletionInvoker,
	augmenter IAugmenter,
	estimator *tokens.Estimator,
	norm *normalizer.Normalizer,
	log logger.ILogger,
) IRewriteService {
	return &rewriteService{
		cfg:        cfg,
		invoker:    invoker,
		augmenter:  augmenter,
		estimator:  estimator,
		normalizer: norm,
		logger:     log,
	}
}

func (s *rewriteService) Rewrite(ctx context.Context, req *dto.RewriteRequest) (*dto.RewriteResponse, error) {
	// 1. Input and mode validation. No network before this passes.
	userText := strings.TrimSpace(req.UserPrompt)
	if userText == "" {
		return nil, apperr.Newf(apperr.KindInvalidInput, "empty user prompt")
	}
	mode, ok := constant.GetMode(req.Mode)
	if !ok {
		return nil, apperr.Newf(apperr.KindInvalidInput, "unknown mode %q", req.Mode)
	}

	// 2. Provider credential must be real before anything leaves the process.
	if !config.IsConfigured(s.cfg.Keys.OpenAI) {
		return nil, apperr.Newf(apperr.KindMisconfigured, "llm api key missing or placeholder")
	}

	// 3. Optional augmentation. Failures inside the augmenter degrade to an
	// empty result; they never abort the rewrite.
	var augmentation search.Augmentation
	if req.EnableWebAccess || mode.AlwaysAugment {
		augmentation = s.augmenter.Augment(ctx, userText)
	}
	webAccessUsed := augmentation.SnippetText != ""

	// 4. Build the user message for the mode family.
	userBody := buildUserBody(mode, userText)
	webBlock := buildWebBlock(mode, augmentation.SnippetText)

	// 5. Local budget triage before the network call.
	if !s.estimator.Validate(mode.SystemPrompt, userBody, webBlock, s.cfg.Llm.MaxContextTokens) {
		return nil, apperr.Newf(apperr.KindPayloadTooLarge, "estimated tokens exceed context budget")
	}

	// 6–7. Invoke and normalize.
	normalized, err := s.complete(ctx, mode.SystemPrompt, webBlock+userBody, mode)
	if err != nil {
		return nil, err
	}

	s.logger.Info("rewrite_service", "Rewrite completed", map[string]interface{}{
		"mode":            mode.Key,
		"web_access_used": webAccessUsed,
		"sources":         len(augmentation.SourceLinks),
	})

	sources := augmentation.SourceLinks
	if sources == nil {
		sources = []string{}
	}

	return &dto.RewriteResponse{
		RewrittenPrompt:     normalized,
		Mode:                mode.Key,
		ModeName:            mode.DisplayName,
		IsContentGeneration: mode.IsDirectContent,
		WebAccessUsed:       webAccessUsed,
		WebSources:          sources,
	}, nil
}

func (s *rewriteService) SelfImprove(ctx context.Context, req *dto.SelfImproveRequest) (*dto.SelfImproveResponse, error) {
	currentOutput := strings.TrimSpace(req.CurrentOutput)
	if currentOutput == "" {
		return nil, apperr.Newf(apperr.KindInvalidInput, "empty current output")
	}
	mode, ok := constant.GetMode(req.Mode)
	if !ok {
		return nil, apperr.Newf(apperr.KindInvalidInput, "unknown mode %q", req.Mode)
	}

	if !config.IsConfigured(s.cfg.Keys.OpenAI) {
		return nil, apperr.Newf(apperr.KindMisconfigured, "llm api key missing or placeholder")
	}

	// No augmentation on the improvement pass, so no web budget component.
	userBody := fmt.Sprintf(
		"Improve the following output. Preserve its intent, subject, and factual content.\n\n%s",
		currentOutput,
	)

	if !s.estimator.Validate(mode.ImprovePrompt, userBody, "", s.cfg.Llm.MaxContextTokens) {
		return nil, apperr.Newf(apperr.KindPayloadTooLarge, "estimated tokens exceed context budget")
	}

	normalized, err := s.complete(ctx, mode.ImprovePrompt, userBody, mode)
	if err != nil {
		return nil, err
	}

	s.logger.Info("rewrite_service", "Self-improve completed", map[string]interface{}{
		"mode": mode.Key,
	})

	return &dto.SelfImproveResponse{
		ImprovedOutput: normalized,
		Mode:           mode.Key,
		ModeName:       mode.DisplayName,
	}, nil
}

func (s *rewriteService) Modes() []dto.ModeInfo {
	all := constant.AllModes()
	out := make([]dto.ModeInfo, 0, len(all))
	for _, m := range all {
		out = append(out, dto.ModeInfo{
			Key:                 m.Key,
			Name:                m.DisplayName,
			IsContentGeneration: m.IsDirectContent,
		})
	}
	return out
}

// complete runs the invoke-then-normalize tail shared by both operations.
func (s *rewriteService) complete(ctx context.Context, systemPrompt, userContent string, mode constant.Mode) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: userContent},
	}

	completion, err := s.invoker.Invoke(ctx, messages, mode.Temperature, mode.MaxOutputTokens)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(completion.Text) == "" {
		return "", apperr.Newf(apperr.KindEmptyResponse, "provider returned no text")
	}

	normalized := s.normalizer.Normalize(completion.Text, mode)
	if normalized == "" {
		return "", apperr.Newf(apperr.KindEmptyResponse, "normalization produced empty output")
	}
	return normalized, nil
}

// buildUserBody phrases the request for the mode family: content modes ask
// for publication-ready output, document modes transform the literal input,
// everything else rewrites the user's specific text.
func buildUserBody(mode constant.Mode, userText string) string {
	switch {
	case mode.IsDirectContent:
		return fmt.Sprintf(
			"Produce publication-ready output for the following request. Output only the finished piece.\n\nRequest: %s",
			userText,
		)
	case mode.IsDocumentTransform:
		return fmt.Sprintf(
			"Transform the document below directly. Do not describe the changes; return the transformed document.\n\n%s",
			userText,
		)
	default:
		return fmt.Sprintf(
			"Rewrite the following text for the %q mode. Work with this specific text; do not produce a generic template.\n\nText: \"%s\"",
			mode.DisplayName,
			userText,
		)
	}
}

// buildWebBlock prefixes content-mode requests with search snippets. Rewriting
// modes do not get snippets injected into the prompt body.
func buildWebBlock(mode constant.Mode, snippetText string) string {
	if snippetText == "" {
		return ""
	}
	if !mode.IsDirectContent {
		return ""
	}
	return fmt.Sprintf("Reference material from recent web results:\n\n%s\n\n---\n\n", snippetText)
}
