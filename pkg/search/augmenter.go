package search

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"ai-promptcraft-be/internal/config"
	"ai-promptcraft-be/internal/pkg/apperr"
	"ai-promptcraft-be/internal/pkg/logger"
	"ai-promptcraft-be/pkg/search/serpapi"
)

// Augmentation is the optional web context attached to a request. Both fields
// may be empty; callers must tolerate that.
type Augmentation struct {
	SnippetText string
	SourceLinks []string
}

// Searcher is the transport the augmenter calls. Satisfied by *serpapi.Client.
type Searcher interface {
	Search(ctx context.Context, query string, num int) ([]serpapi.OrganicResult, error)
}

// Augmenter fetches a handful of search snippets relevant to the input text.
// Every failure path degrades to an empty Augmentation; it never propagates
// an error to the caller.
type Augmenter struct {
	client      Searcher
	apiKey      string
	resultCount int
	timeout     time.Duration
	cache       *gocache.Cache
	logger      logger.ILogger
}

const (
	cacheTTL      = 5 * time.Minute
	cacheCleanup  = 10 * time.Minute
	maxQueryWords = 6
)

// queryTemplates maps a topic keyword found in the input to a canned search
// query with a freshness qualifier.
var queryTemplates = map[string]string{
	"ai":         "latest AI developments and trends",
	"blog":       "blog writing best practices current",
	"technology": "latest technology news and trends",
	"business":   "current business trends and insights",
	"health":     "latest health research and guidelines",
}

func NewAugmenter(client Searcher, apiKey string, resultCount int, timeout time.Duration, log logger.ILogger) *Augmenter {
	if resultCount <= 0 {
		resultCount = 5
	}
	return &Augmenter{
		client:      client,
		apiKey:      apiKey,
		resultCount: resultCount,
		timeout:     timeout,
		cache:       gocache.New(cacheTTL, cacheCleanup),
		logger:      log,
	}
}

// Augment derives a query from the input and fetches snippets for it.
func (a *Augmenter) Augment(ctx context.Context, userText string) Augmentation {
	if !config.IsConfigured(a.apiKey) {
		a.logger.Debug("search_augmenter", "Search API key not configured, skipping augmentation", nil)
		return Augmentation{}
	}

	query := DeriveQuery(userText)
	if query == "" {
		return Augmentation{}
	}

	if cached, found := a.cache.Get(query); found {
		return cached.(Augmentation)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	results, err := a.client.Search(ctx, query, a.resultCount)
	if err != nil {
		// Classify, then degrade; the failure never leaves this package.
		serr := apperr.New(apperr.KindSearchUnavailable, err)
		a.logger.Warn("search_augmenter", "Search failed, proceeding without augmentation", map[string]interface{}{
			"query": query,
			"error": serr.Error(),
		})
		return Augmentation{}
	}

	var snippets []string
	var links []string
	for _, r := range results {
		if r.Title == "" || r.Snippet == "" {
			continue
		}
		snippets = append(snippets, r.Title+": "+r.Snippet)
		if r.Link != "" {
			links = append(links, r.Link)
		}
	}

	augmentation := Augmentation{
		SnippetText: strings.Join(snippets, "\n\n"),
		SourceLinks: links,
	}
	a.cache.Set(query, augmentation, gocache.DefaultExpiration)

	a.logger.Info("search_augmenter", "Augmentation fetched", map[string]interface{}{
		"query":   query,
		"results": len(snippets),
	})
	return augmentation
}

// DeriveQuery builds a short search query from free-form input: a canned
// template when a known topic keyword appears, otherwise the first few words
// plus a freshness qualifier. Empty means "do not search".
func DeriveQuery(userText string) string {
	words := strings.Fields(strings.ToLower(userText))
	if len(words) == 0 {
		return ""
	}

	for _, word := range words {
		word = strings.Trim(word, ".,!?:;\"'()")
		if template, ok := queryTemplates[word]; ok {
			return template
		}
	}

	n := len(words)
	if n > maxQueryWords {
		n = maxQueryWords
	}
	return strings.Join(words[:n], " ") + " latest"
}
