package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-promptcraft-be/internal/pkg/apperr"
	"ai-promptcraft-be/internal/pkg/logger"
	"ai-promptcraft-be/pkg/search/serpapi"
)

type stubSearcher struct {
	calls   int
	results []serpapi.OrganicResult
	err     error
}

func (s *stubSearcher) Search(ctx context.Context, query string, num int) ([]serpapi.OrganicResult, error) {
	s.calls++
	return s.results, s.err
}

func newTestAugmenter(s Searcher) *Augmenter {
	return NewAugmenter(s, "real-key", 5, 10*time.Second, logger.NewRecordingLogger())
}

func TestDeriveQuery(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "empty input", text: "   ", want: ""},
		{name: "ai keyword", text: "write about AI agents", want: "latest AI developments and trends"},
		{name: "health keyword", text: "a post on health routines", want: "latest health research and guidelines"},
		{name: "keyword with punctuation", text: "What is happening in technology?", want: "latest technology news and trends"},
		{name: "fallback first words", text: "quantum computing for beginners", want: "quantum computing for beginners latest"},
		{
			name: "fallback truncates to six words",
			text: "one two three four five six seven eight",
			want: "one two three four five six latest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveQuery(tt.text); got != tt.want {
				t.Errorf("DeriveQuery(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestAugmentBuildsSnippetsAndSources(t *testing.T) {
	stub := &stubSearcher{results: []serpapi.OrganicResult{
		{Title: "First", Snippet: "alpha", Link: "https://a.example"},
		{Title: "Second", Snippet: "beta", Link: "https://b.example"},
	}}
	a := newTestAugmenter(stub)

	got := a.Augment(context.Background(), "quantum computing for beginners")
	assert.Equal(t, "First: alpha\n\nSecond: beta", got.SnippetText)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, got.SourceLinks)
}

func TestAugmentFiltersIncompleteResults(t *testing.T) {
	stub := &stubSearcher{results: []serpapi.OrganicResult{
		{Title: "", Snippet: "no title", Link: "https://x.example"},
		{Title: "No snippet", Snippet: "", Link: "https://y.example"},
		{Title: "Kept", Snippet: "fine", Link: "https://z.example"},
	}}
	a := newTestAugmenter(stub)

	got := a.Augment(context.Background(), "quantum computing")
	assert.Equal(t, "Kept: fine", got.SnippetText)
	assert.Equal(t, []string{"https://z.example"}, got.SourceLinks)
}

func TestAugmentSwallowsTransportErrors(t *testing.T) {
	stub := &stubSearcher{err: errors.New("connection refused")}
	rec := logger.NewRecordingLogger()
	a := NewAugmenter(stub, "real-key", 5, 10*time.Second, rec)

	got := a.Augment(context.Background(), "quantum computing")
	assert.Empty(t, got.SnippetText)
	assert.Empty(t, got.SourceLinks)

	// The failure is classified before it is swallowed.
	events := rec.ByModule("search_augmenter")
	require.Len(t, events, 1)
	assert.Equal(t, "WARN", events[0].Level)
	assert.Equal(t, apperr.KindSearchUnavailable.String()+": connection refused", events[0].Details["error"])
}

func TestAugmentSkipsNetworkWithoutCredential(t *testing.T) {
	for _, key := range []string{"", "your-api-key-here"} {
		stub := &stubSearcher{}
		a := NewAugmenter(stub, key, 5, 10*time.Second, logger.NewRecordingLogger())

		got := a.Augment(context.Background(), "quantum computing")
		assert.Empty(t, got.SnippetText)
		assert.Equal(t, 0, stub.calls, "key %q must not trigger a search call", key)
	}
}

func TestAugmentSkipsNetworkOnEmptyQuery(t *testing.T) {
	stub := &stubSearcher{}
	a := newTestAugmenter(stub)

	a.Augment(context.Background(), "   ")
	assert.Equal(t, 0, stub.calls)
}

func TestAugmentCachesByDerivedQuery(t *testing.T) {
	stub := &stubSearcher{results: []serpapi.OrganicResult{
		{Title: "Cached", Snippet: "hit", Link: "https://c.example"},
	}}
	a := newTestAugmenter(stub)

	first := a.Augment(context.Background(), "quantum computing")
	second := a.Augment(context.Background(), "quantum computing")

	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, first, second)
}
