package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://serpapi.com"

// Client is a minimal SerpAPI search client: one keyed GET returning the
// organic results for a query.
type Client struct {
	BaseURL string
	APIKey  string
	Locale  string
	Client  *http.Client
}

func NewClient(apiKey, locale string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		APIKey:  apiKey,
		Locale:  locale,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// OrganicResult is one web result. Any field may be empty.
type OrganicResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

type searchResponse struct {
	OrganicResults []OrganicResult `json:"organic_results"`
}

// Search runs one query and returns up to num organic results.
func (c *Client) Search(ctx context.Context, query string, num int) ([]OrganicResult, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", num))
	params.Set("api_key", c.APIKey)
	if c.Locale != "" {
		params.Set("gl", c.Locale)
	}

	endpoint := c.BaseURL + "/search.json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var searchResp searchResponse
	if err := json.Unmarshal(bodyBytes, &searchResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return searchResp.OrganicResults, nil
}
