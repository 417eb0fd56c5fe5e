package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/nanalab/paperscan/internal/model"
)

// Default client settings.
const (
	// DefaultEndpoint is the Serper search endpoint.
	DefaultEndpoint = "https://google.serper.dev/search"

	// DefaultResultLimit is the number of organic results requested and
	// the maximum number of hits retained in a LookupResult.
	DefaultResultLimit = 3

	// DefaultTimeout bounds a single lookup request. The engine performs
	// one request per bibliography entry, so a generous per-request
	// timeout keeps slow entries from looking like hard failures.
	DefaultTimeout = 30 * time.Second
)

// Client looks up publication titles against the Serper search index.
// A zero credential is allowed at construction time; lookups then fail
// fast with a descriptive error in the result, which lets bibliography
// verification degrade per entry instead of aborting the whole run.
type Client struct {
	// apiKey is the Serper API credential. Read-only after construction.
	apiKey string

	// endpoint is the search endpoint URL.
	endpoint string

	// resultLimit is the number of organic results to request.
	resultLimit int

	// httpClient performs the requests. Injectable for testing.
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the search endpoint URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithResultLimit overrides the number of organic results requested.
func WithResultLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.resultLimit = limit
		}
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a lookup client with the given API credential.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:      apiKey,
		endpoint:    DefaultEndpoint,
		resultLimit: DefaultResultLimit,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchRequest is the JSON body sent to the search endpoint.
type searchRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
}

// searchResponse is the subset of the Serper response paperscan reads.
type searchResponse struct {
	Organic []organicResult `json:"organic"`
}

type organicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Search looks up a publication by title and optional author string.
// It issues exactly one request, with no retries: each call either
// completes or reports its failure once. All failure modes are captured
// in the returned LookupResult; Search never returns an error.
func (c *Client) Search(ctx context.Context, title, authors string) model.LookupResult {
	if c.apiKey == "" {
		return model.LookupResult{
			Success: false,
			Error:   "search API key not provided",
		}
	}

	// The title is quoted so the index matches it as a phrase; the author
	// string narrows the result set for generic titles.
	query := fmt.Sprintf("%q", title)
	if authors != "" {
		query += " " + authors
	}

	body, err := json.Marshal(searchRequest{Query: query, Num: c.resultLimit})
	if err != nil {
		return model.LookupResult{
			Success: false,
			Error:   fmt.Sprintf("search request failed: %v", err),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return model.LookupResult{
			Success: false,
			Error:   fmt.Sprintf("search request failed: %v", err),
		}
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.LookupResult{
			Success: false,
			Error:   fmt.Sprintf("search request failed: %v", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.LookupResult{
			Success: false,
			Error:   fmt.Sprintf("API request failed with status %d", resp.StatusCode),
		}
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return model.LookupResult{
			Success: false,
			Error:   fmt.Sprintf("failed to decode search response: %v", err),
		}
	}

	if len(parsed.Organic) == 0 {
		return model.LookupResult{Success: true, Found: false, Results: []model.SearchHit{}}
	}

	hits := parsed.Organic
	if len(hits) > c.resultLimit {
		hits = hits[:c.resultLimit]
	}

	result := model.LookupResult{
		Success: true,
		Found:   true,
		Results: make([]model.SearchHit, 0, len(hits)),
	}
	for _, hit := range hits {
		result.Results = append(result.Results, model.SearchHit{
			Title:   stripTags(hit.Title),
			Link:    hit.Link,
			Snippet: stripTags(hit.Snippet),
		})
	}
	return result
}

// stripTags removes HTML markup from a search-result fragment.
// Serper snippets frequently carry <b>/<em> highlighting which must not
// leak into findings or rendered reports.
func stripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	tokenizer := html.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			sb.Write(tokenizer.Text())
		}
	}
}
