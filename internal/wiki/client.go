// Package wiki fetches page summaries from the Wikipedia REST API and stores
// them in the local dataset.
package wiki

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL   = "https://en.wikipedia.org"
	DefaultUserAgent = "HOSLLM"
	summaryPath      = "/api/rest_v1/page/summary/"

	noSummary  = "No summary available"
	maxSummary = 500
)

// yearTrivia matches the calendar boilerplate Wikipedia opens year articles with,
// e.g. "1984 (MCMLXXXIV) was a leap year ... of the 20th century, and the 5th year of the 1980s decade."
var yearTrivia = regexp.MustCompile(`\b\d{3,4}\b.*?century,.*?decade\.`)

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	apiKey     string
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewClient(apiKey string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		apiKey:     apiKey,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Summary is the outcome of a summary request. Extract is only meaningful when
// StatusCode is 200.
type Summary struct {
	StatusCode int
	Extract    string
}

// FetchSummary performs a single GET for topic. A non-nil error means no
// response was received at all.
func (c *Client) FetchSummary(ctx context.Context, topic string) (Summary, error) {
	endpoint := c.baseURL + summaryPath + url.PathEscape(strings.ReplaceAll(topic, " ", "_"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Summary{}, fmt.Errorf("request summary: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	out := Summary{StatusCode: resp.StatusCode}
	if resp.StatusCode != http.StatusOK {
		return out, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Summary{}, fmt.Errorf("read summary: %w", err)
	}
	out.Extract = noSummary
	if v := gjson.GetBytes(body, "extract"); v.Exists() {
		out.Extract = v.String()
	}
	return out, nil
}

// Truncate cuts s to at most maxSummary runes.
func Truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxSummary {
		return s
	}
	return string(r[:maxSummary])
}

// Clean truncates the extract and strips year-article boilerplate.
func Clean(s string) string {
	s = Truncate(s)
	s = yearTrivia.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
