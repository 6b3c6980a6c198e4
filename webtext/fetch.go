// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package webtext

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultMaxLength = 5000

	// Some job boards refuse requests without a browser user agent.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Tags whose subtrees carry no job-posting content.
var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"head":     true,
	"header":   true,
	"footer":   true,
	"nav":      true,
	"noscript": true,
}

// Fetcher retrieves a web page and reduces it to plain text suitable for
// requirement extraction. Fetches are time-bounded and never retried;
// callers treat failures as best-effort enrichment losses.
type Fetcher struct {
	client    *http.Client
	maxLength int
	logger    *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default 10-second-timeout client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithMaxLength caps the extracted text length in runes.
// Default is 5000.
func WithMaxLength(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxLength = n
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher creates a fetcher with a bounded-timeout HTTP client.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: defaultTimeout},
		maxLength: defaultMaxLength,
		logger:    slog.Default().With("component", "webtext"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the page at url and returns its visible text with
// scripts, styles and page chrome removed, whitespace collapsed, and
// length capped.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("page fetch failed", "url", url, "err", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("page fetch returned error status", "url", url, "status", resp.StatusCode)
		return "", fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	return truncateRunes(Extract(doc), f.maxLength), nil
}

// truncateRunes caps s at n runes, never splitting a multi-byte sequence.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Extract walks a parsed HTML tree and joins its visible text nodes,
// skipping non-content subtrees and collapsing runs of whitespace.
func Extract(doc *html.Node) string {
	var parts []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedTags[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				parts = append(parts, strings.Fields(trimmed)...)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return strings.Join(parts, " ")
}
