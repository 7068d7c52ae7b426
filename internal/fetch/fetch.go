package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// MaxBodySize is the largest molecule file Fetch accepts.
const MaxBodySize = 256 * 1024

// Client downloads XYZ coordinate files.
type Client struct {
	http *http.Client
}

// New creates a new fetch Client.
func New() *Client {
	return &Client{
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient creates a Client with a custom http.Client (for testing).
func NewWithHTTPClient(c *http.Client) *Client {
	return &Client{http: c}
}

// Fetch retrieves XYZ text from rawURL. Plain responses are returned as
// they are; for HTML pages the first <pre> block is returned.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("URL is required")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("URL must have http or https scheme, got %q", parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "chemical/x-xyz, text/plain, text/html;q=0.5")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch failed: HTTP %d", resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, MaxBodySize+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if len(body) > MaxBodySize {
		return "", fmt.Errorf("response larger than %d bytes", MaxBodySize)
	}

	if isHTML(resp.Header.Get("Content-Type")) {
		return extractPre(body)
	}
	return string(body), nil
}

func isHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "text/html" || mt == "application/xhtml+xml"
}

// extractPre returns the text of the first non-empty <pre> element.
func extractPre(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	var text string
	doc.Find("pre").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text = strings.Trim(s.Text(), "\r\n")
		return strings.TrimSpace(text) == ""
	})
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no <pre> block with coordinates found")
	}
	return text, nil
}
