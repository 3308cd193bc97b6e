package source

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
)

// WebConfig holds configuration for a WebSource.
type WebConfig struct {
	// StartURL is the page to start crawling from (required).
	StartURL string

	// AllowedDomains restricts crawling to these domains. If empty,
	// only the domain of StartURL is allowed.
	AllowedDomains []string

	// MaxDepth is the maximum crawl depth (0 = unlimited).
	MaxDepth int

	// MaxDocuments caps how many PDFs are downloaded (0 = unlimited).
	MaxDocuments int

	// Concurrency is the number of concurrent requests. Default: 2
	Concurrency int

	// RequestDelay is the delay between requests. Default: 100ms
	RequestDelay time.Duration

	// UserAgent is the User-Agent string for requests.
	UserAgent string
}

// WebSource crawls a website and yields the PDF documents it links
// to. HTML pages are only followed, never yielded.
type WebSource struct {
	config WebConfig
}

// NewWebSource creates a web source.
func NewWebSource(config WebConfig) (*WebSource, error) {
	if config.StartURL == "" {
		return nil, fmt.Errorf("web source: StartURL is required")
	}

	parsed, err := url.Parse(config.StartURL)
	if err != nil {
		return nil, fmt.Errorf("web source: invalid StartURL: %w", err)
	}

	if len(config.AllowedDomains) == 0 {
		config.AllowedDomains = []string{parsed.Host}
	}
	if config.Concurrency == 0 {
		config.Concurrency = 2
	}
	if config.RequestDelay == 0 {
		config.RequestDelay = 100 * time.Millisecond
	}
	if config.UserAgent == "" {
		config.UserAgent = "linea/1.0"
	}

	return &WebSource{config: config}, nil
}

// Type returns "web" as the source type.
func (ws *WebSource) Type() string {
	return "web"
}

// Traverse crawls from StartURL, following links within the allowed
// domains and yielding every PDF response it encounters.
func (ws *WebSource) Traverse(ctx context.Context) (<-chan Item, <-chan error) {
	items := make(chan Item)
	errs := make(chan error, 1)

	go func() {
		defer close(items)
		defer close(errs)

		var mu sync.Mutex
		seen := make(map[string]bool)
		count := 0
		done := false

		c := colly.NewCollector(
			colly.AllowedDomains(ws.config.AllowedDomains...),
			colly.Async(true),
			colly.MaxDepth(ws.config.MaxDepth),
		)
		c.Limit(&colly.LimitRule{
			DomainGlob:  "*",
			Parallelism: ws.config.Concurrency,
			Delay:       ws.config.RequestDelay,
		})
		c.UserAgent = ws.config.UserAgent

		c.OnResponse(func(r *colly.Response) {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if !isPDFResponse(r) {
				return
			}

			urlStr := r.Request.URL.String()
			mu.Lock()
			if done || seen[urlStr] || (ws.config.MaxDocuments > 0 && count >= ws.config.MaxDocuments) {
				mu.Unlock()
				return
			}
			seen[urlStr] = true
			count++
			mu.Unlock()

			select {
			case items <- Item{
				Path:      pdfPathFromURL(r.Request.URL),
				SourceURL: urlStr,
				Content:   r.Body,
				Metadata: map[string]any{
					"source_type": "web",
					"status_code": r.StatusCode,
					"depth":       r.Request.Depth,
				},
			}:
			case <-ctx.Done():
				mu.Lock()
				done = true
				mu.Unlock()
			}
		})

		c.OnHTML("a[href]", func(e *colly.HTMLElement) {
			select {
			case <-ctx.Done():
				return
			default:
			}

			mu.Lock()
			stop := done || (ws.config.MaxDocuments > 0 && count >= ws.config.MaxDocuments)
			mu.Unlock()
			if stop {
				return
			}

			link := e.Attr("href")
			if link == "" || strings.HasPrefix(link, "#") ||
				strings.HasPrefix(link, "javascript:") ||
				strings.HasPrefix(link, "mailto:") {
				return
			}

			if absURL := e.Request.AbsoluteURL(link); absURL != "" {
				e.Request.Visit(absURL)
			}
		})

		if err := c.Visit(ws.config.StartURL); err != nil {
			errs <- fmt.Errorf("visit %s: %w", ws.config.StartURL, err)
			return
		}
		c.Wait()

		if ctx.Err() != nil {
			errs <- ctx.Err()
		}
	}()

	return items, errs
}

// isPDFResponse reports whether a response carries a PDF, by content
// type or by magic number for servers that mislabel downloads.
func isPDFResponse(r *colly.Response) bool {
	contentType := strings.ToLower(r.Headers.Get("Content-Type"))
	if strings.Contains(contentType, "application/pdf") {
		return true
	}
	body := r.Body
	return len(body) >= 5 && string(body[:5]) == "%PDF-"
}

// pdfPathFromURL derives a relative output path from a document URL.
func pdfPathFromURL(u *url.URL) string {
	p := strings.TrimPrefix(u.Path, "/")
	if p == "" {
		p = "index.pdf"
	}
	if !strings.EqualFold(path.Ext(p), ".pdf") {
		p += ".pdf"
	}
	return p
}
