package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

const (
	DefaultUserAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
	DefaultAcceptLanguage = "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7"
	DefaultTimeout        = 15 * time.Second
)

// PriceFetcher returns the current price shown on a product page.
// found is false when the page has no recognizable price.
type PriceFetcher interface {
	FetchPrice(ctx context.Context, url string) (price float64, found bool, err error)
}

// Fetcher downloads product pages and extracts prices using a site registry.
type Fetcher struct {
	registry       *Registry
	timeout        time.Duration
	userAgent      string
	acceptLanguage string
}

func New(registry *Registry, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		registry:       registry,
		timeout:        timeout,
		userAgent:      DefaultUserAgent,
		acceptLanguage: DefaultAcceptLanguage,
	}
}

// Supports reports whether a site is registered for rawURL.
func (f *Fetcher) Supports(rawURL string) error {
	_, err := f.registry.Lookup(rawURL)
	return err
}

func (f *Fetcher) FetchPrice(ctx context.Context, rawURL string) (float64, bool, error) {
	site, err := f.registry.Lookup(rawURL)
	if err != nil {
		return 0, false, err
	}

	doc, err := f.fetchDocument(ctx, rawURL)
	if err != nil {
		return 0, false, err
	}

	text, ok := site.Extractor.ExtractPrice(doc)
	if !ok {
		log.Printf("[FETCH] %s: price element not found on %s", site.Name, rawURL)
		return 0, false, nil
	}

	price, ok := ParsePrice(text)
	if !ok {
		log.Printf("[FETCH] %s: could not parse price %q on %s", site.Name, text, rawURL)
		return 0, false, nil
	}

	return price, true, nil
}

// fetchDocument issues a single GET. A fresh collector per call keeps
// concurrent callers from sharing callbacks.
func (f *Fetcher) fetchDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.AllowURLRevisit(),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(f.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Language", f.acceptLanguage)
	})

	var doc *goquery.Document
	var parseErr error
	c.OnResponse(func(r *colly.Response) {
		doc, parseErr = goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
	})

	if err := c.Visit(rawURL); err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse page: %w", parseErr)
	}
	if doc == nil {
		return nil, errors.New("empty response")
	}
	return doc, nil
}
