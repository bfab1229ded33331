package fetcher

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// Extractor locates the display price text in a product page.
type Extractor interface {
	ExtractPrice(doc *goquery.Document) (text string, ok bool)
}

// ExtractorFunc adapts a plain function to Extractor.
type ExtractorFunc func(doc *goquery.Document) (string, bool)

func (f ExtractorFunc) ExtractPrice(doc *goquery.Document) (string, bool) {
	return f(doc)
}

// Selector extracts the text of the first element matching a CSS selector.
type Selector string

func (s Selector) ExtractPrice(doc *goquery.Document) (string, bool) {
	sel := doc.Find(string(s)).First()
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Text(), true
}

// Site binds a host pattern to the extractor for that retailer.
type Site struct {
	Name      string
	Match     string
	Extractor Extractor
}

// UnsupportedSiteError is returned for URLs whose host has no registered site.
type UnsupportedSiteError struct {
	Host string
}

func (e *UnsupportedSiteError) Error() string {
	if e.Host == "" {
		return "no price extractor for URL without a host"
	}
	return fmt.Sprintf("no price extractor defined for %s", e.Host)
}

// Registry is an ordered list of sites. The first site whose pattern is a
// substring of the lower-cased host wins.
type Registry struct {
	mu    sync.RWMutex
	sites []Site
}

func NewRegistry(sites ...Site) *Registry {
	return &Registry{sites: sites}
}

// DefaultRegistry knows the retailers the bot ships with.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Site{Name: "Trendyol", Match: "trendyol.com", Extractor: Selector("span.prc-dsc")},
		Site{Name: "Hepsiburada", Match: "hepsiburada.com", Extractor: Selector(`span[itemprop="price"]`)},
		Site{Name: "Amazon", Match: "amazon.", Extractor: Selector("span.a-price span.a-offscreen")},
	)
}

// Register appends a site after the existing ones.
func (r *Registry) Register(site Site) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sites = append(r.sites, site)
}

// Names lists registered site names in lookup order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.sites))
	for _, site := range r.sites {
		names = append(names, site.Name)
	}
	return names
}

// Lookup returns the site responsible for rawURL.
func (r *Registry) Lookup(rawURL string) (Site, error) {
	host := hostOf(rawURL)
	if host == "" {
		return Site{}, &UnsupportedSiteError{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, site := range r.sites {
		if strings.Contains(host, strings.ToLower(site.Match)) {
			return site, nil
		}
	}
	return Site{}, &UnsupportedSiteError{Host: host}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
