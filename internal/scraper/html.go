package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// HTMLFetcher scrapes server-rendered listing pages with colly.
type HTMLFetcher struct {
	cfg  SourceConfig
	host string
}

func NewHTMLFetcher(cfg SourceConfig) *HTMLFetcher {
	return &HTMLFetcher{cfg: cfg, host: hostFromURL(cfg.pageURL(1))}
}

func (f *HTMLFetcher) Source() string { return f.cfg.Name }

func (f *HTMLFetcher) Fetch(ctx context.Context) ([]Listing, error) {
	c := colly.NewCollector(colly.AllowedDomains(f.host))
	c.SetRequestTimeout(25 * time.Second)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 1, Delay: 400 * time.Millisecond, RandomDelay: 750 * time.Millisecond})

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		for k, v := range requestHeaders() {
			r.Headers.Set(k, v)
		}
	})

	var found []Listing
	c.OnHTML(f.cfg.Selectors.Item, func(e *colly.HTMLElement) {
		found = append(found, extractListing(e.DOM, f.cfg, e.Request.AbsoluteURL))
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = fmt.Errorf("GET %s: %w", r.Request.URL, err)
	})

	for page := 1; page <= f.cfg.pageCount(); page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.Visit(f.cfg.pageURL(page)); err != nil {
			return nil, err
		}
		c.Wait()
		if reqErr != nil {
			return nil, reqErr
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dedupListings(found), nil
}

// extractListing reads one item matched by the Item selector. resolve turns
// a possibly relative href into an absolute URL.
func extractListing(s *goquery.Selection, cfg SourceConfig, resolve func(string) string) Listing {
	sel := cfg.Selectors
	l := Listing{
		Source:      cfg.Name,
		Title:       childText(s, sel.Title),
		Company:     pickNonEmpty(childText(s, sel.Company), cfg.Company),
		Location:    childText(s, sel.Location),
		JobType:     childText(s, sel.JobType),
		Description: childText(s, sel.Description),
	}

	var href string
	if sel.Link != "" {
		href, _ = s.Find(sel.Link).First().Attr("href")
	} else {
		href, _ = s.Attr("href")
	}
	if href = strings.TrimSpace(href); href != "" {
		l.URL = resolve(href)
	}

	if sel.Posted != "" {
		node := s.Find(sel.Posted).First()
		stamp, ok := node.Attr("datetime")
		if !ok {
			stamp = node.Text()
		}
		l.PostedAt = parseRFC3339OrNil(stamp)
	}
	return l
}

func childText(s *goquery.Selection, selector string) string {
	if strings.TrimSpace(selector) == "" {
		return ""
	}
	return strings.Join(strings.Fields(s.Find(selector).First().Text()), " ")
}

// dedupListings drops untitled items and repeats of the same key, keeping
// the first occurrence.
func dedupListings(in []Listing) []Listing {
	seen := map[string]struct{}{}
	out := make([]Listing, 0, len(in))
	for _, l := range in {
		if l.Title == "" {
			continue
		}
		key := pickNonEmpty(l.Key(), strings.ToLower(l.Title+"|"+l.Company))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, l)
	}
	return out
}

func resolverFor(base string) func(string) string {
	b, err := url.Parse(base)
	return func(href string) string {
		ref, perr := url.Parse(href)
		if err != nil || perr != nil {
			return href
		}
		return b.ResolveReference(ref).String()
	}
}
