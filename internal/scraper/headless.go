package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// HeadlessFetcher renders script-built listing pages in headless Chrome and
// parses the resulting DOM with the source's selectors.
type HeadlessFetcher struct {
	cfg    SourceConfig
	render func(ctx context.Context, pageURL, waitFor string) (string, error)
}

func NewHeadlessFetcher(cfg SourceConfig) *HeadlessFetcher {
	return &HeadlessFetcher{cfg: cfg, render: renderWithChrome}
}

func (f *HeadlessFetcher) Source() string { return f.cfg.Name }

func (f *HeadlessFetcher) Fetch(ctx context.Context) ([]Listing, error) {
	var found []Listing
	for page := 1; page <= f.cfg.pageCount(); page++ {
		pageURL := f.cfg.pageURL(page)
		html, err := f.render(ctx, pageURL, f.cfg.Selectors.Item)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", pageURL, err)
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", pageURL, err)
		}
		resolve := resolverFor(pageURL)
		doc.Find(f.cfg.Selectors.Item).Each(func(_ int, s *goquery.Selection) {
			found = append(found, extractListing(s, f.cfg, resolve))
		})
	}
	return dedupListings(found), nil
}

func renderWithChrome(ctx context.Context, pageURL, waitFor string) (string, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(userAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, 25*time.Second)
	defer reqCancel()

	if strings.TrimSpace(waitFor) == "" {
		waitFor = "body"
	}
	var html string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady(waitFor, chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}
