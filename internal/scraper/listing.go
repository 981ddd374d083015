package scraper

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	userAgent        = "PlacementPortalFetcher/1.0"
	maxResponseBytes = 5 << 20
)

var ErrResponseTooLarge = errors.New("response too large")

// Listing is one job as read from a source, before tagging and storage.
type Listing struct {
	Source      string
	ExternalID  string
	Title       string
	Company     string
	Location    string
	JobType     string
	Description string
	URL         string
	PostedAt    *time.Time
}

// Key identifies the listing within its source: the source's own id, or a
// hash of the listing URL when the source has none.
func (l Listing) Key() string {
	if id := strings.TrimSpace(l.ExternalID); id != "" {
		return id
	}
	return stableIDFromURL(l.URL)
}

// Fetcher reads the current listings of one source.
type Fetcher interface {
	Source() string
	Fetch(ctx context.Context) ([]Listing, error)
}

func stableIDFromURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	h := sha1.Sum([]byte(u))
	return "urlsha1-" + hex.EncodeToString(h[:])
}

func pickNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func parseRFC3339OrNil(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	tm, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	tm = tm.UTC()
	return &tm
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}

func requestHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept-Language": "en-US,en;q=0.9",
	}
}

// httpGetWithRetry GETs target up to attempts times, backing off between
// tries, and returns the body of the first 2xx response.
func httpGetWithRetry(ctx context.Context, client *http.Client, target string, headers map[string]string, attempts int) ([]byte, error) {
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := range attempts {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(300*i) * time.Millisecond):
			}
		}

		body, retry, err := httpGet(ctx, client, target, headers)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry {
			break
		}
	}
	return nil, lastErr
}

func httpGet(ctx context.Context, client *http.Client, target string, headers map[string]string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false, err
	}
	for k, v := range requestHeaders() {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// 4xx other than 429 will not change on retry.
		retry := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, retry, fmt.Errorf("GET %s: status %d", target, resp.StatusCode)
	}
	b, err := readAllLimit(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, false, err
	}
	return b, false, nil
}

func readAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: max + 1}
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, ErrResponseTooLarge
	}
	return b, nil
}
