package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	jsearchBaseURL = "https://jsearch.p.rapidapi.com"
	jsearchHost    = "jsearch.p.rapidapi.com"
)

// JSearchFetcher reads listings from the JSearch aggregator API.
type JSearchFetcher struct {
	cfg     SourceConfig
	apiKey  string
	client  *http.Client
	baseURL string
}

// NewJSearchFetcher uses cfg.URL as the API base when set.
func NewJSearchFetcher(cfg SourceConfig, apiKey string, client *http.Client) *JSearchFetcher {
	base := strings.TrimRight(pickNonEmpty(cfg.URL, jsearchBaseURL), "/")
	return &JSearchFetcher{cfg: cfg, apiKey: strings.TrimSpace(apiKey), client: client, baseURL: base}
}

func (f *JSearchFetcher) Source() string { return f.cfg.Name }

type jsearchResponse struct {
	Data []jsearchJob `json:"data"`
}

type jsearchJob struct {
	JobID          string `json:"job_id"`
	Title          string `json:"job_title"`
	EmployerName   string `json:"employer_name"`
	Description    string `json:"job_description"`
	City           string `json:"job_city"`
	State          string `json:"job_state"`
	Country        string `json:"job_country"`
	EmploymentType string `json:"job_employment_type"`
	ApplyLink      string `json:"job_apply_link"`
	GoogleLink     string `json:"job_google_link"`
	PostedAt       string `json:"job_posted_at_datetime_utc"`
}

func (f *JSearchFetcher) Fetch(ctx context.Context) ([]Listing, error) {
	if f.apiKey == "" {
		return nil, fmt.Errorf("%s: %w", f.cfg.Name, ErrNoCredentials)
	}

	q := url.Values{}
	q.Set("query", f.cfg.Query)
	q.Set("page", "1")
	q.Set("num_pages", strconv.Itoa(max(f.cfg.Pages, 1)))
	q.Set("date_posted", "month")
	if loc := strings.TrimSpace(f.cfg.Location); loc != "" {
		q.Set("location", loc)
	}

	body, err := httpGetWithRetry(ctx, f.client, f.baseURL+"/search?"+q.Encode(), map[string]string{
		"X-RapidAPI-Key":  f.apiKey,
		"X-RapidAPI-Host": jsearchHost,
	}, 3)
	if err != nil {
		return nil, err
	}

	var resp jsearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode jsearch response: %w", err)
	}

	out := make([]Listing, 0, len(resp.Data))
	for _, j := range resp.Data {
		out = append(out, Listing{
			Source:      f.cfg.Name,
			ExternalID:  j.JobID,
			Title:       strings.TrimSpace(j.Title),
			Company:     strings.TrimSpace(j.EmployerName),
			Location:    joinLocation(j.City, j.State, j.Country),
			JobType:     strings.TrimSpace(j.EmploymentType),
			Description: strings.TrimSpace(j.Description),
			URL:         pickNonEmpty(j.ApplyLink, j.GoogleLink),
			PostedAt:    parseRFC3339OrNil(j.PostedAt),
		})
	}
	return out, nil
}

func joinLocation(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
