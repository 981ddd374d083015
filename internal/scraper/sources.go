package scraper

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Kind string

const (
	KindJSearch  Kind = "jsearch"
	KindHTML     Kind = "html"
	KindHeadless Kind = "headless"
)

// SourceConfig describes one job board. URL may hold a %d verb, replaced by
// the page number for each of Pages pages.
type SourceConfig struct {
	Name      string    `yaml:"name"`
	Kind      Kind      `yaml:"kind"`
	URL       string    `yaml:"url"`
	Pages     int       `yaml:"pages"`
	Query     string    `yaml:"query"`
	Location  string    `yaml:"location"`
	Company   string    `yaml:"company"`
	Selectors Selectors `yaml:"selectors"`
}

// Selectors are CSS selectors. Item matches one listing; the others are
// evaluated inside it. Link is read from its href attribute.
type Selectors struct {
	Item        string `yaml:"item"`
	Title       string `yaml:"title"`
	Company     string `yaml:"company"`
	Location    string `yaml:"location"`
	JobType     string `yaml:"job_type"`
	Link        string `yaml:"link"`
	Description string `yaml:"description"`
	Posted      string `yaml:"posted"`
}

type sourcesFile struct {
	Sources []SourceConfig `yaml:"sources"`
}

// Options carry the process-wide settings every fetcher shares.
type Options struct {
	JSearchAPIKey string
	HTTPClient    *http.Client
}

var ErrNoCredentials = errors.New("source credentials are not configured")

// DefaultSources is used when no sources file is given.
func DefaultSources() []SourceConfig {
	return []SourceConfig{{Name: "jsearch", Kind: KindJSearch, Query: "internship", Pages: 1}}
}

func LoadSources(path string) ([]SourceConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSources(raw)
}

func ParseSources(raw []byte) ([]SourceConfig, error) {
	var f sourcesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse sources: %w", err)
	}
	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("parse sources: no sources listed")
	}

	seen := map[string]struct{}{}
	for i := range f.Sources {
		s := &f.Sources[i]
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			return nil, fmt.Errorf("sources[%d]: name is required", i)
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("sources[%d]: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = struct{}{}
		if s.Pages <= 0 {
			s.Pages = 1
		}

		switch s.Kind {
		case KindJSearch:
			if strings.TrimSpace(s.Query) == "" {
				return nil, fmt.Errorf("sources[%d]: query is required for %s", i, s.Kind)
			}
		case KindHTML, KindHeadless:
			if hostFromURL(s.pageURL(1)) == "" {
				return nil, fmt.Errorf("sources[%d]: absolute url is required for %s", i, s.Kind)
			}
			if strings.TrimSpace(s.Selectors.Item) == "" || strings.TrimSpace(s.Selectors.Title) == "" {
				return nil, fmt.Errorf("sources[%d]: item and title selectors are required", i)
			}
		default:
			return nil, fmt.Errorf("sources[%d]: unknown kind %q", i, s.Kind)
		}
	}
	return f.Sources, nil
}

func (s SourceConfig) pageURL(page int) string {
	if strings.Contains(s.URL, "%d") {
		return fmt.Sprintf(s.URL, page)
	}
	return s.URL
}

// pageCount is the number of distinct pages the source can be asked for.
func (s SourceConfig) pageCount() int {
	if !strings.Contains(s.URL, "%d") {
		return 1
	}
	return max(s.Pages, 1)
}

// BuildFetchers turns source configs into fetchers.
func BuildFetchers(sources []SourceConfig, opts Options) ([]Fetcher, error) {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 25 * time.Second}
	}

	out := make([]Fetcher, 0, len(sources))
	for _, s := range sources {
		switch s.Kind {
		case KindJSearch:
			out = append(out, NewJSearchFetcher(s, opts.JSearchAPIKey, client))
		case KindHTML:
			out = append(out, NewHTMLFetcher(s))
		case KindHeadless:
			out = append(out, NewHeadlessFetcher(s))
		default:
			return nil, fmt.Errorf("source %q: unknown kind %q", s.Name, s.Kind)
		}
	}
	return out, nil
}
