package externaljob

import (
	"regexp"
	"sort"
	"strings"
)

// skillKeywords is the vocabulary imported listings are tagged from.
var skillKeywords = []string{
	// languages
	"python", "javascript", "java", "c++", "c#", "php", "ruby", "go", "rust", "swift", "kotlin",
	"typescript", "scala", "r", "matlab", "perl", "shell", "bash",
	// web
	"html", "css", "react", "angular", "vue", "node.js", "express", "django", "flask",
	"spring", "laravel", "rails", "asp.net", "jquery", "bootstrap", "sass", "less",
	// databases
	"sql", "mysql", "postgresql", "mongodb", "redis", "oracle", "sqlite", "cassandra",
	"elasticsearch", "dynamodb", "firebase",
	// cloud and ops
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "git", "ci/cd",
	"terraform", "ansible", "linux", "nginx", "apache",
	// mobile
	"android", "ios", "react native", "flutter", "xamarin",
	// data
	"machine learning", "deep learning", "tensorflow", "pytorch", "pandas", "numpy",
	"scikit-learn", "data science", "data analysis", "tableau", "power bi",
	// other
	"blockchain", "solidity", "ethereum", "graphql", "rest api", "microservices",
	"agile", "scrum", "devops", "ui/ux", "figma", "adobe", "photoshop",
}

type keywordPattern struct {
	name string
	re   *regexp.Regexp
}

var keywordPatterns = compileKeywords(skillKeywords)

func compileKeywords(words []string) []keywordPattern {
	out := make([]keywordPattern, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		out = append(out, keywordPattern{
			name: w,
			re:   regexp.MustCompile(`(^|[^a-z0-9])` + regexp.QuoteMeta(w) + `([^a-z0-9]|$)`),
		})
	}
	return out
}

// ExtractSkills tags text with every vocabulary keyword it mentions as a whole
// word. Tags come back lowercase, most mentioned first, ties by name.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return nil
	}

	type hit struct {
		name  string
		count int
	}
	hits := make([]hit, 0)
	for _, k := range keywordPatterns {
		if n := len(k.re.FindAllStringIndex(lower, -1)); n > 0 {
			hits = append(hits, hit{name: k.name, count: n})
		}
	}
	if len(hits) == 0 {
		return nil
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].count == hits[j].count {
			return hits[i].name < hits[j].name
		}
		return hits[i].count > hits[j].count
	})

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}
	return out
}

// TaggingText picks the text a listing is tagged from: its description,
// falling back to the title.
func TaggingText(title, description string) string {
	if d := strings.TrimSpace(description); d != "" {
		return title + "\n" + d
	}
	return strings.TrimSpace(title)
}
