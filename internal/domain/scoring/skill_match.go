package scoring

import (
	"math"
	"strings"
)

type MatchResult struct {
	Percentage    int
	MatchedTags   []string
	MissingTags   []string
	TotalRequired int
	MatchedCount  int
}

// ComputeSkillMatch returns the share of requiredTags covered by
// candidateSkills as a rounded percentage in [0,100].
//
// A tag is covered when a skill contains it or it contains the skill, after
// trimming and lowercasing both. The containment is intentionally loose:
// "java" covers "javascript". Eligibility thresholds were tuned against it.
func ComputeSkillMatch(candidateSkills, requiredTags []string) int {
	return MatchSkills(candidateSkills, requiredTags).Percentage
}

// MatchSkills is ComputeSkillMatch with the matched and missing tags kept.
// Tags are reported in their original spelling and input order.
func MatchSkills(candidateSkills, requiredTags []string) MatchResult {
	total := len(requiredTags)
	if total == 0 {
		return MatchResult{Percentage: 100, MatchedTags: []string{}, MissingTags: []string{}}
	}

	res := MatchResult{
		TotalRequired: total,
		MatchedTags:   make([]string, 0, total),
		MissingTags:   make([]string, 0, total),
	}
	if len(candidateSkills) == 0 {
		res.MissingTags = append(res.MissingTags, requiredTags...)
		return res
	}

	skills := normalizeAll(candidateSkills)
	for _, raw := range requiredTags {
		if containsEither(skills, normalize(raw)) {
			res.MatchedTags = append(res.MatchedTags, raw)
			continue
		}
		res.MissingTags = append(res.MissingTags, raw)
	}

	res.MatchedCount = len(res.MatchedTags)
	res.Percentage = percentOf(res.MatchedCount, total)
	return res
}

func containsEither(skills []string, tag string) bool {
	for _, s := range skills {
		if strings.Contains(tag, s) || strings.Contains(s, tag) {
			return true
		}
	}
	return false
}

// normalizeAll also collapses duplicate skills; a skill listed twice still
// covers each tag once.
func normalizeAll(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		n := normalize(s)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func percentOf(n, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(float64(n) / float64(total) * 100))
	return clampInt(p, 0, 100)
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
