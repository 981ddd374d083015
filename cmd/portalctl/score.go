package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"placement-portal/internal/database/seeder"
	"placement-portal/internal/domain/scoring"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Run the scoring rules offline",
}

var scoreMatchCmd = &cobra.Command{
	Use:     "match",
	Short:   "Score candidate skills against required tags",
	Example: "  portalctl score match --skills go,postgres --tags Go,Docker,PostgreSQL",
	RunE:    runScoreMatch,
}

var scoreProfileCmd = &cobra.Command{
	Use:     "profile",
	Short:   "Score the completeness of a student profile read from YAML",
	Example: "  portalctl score profile --file ada.yaml",
	RunE:    runScoreProfile,
}

var (
	scoreSkills      []string
	scoreTags        []string
	scoreProfileFile string
)

func init() {
	scoreMatchCmd.Flags().StringSliceVar(&scoreSkills, "skills", nil, "Candidate skills, comma separated")
	scoreMatchCmd.Flags().StringSliceVar(&scoreTags, "tags", nil, "Required tags, comma separated")

	scoreProfileCmd.Flags().StringVarP(&scoreProfileFile, "file", "f", "", "YAML file with one student entry (required)")
	_ = scoreProfileCmd.MarkFlagRequired("file")

	scoreCmd.AddCommand(scoreMatchCmd, scoreProfileCmd)
	rootCmd.AddCommand(scoreCmd)
}

type matchOutput struct {
	Percentage  int      `json:"percentage"`
	Matched     []string `json:"matched_tags"`
	Missing     []string `json:"missing_tags"`
	Eligible    bool     `json:"eligible"`
	TotalTags   int      `json:"total_required"`
	MatchedTags int      `json:"matched_count"`
}

func runScoreMatch(cmd *cobra.Command, _ []string) error {
	res := scoring.MatchSkills(trimAll(scoreSkills), trimAll(scoreTags))
	return writeJSON(cmd, matchOutput{
		Percentage:  res.Percentage,
		Matched:     res.MatchedTags,
		Missing:     res.MissingTags,
		Eligible:    scoring.IsMatchEligible(res.Percentage),
		TotalTags:   res.TotalRequired,
		MatchedTags: res.MatchedCount,
	})
}

type profileOutput struct {
	Score     int              `json:"score"`
	Readiness string           `json:"readiness"`
	CanApply  bool             `json:"can_apply"`
	Tip       string           `json:"tip,omitempty"`
	Missing   []scoring.Field  `json:"missing"`
	Fields    []fieldCreditOut `json:"fields"`
}

type fieldCreditOut struct {
	Field  scoring.Field `json:"field"`
	Weight int           `json:"weight"`
	Earned int           `json:"earned"`
}

func runScoreProfile(cmd *cobra.Command, _ []string) error {
	raw, err := os.ReadFile(scoreProfileFile)
	if err != nil {
		return err
	}

	var fx seeder.StudentFixture
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return fmt.Errorf("parse %s: %w", scoreProfileFile, err)
	}
	p, err := fx.Profile()
	if err != nil {
		return err
	}

	b := scoring.ProfileBreakdown(p)
	a := scoring.AssessCompleteness(b.Score)

	fields := make([]fieldCreditOut, 0, len(b.Fields))
	for _, f := range b.Fields {
		fields = append(fields, fieldCreditOut{Field: f.Field, Weight: f.Weight, Earned: f.Earned})
	}
	return writeJSON(cmd, profileOutput{
		Score:     a.Score,
		Readiness: string(a.Readiness),
		CanApply:  a.CanApply,
		Tip:       a.Tip,
		Missing:   b.Missing,
		Fields:    fields,
	})
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
