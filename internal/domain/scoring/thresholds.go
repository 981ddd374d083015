package scoring

const (
	// MinCompletenessToApply is the lowest completeness that may submit an application.
	MinCompletenessToApply = 60
	// GoodCompleteness ends the advisory band that starts at MinCompletenessToApply.
	GoodCompleteness = 80
	// MatchEligibilityThreshold marks an applicant as eligible on dashboards.
	MatchEligibilityThreshold = 70
)

type Readiness string

const (
	ReadinessBlocked  Readiness = "blocked"
	ReadinessAdvisory Readiness = "advisory"
	ReadinessGood     Readiness = "good"
)

const (
	TipBlocked  = "Please complete at least 60% of your profile before applying."
	TipAdvisory = "Tip: a profile above 80% complete gets noticed more. Add the missing details to increase your chances."
)

type Assessment struct {
	Score     int
	Readiness Readiness
	CanApply  bool
	Tip       string
}

func AssessCompleteness(score int) Assessment {
	a := Assessment{Score: score}
	switch {
	case score < MinCompletenessToApply:
		a.Readiness = ReadinessBlocked
		a.Tip = TipBlocked
	case score < GoodCompleteness:
		a.Readiness = ReadinessAdvisory
		a.CanApply = true
		a.Tip = TipAdvisory
	default:
		a.Readiness = ReadinessGood
		a.CanApply = true
	}
	return a
}

func IsMatchEligible(matchPercentage int) bool {
	return matchPercentage >= MatchEligibilityThreshold
}
