package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

const (
	opportunityListPrefix = "opportunities:list:"
	opportunityDomainsKey = "opportunities:domains"
	applyLockPrefix       = "applications:lock:"
)

type opportunityListKeyInput struct {
	Domain   string `json:"domain"`
	WorkType string `json:"work_type"`
	Search   string `json:"search"`
	Page     int    `json:"page"`
	PerPage  int    `json:"per_page"`
}

func normalizeKeyPart(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// OpportunityListKey is stable across casing and spacing differences in the filters.
func OpportunityListKey(domain, workType, search string, page, perPage int) string {
	in := opportunityListKeyInput{
		Domain:   normalizeKeyPart(domain),
		WorkType: normalizeKeyPart(workType),
		Search:   normalizeKeyPart(search),
		Page:     page,
		PerPage:  perPage,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return opportunityListPrefix + hex.EncodeToString(sum[:])
}

func OpportunityListPattern() string {
	return opportunityListPrefix + "*"
}

func OpportunityDomainsKey() string {
	return opportunityDomainsKey
}

func ApplyLockKey(studentID, opportunityID uuid.UUID) string {
	return applyLockPrefix + studentID.String() + ":" + opportunityID.String()
}
