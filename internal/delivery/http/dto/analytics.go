package dto

import "placement-portal/internal/usecase"

type PlacementReportResponse struct {
	ApplicationsByStatus map[string]int `json:"applications_by_status"`
	TotalApplications    int            `json:"total_applications"`
	StudentsByReadiness  map[string]int `json:"students_by_readiness"`
	TotalStudents        int            `json:"total_students"`
	AverageCompleteness  float64        `json:"average_completeness"`
	AverageMatch         float64        `json:"average_match"`
	EligibleApplications int            `json:"eligible_applications"`
}

func FromPlacementReport(r usecase.PlacementReport) PlacementReportResponse {
	byStatus := make(map[string]int, len(r.ApplicationsByStatus))
	for k, v := range r.ApplicationsByStatus {
		byStatus[string(k)] = v
	}
	byReadiness := make(map[string]int, len(r.StudentsByReadiness))
	for k, v := range r.StudentsByReadiness {
		byReadiness[string(k)] = v
	}
	return PlacementReportResponse{
		ApplicationsByStatus: byStatus,
		TotalApplications:    r.TotalApplications,
		StudentsByReadiness:  byReadiness,
		TotalStudents:        r.TotalStudents,
		AverageCompleteness:  r.AverageCompleteness,
		AverageMatch:         r.AverageMatch,
		EligibleApplications: r.EligibleApplications,
	}
}
