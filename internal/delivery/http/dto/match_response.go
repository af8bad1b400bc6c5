package dto

import (
	"staffhub/internal/domain/matching"
	"staffhub/internal/usecase"
)

// MatchResponse is the full match report for one project: the project,
// its requirements and the tiered candidate lists.
type MatchResponse struct {
	Project      ProjectResponse           `json:"project"`
	Requirements []RequirementResponse     `json:"requirements"`
	PerfectMatch []matching.MatchCandidate `json:"perfectMatch"`
	NearMatch    []matching.MatchCandidate `json:"nearMatch"`
}

func NewMatchResponse(out usecase.MatchOutput) MatchResponse {
	reqs := make([]RequirementResponse, 0, len(out.Requirements))
	for _, r := range out.Requirements {
		reqs = append(reqs, RequirementResponse{
			SkillID:   r.SkillID,
			SkillName: r.SkillName,
			MinLevel:  r.MinLevel,
		})
	}
	return MatchResponse{
		Project:      NewProjectResponse(out.Project),
		Requirements: reqs,
		PerfectMatch: out.PerfectMatch,
		NearMatch:    out.NearMatch,
	}
}
