package matching

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Evaluate runs the three scorers for one candidate against the target
// project and combines them into the overall match. Pure computation
// over already-fetched data.
func Evaluate(target Window, reqs []Requirement, cand Candidate, cfg Config) MatchCandidate {
	reqs = DedupeRequirements(reqs)

	// A project with no requirements constrains nobody: everyone is a
	// full fit with no commitments counted against them.
	if len(reqs) == 0 {
		fit := Fit(reqs, cand.Skills, cand.Ratings)
		return MatchCandidate{
			PersonID:        cand.PersonID,
			Name:            cand.Name,
			Role:            cand.Role,
			ExperienceLevel: cand.ExperienceLevel,

			FitScore:          fit.Score,
			AvailabilityScore: 100,
			OverallMatch:      100,

			Gaps:          fit.Gaps,
			Training:      fit.Training,
			MatchedSkills: fit.MatchedSkills,
		}
	}

	utilization, activeCount := Utilization(target, cand.Assignments, cfg)
	availability := 100 - utilization

	fit := Fit(reqs, cand.Skills, cand.Ratings)

	var perfPtr *int
	var overall int
	if perf, ok := Performance(reqs, cand.Ratings); ok {
		p := perf
		perfPtr = &p
		overall = int(math.Round(
			float64(fit.Score)*cfg.FitWeight +
				float64(availability)*cfg.AvailabilityWeight +
				float64(perf)*cfg.PerformanceWeight,
		))
	} else {
		overall = int(math.Round(
			float64(fit.Score)*cfg.NoHistoryFitWeight +
				float64(availability)*cfg.NoHistoryAvailabilityWeight,
		))
	}

	return MatchCandidate{
		PersonID:        cand.PersonID,
		Name:            cand.Name,
		Role:            cand.Role,
		ExperienceLevel: cand.ExperienceLevel,

		FitScore:            fit.Score,
		UtilizationPct:      utilization,
		AvailabilityScore:   availability,
		PerformanceScore:    perfPtr,
		OverallMatch:        overall,
		ActiveProjectsCount: activeCount,

		Gaps:          fit.Gaps,
		Training:      fit.Training,
		MatchedSkills: fit.MatchedSkills,
	}
}

// Rank partitions candidates into tiers by overall match and sorts each
// tier descending. Candidates under the near-match threshold are dropped.
func Rank(cands []MatchCandidate, cfg Config) Result {
	res := Result{
		PerfectMatch: make([]MatchCandidate, 0, len(cands)),
		NearMatch:    make([]MatchCandidate, 0),
	}

	for _, c := range cands {
		switch {
		case c.OverallMatch >= cfg.BestFitThreshold:
			res.PerfectMatch = append(res.PerfectMatch, c)
		case c.OverallMatch >= cfg.NearMatchThreshold:
			res.NearMatch = append(res.NearMatch, c)
		}
	}

	byOverallDesc := func(list []MatchCandidate) func(i, j int) bool {
		return func(i, j int) bool { return list[i].OverallMatch > list[j].OverallMatch }
	}
	sort.SliceStable(res.PerfectMatch, byOverallDesc(res.PerfectMatch))
	sort.SliceStable(res.NearMatch, byOverallDesc(res.NearMatch))

	return res
}

// DedupeRequirements keeps the first requirement per skill so a
// duplicated row cannot double-count that skill's weight.
func DedupeRequirements(reqs []Requirement) []Requirement {
	seen := make(map[uuid.UUID]struct{}, len(reqs))
	out := make([]Requirement, 0, len(reqs))
	for _, r := range reqs {
		if _, ok := seen[r.SkillID]; ok {
			continue
		}
		seen[r.SkillID] = struct{}{}
		out = append(out, r)
	}
	return out
}
