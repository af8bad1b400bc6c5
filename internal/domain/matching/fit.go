package matching

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

const (
	pointsPerRequirement = 5
	gapPenaltyPerLevel   = 2
)

type fitResult struct {
	Score         int
	Gaps          []Gap
	Training      []string
	MatchedSkills []MatchedSkill
}

// Fit scores a candidate's proficiencies against the project's
// requirements: 5 points for meeting a requirement, a 2-point penalty per
// missing level, 0 for an absent skill. ratings supplies the per-skill
// historical averages attached to matched-skill entries.
func Fit(reqs []Requirement, skills []Proficiency, ratings map[uuid.UUID][]int) fitResult {
	out := fitResult{
		Gaps:          make([]Gap, 0),
		Training:      make([]string, 0),
		MatchedSkills: make([]MatchedSkill, 0, len(reqs)),
	}

	totalMax := len(reqs) * pointsPerRequirement
	if totalMax == 0 {
		out.Score = 100
		return out
	}

	bySkill := make(map[uuid.UUID]Proficiency, len(skills))
	for _, s := range skills {
		bySkill[s.SkillID] = s
	}

	current := 0
	for _, req := range reqs {
		avg := averageRating(ratings[req.SkillID])

		held, ok := bySkill[req.SkillID]
		if !ok {
			out.Gaps = append(out.Gaps, Gap{Skill: req.SkillName, Type: GapMissing, Required: req.MinLevel})
			out.Training = append(out.Training, fmt.Sprintf("Course: %s Fundamentals", req.SkillName))
			continue
		}

		if held.Level >= req.MinLevel {
			current += pointsPerRequirement
			out.MatchedSkills = append(out.MatchedSkills, MatchedSkill{
				SkillID:   held.SkillID,
				SkillName: held.SkillName,
				Level:     held.Level,
				MatchType: MatchPerfect,
				AvgRating: avg,
			})
			continue
		}

		diff := req.MinLevel - held.Level
		pts := pointsPerRequirement - diff*gapPenaltyPerLevel
		if pts > 0 {
			current += pts
		}

		out.Gaps = append(out.Gaps, Gap{Skill: req.SkillName, Type: GapProficiency, Current: held.Level, Required: req.MinLevel})
		out.Training = append(out.Training, fmt.Sprintf("Upskill %s: Level %d -> %d", req.SkillName, held.Level, req.MinLevel))
		out.MatchedSkills = append(out.MatchedSkills, MatchedSkill{
			SkillID:   held.SkillID,
			SkillName: held.SkillName,
			Level:     held.Level,
			MatchType: MatchGap,
			AvgRating: avg,
		})
	}

	out.Score = int(math.Round(float64(current) / float64(totalMax) * 100))
	return out
}

func averageRating(scores []int) *float64 {
	if len(scores) == 0 {
		return nil
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	avg := float64(sum) / float64(len(scores))
	return &avg
}
