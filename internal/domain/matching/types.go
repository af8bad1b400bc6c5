package matching

import (
	"time"

	"github.com/google/uuid"
)

// Requirement is one required skill of the target project.
type Requirement struct {
	SkillID   uuid.UUID
	SkillName string
	MinLevel  int
}

// Proficiency is one (skill, level) pair a person holds.
type Proficiency struct {
	SkillID   uuid.UUID
	SkillName string
	Level     int
}

// Window is a project time range. Either bound may be absent.
type Window struct {
	Start *time.Time
	End   *time.Time
}

func (w Window) complete() bool {
	return w.Start != nil && w.End != nil
}

// Assignment is an existing Active/Planning project commitment of a
// candidate, with that project's window.
type Assignment struct {
	ProjectID     uuid.UUID
	ProjectName   string
	Window        Window
	AllocationPct int
}

// Candidate bundles everything the engine reads about one person. The
// caller gathers this from storage; the engine never queries.
type Candidate struct {
	PersonID        uuid.UUID
	Name            string
	Role            string
	ExperienceLevel string

	Skills      []Proficiency
	Assignments []Assignment

	// Ratings holds historical skill ratings keyed by skill id.
	Ratings map[uuid.UUID][]int
}

const (
	GapProficiency = "proficiency"
	GapMissing     = "missing"

	MatchPerfect = "perfect"
	MatchGap     = "gap"
)

// Gap is a required skill the candidate lacks or holds under level.
type Gap struct {
	Skill    string `json:"skill"`
	Type     string `json:"type"`
	Current  int    `json:"current,omitempty"`
	Required int    `json:"required"`
}

// MatchedSkill is a requirement the candidate holds, with the historical
// average rating on that skill when one exists.
type MatchedSkill struct {
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name"`
	Level     int       `json:"level"`
	MatchType string    `json:"match_type"`
	AvgRating *float64  `json:"avg_rating"`
}

// MatchCandidate is the derived per-person output record. It is computed
// fresh on every match request and never persisted.
type MatchCandidate struct {
	PersonID        uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	ExperienceLevel string    `json:"experience_level"`

	FitScore            int  `json:"fitScore"`
	UtilizationPct      int  `json:"utilizationPct"`
	AvailabilityScore   int  `json:"availabilityScore"`
	PerformanceScore    *int `json:"performanceScore"`
	OverallMatch        int  `json:"overallMatch"`
	ActiveProjectsCount int  `json:"active_projects_count"`

	Gaps          []Gap          `json:"gaps"`
	Training      []string       `json:"training"`
	MatchedSkills []MatchedSkill `json:"matched_skills"`
}

// Result partitions candidates into tiers, each sorted descending by
// overall match.
type Result struct {
	PerfectMatch []MatchCandidate `json:"perfectMatch"`
	NearMatch    []MatchCandidate `json:"nearMatch"`
}
