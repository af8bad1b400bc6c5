package usecase

import (
	"context"
	"errors"
	"time"

	"staffhub/internal/domain/matching"
	"staffhub/internal/repository"

	"github.com/google/uuid"
)

type MatchingUsecase interface {
	ComputeMatches(ctx context.Context, projectID uuid.UUID) (MatchOutput, error)
}

// MatchOutput is the full match report for one project: the project row,
// its deduplicated requirements and the tiered candidate lists.
type MatchOutput struct {
	Project      repository.Project     `json:"project"`
	Requirements []matching.Requirement `json:"requirements"`

	matching.Result
}

// Matching gathers everything the scoring engine needs for one project
// and runs it over every unassigned person.
type Matching struct {
	projects    repository.ProjectRepository
	personnel   repository.PersonnelRepository
	assignments repository.AssignmentRepository
	ratings     repository.RatingRepository

	cache    MatchCache
	cacheTTL time.Duration
	cfg      matching.Config
}

func NewMatchingUsecase(
	projects repository.ProjectRepository,
	personnel repository.PersonnelRepository,
	assignments repository.AssignmentRepository,
	ratings repository.RatingRepository,
	cache MatchCache,
	cacheTTL time.Duration,
	cfg matching.Config,
) *Matching {
	return &Matching{
		projects:    projects,
		personnel:   personnel,
		assignments: assignments,
		ratings:     ratings,
		cache:       cache,
		cacheTTL:    cacheTTL,
		cfg:         cfg,
	}
}

func (u *Matching) ComputeMatches(ctx context.Context, projectID uuid.UUID) (MatchOutput, error) {
	if projectID == uuid.Nil {
		return MatchOutput{}, ErrProjectNotFound
	}

	project, err := u.projects.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return MatchOutput{}, ErrProjectNotFound
		}
		return MatchOutput{}, ErrInternal
	}

	key := matchCacheKey(projectID)
	if u.cache != nil {
		var cached MatchOutput
		if hit, cErr := u.cache.GetJSON(ctx, key, &cached); cErr == nil && hit {
			cached.Project = project
			return cached, nil
		}
	}

	reqRows, err := u.projects.ListRequirements(ctx, projectID)
	if err != nil {
		return MatchOutput{}, ErrInternal
	}
	assigned, err := u.assignments.AssignedIDs(ctx, projectID)
	if err != nil {
		return MatchOutput{}, ErrInternal
	}
	people, err := u.personnel.ListPersonnel(ctx)
	if err != nil {
		return MatchOutput{}, ErrInternal
	}
	skillRows, err := u.personnel.ListAllSkills(ctx)
	if err != nil {
		return MatchOutput{}, ErrInternal
	}
	openRows, err := u.assignments.ListOpenAssignments(ctx)
	if err != nil {
		return MatchOutput{}, ErrInternal
	}
	ratingRows, err := u.ratings.ListAllRatings(ctx)
	if err != nil {
		return MatchOutput{}, ErrInternal
	}

	reqs := make([]matching.Requirement, 0, len(reqRows))
	for _, r := range reqRows {
		reqs = append(reqs, matching.Requirement{
			SkillID:   r.SkillID,
			SkillName: r.SkillName,
			MinLevel:  r.MinLevel,
		})
	}
	reqs = matching.DedupeRequirements(reqs)

	skillsByPerson := make(map[uuid.UUID][]matching.Proficiency)
	for _, s := range skillRows {
		skillsByPerson[s.PersonnelID] = append(skillsByPerson[s.PersonnelID], matching.Proficiency{
			SkillID:   s.SkillID,
			SkillName: s.SkillName,
			Level:     s.Level,
		})
	}

	assignmentsByPerson := make(map[uuid.UUID][]matching.Assignment)
	for _, a := range openRows {
		assignmentsByPerson[a.PersonnelID] = append(assignmentsByPerson[a.PersonnelID], matching.Assignment{
			ProjectID:   a.ProjectID,
			ProjectName: a.ProjectName,
			Window: matching.Window{
				Start: a.StartDate,
				End:   a.EndDate,
			},
			AllocationPct: a.AllocationPct,
		})
	}

	ratingsByPerson := make(map[uuid.UUID]map[uuid.UUID][]int)
	for _, r := range ratingRows {
		byPerson := ratingsByPerson[r.PersonnelID]
		if byPerson == nil {
			byPerson = make(map[uuid.UUID][]int)
			ratingsByPerson[r.PersonnelID] = byPerson
		}
		byPerson[r.SkillID] = append(byPerson[r.SkillID], r.Rating)
	}

	target := matching.Window{Start: project.StartDate, End: project.EndDate}

	// People already on the roster are never candidates, including when
	// the project has no requirements yet.
	cands := make([]matching.MatchCandidate, 0, len(people))
	for _, p := range people {
		if _, ok := assigned[p.ID]; ok {
			continue
		}
		cands = append(cands, matching.Evaluate(target, reqs, matching.Candidate{
			PersonID:        p.ID,
			Name:            p.Name,
			Role:            p.Role,
			ExperienceLevel: p.ExperienceLevel,
			Skills:          skillsByPerson[p.ID],
			Assignments:     assignmentsByPerson[p.ID],
			Ratings:         ratingsByPerson[p.ID],
		}, u.cfg))
	}

	out := MatchOutput{
		Project:      project,
		Requirements: reqs,
		Result:       matching.Rank(cands, u.cfg),
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, u.cacheTTL)
	}
	return out, nil
}
