package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"staffhub/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrAlreadyAssigned     = errors.New("personnel already assigned to project")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrProjectNotCompleted = errors.New("project not completed")
	ErrNotOnRoster         = errors.New("personnel not assigned to project")
)

type RequirementInput struct {
	SkillID  uuid.UUID
	MinLevel int
}

type ProjectInput struct {
	Name         string
	Description  string
	Status       string
	StartDate    *time.Time
	EndDate      *time.Time
	Requirements []RequirementInput
}

type RatingEntry struct {
	PersonnelID uuid.UUID
	SkillID     uuid.UUID
	Rating      int
}

type ProjectDetail struct {
	repository.Project
	Requirements []repository.ProjectRequirement
	Assignees    []repository.ProjectAssignee
}

type ProjectUsecase interface {
	List(ctx context.Context) ([]repository.Project, error)
	Get(ctx context.Context, id uuid.UUID) (ProjectDetail, error)
	Create(ctx context.Context, in ProjectInput) (repository.Project, error)
	Update(ctx context.Context, id uuid.UUID, in ProjectInput) (repository.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddRequirement(ctx context.Context, projectID uuid.UUID, in RequirementInput) error
	Assign(ctx context.Context, projectID, personnelID uuid.UUID, allocationPct int) error
	Unassign(ctx context.Context, projectID, personnelID uuid.UUID) error
	Rate(ctx context.Context, projectID uuid.UUID, entries []RatingEntry) error
}

type Projects struct {
	projects    repository.ProjectRepository
	personnel   repository.PersonnelRepository
	assignments repository.AssignmentRepository
	ratings     repository.RatingRepository
	skills      repository.SkillRepository

	cache    MatchCache
	notifier Notifier
}

func NewProjectUsecase(
	projects repository.ProjectRepository,
	personnel repository.PersonnelRepository,
	assignments repository.AssignmentRepository,
	ratings repository.RatingRepository,
	skills repository.SkillRepository,
	cache MatchCache,
	notifier Notifier,
) *Projects {
	return &Projects{
		projects:    projects,
		personnel:   personnel,
		assignments: assignments,
		ratings:     ratings,
		skills:      skills,
		cache:       cache,
		notifier:    notifier,
	}
}

func (u *Projects) List(ctx context.Context) ([]repository.Project, error) {
	out, err := u.projects.ListProjects(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Projects) Get(ctx context.Context, id uuid.UUID) (ProjectDetail, error) {
	p, err := u.projects.GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ProjectDetail{}, ErrProjectNotFound
		}
		return ProjectDetail{}, ErrInternal
	}

	reqs, err := u.projects.ListRequirements(ctx, id)
	if err != nil {
		return ProjectDetail{}, ErrInternal
	}
	assignees, err := u.assignments.ListAssignees(ctx, id)
	if err != nil {
		return ProjectDetail{}, ErrInternal
	}

	return ProjectDetail{Project: p, Requirements: reqs, Assignees: assignees}, nil
}

func (u *Projects) Create(ctx context.Context, in ProjectInput) (repository.Project, error) {
	p, reqs, err := u.normalizeProject(ctx, in)
	if err != nil {
		return repository.Project{}, err
	}

	created, err := u.projects.CreateProject(ctx, p, reqs)
	if err != nil {
		return repository.Project{}, ErrInternal
	}
	return created, nil
}

func (u *Projects) Update(ctx context.Context, id uuid.UUID, in ProjectInput) (repository.Project, error) {
	p, reqs, err := u.normalizeProject(ctx, in)
	if err != nil {
		return repository.Project{}, err
	}
	p.ID = id

	if err := u.projects.UpdateProject(ctx, p); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return repository.Project{}, ErrProjectNotFound
		}
		return repository.Project{}, ErrInternal
	}
	for _, req := range reqs {
		if err := u.projects.UpsertRequirement(ctx, id, req); err != nil {
			return repository.Project{}, ErrInternal
		}
	}

	// Window or requirement changes shift every candidate's scores.
	u.invalidateAllMatches(ctx)
	u.broadcast(EventProjectUpdated, map[string]any{"project_id": id})
	return p, nil
}

func (u *Projects) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.projects.DeleteProject(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return ErrInternal
	}
	u.invalidateAllMatches(ctx)
	return nil
}

func (u *Projects) AddRequirement(ctx context.Context, projectID uuid.UUID, in RequirementInput) error {
	if in.MinLevel < 1 || in.MinLevel > 5 {
		return ErrInvalidInput
	}
	if err := u.requireProject(ctx, projectID); err != nil {
		return err
	}
	exists, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return ErrSkillNotFound
	}

	if err := u.projects.UpsertRequirement(ctx, projectID, repository.RequirementInput{
		SkillID:  in.SkillID,
		MinLevel: in.MinLevel,
	}); err != nil {
		return ErrInternal
	}

	u.invalidateMatch(ctx, projectID)
	return nil
}

// Assign puts a person on the roster. Duplicates are rejected; the
// project's cached matches go stale and connected clients hear about it.
func (u *Projects) Assign(ctx context.Context, projectID, personnelID uuid.UUID, allocationPct int) error {
	if err := u.requireProject(ctx, projectID); err != nil {
		return err
	}
	if _, err := u.personnel.GetPersonnelByID(ctx, personnelID); err != nil {
		if errors.Is(err, repository.ErrPersonnelNotFound) {
			return ErrPersonnelNotFound
		}
		return ErrInternal
	}

	if err := u.assignments.Assign(ctx, projectID, personnelID, allocationPct); err != nil {
		if errors.Is(err, repository.ErrAlreadyAssigned) {
			return ErrAlreadyAssigned
		}
		return ErrInternal
	}

	// An open commitment changes this person's availability everywhere.
	u.invalidateAllMatches(ctx)
	u.broadcast(EventRosterUpdated, map[string]any{
		"project_id":   projectID,
		"personnel_id": personnelID,
		"action":       "assigned",
	})
	return nil
}

func (u *Projects) Unassign(ctx context.Context, projectID, personnelID uuid.UUID) error {
	if err := u.assignments.Unassign(ctx, projectID, personnelID); err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return ErrAssignmentNotFound
		}
		return ErrInternal
	}

	u.invalidateAllMatches(ctx)
	u.broadcast(EventRosterUpdated, map[string]any{
		"project_id":   projectID,
		"personnel_id": personnelID,
		"action":       "unassigned",
	})
	return nil
}

// Rate records skill ratings for roster members. Ratings exist only for
// finished work, so the project must be Completed.
func (u *Projects) Rate(ctx context.Context, projectID uuid.UUID, entries []RatingEntry) error {
	if len(entries) == 0 {
		return ErrInvalidInput
	}
	for _, e := range entries {
		if e.Rating < 1 || e.Rating > 5 {
			return ErrInvalidInput
		}
	}

	p, err := u.projects.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return ErrInternal
	}
	if p.Status != repository.StatusCompleted {
		return ErrProjectNotCompleted
	}

	roster, err := u.assignments.AssignedIDs(ctx, projectID)
	if err != nil {
		return ErrInternal
	}

	inputs := make([]repository.RatingInput, 0, len(entries))
	for _, e := range entries {
		if _, ok := roster[e.PersonnelID]; !ok {
			return ErrNotOnRoster
		}
		inputs = append(inputs, repository.RatingInput{
			PersonnelID: e.PersonnelID,
			SkillID:     e.SkillID,
			Rating:      e.Rating,
		})
	}

	if err := u.ratings.UpsertRatings(ctx, projectID, inputs); err != nil {
		return ErrInternal
	}

	// New history feeds the performance component of every match.
	u.invalidateAllMatches(ctx)
	return nil
}

func (u *Projects) requireProject(ctx context.Context, projectID uuid.UUID) error {
	exists, err := u.projects.ExistsByID(ctx, projectID)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return ErrProjectNotFound
	}
	return nil
}

func (u *Projects) invalidateMatch(ctx context.Context, projectID uuid.UUID) {
	if u.cache != nil {
		_ = u.cache.Delete(ctx, matchCacheKey(projectID))
	}
}

func (u *Projects) invalidateAllMatches(ctx context.Context) {
	if u.cache != nil {
		_ = u.cache.DeleteByPattern(ctx, matchKeyPattern)
	}
}

func (u *Projects) broadcast(event string, payload any) {
	if u.notifier != nil {
		u.notifier.Broadcast(event, payload)
	}
}

func (u *Projects) normalizeProject(ctx context.Context, in ProjectInput) (repository.Project, []repository.RequirementInput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return repository.Project{}, nil, ErrInvalidInput
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = repository.StatusPlanning
	}
	switch status {
	case repository.StatusPlanning, repository.StatusActive, repository.StatusCompleted:
	default:
		return repository.Project{}, nil, ErrInvalidInput
	}

	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return repository.Project{}, nil, ErrInvalidInput
	}

	reqs := make([]repository.RequirementInput, 0, len(in.Requirements))
	for _, r := range in.Requirements {
		if r.MinLevel < 1 || r.MinLevel > 5 {
			return repository.Project{}, nil, ErrInvalidInput
		}
		exists, err := u.skills.ExistsByID(ctx, r.SkillID)
		if err != nil {
			return repository.Project{}, nil, ErrInternal
		}
		if !exists {
			return repository.Project{}, nil, ErrSkillNotFound
		}
		reqs = append(reqs, repository.RequirementInput{SkillID: r.SkillID, MinLevel: r.MinLevel})
	}

	return repository.Project{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Status:      status,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}, reqs, nil
}
