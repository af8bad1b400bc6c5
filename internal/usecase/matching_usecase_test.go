package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"staffhub/internal/domain/matching"
	"staffhub/internal/repository"

	"github.com/google/uuid"
)

type mockProjectRepo struct {
	project repository.Project
	getErr  error
	exists  bool
	reqs    []repository.ProjectRequirement
}

func (m mockProjectRepo) ListProjects(context.Context) ([]repository.Project, error) {
	return []repository.Project{m.project}, nil
}

func (m mockProjectRepo) GetProjectByID(context.Context, uuid.UUID) (repository.Project, error) {
	if m.getErr != nil {
		return repository.Project{}, m.getErr
	}
	return m.project, nil
}

func (m mockProjectRepo) ExistsByID(context.Context, uuid.UUID) (bool, error) { return m.exists, nil }

func (m mockProjectRepo) CreateProject(_ context.Context, p repository.Project, _ []repository.RequirementInput) (repository.Project, error) {
	return p, nil
}

func (m mockProjectRepo) UpdateProject(context.Context, repository.Project) error { return nil }

func (m mockProjectRepo) DeleteProject(context.Context, uuid.UUID) error { return nil }

func (m mockProjectRepo) ListRequirements(context.Context, uuid.UUID) ([]repository.ProjectRequirement, error) {
	return m.reqs, nil
}

func (m mockProjectRepo) UpsertRequirement(context.Context, uuid.UUID, repository.RequirementInput) error {
	return nil
}

type mockPersonnelRepo struct {
	people []repository.Personnel
	skills []repository.PersonnelSkill
}

func (m mockPersonnelRepo) ListPersonnel(context.Context) ([]repository.Personnel, error) {
	return m.people, nil
}

func (m mockPersonnelRepo) GetPersonnelByID(_ context.Context, id uuid.UUID) (repository.Personnel, error) {
	for _, p := range m.people {
		if p.ID == id {
			return p, nil
		}
	}
	return repository.Personnel{}, repository.ErrPersonnelNotFound
}

func (m mockPersonnelRepo) CreatePersonnel(_ context.Context, p repository.Personnel) (repository.Personnel, error) {
	return p, nil
}

func (m mockPersonnelRepo) UpdatePersonnel(context.Context, repository.Personnel) error { return nil }

func (m mockPersonnelRepo) DeletePersonnel(context.Context, uuid.UUID) error { return nil }

func (m mockPersonnelRepo) ListAllSkills(context.Context) ([]repository.PersonnelSkill, error) {
	return m.skills, nil
}

func (m mockPersonnelRepo) ListSkillsByPersonnel(_ context.Context, id uuid.UUID) ([]repository.PersonnelSkill, error) {
	out := make([]repository.PersonnelSkill, 0)
	for _, s := range m.skills {
		if s.PersonnelID == id {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m mockPersonnelRepo) UpsertProficiency(context.Context, uuid.UUID, uuid.UUID, int) error {
	return nil
}

type mockAssignmentRepo struct {
	assigned  map[uuid.UUID]struct{}
	open      []repository.OpenAssignment
	assignErr error

	assignedCalls   int
	unassignedCalls int
}

func (m *mockAssignmentRepo) ListAssignees(context.Context, uuid.UUID) ([]repository.ProjectAssignee, error) {
	return nil, nil
}

func (m *mockAssignmentRepo) AssignedIDs(context.Context, uuid.UUID) (map[uuid.UUID]struct{}, error) {
	if m.assigned == nil {
		return map[uuid.UUID]struct{}{}, nil
	}
	return m.assigned, nil
}

func (m *mockAssignmentRepo) ListOpenAssignments(context.Context) ([]repository.OpenAssignment, error) {
	return m.open, nil
}

func (m *mockAssignmentRepo) Assign(context.Context, uuid.UUID, uuid.UUID, int) error {
	if m.assignErr != nil {
		return m.assignErr
	}
	m.assignedCalls++
	return nil
}

func (m *mockAssignmentRepo) Unassign(context.Context, uuid.UUID, uuid.UUID) error {
	m.unassignedCalls++
	return nil
}

type mockRatingRepo struct {
	rows      []repository.SkillRating
	upserted  [][]repository.RatingInput
	upsertErr error
}

func (m *mockRatingRepo) UpsertRatings(_ context.Context, _ uuid.UUID, in []repository.RatingInput) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, in)
	return nil
}

func (m *mockRatingRepo) ListAllRatings(context.Context) ([]repository.SkillRating, error) {
	return m.rows, nil
}

func (m *mockRatingRepo) ListRatingsByProject(context.Context, uuid.UUID) ([]repository.SkillRating, error) {
	return m.rows, nil
}

type mockCache struct {
	store    map[string][]byte
	deleted  []string
	patterns []string
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = b
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.store, key)
	return nil
}

func (m *mockCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.patterns = append(m.patterns, pattern)
	m.store = make(map[string][]byte)
	return nil
}

func datePtr(y int, mo time.Month, d int) *time.Time {
	t := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestMatchingUsecase_ComputeMatches_ProjectNotFound(t *testing.T) {
	uc := NewMatchingUsecase(
		mockProjectRepo{getErr: repository.ErrProjectNotFound},
		mockPersonnelRepo{},
		&mockAssignmentRepo{},
		&mockRatingRepo{},
		nil, 0, matching.DefaultConfig(),
	)

	_, err := uc.ComputeMatches(context.Background(), uuid.New())
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestMatchingUsecase_ComputeMatches_ExcludesAssigned(t *testing.T) {
	projectID := uuid.New()
	assignedID := uuid.New()
	freeID := uuid.New()

	uc := NewMatchingUsecase(
		mockProjectRepo{project: repository.Project{ID: projectID, Name: "Apollo"}},
		mockPersonnelRepo{people: []repository.Personnel{
			{ID: assignedID, Name: "Ana"},
			{ID: freeID, Name: "Ben"},
		}},
		&mockAssignmentRepo{
			assigned: map[uuid.UUID]struct{}{assignedID: {}},
			open: []repository.OpenAssignment{
				{PersonnelID: freeID, ProjectID: uuid.New(), AllocationPct: 100},
			},
		},
		&mockRatingRepo{},
		nil, 0, matching.DefaultConfig(),
	)

	res, err := uc.ComputeMatches(context.Background(), projectID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// No requirements: every unassigned person is a perfect match even
	// with other commitments; the assigned one never appears.
	if len(res.PerfectMatch) != 1 {
		t.Fatalf("expected 1 perfect match, got %d", len(res.PerfectMatch))
	}
	if res.PerfectMatch[0].PersonID != freeID {
		t.Fatalf("expected unassigned person, got %s", res.PerfectMatch[0].Name)
	}
	if res.PerfectMatch[0].OverallMatch != 100 {
		t.Fatalf("expected overall 100, got %d", res.PerfectMatch[0].OverallMatch)
	}
}

func TestMatchingUsecase_ComputeMatches_ScoresAndTiers(t *testing.T) {
	projectID := uuid.New()
	skillGo := uuid.New()
	skillSQL := uuid.New()
	strongID := uuid.New()
	weakID := uuid.New()

	uc := NewMatchingUsecase(
		mockProjectRepo{
			project: repository.Project{
				ID:        projectID,
				Name:      "Apollo",
				StartDate: datePtr(2026, time.March, 1),
				EndDate:   datePtr(2026, time.May, 30),
			},
			reqs: []repository.ProjectRequirement{
				{ProjectID: projectID, SkillID: skillGo, SkillName: "Go", MinLevel: 3},
				{ProjectID: projectID, SkillID: skillSQL, SkillName: "SQL", MinLevel: 2},
			},
		},
		mockPersonnelRepo{
			people: []repository.Personnel{
				{ID: strongID, Name: "Strong"},
				{ID: weakID, Name: "Weak"},
			},
			skills: []repository.PersonnelSkill{
				{PersonnelID: strongID, SkillID: skillGo, SkillName: "Go", Level: 4},
				{PersonnelID: strongID, SkillID: skillSQL, SkillName: "SQL", Level: 3},
			},
		},
		&mockAssignmentRepo{},
		&mockRatingRepo{},
		nil, 0, matching.DefaultConfig(),
	)

	res, err := uc.ComputeMatches(context.Background(), projectID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(res.Requirements) != 2 {
		t.Fatalf("expected 2 requirements in the report, got %d", len(res.Requirements))
	}
	if len(res.PerfectMatch) != 1 || res.PerfectMatch[0].PersonID != strongID {
		t.Fatalf("expected only the qualified person as perfect match")
	}
	if res.PerfectMatch[0].FitScore != 100 {
		t.Fatalf("expected fit 100, got %d", res.PerfectMatch[0].FitScore)
	}
	// fit 0, availability 100 with no history: 0.6*0 + 0.4*100 = 40.
	if len(res.NearMatch) != 0 {
		t.Fatalf("expected unqualified person excluded, got %d near matches", len(res.NearMatch))
	}
}

func TestMatchingUsecase_ComputeMatches_CacheHit(t *testing.T) {
	projectID := uuid.New()
	cache := newMockCache()

	cached := MatchOutput{
		Result: matching.Result{
			PerfectMatch: []matching.MatchCandidate{{PersonID: uuid.New(), Name: "Cached", OverallMatch: 91}},
			NearMatch:    []matching.MatchCandidate{},
		},
	}
	if err := cache.SetJSON(context.Background(), matchCacheKey(projectID), cached, 0); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	uc := NewMatchingUsecase(
		mockProjectRepo{project: repository.Project{ID: projectID}},
		mockPersonnelRepo{people: []repository.Personnel{{ID: uuid.New(), Name: "Fresh"}}},
		&mockAssignmentRepo{},
		&mockRatingRepo{},
		cache, time.Minute, matching.DefaultConfig(),
	)

	res, err := uc.ComputeMatches(context.Background(), projectID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.PerfectMatch) != 1 || res.PerfectMatch[0].Name != "Cached" {
		t.Fatalf("expected cached result, got %+v", res.PerfectMatch)
	}
}

func TestMatchingUsecase_ComputeMatches_StoresResult(t *testing.T) {
	projectID := uuid.New()
	cache := newMockCache()

	uc := NewMatchingUsecase(
		mockProjectRepo{project: repository.Project{ID: projectID}},
		mockPersonnelRepo{people: []repository.Personnel{{ID: uuid.New(), Name: "Ana"}}},
		&mockAssignmentRepo{},
		&mockRatingRepo{},
		cache, time.Minute, matching.DefaultConfig(),
	)

	if _, err := uc.ComputeMatches(context.Background(), projectID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := cache.store[matchCacheKey(projectID)]; !ok {
		t.Fatalf("expected result cached under %s", matchCacheKey(projectID))
	}
}
