package usecase

import (
	"context"
	"errors"
	"testing"

	"staffhub/internal/repository"

	"github.com/google/uuid"
)

type mockSkillRepo struct {
	exists bool
}

func (m mockSkillRepo) ListSkills(context.Context) ([]repository.Skill, error) { return nil, nil }

func (m mockSkillRepo) CreateSkill(_ context.Context, s repository.Skill) (repository.Skill, error) {
	return s, nil
}

func (m mockSkillRepo) UpdateSkill(context.Context, repository.Skill) error { return nil }

func (m mockSkillRepo) DeleteSkill(context.Context, uuid.UUID) error { return nil }

func (m mockSkillRepo) ExistsByID(context.Context, uuid.UUID) (bool, error) { return m.exists, nil }

type mockNotifier struct {
	events []string
}

func (m *mockNotifier) Broadcast(event string, _ any) {
	m.events = append(m.events, event)
}

func TestProjectUsecase_Assign_Duplicate(t *testing.T) {
	personID := uuid.New()
	notifier := &mockNotifier{}

	uc := NewProjectUsecase(
		mockProjectRepo{exists: true},
		mockPersonnelRepo{people: []repository.Personnel{{ID: personID, Name: "Ana"}}},
		&mockAssignmentRepo{assignErr: repository.ErrAlreadyAssigned},
		&mockRatingRepo{},
		mockSkillRepo{},
		nil,
		notifier,
	)

	err := uc.Assign(context.Background(), uuid.New(), personID, 100)
	if !errors.Is(err, ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", err)
	}
	if len(notifier.events) != 0 {
		t.Fatalf("expected no broadcast on failed assign")
	}
}

func TestProjectUsecase_Assign_BroadcastsAndInvalidates(t *testing.T) {
	projectID := uuid.New()
	personID := uuid.New()
	notifier := &mockNotifier{}
	cache := newMockCache()
	cache.store[matchCacheKey(projectID)] = []byte(`{}`)

	assignments := &mockAssignmentRepo{}
	uc := NewProjectUsecase(
		mockProjectRepo{exists: true},
		mockPersonnelRepo{people: []repository.Personnel{{ID: personID, Name: "Ana"}}},
		assignments,
		&mockRatingRepo{},
		mockSkillRepo{},
		cache,
		notifier,
	)

	if err := uc.Assign(context.Background(), projectID, personID, 50); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if assignments.assignedCalls != 1 {
		t.Fatalf("expected one assign call, got %d", assignments.assignedCalls)
	}
	if len(notifier.events) != 1 || notifier.events[0] != EventRosterUpdated {
		t.Fatalf("expected roster_updated broadcast, got %v", notifier.events)
	}
	if len(cache.patterns) == 0 {
		t.Fatalf("expected cached matches invalidated")
	}
}

func TestProjectUsecase_Assign_PersonnelNotFound(t *testing.T) {
	uc := NewProjectUsecase(
		mockProjectRepo{exists: true},
		mockPersonnelRepo{},
		&mockAssignmentRepo{},
		&mockRatingRepo{},
		mockSkillRepo{},
		nil,
		nil,
	)

	err := uc.Assign(context.Background(), uuid.New(), uuid.New(), 100)
	if !errors.Is(err, ErrPersonnelNotFound) {
		t.Fatalf("expected ErrPersonnelNotFound, got %v", err)
	}
}

func TestProjectUsecase_Rate_RequiresCompletedProject(t *testing.T) {
	projectID := uuid.New()
	personID := uuid.New()

	uc := NewProjectUsecase(
		mockProjectRepo{project: repository.Project{ID: projectID, Status: repository.StatusActive}},
		mockPersonnelRepo{},
		&mockAssignmentRepo{assigned: map[uuid.UUID]struct{}{personID: {}}},
		&mockRatingRepo{},
		mockSkillRepo{},
		nil,
		nil,
	)

	err := uc.Rate(context.Background(), projectID, []RatingEntry{
		{PersonnelID: personID, SkillID: uuid.New(), Rating: 4},
	})
	if !errors.Is(err, ErrProjectNotCompleted) {
		t.Fatalf("expected ErrProjectNotCompleted, got %v", err)
	}
}

func TestProjectUsecase_Rate_RejectsNonRoster(t *testing.T) {
	projectID := uuid.New()

	uc := NewProjectUsecase(
		mockProjectRepo{project: repository.Project{ID: projectID, Status: repository.StatusCompleted}},
		mockPersonnelRepo{},
		&mockAssignmentRepo{},
		&mockRatingRepo{},
		mockSkillRepo{},
		nil,
		nil,
	)

	err := uc.Rate(context.Background(), projectID, []RatingEntry{
		{PersonnelID: uuid.New(), SkillID: uuid.New(), Rating: 4},
	})
	if !errors.Is(err, ErrNotOnRoster) {
		t.Fatalf("expected ErrNotOnRoster, got %v", err)
	}
}

func TestProjectUsecase_Rate_UpsertsForCompletedProject(t *testing.T) {
	projectID := uuid.New()
	personID := uuid.New()
	ratings := &mockRatingRepo{}

	uc := NewProjectUsecase(
		mockProjectRepo{project: repository.Project{ID: projectID, Status: repository.StatusCompleted}},
		mockPersonnelRepo{},
		&mockAssignmentRepo{assigned: map[uuid.UUID]struct{}{personID: {}}},
		ratings,
		mockSkillRepo{},
		nil,
		nil,
	)

	err := uc.Rate(context.Background(), projectID, []RatingEntry{
		{PersonnelID: personID, SkillID: uuid.New(), Rating: 5},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ratings.upserted) != 1 || len(ratings.upserted[0]) != 1 {
		t.Fatalf("expected one rating upserted, got %+v", ratings.upserted)
	}
}

func TestProjectUsecase_Rate_RejectsOutOfRangeRating(t *testing.T) {
	uc := NewProjectUsecase(
		mockProjectRepo{project: repository.Project{Status: repository.StatusCompleted}},
		mockPersonnelRepo{},
		&mockAssignmentRepo{},
		&mockRatingRepo{},
		mockSkillRepo{},
		nil,
		nil,
	)

	err := uc.Rate(context.Background(), uuid.New(), []RatingEntry{
		{PersonnelID: uuid.New(), SkillID: uuid.New(), Rating: 6},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProjectUsecase_Create_RejectsUnknownSkill(t *testing.T) {
	uc := NewProjectUsecase(
		mockProjectRepo{},
		mockPersonnelRepo{},
		&mockAssignmentRepo{},
		&mockRatingRepo{},
		mockSkillRepo{exists: false},
		nil,
		nil,
	)

	_, err := uc.Create(context.Background(), ProjectInput{
		Name:         "Apollo",
		Requirements: []RequirementInput{{SkillID: uuid.New(), MinLevel: 3}},
	})
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestProjectUsecase_Create_RejectsInvertedWindow(t *testing.T) {
	uc := NewProjectUsecase(
		mockProjectRepo{},
		mockPersonnelRepo{},
		&mockAssignmentRepo{},
		&mockRatingRepo{},
		mockSkillRepo{exists: true},
		nil,
		nil,
	)

	start := datePtr(2026, 5, 1)
	end := datePtr(2026, 4, 1)
	_, err := uc.Create(context.Background(), ProjectInput{Name: "Apollo", StartDate: start, EndDate: end})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
