package usecase

import (
	"context"
	"errors"
	"strings"

	"staffhub/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrPersonnelNotFound = errors.New("personnel not found")
	ErrEmailTaken        = errors.New("email already registered to personnel")
)

// Proficiency level names accepted alongside numeric levels.
var levelNames = map[string]int{
	"beginner":     1,
	"novice":       2,
	"intermediate": 3,
	"advanced":     4,
	"expert":       5,
}

type PersonnelInput struct {
	Name            string
	Email           string
	Role            string
	ExperienceLevel string
}

type PersonnelDetail struct {
	repository.Personnel
	Skills []repository.PersonnelSkill
}

type PersonnelUsecase interface {
	List(ctx context.Context) ([]PersonnelDetail, error)
	Get(ctx context.Context, id uuid.UUID) (PersonnelDetail, error)
	Create(ctx context.Context, in PersonnelInput) (repository.Personnel, error)
	Update(ctx context.Context, id uuid.UUID, in PersonnelInput) (repository.Personnel, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetProficiency(ctx context.Context, personnelID, skillID uuid.UUID, level string) error
}

type Personnel struct {
	personnel repository.PersonnelRepository
	skills    repository.SkillRepository
	cache     MatchCache
}

func NewPersonnelUsecase(personnel repository.PersonnelRepository, skills repository.SkillRepository, cache MatchCache) *Personnel {
	return &Personnel{personnel: personnel, skills: skills, cache: cache}
}

func (u *Personnel) List(ctx context.Context) ([]PersonnelDetail, error) {
	people, err := u.personnel.ListPersonnel(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	skillRows, err := u.personnel.ListAllSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	byPerson := make(map[uuid.UUID][]repository.PersonnelSkill)
	for _, s := range skillRows {
		byPerson[s.PersonnelID] = append(byPerson[s.PersonnelID], s)
	}

	out := make([]PersonnelDetail, 0, len(people))
	for _, p := range people {
		skills := byPerson[p.ID]
		if skills == nil {
			skills = make([]repository.PersonnelSkill, 0)
		}
		out = append(out, PersonnelDetail{Personnel: p, Skills: skills})
	}
	return out, nil
}

func (u *Personnel) Get(ctx context.Context, id uuid.UUID) (PersonnelDetail, error) {
	p, err := u.personnel.GetPersonnelByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPersonnelNotFound) {
			return PersonnelDetail{}, ErrPersonnelNotFound
		}
		return PersonnelDetail{}, ErrInternal
	}

	skills, err := u.personnel.ListSkillsByPersonnel(ctx, id)
	if err != nil {
		return PersonnelDetail{}, ErrInternal
	}
	return PersonnelDetail{Personnel: p, Skills: skills}, nil
}

func (u *Personnel) Create(ctx context.Context, in PersonnelInput) (repository.Personnel, error) {
	p, err := normalizePersonnel(in)
	if err != nil {
		return repository.Personnel{}, err
	}

	created, err := u.personnel.CreatePersonnel(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrPersonnelEmailExists) {
			return repository.Personnel{}, ErrEmailTaken
		}
		return repository.Personnel{}, ErrInternal
	}
	return created, nil
}

func (u *Personnel) Update(ctx context.Context, id uuid.UUID, in PersonnelInput) (repository.Personnel, error) {
	p, err := normalizePersonnel(in)
	if err != nil {
		return repository.Personnel{}, err
	}
	p.ID = id

	if err := u.personnel.UpdatePersonnel(ctx, p); err != nil {
		switch {
		case errors.Is(err, repository.ErrPersonnelNotFound):
			return repository.Personnel{}, ErrPersonnelNotFound
		case errors.Is(err, repository.ErrPersonnelEmailExists):
			return repository.Personnel{}, ErrEmailTaken
		}
		return repository.Personnel{}, ErrInternal
	}
	return p, nil
}

func (u *Personnel) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.personnel.DeletePersonnel(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPersonnelNotFound) {
			return ErrPersonnelNotFound
		}
		return ErrInternal
	}
	u.invalidateMatches(ctx)
	return nil
}

// SetProficiency records or replaces one skill level. A changed profile
// invalidates every cached match result.
func (u *Personnel) SetProficiency(ctx context.Context, personnelID, skillID uuid.UUID, level string) error {
	lv, ok := parseLevel(level)
	if !ok {
		return ErrInvalidInput
	}

	if _, err := u.personnel.GetPersonnelByID(ctx, personnelID); err != nil {
		if errors.Is(err, repository.ErrPersonnelNotFound) {
			return ErrPersonnelNotFound
		}
		return ErrInternal
	}
	exists, err := u.skills.ExistsByID(ctx, skillID)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return ErrSkillNotFound
	}

	if err := u.personnel.UpsertProficiency(ctx, personnelID, skillID, lv); err != nil {
		return ErrInternal
	}
	u.invalidateMatches(ctx)
	return nil
}

func (u *Personnel) invalidateMatches(ctx context.Context) {
	if u.cache != nil {
		_ = u.cache.DeleteByPattern(ctx, matchKeyPattern)
	}
}

func normalizePersonnel(in PersonnelInput) (repository.Personnel, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return repository.Personnel{}, ErrInvalidInput
	}
	return repository.Personnel{
		Name:            name,
		Email:           email,
		Role:            strings.TrimSpace(in.Role),
		ExperienceLevel: strings.TrimSpace(in.ExperienceLevel),
	}, nil
}

func parseLevel(level string) (int, bool) {
	level = strings.ToLower(strings.TrimSpace(level))
	if lv, ok := levelNames[level]; ok {
		return lv, true
	}
	if len(level) == 1 && level[0] >= '1' && level[0] <= '5' {
		return int(level[0] - '0'), true
	}
	return 0, false
}
