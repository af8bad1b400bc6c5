package usecase

import (
	"context"
	"errors"
	"strings"

	"staffhub/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSkillNotFound = errors.New("skill not found")
	ErrSkillExists   = errors.New("skill already exists")
)

type SkillInput struct {
	Name        string
	Category    string
	Description string
}

type SkillUsecase interface {
	List(ctx context.Context) ([]repository.Skill, error)
	Create(ctx context.Context, in SkillInput) (repository.Skill, error)
	Update(ctx context.Context, id uuid.UUID, in SkillInput) (repository.Skill, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Skills struct {
	skills repository.SkillRepository
	cache  MatchCache
}

func NewSkillUsecase(skills repository.SkillRepository, cache MatchCache) *Skills {
	return &Skills{skills: skills, cache: cache}
}

func (u *Skills) List(ctx context.Context) ([]repository.Skill, error) {
	out, err := u.skills.ListSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Skills) Create(ctx context.Context, in SkillInput) (repository.Skill, error) {
	s, err := normalizeSkill(in)
	if err != nil {
		return repository.Skill{}, err
	}

	created, err := u.skills.CreateSkill(ctx, s)
	if err != nil {
		if errors.Is(err, repository.ErrSkillExists) {
			return repository.Skill{}, ErrSkillExists
		}
		return repository.Skill{}, ErrInternal
	}
	return created, nil
}

func (u *Skills) Update(ctx context.Context, id uuid.UUID, in SkillInput) (repository.Skill, error) {
	s, err := normalizeSkill(in)
	if err != nil {
		return repository.Skill{}, err
	}
	s.ID = id

	if err := u.skills.UpdateSkill(ctx, s); err != nil {
		switch {
		case errors.Is(err, repository.ErrSkillNotFound):
			return repository.Skill{}, ErrSkillNotFound
		case errors.Is(err, repository.ErrSkillExists):
			return repository.Skill{}, ErrSkillExists
		}
		return repository.Skill{}, ErrInternal
	}
	return s, nil
}

// Delete removes the skill; requirement and proficiency rows cascade, so
// every cached match result is stale afterwards.
func (u *Skills) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.skills.DeleteSkill(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return ErrSkillNotFound
		}
		return ErrInternal
	}
	if u.cache != nil {
		_ = u.cache.DeleteByPattern(ctx, matchKeyPattern)
	}
	return nil
}

func normalizeSkill(in SkillInput) (repository.Skill, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return repository.Skill{}, ErrInvalidInput
	}
	return repository.Skill{
		Name:        name,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
	}, nil
}
