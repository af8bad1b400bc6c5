package repository

import (
	"context"
	"errors"

	"staffhub/internal/database"

	"github.com/google/uuid"
)

var (
	ErrSkillNotFound = errors.New("skill not found")
	ErrSkillExists   = errors.New("skill already exists")
)

type Skill struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Description string
}

type SkillRepository interface {
	ListSkills(ctx context.Context) ([]Skill, error)
	CreateSkill(ctx context.Context, s Skill) (Skill, error)
	UpdateSkill(ctx context.Context, s Skill) error
	DeleteSkill(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListSkills(ctx context.Context) ([]Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, description FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, s Skill) (Skill, error) {
	s.ID = uuid.New()
	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, category, description) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Name, s.Category, s.Description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Skill{}, ErrSkillExists
		}
		return Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) UpdateSkill(ctx context.Context, s Skill) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE skills SET name = $1, category = $2, description = $3 WHERE id = $4`,
		s.Name, s.Category, s.Description, s.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSkillExists
		}
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *PostgresSkillRepository) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *PostgresSkillRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
