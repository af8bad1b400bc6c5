package repository

import (
	"context"
	"database/sql"
	"errors"

	"staffhub/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrPersonnelNotFound    = errors.New("personnel not found")
	ErrPersonnelEmailExists = errors.New("personnel email already exists")
)

type Personnel struct {
	ID              uuid.UUID
	Name            string
	Email           string
	Role            string
	ExperienceLevel string
}

// PersonnelSkill is one (person, skill, level) proficiency pair joined
// with the skill's display fields.
type PersonnelSkill struct {
	PersonnelID uuid.UUID
	SkillID     uuid.UUID
	SkillName   string
	Category    string
	Level       int
}

type PersonnelRepository interface {
	ListPersonnel(ctx context.Context) ([]Personnel, error)
	GetPersonnelByID(ctx context.Context, id uuid.UUID) (Personnel, error)
	CreatePersonnel(ctx context.Context, p Personnel) (Personnel, error)
	UpdatePersonnel(ctx context.Context, p Personnel) error
	DeletePersonnel(ctx context.Context, id uuid.UUID) error

	ListAllSkills(ctx context.Context) ([]PersonnelSkill, error)
	ListSkillsByPersonnel(ctx context.Context, personnelID uuid.UUID) ([]PersonnelSkill, error)
	UpsertProficiency(ctx context.Context, personnelID, skillID uuid.UUID, level int) error
}

type PostgresPersonnelRepository struct {
	db database.DB
}

func NewPostgresPersonnelRepository(db database.DB) *PostgresPersonnelRepository {
	return &PostgresPersonnelRepository{db: db}
}

func (r *PostgresPersonnelRepository) ListPersonnel(ctx context.Context) ([]Personnel, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, email, role, experience_level FROM personnel ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Personnel, 0)
	for rows.Next() {
		var p Personnel
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Role, &p.ExperienceLevel); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPersonnelRepository) GetPersonnelByID(ctx context.Context, id uuid.UUID) (Personnel, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, email, role, experience_level FROM personnel WHERE id = $1`, id)

	var p Personnel
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Role, &p.ExperienceLevel); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Personnel{}, ErrPersonnelNotFound
		}
		return Personnel{}, err
	}
	return p, nil
}

func (r *PostgresPersonnelRepository) CreatePersonnel(ctx context.Context, p Personnel) (Personnel, error) {
	p.ID = uuid.New()
	_, err := r.db.Exec(ctx,
		`INSERT INTO personnel (id, name, email, role, experience_level) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.Email, p.Role, p.ExperienceLevel,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Personnel{}, ErrPersonnelEmailExists
		}
		return Personnel{}, err
	}
	return p, nil
}

func (r *PostgresPersonnelRepository) UpdatePersonnel(ctx context.Context, p Personnel) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE personnel SET name = $1, email = $2, role = $3, experience_level = $4, updated_at = now() WHERE id = $5`,
		p.Name, p.Email, p.Role, p.ExperienceLevel, p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrPersonnelEmailExists
		}
		return err
	}
	if affected == 0 {
		return ErrPersonnelNotFound
	}
	return nil
}

func (r *PostgresPersonnelRepository) DeletePersonnel(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM personnel WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPersonnelNotFound
	}
	return nil
}

func (r *PostgresPersonnelRepository) ListAllSkills(ctx context.Context) ([]PersonnelSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ps.personnel_id, ps.skill_id, s.name, s.category, ps.proficiency_level
		 FROM personnel_skills ps
		 JOIN skills s ON s.id = ps.skill_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPersonnelSkills(rows)
}

func (r *PostgresPersonnelRepository) ListSkillsByPersonnel(ctx context.Context, personnelID uuid.UUID) ([]PersonnelSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ps.personnel_id, ps.skill_id, s.name, s.category, ps.proficiency_level
		 FROM personnel_skills ps
		 JOIN skills s ON s.id = ps.skill_id
		 WHERE ps.personnel_id = $1
		 ORDER BY s.name ASC`,
		personnelID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPersonnelSkills(rows)
}

func (r *PostgresPersonnelRepository) UpsertProficiency(ctx context.Context, personnelID, skillID uuid.UUID, level int) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO personnel_skills (id, personnel_id, skill_id, proficiency_level)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (personnel_id, skill_id) DO UPDATE SET proficiency_level = EXCLUDED.proficiency_level`,
		uuid.New(), personnelID, skillID, level,
	)
	return err
}

func scanPersonnelSkills(rows database.Rows) ([]PersonnelSkill, error) {
	out := make([]PersonnelSkill, 0)
	for rows.Next() {
		var ps PersonnelSkill
		if err := rows.Scan(&ps.PersonnelID, &ps.SkillID, &ps.SkillName, &ps.Category, &ps.Level); err != nil {
			return nil, err
		}
		out = append(out, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
