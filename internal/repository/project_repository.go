package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"staffhub/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrRequirementConflict = errors.New("requirement already exists")
)

const (
	StatusPlanning  = "Planning"
	StatusActive    = "Active"
	StatusCompleted = "Completed"
)

type Project struct {
	ID          uuid.UUID
	Name        string
	Description string
	Status      string
	StartDate   *time.Time
	EndDate     *time.Time
}

// ProjectRequirement is a required skill row joined with the skill name.
type ProjectRequirement struct {
	ProjectID uuid.UUID
	SkillID   uuid.UUID
	SkillName string
	MinLevel  int
}

type RequirementInput struct {
	SkillID  uuid.UUID
	MinLevel int
}

type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]Project, error)
	GetProjectByID(ctx context.Context, id uuid.UUID) (Project, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	CreateProject(ctx context.Context, p Project, reqs []RequirementInput) (Project, error)
	UpdateProject(ctx context.Context, p Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error

	ListRequirements(ctx context.Context, projectID uuid.UUID) ([]ProjectRequirement, error)
	UpsertRequirement(ctx context.Context, projectID uuid.UUID, req RequirementInput) error
}

type PostgresProjectRepository struct {
	db database.DB
}

func NewPostgresProjectRepository(db database.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

func (r *PostgresProjectRepository) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, status, start_date, end_date FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.StartDate, &p.EndDate); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProjectRepository) GetProjectByID(ctx context.Context, id uuid.UUID) (Project, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, description, status, start_date, end_date FROM projects WHERE id = $1`, id)

	var p Project
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.StartDate, &p.EndDate); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Project{}, ErrProjectNotFound
		}
		return Project{}, err
	}
	return p, nil
}

func (r *PostgresProjectRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateProject inserts the project and its initial requirements in one
// transaction; a project is never visible without its requirement set.
func (r *PostgresProjectRepository) CreateProject(ctx context.Context, p Project, reqs []RequirementInput) (Project, error) {
	p.ID = uuid.New()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Project{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO projects (id, name, description, status, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Description, p.Status, p.StartDate, p.EndDate,
	)
	if err != nil {
		return Project{}, err
	}

	for _, req := range reqs {
		_, err = tx.Exec(ctx,
			`INSERT INTO project_requirements (id, project_id, skill_id, min_proficiency_level)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (project_id, skill_id) DO UPDATE SET min_proficiency_level = EXCLUDED.min_proficiency_level`,
			uuid.New(), p.ID, req.SkillID, req.MinLevel,
		)
		if err != nil {
			return Project{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Project{}, err
	}
	return p, nil
}

func (r *PostgresProjectRepository) UpdateProject(ctx context.Context, p Project) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE projects SET name = $1, description = $2, status = $3, start_date = $4, end_date = $5, updated_at = now()
		 WHERE id = $6`,
		p.Name, p.Description, p.Status, p.StartDate, p.EndDate, p.ID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *PostgresProjectRepository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *PostgresProjectRepository) ListRequirements(ctx context.Context, projectID uuid.UUID) ([]ProjectRequirement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT pr.project_id, pr.skill_id, s.name, pr.min_proficiency_level
		 FROM project_requirements pr
		 JOIN skills s ON s.id = pr.skill_id
		 WHERE pr.project_id = $1
		 ORDER BY s.name ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProjectRequirement, 0)
	for rows.Next() {
		var req ProjectRequirement
		if err := rows.Scan(&req.ProjectID, &req.SkillID, &req.SkillName, &req.MinLevel); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProjectRepository) UpsertRequirement(ctx context.Context, projectID uuid.UUID, req RequirementInput) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO project_requirements (id, project_id, skill_id, min_proficiency_level)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (project_id, skill_id) DO UPDATE SET min_proficiency_level = EXCLUDED.min_proficiency_level`,
		uuid.New(), projectID, req.SkillID, req.MinLevel,
	)
	return err
}
