package repository

import (
	"context"
	"errors"
	"time"

	"staffhub/internal/database"

	"github.com/google/uuid"
)

var (
	ErrAlreadyAssigned    = errors.New("personnel already assigned")
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// ProjectAssignee is a person assigned to a project.
type ProjectAssignee struct {
	PersonnelID   uuid.UUID
	Name          string
	Role          string
	AllocationPct int
}

// OpenAssignment is one Active/Planning commitment of a person, with
// the project's window. The availability estimator consumes these.
type OpenAssignment struct {
	PersonnelID   uuid.UUID
	ProjectID     uuid.UUID
	ProjectName   string
	Status        string
	StartDate     *time.Time
	EndDate       *time.Time
	AllocationPct int
}

type AssignmentRepository interface {
	ListAssignees(ctx context.Context, projectID uuid.UUID) ([]ProjectAssignee, error)
	AssignedIDs(ctx context.Context, projectID uuid.UUID) (map[uuid.UUID]struct{}, error)
	ListOpenAssignments(ctx context.Context) ([]OpenAssignment, error)
	Assign(ctx context.Context, projectID, personnelID uuid.UUID, allocationPct int) error
	Unassign(ctx context.Context, projectID, personnelID uuid.UUID) error
}

type PostgresAssignmentRepository struct {
	db database.DB
}

func NewPostgresAssignmentRepository(db database.DB) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{db: db}
}

func (r *PostgresAssignmentRepository) ListAssignees(ctx context.Context, projectID uuid.UUID) ([]ProjectAssignee, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.name, p.role, pa.allocation_pct
		 FROM project_assignments pa
		 JOIN personnel p ON p.id = pa.personnel_id
		 WHERE pa.project_id = $1
		 ORDER BY p.name ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProjectAssignee, 0)
	for rows.Next() {
		var a ProjectAssignee
		if err := rows.Scan(&a.PersonnelID, &a.Name, &a.Role, &a.AllocationPct); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAssignmentRepository) AssignedIDs(ctx context.Context, projectID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	rows, err := r.db.Query(ctx,
		`SELECT personnel_id FROM project_assignments WHERE project_id = $1`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAssignmentRepository) ListOpenAssignments(ctx context.Context) ([]OpenAssignment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT pa.personnel_id, p.id, p.name, p.status, p.start_date, p.end_date, pa.allocation_pct
		 FROM project_assignments pa
		 JOIN projects p ON p.id = pa.project_id
		 WHERE p.status IN ($1, $2)`,
		StatusActive, StatusPlanning,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OpenAssignment, 0)
	for rows.Next() {
		var a OpenAssignment
		if err := rows.Scan(&a.PersonnelID, &a.ProjectID, &a.ProjectName, &a.Status, &a.StartDate, &a.EndDate, &a.AllocationPct); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAssignmentRepository) Assign(ctx context.Context, projectID, personnelID uuid.UUID, allocationPct int) error {
	if allocationPct <= 0 || allocationPct > 100 {
		allocationPct = 100
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO project_assignments (id, project_id, personnel_id, allocation_pct) VALUES ($1, $2, $3, $4)`,
		uuid.New(), projectID, personnelID, allocationPct,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyAssigned
		}
		return err
	}
	return nil
}

func (r *PostgresAssignmentRepository) Unassign(ctx context.Context, projectID, personnelID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM project_assignments WHERE project_id = $1 AND personnel_id = $2`,
		projectID, personnelID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}
