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

type StatusCount struct {
	Status string
	Count  int
}

type SkillDemand struct {
	SkillID     uuid.UUID
	SkillName   string
	DemandCount int
}

type TopPerformer struct {
	PersonnelID uuid.UUID
	Name        string
	AvgRating   float64
}

// ForecastAssignment feeds the utilization forecast: one open
// commitment with its window and allocation.
type ForecastAssignment struct {
	PersonnelID   uuid.UUID
	PersonnelName string
	StartDate     *time.Time
	EndDate       *time.Time
	AllocationPct int
}

type DashboardRepository interface {
	ProjectStatusCounts(ctx context.Context) ([]StatusCount, error)
	TopSkillDemand(ctx context.Context, limit int) ([]SkillDemand, error)
	TopPerformer(ctx context.Context) (TopPerformer, bool, error)
	OpenForecastAssignments(ctx context.Context, horizon time.Time) ([]ForecastAssignment, error)
}

type PostgresDashboardRepository struct {
	db database.DB
}

func NewPostgresDashboardRepository(db database.DB) *PostgresDashboardRepository {
	return &PostgresDashboardRepository{db: db}
}

func (r *PostgresDashboardRepository) ProjectStatusCounts(ctx context.Context) ([]StatusCount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status, COUNT(*) FROM projects GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StatusCount, 0)
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresDashboardRepository) TopSkillDemand(ctx context.Context, limit int) ([]SkillDemand, error) {
	if limit <= 0 {
		limit = 6
	}
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.name, COUNT(pr.project_id)
		 FROM skills s
		 JOIN project_requirements pr ON pr.skill_id = s.id
		 GROUP BY s.id, s.name
		 ORDER BY COUNT(pr.project_id) DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SkillDemand, 0)
	for rows.Next() {
		var sd SkillDemand
		if err := rows.Scan(&sd.SkillID, &sd.SkillName, &sd.DemandCount); err != nil {
			return nil, err
		}
		out = append(out, sd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresDashboardRepository) TopPerformer(ctx context.Context) (TopPerformer, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT p.id, p.name, AVG(psr.rating)
		 FROM personnel p
		 JOIN project_skill_ratings psr ON psr.personnel_id = p.id
		 GROUP BY p.id, p.name
		 ORDER BY AVG(psr.rating) DESC
		 LIMIT 1`)

	var tp TopPerformer
	if err := row.Scan(&tp.PersonnelID, &tp.Name, &tp.AvgRating); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return TopPerformer{}, false, nil
		}
		return TopPerformer{}, false, err
	}
	return tp, true, nil
}

func (r *PostgresDashboardRepository) OpenForecastAssignments(ctx context.Context, horizon time.Time) ([]ForecastAssignment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT pa.personnel_id, p.name, proj.start_date, proj.end_date, pa.allocation_pct
		 FROM project_assignments pa
		 JOIN personnel p ON p.id = pa.personnel_id
		 JOIN projects proj ON proj.id = pa.project_id
		 WHERE proj.status IN ($1, $2)
		   AND (proj.end_date IS NULL OR proj.end_date >= $3)`,
		StatusActive, StatusPlanning, horizon,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ForecastAssignment, 0)
	for rows.Next() {
		var fa ForecastAssignment
		if err := rows.Scan(&fa.PersonnelID, &fa.PersonnelName, &fa.StartDate, &fa.EndDate, &fa.AllocationPct); err != nil {
			return nil, err
		}
		out = append(out, fa)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
