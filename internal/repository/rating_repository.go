package repository

import (
	"context"

	"staffhub/internal/database"

	"github.com/google/uuid"
)

// SkillRating is one historical rating row.
type SkillRating struct {
	ProjectID   uuid.UUID
	PersonnelID uuid.UUID
	SkillID     uuid.UUID
	Rating      int
}

type RatingInput struct {
	PersonnelID uuid.UUID
	SkillID     uuid.UUID
	Rating      int
}

type RatingRepository interface {
	UpsertRatings(ctx context.Context, projectID uuid.UUID, ratings []RatingInput) error
	ListAllRatings(ctx context.Context) ([]SkillRating, error)
	ListRatingsByProject(ctx context.Context, projectID uuid.UUID) ([]SkillRating, error)
}

type PostgresRatingRepository struct {
	db database.DB
}

func NewPostgresRatingRepository(db database.DB) *PostgresRatingRepository {
	return &PostgresRatingRepository{db: db}
}

// UpsertRatings writes one rating per (personnel, skill) for the
// project, replacing any previous value, all in one transaction.
func (r *PostgresRatingRepository) UpsertRatings(ctx context.Context, projectID uuid.UUID, ratings []RatingInput) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, in := range ratings {
		_, err := tx.Exec(ctx,
			`INSERT INTO project_skill_ratings (id, project_id, personnel_id, skill_id, rating)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (project_id, personnel_id, skill_id) DO UPDATE SET rating = EXCLUDED.rating, rated_at = now()`,
			uuid.New(), projectID, in.PersonnelID, in.SkillID, in.Rating,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRatingRepository) ListAllRatings(ctx context.Context) ([]SkillRating, error) {
	rows, err := r.db.Query(ctx,
		`SELECT project_id, personnel_id, skill_id, rating FROM project_skill_ratings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRatings(rows)
}

func (r *PostgresRatingRepository) ListRatingsByProject(ctx context.Context, projectID uuid.UUID) ([]SkillRating, error) {
	rows, err := r.db.Query(ctx,
		`SELECT project_id, personnel_id, skill_id, rating FROM project_skill_ratings WHERE project_id = $1`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRatings(rows)
}

func scanRatings(rows database.Rows) ([]SkillRating, error) {
	out := make([]SkillRating, 0)
	for rows.Next() {
		var sr SkillRating
		if err := rows.Scan(&sr.ProjectID, &sr.PersonnelID, &sr.SkillID, &sr.Rating); err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
