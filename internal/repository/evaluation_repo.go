package repository

import (
	"context"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentor-collab/internal/domain"
)

type PgEvaluationRepository struct {
	pool *pgxpool.Pool
}

func NewPgEvaluationRepository(pool *pgxpool.Pool) *PgEvaluationRepository {
	return &PgEvaluationRepository{pool: pool}
}

func buildRatingsQuery(filter RatingFilter) (string, []interface{}) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("mentorship_id", "category", "rating", "evaluation_type", "evaluated_at")
	sb.From("evaluation_ratings")

	var conds []string
	if filter.EvaluationType != "" {
		conds = append(conds, sb.Equal("evaluation_type", filter.EvaluationType))
	}
	if len(filter.MentorshipIDs) > 0 {
		ids := make([]interface{}, 0, len(filter.MentorshipIDs))
		for _, id := range filter.MentorshipIDs {
			ids = append(ids, id)
		}
		conds = append(conds, sb.In("mentorship_id", ids...))
	}
	if len(conds) > 0 {
		sb.Where(conds...)
	}
	sb.OrderBy("mentorship_id", "category", "evaluated_at")

	return sb.Build()
}

func (r *PgEvaluationRepository) ListRatings(ctx context.Context, filter RatingFilter) ([]domain.EvaluationRating, error) {
	query, args := buildRatingsQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	var out []domain.EvaluationRating
	for rows.Next() {
		var rt domain.EvaluationRating
		if err := rows.Scan(
			&rt.MentorshipID,
			&rt.Category,
			&rt.Rating,
			&rt.EvaluationType,
			&rt.EvaluatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertRating registra una evaluacion; solo para carga de datos y tests.
func (r *PgEvaluationRepository) InsertRating(ctx context.Context, rt domain.EvaluationRating) error {
	const query = `
		INSERT INTO evaluation_ratings (mentorship_id, category, rating, evaluation_type, evaluated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		rt.MentorshipID,
		rt.Category,
		rt.Rating,
		rt.EvaluationType,
		rt.EvaluatedAt,
	)
	return err
}
