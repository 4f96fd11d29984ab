package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentor-collab/internal/domain"
)

type PgMentorshipRepository struct {
	pool *pgxpool.Pool
}

func NewPgMentorshipRepository(pool *pgxpool.Pool) *PgMentorshipRepository {
	return &PgMentorshipRepository{pool: pool}
}

const mentorshipColumns = `id, mentor_id, mentor_name, mentor_email, social_enterprise_id, social_enterprise_name`

func scanMentorship(row rowScanner) (domain.Mentorship, error) {
	var m domain.Mentorship
	err := row.Scan(
		&m.ID,
		&m.MentorID,
		&m.MentorName,
		&m.MentorEmail,
		&m.SocialEnterpriseID,
		&m.SocialEnterpriseName,
	)
	return m, err
}

func (r *PgMentorshipRepository) ListMentorships(ctx context.Context) ([]domain.Mentorship, error) {
	query := `SELECT ` + mentorshipColumns + ` FROM mentorships ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list mentorships: %w", err)
	}
	defer rows.Close()

	var out []domain.Mentorship
	for rows.Next() {
		m, err := scanMentorship(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mentorship: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PgMentorshipRepository) GetMentorship(ctx context.Context, id string) (domain.Mentorship, error) {
	query := `SELECT ` + mentorshipColumns + ` FROM mentorships WHERE id = $1`

	m, err := scanMentorship(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Mentorship{}, domain.ErrMentorshipNotFound
	}
	return m, err
}

// UpsertMentorship lo usan el CLI de carga y los tests de integracion; el
// directorio real lo mantiene otro subsistema.
func (r *PgMentorshipRepository) UpsertMentorship(ctx context.Context, m domain.Mentorship) error {
	const query = `
		INSERT INTO mentorships (id, mentor_id, mentor_name, mentor_email, social_enterprise_id, social_enterprise_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET
			mentor_id = EXCLUDED.mentor_id,
			mentor_name = EXCLUDED.mentor_name,
			mentor_email = EXCLUDED.mentor_email,
			social_enterprise_id = EXCLUDED.social_enterprise_id,
			social_enterprise_name = EXCLUDED.social_enterprise_name
	`
	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.MentorID,
		m.MentorName,
		m.MentorEmail,
		m.SocialEnterpriseID,
		m.SocialEnterpriseName,
	)
	return err
}
