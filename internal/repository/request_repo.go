package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentor-collab/internal/domain"
)

type PgRequestRepository struct {
	pool *pgxpool.Pool
}

func NewPgRequestRepository(pool *pgxpool.Pool) *PgRequestRepository {
	return &PgRequestRepository{pool: pool}
}

var requestColumns = []string{
	"id",
	"tier",
	"subtier",
	"initiating_mentorship_id",
	"target_mentorship_id",
	"matched_categories",
	"initiator_strengths",
	"initiator_weaknesses",
	"target_strengths",
	"target_weaknesses",
	"status",
	"created_at",
	"responded_at",
}

const requestSelect = `
	SELECT id, tier, subtier, initiating_mentorship_id, target_mentorship_id,
		matched_categories, initiator_strengths, initiator_weaknesses,
		target_strengths, target_weaknesses, status, created_at, responded_at
	FROM collaboration_requests
`

func scanRequest(row rowScanner) (domain.CollaborationRequest, error) {
	var (
		req         domain.CollaborationRequest
		tier        int
		status      string
		respondedAt *time.Time
	)
	err := row.Scan(
		&req.ID,
		&tier,
		&req.Subtier,
		&req.InitiatingMentorshipID,
		&req.TargetMentorshipID,
		&req.MatchedCategories,
		&req.InitiatorStrengths,
		&req.InitiatorWeaknesses,
		&req.TargetStrengths,
		&req.TargetWeaknesses,
		&status,
		&req.CreatedAt,
		&respondedAt,
	)
	if err != nil {
		return domain.CollaborationRequest{}, err
	}
	req.Tier = domain.Tier(tier)
	req.Status = domain.RequestStatus(status)
	req.RespondedAt = respondedAt
	return req, nil
}

func (r *PgRequestRepository) CreateRequest(ctx context.Context, req domain.CollaborationRequest) error {
	const query = `
		INSERT INTO collaboration_requests (
			id, tier, subtier, initiating_mentorship_id, target_mentorship_id,
			matched_categories, initiator_strengths, initiator_weaknesses,
			target_strengths, target_weaknesses, status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (initiating_mentorship_id, target_mentorship_id) WHERE status = 'pending'
		DO NOTHING
	`
	tag, err := r.pool.Exec(ctx, query,
		req.ID,
		int(req.Tier),
		req.Subtier,
		req.InitiatingMentorshipID,
		req.TargetMentorshipID,
		nonNil(req.MatchedCategories),
		nonNil(req.InitiatorStrengths),
		nonNil(req.InitiatorWeaknesses),
		nonNil(req.TargetStrengths),
		nonNil(req.TargetWeaknesses),
		string(req.Status),
		req.CreatedAt,
	)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return domain.ErrMentorshipNotFound
		}
		return fmt.Errorf("insert collaboration request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicateRequest
	}
	return nil
}

func (r *PgRequestRepository) GetRequest(ctx context.Context, id string) (domain.CollaborationRequest, error) {
	req, err := scanRequest(r.pool.QueryRow(ctx, requestSelect+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CollaborationRequest{}, domain.ErrRequestNotFound
	}
	return req, err
}

func buildRequestsQuery(filter RequestFilter) (string, []interface{}) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(requestColumns...)
	sb.From("collaboration_requests")

	switch filter.Direction {
	case domain.DirectionIncoming:
		sb.Where(sb.Equal("target_mentorship_id", filter.MentorshipID))
	case domain.DirectionOutgoing:
		sb.Where(sb.Equal("initiating_mentorship_id", filter.MentorshipID))
	default:
		sb.Where(sb.Or(
			sb.Equal("initiating_mentorship_id", filter.MentorshipID),
			sb.Equal("target_mentorship_id", filter.MentorshipID),
		))
	}
	if filter.Status != "" {
		sb.Where(sb.Equal("status", string(filter.Status)))
	}
	sb.OrderBy("created_at DESC", "id ASC")

	return sb.Build()
}

func (r *PgRequestRepository) ListRequests(ctx context.Context, filter RequestFilter) ([]domain.CollaborationRequest, error) {
	query, args := buildRequestsQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list collaboration requests: %w", err)
	}
	defer rows.Close()

	var out []domain.CollaborationRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collaboration request: %w", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// RejectRequest pasa la solicitud a Rejected solo si sigue Pending.
func (r *PgRequestRepository) RejectRequest(ctx context.Context, id string, respondedAt time.Time) (domain.CollaborationRequest, error) {
	const query = `
		UPDATE collaboration_requests
		SET status = 'rejected', responded_at = $2
		WHERE id = $1 AND status = 'pending'
		RETURNING id, tier, subtier, initiating_mentorship_id, target_mentorship_id,
			matched_categories, initiator_strengths, initiator_weaknesses,
			target_strengths, target_weaknesses, status, created_at, responded_at
	`
	req, err := scanRequest(r.pool.QueryRow(ctx, query, id, respondedAt))
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.CollaborationRequest{}, fmt.Errorf("reject collaboration request: %w", err)
	}
	if _, err := r.GetRequest(ctx, id); err != nil {
		return domain.CollaborationRequest{}, err
	}
	return domain.CollaborationRequest{}, domain.ErrRequestNotPending
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
