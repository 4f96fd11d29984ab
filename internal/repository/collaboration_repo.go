package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentor-collab/internal/domain"
)

type PgCollaborationRepository struct {
	pool *pgxpool.Pool
}

func NewPgCollaborationRepository(pool *pgxpool.Pool) *PgCollaborationRepository {
	return &PgCollaborationRepository{pool: pool}
}

const collaborationColumns = `id, mentorship_a_id, mentorship_b_id, tier, originating_request_id, status, created_at, ended_at`

func scanCollaboration(row rowScanner) (domain.Collaboration, error) {
	var (
		c       domain.Collaboration
		tier    int
		status  string
		endedAt *time.Time
	)
	err := row.Scan(
		&c.ID,
		&c.MentorshipAID,
		&c.MentorshipBID,
		&tier,
		&c.OriginatingRequestID,
		&status,
		&c.CreatedAt,
		&endedAt,
	)
	if err != nil {
		return domain.Collaboration{}, err
	}
	c.Tier = domain.Tier(tier)
	c.Status = domain.CollaborationStatus(status)
	c.EndedAt = endedAt
	return c, nil
}

func (r *PgCollaborationRepository) queryCollaborations(ctx context.Context, query string, args ...any) ([]domain.Collaboration, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list collaborations: %w", err)
	}
	defer rows.Close()

	var out []domain.Collaboration
	for rows.Next() {
		c, err := scanCollaboration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collaboration: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PgCollaborationRepository) ListActiveCollaborations(ctx context.Context) ([]domain.Collaboration, error) {
	query := `SELECT ` + collaborationColumns + ` FROM collaborations WHERE status = 'active' ORDER BY created_at, id`
	return r.queryCollaborations(ctx, query)
}

func (r *PgCollaborationRepository) ListCollaborations(ctx context.Context, mentorshipID string) ([]domain.Collaboration, error) {
	query := `SELECT ` + collaborationColumns + ` FROM collaborations
		WHERE mentorship_a_id = $1 OR mentorship_b_id = $1
		ORDER BY created_at DESC, id`
	return r.queryCollaborations(ctx, query, mentorshipID)
}

func (r *PgCollaborationRepository) GetCollaboration(ctx context.Context, id string) (domain.Collaboration, error) {
	query := `SELECT ` + collaborationColumns + ` FROM collaborations WHERE id = $1`

	c, err := scanCollaboration(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Collaboration{}, domain.ErrCollaborationNotFound
	}
	return c, err
}

// CommitAccept valida y escribe la aceptacion en una transaccion SERIALIZABLE.
// La solicitud queda bloqueada con FOR UPDATE; la colaboracion y las filas de
// collaboration_members se insertan con ON CONFLICT DO NOTHING y una insercion
// suprimida se reporta como ErrAlreadyCollaborating. Si Postgres aborta por
// serializacion se reintenta, y el perdedor de una carrera recibe Conflict.
func (r *PgCollaborationRepository) CommitAccept(ctx context.Context, params AcceptParams) (domain.Collaboration, domain.CollaborationRequest, error) {
	var (
		collab domain.Collaboration
		req    domain.CollaborationRequest
	)
	err := retrySerializable(ctx, serializableAttempts, func(ctx context.Context) error {
		var err error
		collab, req, err = r.commitAccept(ctx, params)
		return err
	})
	if err != nil {
		return domain.Collaboration{}, domain.CollaborationRequest{}, err
	}
	return collab, req, nil
}

func (r *PgCollaborationRepository) commitAccept(ctx context.Context, params AcceptParams) (domain.Collaboration, domain.CollaborationRequest, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return domain.Collaboration{}, domain.CollaborationRequest{}, txError("begin accept", err)
	}
	defer tx.Rollback(ctx)

	req, err := scanRequest(tx.QueryRow(ctx, requestSelect+` WHERE id = $1 FOR UPDATE`, params.RequestID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Collaboration{}, domain.CollaborationRequest{}, domain.ErrRequestNotFound
	}
	if err != nil {
		return domain.Collaboration{}, domain.CollaborationRequest{}, txError("lock request", err)
	}
	if req.Status != domain.RequestPending {
		return domain.Collaboration{}, domain.CollaborationRequest{}, domain.ErrRequestNotPending
	}
	if params.Check != nil {
		if err := params.Check(req); err != nil {
			return domain.Collaboration{}, domain.CollaborationRequest{}, err
		}
	}

	const busyQuery = `SELECT COUNT(*) FROM collaboration_members WHERE mentorship_id = ANY($1)`
	var busy int
	participants := []string{req.InitiatingMentorshipID, req.TargetMentorshipID}
	if err := tx.QueryRow(ctx, busyQuery, participants).Scan(&busy); err != nil {
		return domain.Collaboration{}, domain.CollaborationRequest{}, txError("check members", err)
	}
	if busy > 0 {
		return domain.Collaboration{}, domain.CollaborationRequest{}, domain.ErrAlreadyCollaborating
	}

	collab := domain.Collaboration{
		ID:                   params.CollaborationID,
		MentorshipAID:        req.InitiatingMentorshipID,
		MentorshipBID:        req.TargetMentorshipID,
		Tier:                 req.Tier,
		OriginatingRequestID: req.ID,
		Status:               domain.CollaborationActive,
		CreatedAt:            params.AcceptedAt,
	}
	low, high := domain.PairKey(collab.MentorshipAID, collab.MentorshipBID)

	const insertCollab = `
		INSERT INTO collaborations (
			id, mentorship_a_id, mentorship_b_id, pair_low, pair_high, tier, originating_request_id, status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'active', $8)
		ON CONFLICT (pair_low, pair_high) WHERE status = 'active'
		DO NOTHING
	`
	tag, err := tx.Exec(ctx, insertCollab,
		collab.ID,
		collab.MentorshipAID,
		collab.MentorshipBID,
		low,
		high,
		int(collab.Tier),
		collab.OriginatingRequestID,
		collab.CreatedAt,
	)
	if err != nil {
		return domain.Collaboration{}, domain.CollaborationRequest{}, txError("insert collaboration", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Collaboration{}, domain.CollaborationRequest{}, domain.ErrAlreadyCollaborating
	}

	const insertMembers = `
		INSERT INTO collaboration_members (mentorship_id, collaboration_id)
		VALUES ($1, $3), ($2, $3)
		ON CONFLICT (mentorship_id) DO NOTHING
	`
	tag, err = tx.Exec(ctx, insertMembers, collab.MentorshipAID, collab.MentorshipBID, collab.ID)
	if err != nil {
		return domain.Collaboration{}, domain.CollaborationRequest{}, txError("insert members", err)
	}
	if tag.RowsAffected() != 2 {
		return domain.Collaboration{}, domain.CollaborationRequest{}, domain.ErrAlreadyCollaborating
	}

	const acceptRequest = `
		UPDATE collaboration_requests
		SET status = 'accepted', responded_at = $2
		WHERE id = $1 AND status = 'pending'
	`
	tag, err = tx.Exec(ctx, acceptRequest, req.ID, params.AcceptedAt)
	if err != nil {
		return domain.Collaboration{}, domain.CollaborationRequest{}, txError("accept request", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Collaboration{}, domain.CollaborationRequest{}, domain.ErrRequestNotPending
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Collaboration{}, domain.CollaborationRequest{}, txError("commit accept", err)
	}

	acceptedAt := params.AcceptedAt
	req.Status = domain.RequestAccepted
	req.RespondedAt = &acceptedAt
	return collab, req, nil
}

// EndCollaboration cierra una colaboracion activa y libera a ambas mentorias.
func (r *PgCollaborationRepository) EndCollaboration(ctx context.Context, id string, endedAt time.Time) (domain.Collaboration, error) {
	var ended domain.Collaboration
	err := retrySerializable(ctx, serializableAttempts, func(ctx context.Context) error {
		var err error
		ended, err = r.endCollaboration(ctx, id, endedAt)
		return err
	})
	return ended, err
}

func (r *PgCollaborationRepository) endCollaboration(ctx context.Context, id string, endedAt time.Time) (domain.Collaboration, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return domain.Collaboration{}, txError("begin end", err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + collaborationColumns + ` FROM collaborations WHERE id = $1 FOR UPDATE`
	c, err := scanCollaboration(tx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Collaboration{}, domain.ErrCollaborationNotFound
	}
	if err != nil {
		return domain.Collaboration{}, txError("lock collaboration", err)
	}
	if !c.Active() {
		return domain.Collaboration{}, domain.ErrCollaborationEnded
	}

	const endQuery = `UPDATE collaborations SET status = 'ended', ended_at = $2 WHERE id = $1 AND status = 'active'`
	if _, err := tx.Exec(ctx, endQuery, id, endedAt); err != nil {
		return domain.Collaboration{}, txError("end collaboration", err)
	}
	const freeMembers = `DELETE FROM collaboration_members WHERE collaboration_id = $1`
	if _, err := tx.Exec(ctx, freeMembers, id); err != nil {
		return domain.Collaboration{}, txError("free members", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Collaboration{}, txError("commit end", err)
	}

	c.Status = domain.CollaborationEnded
	c.EndedAt = &endedAt
	return c, nil
}
