package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentor-collab/internal/domain"
)

func serializationErr(op string) error {
	return txError(op, &pgconn.PgError{Code: pgSerializationFailure})
}

func TestTxErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation}, domain.ErrAlreadyCollaborating},
		{"serialization failure", &pgconn.PgError{Code: pgSerializationFailure}, domain.ErrTransactionFailure},
		{"deadlock", &pgconn.PgError{Code: pgDeadlockDetected}, domain.ErrTransactionFailure},
		{"domain error passes through", domain.ErrRequestNotPending, domain.ErrRequestNotPending},
		{"unknown failure", errors.New("connection reset"), domain.ErrTransactionFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, txError("op", tt.err), tt.kind)
		})
	}
}

// Un perdedor de carrera aborta con 40001; el reintento ve el estado
// confirmado y devuelve el conflicto de dominio.
func TestRetrySerializableEndsInConflict(t *testing.T) {
	calls := 0
	err := retrySerializable(context.Background(), serializableAttempts, func(context.Context) error {
		calls++
		if calls == 1 {
			return serializationErr("insert collaboration")
		}
		return domain.ErrAlreadyCollaborating
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.False(t, domain.Retryable(err))
	assert.Equal(t, 2, calls)
}

func TestRetrySerializableSucceedsAfterAbort(t *testing.T) {
	calls := 0
	err := retrySerializable(context.Background(), serializableAttempts, func(context.Context) error {
		calls++
		if calls < 3 {
			return serializationErr("commit accept")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetrySerializableStopsOnDomainError(t *testing.T) {
	calls := 0
	err := retrySerializable(context.Background(), serializableAttempts, func(context.Context) error {
		calls++
		return domain.ErrRequestNotPending
	})

	assert.ErrorIs(t, err, domain.ErrRequestNotPending)
	assert.Equal(t, 1, calls)
}

func TestRetrySerializableGivesUpAfterAttempts(t *testing.T) {
	calls := 0
	err := retrySerializable(context.Background(), 3, func(context.Context) error {
		calls++
		return serializationErr("lock request")
	})

	assert.True(t, domain.Retryable(err))
	assert.Equal(t, 3, calls)
}

func TestRetrySerializableHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retrySerializable(ctx, serializableAttempts, func(context.Context) error {
		calls++
		return serializationErr("lock request")
	})

	assert.True(t, domain.Retryable(err))
	assert.Equal(t, 1, calls)
}
