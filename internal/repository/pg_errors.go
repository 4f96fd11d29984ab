package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"mentor-collab/internal/domain"
)

const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// serializableAttempts acota los reintentos de una transaccion SERIALIZABLE
// abortada por Postgres.
const serializableAttempts = 5

type rowScanner interface {
	Scan(dest ...any) error
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// txError clasifica un error dentro de una transaccion. Los errores de dominio
// pasan tal cual; conflictos de serializacion y cualquier otro fallo quedan
// como TransactionFailure (reintentable).
func txError(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{domain.ErrNotFound, domain.ErrConflict, domain.ErrValidation} {
		if errors.Is(err, kind) {
			return err
		}
	}
	switch pgErrorCode(err) {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s: %w", domain.ErrAlreadyCollaborating, op, err)
	case pgSerializationFailure, pgDeadlockDetected:
		return fmt.Errorf("%w: %s: concurrent update: %w", domain.ErrTransactionFailure, op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrTransactionFailure, op, err)
}

func serializationFailure(err error) bool {
	switch pgErrorCode(err) {
	case pgSerializationFailure, pgDeadlockDetected:
		return true
	}
	return false
}

// retrySerializable repite fn mientras Postgres la aborte con 40001/40P01.
// Cada intento abre una transaccion nueva y ve lo que confirmo el ganador, asi
// el perdedor termina con el error de dominio (ErrRequestNotPending,
// ErrAlreadyCollaborating) y no con TransactionFailure.
func retrySerializable(ctx context.Context, attempts int, fn func(context.Context) error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(ctx); err == nil || !serializationFailure(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(time.Duration(i+1) * 5 * time.Millisecond):
		}
	}
	return err
}
