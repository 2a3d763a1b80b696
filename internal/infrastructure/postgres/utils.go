package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/smartpos-api/internal/domain"
)

// isUUID las llaves son columnas UUID; cualquier otro texto no identifica una fila.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isCheckViolation 23514 (stock >= 0, price > 0).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}

// mapWriteError traduce violaciones de constraints a errores de dominio.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	switch {
	case isUniqueViolation(err):
		if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, pgErr.ConstraintName)
		}
		return domain.ErrAlreadyExists
	case isCheckViolation(err):
		return fmt.Errorf("%w: %s", domain.ErrIntegrityViolation, op)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
