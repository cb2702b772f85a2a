package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/coffee-stock-api/internal/domain"
)

// Códigos SQLSTATE relevantes.
const (
	codeNumericOutOfRange    = "22003"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isForeignKeyViolation producto inexistente al insertar en transactions (23503).
func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == codeForeignKeyViolation
}

// isNumericOutOfRange stock + delta fuera del rango de BIGINT (22003).
func isNumericOutOfRange(err error) bool {
	return pgErrorCode(err) == codeNumericOutOfRange
}

// isCheckViolation CHECK (stock >= 0) u otro CHECK de la tabla (23514).
func isCheckViolation(err error) bool {
	return pgErrorCode(err) == codeCheckViolation
}

// isConcurrencyConflict errores que se resuelven reintentando la transacción completa.
func isConcurrencyConflict(err error) bool {
	switch pgErrorCode(err) {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return true
	}
	return false
}

// classify traduce conflictos de concurrencia a domain.ErrConcurrencyConflict
// conservando el error original en el mensaje.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isConcurrencyConflict(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrConcurrencyConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
