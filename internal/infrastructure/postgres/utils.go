package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
)

// isConstraintViolation verifica si un error es una violación de integridad (FK, único, CHECK, NOT NULL).
func isConstraintViolation(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil, false
	}
	switch pgErr.Code {
	case codeNotNullViolation, codeForeignKeyViolation, codeUniqueViolation, codeCheckViolation:
		return pgErr, true
	}
	return nil, false
}

// wrapWriteError anota err con la operación y traduce violaciones de integridad a domain.ErrConstraintViolation.
// Un valor fuera del rango de la columna se traduce a domain.ErrInvalidInput.
func wrapWriteError(op string, err error) error {
	if pgErr, ok := isConstraintViolation(err); ok {
		return fmt.Errorf("%s: %w: %s", op, domain.ErrConstraintViolation, pgErr.ConstraintName)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeNumericOutOfRange {
		return fmt.Errorf("%s: %w: %s", op, domain.ErrInvalidInput, pgErr.Message)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullableNeckType(n *entity.NeckType) *string {
	if n == nil {
		return nil
	}
	s := string(*n)
	return &s
}

func nullableFit(f *entity.Fit) *string {
	if f == nil {
		return nil
	}
	s := string(*f)
	return &s
}

type storedEnum interface {
	~string
	IsValid() bool
}

// parseNullable valida un enum opcional leído de la base; NULL queda en nil.
func parseNullable[T storedEnum](s *string) (*T, error) {
	if s == nil {
		return nil, nil
	}
	v, err := entity.Parse[T](*s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
