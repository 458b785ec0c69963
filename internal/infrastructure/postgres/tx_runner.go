package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/internal/domain"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Dentro de la tx ProductRepo.GetByID toma la fila con FOR UPDATE: dos escrituras sobre el mismo
// producto se serializan y la segunda relee el estado ya confirmado.
// El Rollback diferido usa un contexto sin cancelación para que también corra cuando ctx ya expiró.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos usecase.TxRepos) error) error {
	if usecase.InTxScope(ctx) {
		return domain.ErrNestedTransaction
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	repos := usecase.TxRepos{
		Products: &ProductRepo{q: tx, forUpdate: true},
		Variants: NewVariantRepository(tx),
		Audit:    NewAuditRepository(tx),
	}
	if err := fn(usecase.EnterTxScope(ctx), repos); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
