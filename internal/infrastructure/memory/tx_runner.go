package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/internal/domain"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción en memoria (serializable: toma el lock de
// escritura durante todo el ámbito).
type TxRunner struct {
	db *Store
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn devuelve nil y ctx sigue vivo.
// En cualquier otra salida (error, panic, cancelación) la copia se descarta.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos usecase.TxRepos) error) error {
	if usecase.InTxScope(ctx) {
		return domain.ErrNestedTransaction
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	snapshot := r.db.st.clone()
	a := access{db: r.db, tx: snapshot}
	repos := usecase.TxRepos{
		Products: &ProductRepo{a},
		Variants: &VariantRepo{a},
		Audit:    &AuditRepo{a},
	}

	if err := fn(usecase.EnterTxScope(ctx), repos); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	r.db.st = snapshot
	return nil
}
