package usecase

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products repository.ProductRepository
	Variants repository.VariantRepository
	Audit    repository.AuditRepository
}

// TxRunner ejecuta fn dentro de una transacción del almacén: Commit solo si fn devuelve nil y el
// contexto sigue vivo; Rollback en cualquier otra salida (error, panic, cancelación).
// No se admiten transacciones anidadas: Run con un ctx que ya está dentro de un ámbito devuelve
// domain.ErrNestedTransaction.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

type txScopeKey struct{}

// EnterTxScope marca ctx como dentro de un ámbito transaccional. Lo usan las implementaciones de TxRunner.
func EnterTxScope(ctx context.Context) context.Context {
	return context.WithValue(ctx, txScopeKey{}, true)
}

// InTxScope informa si ctx ya está dentro de un ámbito transaccional.
func InTxScope(ctx context.Context) bool {
	v, _ := ctx.Value(txScopeKey{}).(bool)
	return v
}
