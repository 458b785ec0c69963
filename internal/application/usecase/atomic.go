package usecase

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain"
)

// stepScope nombra al propio ámbito cuando el fallo no es de un paso (begin, commit, anidamiento).
const stepScope = "transaction"

// Step es un paso de escritura de una ejecución atómica.
type Step struct {
	Name string
	Do   func(ctx context.Context, repos TxRepos) error
}

// RunAtomic ejecuta los pasos en orden dentro de una sola transacción. Si un paso falla, o el
// contexto se cancela entre pasos, no se ejecutan los siguientes y se revierte todo lo aplicado.
// Cualquier fallo se devuelve como *domain.TxAbortedError con la causa original.
func RunAtomic(ctx context.Context, runner TxRunner, steps ...Step) error {
	failed := stepScope
	err := runner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		for _, s := range steps {
			if err := ctx.Err(); err != nil {
				failed = s.Name
				return err
			}
			if err := s.Do(ctx, repos); err != nil {
				failed = s.Name
				return err
			}
		}
		failed = stepScope
		return nil
	})
	if err != nil {
		return &domain.TxAbortedError{Step: failed, Cause: err}
	}
	return nil
}
