package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/infrastructure/memory"
)

func insertStep(name string, p *entity.Product) usecase.Step {
	return usecase.Step{Name: name, Do: func(ctx context.Context, r usecase.TxRepos) error {
		return r.Products.Create(ctx, p)
	}}
}

func shirt(name string) *entity.Product {
	return &entity.Product{Name: name, Price: decimal.NewFromInt(10), Type: entity.ProductTypeShirt}
}

func TestRunAtomic_TodosLosPasos(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	err := usecase.RunAtomic(ctx, store.TxRunner(), insertStep("uno", shirt("A")), insertStep("dos", shirt("B")))
	require.NoError(t, err)

	list, err := store.Products().List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRunAtomic_FalloRevierteYDetiene(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	boom := errors.New("boom")
	thirdRan := false

	err := usecase.RunAtomic(ctx, store.TxRunner(),
		insertStep("insert product", shirt("A")),
		usecase.Step{Name: "append audit", Do: func(context.Context, usecase.TxRepos) error { return boom }},
		usecase.Step{Name: "después", Do: func(context.Context, usecase.TxRepos) error { thirdRan = true; return nil }},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransactionAborted)
	assert.ErrorIs(t, err, boom)
	var aborted *domain.TxAbortedError
	require.ErrorAs(t, err, &aborted)
	assert.Equal(t, "append audit", aborted.Step)
	assert.Equal(t, boom, errors.Unwrap(err))
	assert.False(t, thirdRan, "ningún paso posterior al fallo se ejecuta")

	list, _ := store.Products().List(ctx)
	assert.Empty(t, list)
}

func TestRunAtomic_CancelacionEntrePasos(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := memory.New()

	err := usecase.RunAtomic(ctx, store.TxRunner(),
		insertStep("uno", shirt("A")),
		usecase.Step{Name: "cancelar", Do: func(context.Context, usecase.TxRepos) error { cancel(); return nil }},
		insertStep("tres", shirt("C")),
	)

	var aborted *domain.TxAbortedError
	require.ErrorAs(t, err, &aborted)
	assert.Equal(t, "tres", aborted.Step)
	assert.ErrorIs(t, err, context.Canceled)

	list, _ := store.Products().List(context.Background())
	assert.Empty(t, list)
}

func TestRunAtomic_ContextoYaCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := memory.New()

	err := usecase.RunAtomic(ctx, store.TxRunner(), insertStep("uno", shirt("A")))

	var aborted *domain.TxAbortedError
	require.ErrorAs(t, err, &aborted)
	assert.Equal(t, "transaction", aborted.Step)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunAtomic_AnidadoRechazado(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	runner := store.TxRunner()

	err := usecase.RunAtomic(ctx, runner,
		insertStep("uno", shirt("A")),
		usecase.Step{Name: "anidado", Do: func(ctx context.Context, _ usecase.TxRepos) error {
			return usecase.RunAtomic(ctx, runner, insertStep("interno", shirt("B")))
		}},
	)

	var aborted *domain.TxAbortedError
	require.ErrorAs(t, err, &aborted)
	assert.Equal(t, "anidado", aborted.Step)
	assert.ErrorIs(t, err, domain.ErrNestedTransaction)

	list, _ := store.Products().List(ctx)
	assert.Empty(t, list)
}

func TestInTxScope(t *testing.T) {
	ctx := context.Background()
	assert.False(t, usecase.InTxScope(ctx))
	assert.True(t, usecase.InTxScope(usecase.EnterTxScope(ctx)))
}
