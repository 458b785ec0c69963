package usecase_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

type failingAudit struct{}

func (failingAudit) Append(context.Context, *entity.AuditLog) error {
	return errors.New("audit no disponible")
}

func (failingAudit) ListByProduct(context.Context, int64) ([]*entity.AuditLog, error) {
	return nil, nil
}

type brokenAuditRunner struct{ inner usecase.TxRunner }

func (r brokenAuditRunner) Run(ctx context.Context, fn func(context.Context, usecase.TxRepos) error) error {
	return r.inner.Run(ctx, func(ctx context.Context, repos usecase.TxRepos) error {
		repos.Audit = failingAudit{}
		return fn(ctx, repos)
	})
}

// racingRunner ejecuta before (otro llamador escribiendo) entre la comprobación previa de la
// fachada y la apertura de la transacción.
type racingRunner struct {
	inner  usecase.TxRunner
	before func(ctx context.Context) error
}

func (r racingRunner) Run(ctx context.Context, fn func(context.Context, usecase.TxRepos) error) error {
	if err := r.before(ctx); err != nil {
		return err
	}
	return r.inner.Run(ctx, fn)
}

type countingRunner struct{ calls int }

func (r *countingRunner) Run(context.Context, func(context.Context, usecase.TxRepos) error) error {
	r.calls++
	return nil
}

type countingProducts struct {
	repository.ProductRepository
	deletes int
}

func (p *countingProducts) Delete(ctx context.Context, id int64) error {
	p.deletes++
	return p.ProductRepository.Delete(ctx, id)
}

func newProductUseCase(store *memory.Store, tx usecase.TxRunner) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(store.Products(), store.Variants(), store.Audit(), tx, logger.Nop())
}

func teeRequest() *dto.CreateProductRequest {
	return &dto.CreateProductRequest{
		Name:  "Tee",
		Price: decimal.RequireFromString("19.99"),
		Type:  entity.ProductTypeShirt,
		Variants: []dto.CreateVariantRequest{
			{Color: entity.ColorRed, Size: entity.SizeS, Fabric: entity.FabricCotton, Stock: 5},
			{Color: entity.ColorBlue, Size: entity.SizeM, Fabric: entity.FabricCotton, Stock: 3},
			{Color: entity.ColorRed, Size: entity.SizeM, Fabric: entity.FabricCotton, Stock: 2},
		},
	}
}

func TestProductUseCase_ListVacia(t *testing.T) {
	store := memory.New()
	uc := newProductUseCase(store, store.TxRunner())

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestProductUseCase_GetByID_NoExiste(t *testing.T) {
	store := memory.New()
	uc := newProductUseCase(store, store.TxRunner())

	_, err := uc.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_CreateConVariantes(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newProductUseCase(store, store.TxRunner())

	out, err := uc.Create(ctx, teeRequest())
	require.NoError(t, err)
	require.Len(t, out.Variants, 3)
	for _, v := range out.Variants {
		assert.Equal(t, out.ID, v.ProductID)
	}

	got, err := uc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Len(t, got.Variants, 3)
}

func TestProductUseCase_Create_Validacion(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newProductUseCase(store, store.TxRunner())

	in := teeRequest()
	in.Price = decimal.NewFromInt(-1)
	_, err := uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = teeRequest()
	in.Variants[2].Stock = -4
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = teeRequest()
	in.Type = "Hat"
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, _ := uc.List(ctx)
	assert.Empty(t, list, "una entrada inválida no escribe nada")
}

func TestProductUseCase_Update_NoExiste_SinEfectos(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newProductUseCase(store, store.TxRunner())

	seeded, err := uc.CreateWithAudit(ctx, "admin", teeRequest())
	require.NoError(t, err)
	before, err := uc.GetByID(ctx, seeded.ID)
	require.NoError(t, err)

	missing := seeded.ID + 1
	err = uc.Update(ctx, missing, "admin", &dto.UpdateProductRequest{Name: "X", Price: decimal.NewFromInt(1), Type: entity.ProductTypeDress})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	after, err := uc.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	list, _ := uc.List(ctx)
	assert.Len(t, list, 1)

	logs, _ := uc.Audit(ctx, seeded.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditActionCreate, logs[0].Action)
	logs, _ = uc.Audit(ctx, missing)
	assert.Empty(t, logs)
}

func TestProductUseCase_Update_BorradoConcurrente(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seeded, err := newProductUseCase(store, store.TxRunner()).Create(ctx, teeRequest())
	require.NoError(t, err)

	uc := newProductUseCase(store, racingRunner{
		inner:  store.TxRunner(),
		before: func(ctx context.Context) error { return store.Products().Delete(ctx, seeded.ID) },
	})
	err = uc.Update(ctx, seeded.ID, "admin", &dto.UpdateProductRequest{Name: "Tee v2", Price: decimal.NewFromInt(25), Type: entity.ProductTypeShirt})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := store.Products().GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "la actualización no resucita el producto")
	logs, err := uc.Audit(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Empty(t, logs, "sin auditoría de UPDATE para un producto inexistente")
}

func TestProductUseCase_Update_Reemplaza(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newProductUseCase(store, store.TxRunner())
	out, err := uc.Create(ctx, teeRequest())
	require.NoError(t, err)

	err = uc.Update(ctx, out.ID, "admin", &dto.UpdateProductRequest{Name: "Tee v2", Price: decimal.NewFromInt(25), Type: entity.ProductTypeShirt})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tee v2", got.Name)
	assert.Equal(t, "", got.Description)
	assert.True(t, decimal.NewFromInt(25).Equal(got.Price))
	assert.Equal(t, out.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestProductUseCase_Delete_DosVeces(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newProductUseCase(store, store.TxRunner())
	out, err := uc.Create(ctx, teeRequest())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, out.ID, "admin"))
	assert.ErrorIs(t, uc.Delete(ctx, out.ID, "admin"), domain.ErrNotFound)

	rows, err := store.Variants().ListWithProduct(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows, "las variantes se eliminan en cascada")

	logs, err := uc.Audit(ctx, out.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditActionDelete, logs[0].Action)
}

func TestProductUseCase_Delete_NoExiste_SinLlamadas(t *testing.T) {
	store := memory.New()
	products := &countingProducts{ProductRepository: store.Products()}
	runner := &countingRunner{}
	uc := usecase.NewProductUseCase(products, store.Variants(), store.Audit(), runner, logger.Nop())

	err := uc.Delete(context.Background(), 99, "admin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, runner.calls, "no se abre transacción")
	assert.Zero(t, products.deletes, "no se borra nada")
}

func TestProductUseCase_Delete_Concurrente_UnaSolaAuditoria(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	other := newProductUseCase(store, store.TxRunner())
	seeded, err := other.Create(ctx, teeRequest())
	require.NoError(t, err)

	uc := newProductUseCase(store, racingRunner{
		inner:  store.TxRunner(),
		before: func(ctx context.Context) error { return other.Delete(ctx, seeded.ID, "otro") },
	})
	err = uc.Delete(ctx, seeded.ID, "admin")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	logs, err := uc.Audit(ctx, seeded.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditActionDelete, logs[0].Action)
	assert.Equal(t, "otro", logs[0].Actor)
}

func TestProductUseCase_Validacion_LimitesDeColumna(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newProductUseCase(store, store.TxRunner())

	for _, price := range []string{"10.005", "10000000000", "12345678901.5"} {
		in := teeRequest()
		in.Price = decimal.RequireFromString(price)
		_, err := uc.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio %s", price)
	}

	in := teeRequest()
	in.Variants[0].Stock = math.MaxInt32 + 1
	_, err := uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, _ := uc.List(ctx)
	assert.Empty(t, list)

	// los extremos admitidos se aceptan sin redondeo
	in = teeRequest()
	in.Price = decimal.RequireFromString("9999999999.99")
	in.Variants[0].Stock = math.MaxInt32
	out, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "9999999999.99", out.Price.String())

	err = uc.Update(ctx, out.ID, "admin", &dto.UpdateProductRequest{Name: "Tee", Price: decimal.RequireFromString("1.999"), Type: entity.ProductTypeShirt})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_CreateWithAudit(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newProductUseCase(store, store.TxRunner())

	out, err := uc.CreateWithAudit(ctx, "admin", teeRequest())
	require.NoError(t, err)

	logs, err := uc.Audit(ctx, out.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditActionCreate, logs[0].Action)
	assert.Equal(t, "admin", logs[0].Actor)
}

func TestProductUseCase_CreateWithAudit_FalloDependiente(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newProductUseCase(store, brokenAuditRunner{inner: store.TxRunner()})

	_, err := uc.CreateWithAudit(ctx, "admin", teeRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransactionAborted)
	var aborted *domain.TxAbortedError
	require.ErrorAs(t, err, &aborted)
	assert.Equal(t, "append audit", aborted.Step)

	// el id que se habría asignado no es visible
	_, err = uc.GetByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	rows, _ := store.Variants().ListWithProduct(ctx)
	assert.Empty(t, rows)
	catalog, err := uc.Catalog(ctx)
	require.NoError(t, err)
	assert.Empty(t, catalog)
}

func TestProductUseCase_Catalog(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newProductUseCase(store, store.TxRunner())

	_, err := uc.Create(ctx, teeRequest())
	require.NoError(t, err)

	polo := entity.NeckTypePolo
	slim := entity.FitSlim
	_, err = uc.Create(ctx, &dto.CreateProductRequest{
		Name: "Polo", Price: decimal.NewFromInt(30), Type: entity.ProductTypeShirt,
		Variants: []dto.CreateVariantRequest{
			{Color: entity.ColorWhite, Size: entity.SizeL, Fabric: entity.FabricLinen, NeckType: &polo, Fit: &slim, Stock: 1},
			{Color: entity.ColorWhite, Size: entity.SizeM, Fabric: entity.FabricCotton, Stock: 2},
			{Color: entity.ColorBlack, Size: entity.SizeL, Fabric: entity.FabricLinen, NeckType: &polo, Fit: &slim, Stock: 4},
		},
	})
	require.NoError(t, err)

	first, err := uc.Catalog(ctx)
	require.NoError(t, err)
	require.Len(t, first, 3)

	tee := first[0]
	assert.Equal(t, int64(1), tee.ProductID)
	assert.Equal(t, []entity.Color{entity.ColorRed, entity.ColorBlue}, tee.AvailableColors)
	assert.Equal(t, []entity.Size{entity.SizeS, entity.SizeM}, tee.AvailableSizes)
	assert.Equal(t, 10, tee.TotalStock)

	// producto 2: Cotton sin cuello ni calce, luego Linen/Polo/Slim
	assert.Equal(t, entity.FabricCotton, first[1].Fabric)
	assert.Nil(t, first[1].NeckType)
	assert.Equal(t, 2, first[1].TotalStock)
	assert.Equal(t, entity.FabricLinen, first[2].Fabric)
	require.NotNil(t, first[2].NeckType)
	assert.Equal(t, entity.NeckTypePolo, *first[2].NeckType)
	assert.Equal(t, []entity.Color{entity.ColorWhite, entity.ColorBlack}, first[2].AvailableColors)
	assert.Equal(t, []entity.Size{entity.SizeL}, first[2].AvailableSizes)
	assert.Equal(t, 5, first[2].TotalStock)

	second, err := uc.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second, "sin escrituras intermedias el catálogo es idéntico")
}
