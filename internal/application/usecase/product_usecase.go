package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/catalog"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// ProductUseCase fachada de productos: CRUD, catálogo agrupado y alta auditada.
// Las escrituras de varios pasos pasan por RunAtomic; las lecturas van directo a los repositorios.
type ProductUseCase struct {
	products repository.ProductRepository
	variants repository.VariantRepository
	audit    repository.AuditRepository
	tx       TxRunner
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products repository.ProductRepository,
	variants repository.VariantRepository,
	audit repository.AuditRepository,
	tx TxRunner,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{products: products, variants: variants, audit: audit, tx: tx, log: log}
}

// List lista todos los productos, sin variantes. Lista vacía si no hay ninguno.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, nil))
	}
	return items, nil
}

// GetByID obtiene un producto con sus variantes. domain.ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	variants, err := uc.variants.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, variants), nil
}

// Create crea un producto. Si trae variantes, producto y variantes se insertan en una sola transacción.
func (uc *ProductUseCase) Create(ctx context.Context, in *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput)
	}
	product, variants, err := newProduct(in)
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		if err := uc.products.Create(ctx, product); err != nil {
			return nil, err
		}
		return toProductResponse(product, nil), nil
	}
	if err := RunAtomic(ctx, uc.tx,
		insertProductStep(product),
		insertVariantsStep(product, variants),
	); err != nil {
		uc.logAborted(err, "alta de producto con variantes")
		return nil, err
	}
	return toProductResponse(product, variants), nil
}

// CreateWithAudit crea el producto (y sus variantes) y registra la auditoría como una unidad atómica:
// si cualquier paso falla no queda nada visible del producto.
func (uc *ProductUseCase) CreateWithAudit(ctx context.Context, actor string, in *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput)
	}
	product, variants, err := newProduct(in)
	if err != nil {
		return nil, err
	}
	err = RunAtomic(ctx, uc.tx,
		insertProductStep(product),
		insertVariantsStep(product, variants),
		auditStep(product, entity.AuditActionCreate, actor, func() string {
			return fmt.Sprintf("producto creado: %s (%d variantes)", product.Name, len(variants))
		}),
	)
	if err != nil {
		uc.logAborted(err, "alta auditada de producto")
		return nil, err
	}
	uc.log.Info().Int64("product_id", product.ID).Str("actor", actor).Msg("producto creado con auditoría")
	return toProductResponse(product, variants), nil
}

// Update reemplaza por completo un producto existente. domain.ErrNotFound si no existe (también si
// otro llamador lo borra antes de la escritura); en ese caso no se escribe nada.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, actor string, in *dto.UpdateProductRequest) error {
	if in == nil {
		return fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput)
	}
	if err := validateProduct(in.Price, in.Type); err != nil {
		return err
	}
	existing, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	existing.Name = in.Name
	existing.Description = in.Description
	existing.Price = in.Price
	existing.Type = in.Type
	existing.UpdatedAt = time.Now()

	err = RunAtomic(ctx, uc.tx,
		checkProductStep(id),
		Step{Name: "update product", Do: func(ctx context.Context, r TxRepos) error {
			return r.Products.Update(ctx, existing)
		}},
		auditStep(existing, entity.AuditActionUpdate, actor, func() string {
			return "producto actualizado: " + existing.Name
		}),
	)
	return uc.finish(err, "actualización de producto")
}

// Delete elimina un producto y, en cascada, sus variantes. domain.ErrNotFound si no existe
// (también en el segundo borrado del mismo id): la fachada no es idempotente aquí.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64, actor string) error {
	existing, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	err = RunAtomic(ctx, uc.tx,
		checkProductStep(id),
		Step{Name: "delete variants", Do: func(ctx context.Context, r TxRepos) error {
			return r.Variants.DeleteByProduct(ctx, id)
		}},
		Step{Name: "delete product", Do: func(ctx context.Context, r TxRepos) error {
			return r.Products.Delete(ctx, id)
		}},
		auditStep(existing, entity.AuditActionDelete, actor, func() string {
			return "producto eliminado: " + existing.Name
		}),
	)
	return uc.finish(err, "eliminación de producto")
}

// Catalog recalcula el catálogo agrupado desde un escaneo fresco de variantes. Nunca se cachea.
func (uc *ProductUseCase) Catalog(ctx context.Context) ([]dto.CatalogEntryResponse, error) {
	rows, err := uc.variants.ListWithProduct(ctx)
	if err != nil {
		return nil, err
	}
	if ids := catalog.Divergent(rows); len(ids) > 0 {
		uc.log.Warn().Interface("product_ids", ids).Msg("catálogo: atributos de producto distintos entre variantes")
	}
	entries := catalog.Aggregate(rows)
	catalog.Sort(entries)

	out := make([]dto.CatalogEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toCatalogEntryResponse(e))
	}
	return out, nil
}

// Audit lista la auditoría de un producto (también de productos ya eliminados).
func (uc *ProductUseCase) Audit(ctx context.Context, productID int64) ([]dto.AuditLogResponse, error) {
	logs, err := uc.audit.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, toAuditLogResponse(l))
	}
	return out, nil
}

func (uc *ProductUseCase) logAborted(err error, op string) {
	uc.log.Error().Err(err).Str("op", op).Msg("transacción revertida")
}

// finish traduce el resultado de una escritura sobre un producto existente: si el producto
// desapareció dentro del ámbito atómico el llamador recibe domain.ErrNotFound a secas.
func (uc *ProductUseCase) finish(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		uc.log.Warn().Str("op", op).Msg("producto eliminado durante la escritura")
		return domain.ErrNotFound
	default:
		uc.logAborted(err, op)
		return err
	}
}

// checkProductStep relee el producto dentro del ámbito atómico. En PostgreSQL la lectura bloquea
// la fila hasta el commit.
func checkProductStep(id int64) Step {
	return Step{Name: "check product", Do: func(ctx context.Context, r TxRepos) error {
		p, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		return nil
	}}
}

func insertProductStep(p *entity.Product) Step {
	return Step{Name: "insert product", Do: func(ctx context.Context, r TxRepos) error {
		return r.Products.Create(ctx, p)
	}}
}

func insertVariantsStep(p *entity.Product, variants []*entity.ProductVariant) Step {
	return Step{Name: "insert variants", Do: func(ctx context.Context, r TxRepos) error {
		for _, v := range variants {
			v.ProductID = p.ID
			if err := r.Variants.Create(ctx, v); err != nil {
				return err
			}
		}
		return nil
	}}
}

func auditStep(p *entity.Product, action, actor string, detail func() string) Step {
	return Step{Name: "append audit", Do: func(ctx context.Context, r TxRepos) error {
		return r.Audit.Append(ctx, &entity.AuditLog{
			ProductID: p.ID,
			Action:    action,
			Actor:     actor,
			Detail:    detail(),
		})
	}}
}

func newProduct(in *dto.CreateProductRequest) (*entity.Product, []*entity.ProductVariant, error) {
	if err := validateProduct(in.Price, in.Type); err != nil {
		return nil, nil, err
	}
	variants := make([]*entity.ProductVariant, 0, len(in.Variants))
	for i := range in.Variants {
		v, err := newVariant(0, &in.Variants[i])
		if err != nil {
			return nil, nil, fmt.Errorf("variante %d: %w", i, err)
		}
		variants = append(variants, v)
	}
	now := time.Now()
	return &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Type:        in.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, variants, nil
}

// maxPrice es el primer valor que no entra en NUMERIC(12, 2).
var maxPrice = decimal.New(1, 10)

func validateProduct(price decimal.Decimal, t entity.ProductType) error {
	switch {
	case price.IsNegative():
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	case !price.Equal(price.Round(2)):
		return fmt.Errorf("%w: el precio admite como máximo 2 decimales", domain.ErrInvalidInput)
	case price.GreaterThanOrEqual(maxPrice):
		return fmt.Errorf("%w: el precio debe ser menor que %s", domain.ErrInvalidInput, maxPrice)
	}
	if !t.IsValid() {
		return fmt.Errorf("%w: tipo de producto inválido %q", domain.ErrInvalidInput, t)
	}
	return nil
}
