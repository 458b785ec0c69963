package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// VariantRepository define el puerto de persistencia para ProductVariant.
// Create falla con domain.ErrConstraintViolation si el producto referenciado no existe.
type VariantRepository interface {
	Create(ctx context.Context, variant *entity.ProductVariant) error
	GetByID(ctx context.Context, id int64) (*entity.ProductVariant, error)
	ListByProduct(ctx context.Context, productID int64) ([]*entity.ProductVariant, error)
	Update(ctx context.Context, variant *entity.ProductVariant) error
	Delete(ctx context.Context, id int64) error
	DeleteByProduct(ctx context.Context, productID int64) error
	// ListWithProduct escanea todas las variantes resolviendo nombre, precio y tipo del producto padre.
	ListWithProduct(ctx context.Context) ([]entity.CatalogRow, error)
}
