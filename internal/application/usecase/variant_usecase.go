package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// VariantUseCase casos de uso de las variantes de un producto.
type VariantUseCase struct {
	products repository.ProductRepository
	variants repository.VariantRepository
}

// NewVariantUseCase construye el caso de uso.
func NewVariantUseCase(products repository.ProductRepository, variants repository.VariantRepository) *VariantUseCase {
	return &VariantUseCase{products: products, variants: variants}
}

// ListByProduct lista las variantes de un producto existente.
func (uc *VariantUseCase) ListByProduct(ctx context.Context, productID int64) ([]dto.VariantResponse, error) {
	if err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	list, err := uc.variants.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toVariantResponses(list), nil
}

// Create agrega una variante a un producto existente.
func (uc *VariantUseCase) Create(ctx context.Context, productID int64, in *dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: variante requerida", domain.ErrInvalidInput)
	}
	v, err := newVariant(productID, in)
	if err != nil {
		return nil, err
	}
	if err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := uc.variants.Create(ctx, v); err != nil {
		return nil, err
	}
	out := toVariantResponse(v)
	return &out, nil
}

// Update reemplaza por completo una variante. La variante debe pertenecer al producto de la ruta;
// el producto referenciado nunca cambia.
func (uc *VariantUseCase) Update(ctx context.Context, productID, variantID int64, in *dto.UpdateVariantRequest) error {
	if in == nil {
		return fmt.Errorf("%w: variante requerida", domain.ErrInvalidInput)
	}
	v, err := newVariant(productID, in)
	if err != nil {
		return err
	}
	if _, err := uc.requireVariant(ctx, productID, variantID); err != nil {
		return err
	}
	v.ID = variantID
	return uc.variants.Update(ctx, v)
}

// Delete elimina una variante del producto. domain.ErrNotFound si no existe o es de otro producto.
func (uc *VariantUseCase) Delete(ctx context.Context, productID, variantID int64) error {
	if _, err := uc.requireVariant(ctx, productID, variantID); err != nil {
		return err
	}
	return uc.variants.Delete(ctx, variantID)
}

func (uc *VariantUseCase) requireProduct(ctx context.Context, productID int64) error {
	ok, err := uc.products.Exists(ctx, productID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *VariantUseCase) requireVariant(ctx context.Context, productID, variantID int64) (*entity.ProductVariant, error) {
	v, err := uc.variants.GetByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if v == nil || v.ProductID != productID {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

// newVariant valida la entrada y construye la entidad. Los enums ya llegan validados desde JSON,
// pero la entrada puede venir de otros llamadores.
func newVariant(productID int64, in *dto.CreateVariantRequest) (*entity.ProductVariant, error) {
	switch {
	case in.Stock < 0:
		return nil, fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	case in.Stock > math.MaxInt32:
		return nil, fmt.Errorf("%w: el stock supera el máximo de %d", domain.ErrInvalidInput, math.MaxInt32)
	case !in.Color.IsValid():
		return nil, fmt.Errorf("%w: color inválido %q", domain.ErrInvalidInput, in.Color)
	case !in.Size.IsValid():
		return nil, fmt.Errorf("%w: talle inválido %q", domain.ErrInvalidInput, in.Size)
	case !in.Fabric.IsValid():
		return nil, fmt.Errorf("%w: tela inválida %q", domain.ErrInvalidInput, in.Fabric)
	case in.NeckType != nil && !in.NeckType.IsValid():
		return nil, fmt.Errorf("%w: cuello inválido %q", domain.ErrInvalidInput, *in.NeckType)
	case in.Fit != nil && !in.Fit.IsValid():
		return nil, fmt.Errorf("%w: calce inválido %q", domain.ErrInvalidInput, *in.Fit)
	}
	return &entity.ProductVariant{
		ProductID: productID,
		Stock:     in.Stock,
		Color:     in.Color,
		Size:      in.Size,
		Fabric:    in.Fabric,
		NeckType:  in.NeckType,
		Fit:       in.Fit,
	}, nil
}
