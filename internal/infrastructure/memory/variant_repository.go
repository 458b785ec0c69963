package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación en memoria de VariantRepository.
type VariantRepo struct {
	a access
}

// Create asigna ID y persiste la variante. El producto debe existir.
func (r *VariantRepo) Create(ctx context.Context, variant *entity.ProductVariant) error {
	if variant.Stock < 0 {
		return fmt.Errorf("%w: stock negativo", domain.ErrConstraintViolation)
	}
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.products[variant.ProductID]; !ok {
			return fmt.Errorf("%w: producto %d inexistente", domain.ErrConstraintViolation, variant.ProductID)
		}
		st.nextVariantID++
		variant.ID = st.nextVariantID
		st.variants[variant.ID] = copyVariant(*variant)
		return nil
	})
}

// GetByID devuelve una copia de la variante o (nil, nil) si no existe.
func (r *VariantRepo) GetByID(ctx context.Context, id int64) (*entity.ProductVariant, error) {
	var out *entity.ProductVariant
	err := r.a.read(ctx, func(st *state) error {
		if v, ok := st.variants[id]; ok {
			c := copyVariant(v)
			out = &c
		}
		return nil
	})
	return out, err
}

// ListByProduct lista las variantes de un producto ordenadas por ID.
func (r *VariantRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.ProductVariant, error) {
	var list []*entity.ProductVariant
	err := r.a.read(ctx, func(st *state) error {
		list = make([]*entity.ProductVariant, 0)
		for _, v := range st.variants {
			if v.ProductID == productID {
				c := copyVariant(v)
				list = append(list, &c)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, err
}

// Update reemplaza stock y atributos. El producto referenciado no cambia. Sobre un id inexistente no hace nada.
func (r *VariantRepo) Update(ctx context.Context, variant *entity.ProductVariant) error {
	if variant.Stock < 0 {
		return fmt.Errorf("%w: stock negativo", domain.ErrConstraintViolation)
	}
	return r.a.write(ctx, func(st *state) error {
		existing, ok := st.variants[variant.ID]
		if !ok {
			return nil
		}
		v := copyVariant(*variant)
		v.ProductID = existing.ProductID
		st.variants[v.ID] = v
		return nil
	})
}

// Delete elimina la variante. Idempotente.
func (r *VariantRepo) Delete(ctx context.Context, id int64) error {
	return r.a.write(ctx, func(st *state) error {
		delete(st.variants, id)
		return nil
	})
}

// DeleteByProduct elimina todas las variantes de un producto.
func (r *VariantRepo) DeleteByProduct(ctx context.Context, productID int64) error {
	return r.a.write(ctx, func(st *state) error {
		for id, v := range st.variants {
			if v.ProductID == productID {
				delete(st.variants, id)
			}
		}
		return nil
	})
}

// ListWithProduct escanea todas las variantes junto con los atributos de su producto padre.
func (r *VariantRepo) ListWithProduct(ctx context.Context) ([]entity.CatalogRow, error) {
	var rows []entity.CatalogRow
	err := r.a.read(ctx, func(st *state) error {
		rows = make([]entity.CatalogRow, 0, len(st.variants))
		for _, v := range st.variants {
			p, ok := st.products[v.ProductID]
			if !ok {
				continue
			}
			rows = append(rows, entity.CatalogRow{
				Variant:     copyVariant(v),
				ProductName: p.Name,
				Price:       p.Price,
				Type:        p.Type,
			})
		}
		return nil
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].Variant.ID < rows[j].Variant.ID })
	return rows, err
}
