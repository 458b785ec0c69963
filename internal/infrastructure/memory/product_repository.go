package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	a access
}

// Create asigna ID y persiste el producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.Price.IsNegative() {
		return fmt.Errorf("%w: precio negativo", domain.ErrConstraintViolation)
	}
	return r.a.write(ctx, func(st *state) error {
		st.nextProductID++
		product.ID = st.nextProductID
		if product.CreatedAt.IsZero() {
			product.CreatedAt = r.a.db.now()
		}
		if product.UpdatedAt.IsZero() {
			product.UpdatedAt = product.CreatedAt
		}
		st.products[product.ID] = *product
		return nil
	})
}

// GetByID devuelve una copia del producto o (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(ctx, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// Exists informa si el producto existe.
func (r *ProductRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.a.read(ctx, func(st *state) error {
		_, ok = st.products[id]
		return nil
	})
	return ok, err
}

// List devuelve todos los productos ordenados por ID.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.a.read(ctx, func(st *state) error {
		list = make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			p := p
			list = append(list, &p)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, err
}

// Update reemplaza el producto. Sobre un id inexistente no hace nada.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if product.Price.IsNegative() {
		return fmt.Errorf("%w: precio negativo", domain.ErrConstraintViolation)
	}
	return r.a.write(ctx, func(st *state) error {
		existing, ok := st.products[product.ID]
		if !ok {
			return nil
		}
		p := *product
		p.CreatedAt = existing.CreatedAt
		st.products[p.ID] = p
		return nil
	})
}

// Delete elimina el producto y sus variantes (cascada). Idempotente.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	return r.a.write(ctx, func(st *state) error {
		delete(st.products, id)
		for vid, v := range st.variants {
			if v.ProductID == id {
				delete(st.variants, vid)
			}
		}
		return nil
	})
}
