package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación del puerto VariantRepository sobre PostgreSQL (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Acepta pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

const variantColumns = `id, product_id, stock, color, size, fabric, neck_type, fit`

// Create persiste una variante. La FK hacia products rechaza productos inexistentes.
func (r *VariantRepo) Create(ctx context.Context, v *entity.ProductVariant) error {
	query := `
		INSERT INTO product_variants (product_id, stock, color, size, fabric, neck_type, fit)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		v.ProductID, v.Stock, string(v.Color), string(v.Size), string(v.Fabric),
		nullableNeckType(v.NeckType), nullableFit(v.Fit),
	).Scan(&v.ID)
	if err != nil {
		return wrapWriteError("insert variant", err)
	}
	return nil
}

// GetByID obtiene una variante por ID. (nil, nil) si no existe.
func (r *VariantRepo) GetByID(ctx context.Context, id int64) (*entity.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE id = $1`
	var v entity.ProductVariant
	sc := newVariantScan(&v)
	err := r.q.QueryRow(ctx, query, id).Scan(sc.dest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	if err := sc.apply(); err != nil {
		return nil, fmt.Errorf("get variant %d: %w", id, err)
	}
	return &v, nil
}

// ListByProduct lista las variantes de un producto ordenadas por ID.
func (r *VariantRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE product_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.ProductVariant, 0)
	for rows.Next() {
		var v entity.ProductVariant
		sc := newVariantScan(&v)
		if err := rows.Scan(sc.dest()...); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		if err := sc.apply(); err != nil {
			return nil, fmt.Errorf("scan variant %d: %w", v.ID, err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Update reemplaza stock y atributos. product_id no se toca.
func (r *VariantRepo) Update(ctx context.Context, v *entity.ProductVariant) error {
	query := `
		UPDATE product_variants
		SET stock = $2, color = $3, size = $4, fabric = $5, neck_type = $6, fit = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.Stock, string(v.Color), string(v.Size), string(v.Fabric),
		nullableNeckType(v.NeckType), nullableFit(v.Fit),
	)
	if err != nil {
		return wrapWriteError("update variant", err)
	}
	return nil
}

// Delete elimina una variante por ID.
func (r *VariantRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_variants WHERE id = $1`, id); err != nil {
		return wrapWriteError("delete variant", err)
	}
	return nil
}

// DeleteByProduct elimina todas las variantes de un producto.
func (r *VariantRepo) DeleteByProduct(ctx context.Context, productID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_variants WHERE product_id = $1`, productID); err != nil {
		return wrapWriteError("delete variants by product", err)
	}
	return nil
}

// ListWithProduct escanea todas las variantes unidas a su producto, en orden de ID de variante.
func (r *VariantRepo) ListWithProduct(ctx context.Context) ([]entity.CatalogRow, error) {
	query := `
		SELECT v.id, v.product_id, v.stock, v.color, v.size, v.fabric, v.neck_type, v.fit,
		       p.name, p.price, p.type
		FROM product_variants v
		JOIN products p ON p.id = v.product_id
		ORDER BY v.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list catalog rows: %w", err)
	}
	defer rows.Close()
	list := make([]entity.CatalogRow, 0)
	for rows.Next() {
		var row entity.CatalogRow
		var typ string
		sc := newVariantScan(&row.Variant)
		if err := rows.Scan(append(sc.dest(), &row.ProductName, &row.Price, &typ)...); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		if err := sc.apply(); err != nil {
			return nil, fmt.Errorf("scan catalog row %d: %w", row.Variant.ID, err)
		}
		t, err := entity.Parse[entity.ProductType](typ)
		if err != nil {
			return nil, fmt.Errorf("scan catalog row %d: product type: %w", row.Variant.ID, err)
		}
		row.Type = t
		list = append(list, row)
	}
	return list, rows.Err()
}

// variantScan acumula los destinos de Scan en el orden de variantColumns; apply valida y vuelca los enums.
type variantScan struct {
	v                   *entity.ProductVariant
	color, size, fabric string
	neckType, fit       *string
}

func newVariantScan(v *entity.ProductVariant) *variantScan {
	return &variantScan{v: v}
}

func (s *variantScan) dest() []any {
	return []any{&s.v.ID, &s.v.ProductID, &s.v.Stock, &s.color, &s.size, &s.fabric, &s.neckType, &s.fit}
}

func (s *variantScan) apply() error {
	var err error
	if s.v.Color, err = entity.Parse[entity.Color](s.color); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	if s.v.Size, err = entity.Parse[entity.Size](s.size); err != nil {
		return fmt.Errorf("size: %w", err)
	}
	if s.v.Fabric, err = entity.Parse[entity.Fabric](s.fabric); err != nil {
		return fmt.Errorf("fabric: %w", err)
	}
	if s.v.NeckType, err = parseNullable[entity.NeckType](s.neckType); err != nil {
		return fmt.Errorf("neck type: %w", err)
	}
	if s.v.Fit, err = parseNullable[entity.Fit](s.fit); err != nil {
		return fmt.Errorf("fit: %w", err)
	}
	return nil
}
