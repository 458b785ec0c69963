// Package catalog agrupa las variantes físicas de los productos en las tarjetas que ve el comprador:
// una entrada por producto y combinación de características fijas (tela, cuello, calce).
package catalog

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// Entry es una entrada derivada del catálogo. No se persiste ni se cachea.
type Entry struct {
	ProductID       int64
	Name            string
	Price           decimal.Decimal
	Type            entity.ProductType
	Fabric          entity.Fabric
	NeckType        *entity.NeckType
	Fit             *entity.Fit
	AvailableColors []entity.Color
	AvailableSizes  []entity.Size
	TotalStock      int
}

// key identifica una partición. El valor vacío de NeckType/Fit representa "ausente" y
// no coincide con ningún valor válido.
type key struct {
	productID int64
	fabric    entity.Fabric
	neckType  entity.NeckType
	fit       entity.Fit
}

type group struct {
	entry  Entry
	colors map[entity.Color]struct{}
	sizes  map[entity.Size]struct{}
}

// Aggregate particiona las filas por (ProductID, Fabric, NeckType, Fit) y emite una entrada por partición.
//
// Precondición: nombre, precio y tipo son idénticos en todas las filas de un mismo producto
// (el modelo de datos lo garantiza porque se copian del producto padre). Aggregate no la valida;
// toma los valores de la primera fila de cada partición. Divergent permite comprobarla.
//
// Las entradas salen en el orden en que aparece cada partición; colores y talles conservan el
// orden de primera aparición, sin duplicados.
func Aggregate(rows []entity.CatalogRow) []Entry {
	groups := make(map[key]*group, len(rows))
	order := make([]key, 0)

	for i := range rows {
		r := &rows[i]
		v := &r.Variant
		k := key{
			productID: v.ProductID,
			fabric:    v.Fabric,
			neckType:  v.NeckTypeOrEmpty(),
			fit:       v.FitOrEmpty(),
		}
		g, ok := groups[k]
		if !ok {
			g = &group{
				entry: Entry{
					ProductID:       v.ProductID,
					Name:            r.ProductName,
					Price:           r.Price,
					Type:            r.Type,
					Fabric:          v.Fabric,
					NeckType:        optional(k.neckType),
					Fit:             optional(k.fit),
					AvailableColors: make([]entity.Color, 0, 4),
					AvailableSizes:  make([]entity.Size, 0, 4),
				},
				colors: make(map[entity.Color]struct{}),
				sizes:  make(map[entity.Size]struct{}),
			}
			groups[k] = g
			order = append(order, k)
		}
		if _, seen := g.colors[v.Color]; !seen {
			g.colors[v.Color] = struct{}{}
			g.entry.AvailableColors = append(g.entry.AvailableColors, v.Color)
		}
		if _, seen := g.sizes[v.Size]; !seen {
			g.sizes[v.Size] = struct{}{}
			g.entry.AvailableSizes = append(g.entry.AvailableSizes, v.Size)
		}
		g.entry.TotalStock += v.Stock
	}

	out := make([]Entry, 0, len(order))
	for _, k := range order {
		out = append(out, groups[k].entry)
	}
	return out
}

// Divergent devuelve, en orden ascendente, los ids de producto cuyas filas no coinciden en
// nombre, precio o tipo. Una lista vacía significa que la precondición de Aggregate se cumple.
func Divergent(rows []entity.CatalogRow) []int64 {
	first := make(map[int64]*entity.CatalogRow, len(rows))
	bad := make(map[int64]struct{})
	for i := range rows {
		r := &rows[i]
		id := r.Variant.ProductID
		f, ok := first[id]
		if !ok {
			first[id] = r
			continue
		}
		if f.ProductName != r.ProductName || !f.Price.Equal(r.Price) || f.Type != r.Type {
			bad[id] = struct{}{}
		}
	}
	ids := make([]int64, 0, len(bad))
	for id := range bad {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Sort impone un orden determinista para presentación: ProductID, Fabric, NeckType, Fit.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := &entries[i], &entries[j]
		if a.ProductID != b.ProductID {
			return a.ProductID < b.ProductID
		}
		if a.Fabric != b.Fabric {
			return a.Fabric < b.Fabric
		}
		an, bn := deref(a.NeckType), deref(b.NeckType)
		if an != bn {
			return an < bn
		}
		return deref(a.Fit) < deref(b.Fit)
	})
}

func optional[T ~string](v T) *T {
	if v == "" {
		return nil
	}
	return &v
}

func deref[T ~string](p *T) T {
	if p == nil {
		return ""
	}
	return *p
}
