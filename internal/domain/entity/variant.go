package entity

import "github.com/shopspring/decimal"

// ProductVariant es una unidad de stock (SKU) de un Product: color × talle × tela,
// más cuello y calce opcionales. Nunca se comparte entre productos.
type ProductVariant struct {
	ID        int64
	ProductID int64 // no nulo, inmutable después de crear
	Stock     int   // >= 0
	Color     Color
	Size      Size
	Fabric    Fabric
	NeckType  *NeckType
	Fit       *Fit
}

// NeckTypeOrEmpty devuelve el cuello o "" si no aplica.
func (v *ProductVariant) NeckTypeOrEmpty() NeckType {
	if v.NeckType == nil {
		return ""
	}
	return *v.NeckType
}

// FitOrEmpty devuelve el calce o "" si no aplica.
func (v *ProductVariant) FitOrEmpty() Fit {
	if v.Fit == nil {
		return ""
	}
	return *v.Fit
}

// CatalogRow es una fila del escaneo completo de variantes ya resuelta contra su producto padre.
type CatalogRow struct {
	Variant     ProductVariant
	ProductName string
	Price       decimal.Decimal
	Type        ProductType
}
