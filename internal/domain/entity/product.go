package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo vendible a nivel catálogo. Sus unidades físicas de venta
// son las ProductVariant que lo referencian por ProductID.
type Product struct {
	ID          int64 // generado al insertar, inmutable
	Name        string
	Description string
	Price       decimal.Decimal // >= 0
	Type        ProductType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
