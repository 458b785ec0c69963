package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto, opcionalmente con sus variantes.
type CreateProductRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Price       decimal.Decimal        `json:"price"`
	Type        entity.ProductType     `json:"type"`
	Variants    []CreateVariantRequest `json:"variants"`
}

// UpdateProductRequest reemplazo completo de un producto (no es un parche parcial).
type UpdateProductRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       decimal.Decimal    `json:"price"`
	Type        entity.ProductType `json:"type"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       decimal.Decimal    `json:"price"`
	Type        entity.ProductType `json:"type"`
	Variants    []VariantResponse  `json:"variants,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
