package dto

import "github.com/jhoicas/catalog-api/internal/domain/entity"

// CreateVariantRequest entrada para crear una variante (el producto viene de la ruta).
type CreateVariantRequest struct {
	Color    entity.Color     `json:"color"`
	Size     entity.Size      `json:"size"`
	Fabric   entity.Fabric    `json:"fabric"`
	NeckType *entity.NeckType `json:"neck_type"`
	Fit      *entity.Fit      `json:"fit"`
	Stock    int              `json:"stock"`
}

// UpdateVariantRequest reemplazo completo de una variante. El producto no se puede cambiar.
type UpdateVariantRequest = CreateVariantRequest

// VariantResponse salida de una variante.
type VariantResponse struct {
	ID        int64            `json:"id"`
	ProductID int64            `json:"product_id"`
	Color     entity.Color     `json:"color"`
	Size      entity.Size      `json:"size"`
	Fabric    entity.Fabric    `json:"fabric"`
	NeckType  *entity.NeckType `json:"neck_type"`
	Fit       *entity.Fit      `json:"fit"`
	Stock     int              `json:"stock"`
}
