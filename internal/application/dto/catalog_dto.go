package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// CatalogEntryResponse tarjeta del catálogo: un producto con sus características fijas,
// los colores y talles disponibles y el stock total del grupo.
type CatalogEntryResponse struct {
	ProductID       int64              `json:"product_id"`
	Name            string             `json:"name"`
	Price           decimal.Decimal    `json:"price"`
	Type            entity.ProductType `json:"type"`
	Fabric          entity.Fabric      `json:"fabric"`
	NeckType        *entity.NeckType   `json:"neck_type"`
	Fit             *entity.Fit        `json:"fit"`
	AvailableColors []entity.Color     `json:"available_colors"`
	AvailableSizes  []entity.Size      `json:"available_sizes"`
	TotalStock      int                `json:"total_stock"`
}
