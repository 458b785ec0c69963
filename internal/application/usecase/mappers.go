package usecase

import (
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain/catalog"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

func toProductResponse(p *entity.Product, variants []*entity.ProductVariant) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Type:        p.Type,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if len(variants) > 0 {
		out.Variants = toVariantResponses(variants)
	}
	return out
}

func toVariantResponse(v *entity.ProductVariant) dto.VariantResponse {
	return dto.VariantResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		Color:     v.Color,
		Size:      v.Size,
		Fabric:    v.Fabric,
		NeckType:  v.NeckType,
		Fit:       v.Fit,
		Stock:     v.Stock,
	}
}

func toVariantResponses(list []*entity.ProductVariant) []dto.VariantResponse {
	out := make([]dto.VariantResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toVariantResponse(v))
	}
	return out
}

func toCatalogEntryResponse(e catalog.Entry) dto.CatalogEntryResponse {
	return dto.CatalogEntryResponse{
		ProductID:       e.ProductID,
		Name:            e.Name,
		Price:           e.Price,
		Type:            e.Type,
		Fabric:          e.Fabric,
		NeckType:        e.NeckType,
		Fit:             e.Fit,
		AvailableColors: e.AvailableColors,
		AvailableSizes:  e.AvailableSizes,
		TotalStock:      e.TotalStock,
	}
}

func toAuditLogResponse(l *entity.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:        l.ID,
		ProductID: l.ProductID,
		Action:    l.Action,
		Actor:     l.Actor,
		Detail:    l.Detail,
		CreatedAt: l.CreatedAt,
	}
}
