package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// AuditRepository define el puerto de persistencia para la auditoría de productos.
type AuditRepository interface {
	Append(ctx context.Context, log *entity.AuditLog) error
	ListByProduct(ctx context.Context, productID int64) ([]*entity.AuditLog, error)
}
