package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo auditoría de productos sobre PostgreSQL. Sin FK hacia products: el rastro sobrevive al borrado.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Acepta pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Append inserta un registro. Si no trae ID se genera un UUID.
func (r *AuditRepo) Append(ctx context.Context, log *entity.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audit_logs (id, product_id, action, actor, detail)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query, log.ID, log.ProductID, log.Action, log.Actor, log.Detail).Scan(&log.CreatedAt)
	if err != nil {
		return wrapWriteError("insert audit log", err)
	}
	return nil
}

// ListByProduct lista la auditoría de un producto, la más reciente primero.
func (r *AuditRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, product_id, action, actor, detail, created_at
		FROM audit_logs WHERE product_id = $1
		ORDER BY created_at DESC, seq DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AuditLog, 0)
	for rows.Next() {
		var l entity.AuditLog
		var id uuid.UUID
		if err := rows.Scan(&id, &l.ProductID, &l.Action, &l.Actor, &l.Detail, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		l.ID = id.String()
		list = append(list, &l)
	}
	return list, rows.Err()
}
