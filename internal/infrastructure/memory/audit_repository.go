package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación en memoria de AuditRepository.
type AuditRepo struct {
	a access
}

// Append agrega un registro de auditoría.
func (r *AuditRepo) Append(ctx context.Context, log *entity.AuditLog) error {
	return r.a.write(ctx, func(st *state) error {
		if log.ID == "" {
			log.ID = uuid.New().String()
		}
		if log.CreatedAt.IsZero() {
			log.CreatedAt = r.a.db.now()
		}
		st.audit = append(st.audit, *log)
		return nil
	})
}

// ListByProduct devuelve la auditoría de un producto, la más reciente primero.
func (r *AuditRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.AuditLog, error) {
	var list []*entity.AuditLog
	err := r.a.read(ctx, func(st *state) error {
		list = make([]*entity.AuditLog, 0)
		for i := len(st.audit) - 1; i >= 0; i-- {
			if st.audit[i].ProductID == productID {
				l := st.audit[i]
				list = append(list, &l)
			}
		}
		return nil
	})
	return list, err
}
