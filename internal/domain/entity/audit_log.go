package entity

import "time"

// Acciones registradas en la auditoría de productos.
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// AuditLog registro de auditoría escrito en la misma transacción que el cambio que describe.
type AuditLog struct {
	ID        string
	ProductID int64
	Action    string
	Actor     string
	Detail    string
	CreatedAt time.Time
}
