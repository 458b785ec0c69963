package dto

import "time"

// AuditLogResponse salida de un registro de auditoría.
type AuditLogResponse struct {
	ID        string    `json:"id"`
	ProductID int64     `json:"product_id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
