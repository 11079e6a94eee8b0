package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// ServiceOrderHistory - trilha de auditoria append-only de uma OS.
// Criada somente pelas operações de mutação; nunca atualizada nem removida.
type ServiceOrderHistory struct {
	ID             string      `db:"id"`
	ServiceOrderID string      `db:"service_order_id"`
	StatusFrom     string      `db:"status_from"`
	StatusTo       string      `db:"status_to"`
	ChangedBy      string      `db:"changed_by"`
	Notes          null.String `db:"notes"`
	CreatedAt      time.Time   `db:"created_at"`
}
