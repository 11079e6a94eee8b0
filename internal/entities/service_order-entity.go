package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// ServiceOrder - linha da tabela service_orders, no vocabulário do banco.
type ServiceOrder struct {
	ID                   string      `db:"id"`
	OrderNumber          null.Int64  `db:"order_number"`
	ClientID             string      `db:"client_id"`
	Description          string      `db:"description"`
	Status               string      `db:"status"`
	AssignedTechnicianID null.String `db:"assigned_technician_id"`
	CreatedBy            string      `db:"created_by"`
	CreatedAt            time.Time   `db:"created_at"`
}
