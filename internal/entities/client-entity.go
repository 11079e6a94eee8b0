package entities

import "time"

// Client - cliente escopado por usuário criador: dois usuários podem ter
// clientes homônimos sem colisão.
type Client struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
}
