package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type User struct {
	ID           string      `db:"id"`
	Name         null.String `db:"name"`
	Email        null.String `db:"email"`
	Role         string      `db:"role"`
	PasswordHash string      `db:"password_hash"`
	CreatedAt    time.Time   `db:"created_at"`
}
