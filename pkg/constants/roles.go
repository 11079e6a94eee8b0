package constants

// Papéis de usuário (coluna role em users).
const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
	RoleClient     = "client"
)

func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleTechnician || role == RoleClient
}
