package utils

import (
	"context"

	"os-system/internal/dto"
	"os-system/pkg/contextkeys"
	apperrors "os-system/pkg/errors"
)

// IdentityFromCtx extrai a identidade autenticada colocada no contexto pelo
// middleware de autenticação.
func IdentityFromCtx(ctx context.Context) (*dto.Identity, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(string)
	if !ok || id == "" {
		return nil, apperrors.ErrUnauthorized
	}

	role, _ := ctx.Value(contextkeys.UserRoleKey).(string)
	name, _ := ctx.Value(contextkeys.UserNameKey).(string)

	return &dto.Identity{ID: id, Role: role, Name: name}, nil
}
