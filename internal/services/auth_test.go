package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"os-system/internal/dto"
	"os-system/internal/entities"
	"os-system/pkg/constants"
	apperrors "os-system/pkg/errors"
	"os-system/pkg/service"
)

func newAuthFixture() (AuthServiceInterface, *fakeUserRepo, *fakeCacheRepo) {
	userRepo := &fakeUserRepo{}
	cacheRepo := newFakeCacheRepo()
	jwtSvc := service.NewJWTService("segredo-de-teste", time.Hour, time.Hour*24, zap.NewNop())
	return NewAuthService(userRepo, cacheRepo, jwtSvc, zap.NewNop()), userRepo, cacheRepo
}

func TestSignupRejectsInvalidRole(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Signup(context.Background(), dto.SignupDTO{
		Email: "ana@exemplo.com", Password: "senha123", Name: "Ana", Role: "gerente",
	})

	var invalidInput *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalidInput)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	payload := dto.SignupDTO{Email: "ana@exemplo.com", Password: "senha123", Name: "Ana", Role: constants.RoleClient}

	_, err := svc.Signup(context.Background(), payload)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), payload)
	var invalidInput *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalidInput)
}

func TestSignupTechnicianInvalidatesRosterCache(t *testing.T) {
	svc, _, cacheRepo := newAuthFixture()

	_, err := svc.Signup(context.Background(), dto.SignupDTO{
		Email: "carlos@exemplo.com", Password: "senha123", Name: "Carlos", Role: constants.RoleTechnician,
	})
	require.NoError(t, err)
	assert.Contains(t, cacheRepo.delCalls, technicianRosterCacheKey)
}

func TestSignupClientDoesNotTouchRosterCache(t *testing.T) {
	svc, _, cacheRepo := newAuthFixture()

	_, err := svc.Signup(context.Background(), dto.SignupDTO{
		Email: "ana@exemplo.com", Password: "senha123", Name: "Ana", Role: constants.RoleClient,
	})
	require.NoError(t, err)
	assert.Empty(t, cacheRepo.delCalls)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _, _ := newAuthFixture()
	_, err := svc.Signup(context.Background(), dto.SignupDTO{
		Email: "ana@exemplo.com", Password: "senha123", Name: "Ana", Role: constants.RoleClient,
	})
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), dto.LoginDTO{Email: "ana@exemplo.com", Password: "senha123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()
	_, err := svc.Signup(context.Background(), dto.SignupDTO{
		Email: "ana@exemplo.com", Password: "senha123", Name: "Ana", Role: constants.RoleClient,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginDTO{Email: "ana@exemplo.com", Password: "errada"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "ninguem@exemplo.com", Password: "senha123"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _, _ := newAuthFixture()
	_, err := svc.Signup(context.Background(), dto.SignupDTO{
		Email: "ana@exemplo.com", Password: "senha123", Name: "Ana", Role: constants.RoleClient,
	})
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), dto.LoginDTO{Email: "ana@exemplo.com", Password: "senha123"})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), tokens.AccessToken)
	require.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)

	renewed, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
}

func TestProfileFillsSentinels(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()
	_, err := svc.Signup(context.Background(), dto.SignupDTO{
		Email: "ana@exemplo.com", Password: "senha123", Name: "Ana", Role: constants.RoleClient,
	})
	require.NoError(t, err)
	userID := userRepo.users[0].ID

	profile, err := svc.Profile(authCtx(userID, constants.RoleClient, "Ana"))
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.Name)
	assert.Equal(t, "ana@exemplo.com", profile.Email)

	// Usuário sem nome nem email cai nas sentinelas de exibição.
	userRepo.users = append(userRepo.users, entities.User{ID: "u-sem-nada", Role: constants.RoleTechnician})
	profile, err = svc.Profile(authCtx("u-sem-nada", constants.RoleTechnician, ""))
	require.NoError(t, err)
	assert.Equal(t, constants.UnknownName, profile.Name)
	assert.Equal(t, constants.UnknownEmail, profile.Email)
}
