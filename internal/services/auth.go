package services

import (
	"context"
	"errors"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"os-system/internal/dto"
	"os-system/internal/entities"
	"os-system/internal/repositories"
	"os-system/pkg/constants"
	apperrors "os-system/pkg/errors"
	"os-system/pkg/service"
	"os-system/pkg/utils"
)

type AuthServiceInterface interface {
	Signup(ctx context.Context, data dto.SignupDTO) (*dto.TokenPairDTO, error)
	Login(ctx context.Context, data dto.LoginDTO) (*dto.TokenPairDTO, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
	Profile(ctx context.Context) (*dto.ProfileDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (s *AuthService) Signup(ctx context.Context, data dto.SignupDTO) (*dto.TokenPairDTO, error) {
	if !constants.IsValidRole(data.Role) {
		return nil, apperrors.NewInvalidInputError("papel inválido: %q", data.Role)
	}

	if _, err := s.userRepo.FindByEmail(ctx, data.Email); err == nil {
		return nil, apperrors.NewInvalidInputError("Já existe uma conta com este email.")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(data.Password)
	if err != nil {
		s.logger.Error("falha ao gerar hash de senha", zap.Error(err))
		return nil, err
	}

	user := entities.User{
		Name:         null.StringFrom(data.Name),
		Email:        null.StringFrom(data.Email),
		Role:         data.Role,
		PasswordHash: hash,
	}
	if err := s.userRepo.CreateUser(ctx, &user); err != nil {
		s.logger.Error("falha ao criar usuário", zap.Error(err))
		return nil, err
	}

	// Um técnico novo invalida o roster em cache para aparecer na próxima listagem.
	if user.Role == constants.RoleTechnician {
		if err := s.cacheRepo.Del(ctx, technicianRosterCacheKey); err != nil {
			s.logger.Warn("falha ao invalidar o cache do roster de técnicos", zap.Error(err))
		}
	}

	s.logger.Info("usuário cadastrado", zap.String("userId", user.ID), zap.String("role", user.Role))
	return s.issueTokens(user)
}

func (s *AuthService) Login(ctx context.Context, data dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindByEmail(ctx, data.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.PasswordHash, data.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	s.logger.Info("login efetuado", zap.String("userId", user.ID))
	return s.issueTokens(*user)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}
	return s.issueTokens(*user)
}

func (s *AuthService) Profile(ctx context.Context) (*dto.ProfileDTO, error) {
	ident, err := utils.IdentityFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, ident.ID)
	if err != nil {
		return nil, err
	}

	profile := dto.ProfileDTO{
		ID:    user.ID,
		Name:  user.Name.String,
		Email: user.Email.String,
		Role:  user.Role,
	}
	if profile.Name == "" {
		profile.Name = constants.UnknownName
	}
	if profile.Email == "" {
		profile.Email = constants.UnknownEmail
	}
	return &profile, nil
}

func (s *AuthService) issueTokens(user entities.User) (*dto.TokenPairDTO, error) {
	access, refresh, err := s.jwtService.GenerateTokens(user.ID, user.Role, user.Name.String)
	if err != nil {
		s.logger.Error("falha ao gerar tokens", zap.Error(err), zap.String("userId", user.ID))
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}
