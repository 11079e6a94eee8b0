package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"os-system/internal/dto"
	"os-system/internal/repositories"
	"os-system/pkg/constants"
)

const technicianRosterCacheKey = "technicians:roster"

type TechnicianServiceInterface interface {
	ListTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error)
}

type TechnicianService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewTechnicianService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) TechnicianServiceInterface {
	return &TechnicianService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// ListTechnicians devolve o roster para os seletores de atribuição. O roster
// muda raramente, então fica em cache no Redis; falha de cache degrada para o
// banco, nunca derruba a operação.
func (s *TechnicianService) ListTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error) {
	if cached, err := s.cacheRepo.Get(ctx, technicianRosterCacheKey); err == nil {
		var roster []dto.TechnicianDTO
		if err := json.Unmarshal([]byte(cached), &roster); err == nil {
			return roster, nil
		}
		s.logger.Warn("cache do roster de técnicos corrompido, recarregando do banco")
	}

	technicians, err := s.userRepo.ListTechnicians(ctx)
	if err != nil {
		return nil, err
	}

	roster := make([]dto.TechnicianDTO, 0, len(technicians))
	for _, tech := range technicians {
		item := dto.TechnicianDTO{
			ID:    tech.ID,
			Name:  tech.Name.String,
			Email: tech.Email.String,
		}
		if item.Name == "" {
			item.Name = constants.UnknownName
		}
		if item.Email == "" {
			item.Email = constants.UnknownEmail
		}
		roster = append(roster, item)
	}

	if payload, err := json.Marshal(roster); err == nil {
		if err := s.cacheRepo.Set(ctx, technicianRosterCacheKey, payload, s.cacheTTL); err != nil {
			s.logger.Warn("falha ao gravar o roster de técnicos no cache", zap.Error(err))
		}
	}

	return roster, nil
}
