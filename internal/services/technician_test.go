package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"os-system/internal/dto"
	"os-system/pkg/constants"
)

type fakeCacheRepo struct {
	store    map[string]string
	getMiss  bool
	delCalls []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{store: make(map[string]string)}
}

func (f *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		f.store[key] = string(v)
	case string:
		f.store[key] = v
	}
	return nil
}

func (f *fakeCacheRepo) Get(_ context.Context, key string) (string, error) {
	if f.getMiss {
		return "", redis.Nil
	}
	value, ok := f.store[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeCacheRepo) Del(_ context.Context, keys ...string) error {
	f.delCalls = append(f.delCalls, keys...)
	for _, key := range keys {
		delete(f.store, key)
	}
	return nil
}

func TestListTechniciansCacheMissLoadsFromRepo(t *testing.T) {
	userRepo := &fakeUserRepo{}
	cacheRepo := newFakeCacheRepo()
	svc := NewTechnicianService(userRepo, cacheRepo, time.Minute, zap.NewNop())

	fixture := &orderServiceFixture{userRepo: userRepo}
	fixture.seedTechnician("t1", "Carlos")
	fixture.seedTechnician("t2", "")

	roster, err := svc.ListTechnicians(context.Background())
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "Carlos", roster[0].Name)
	assert.Equal(t, constants.UnknownName, roster[1].Name)
	assert.Equal(t, constants.UnknownEmail, roster[0].Email)

	// O resultado foi gravado no cache.
	cached, ok := cacheRepo.store[technicianRosterCacheKey]
	require.True(t, ok)
	var fromCache []dto.TechnicianDTO
	require.NoError(t, json.Unmarshal([]byte(cached), &fromCache))
	assert.Len(t, fromCache, 2)
}

func TestListTechniciansServedFromCache(t *testing.T) {
	userRepo := &fakeUserRepo{}
	cacheRepo := newFakeCacheRepo()
	svc := NewTechnicianService(userRepo, cacheRepo, time.Minute, zap.NewNop())

	cached, _ := json.Marshal([]dto.TechnicianDTO{{ID: "t9", Name: "Marta", Email: "marta@exemplo.com"}})
	cacheRepo.store[technicianRosterCacheKey] = string(cached)

	roster, err := svc.ListTechnicians(context.Background())
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Marta", roster[0].Name)
	// O banco não foi consultado.
	assert.Empty(t, userRepo.users)
}

func TestListTechniciansCorruptedCacheFallsBack(t *testing.T) {
	userRepo := &fakeUserRepo{}
	cacheRepo := newFakeCacheRepo()
	svc := NewTechnicianService(userRepo, cacheRepo, time.Minute, zap.NewNop())

	cacheRepo.store[technicianRosterCacheKey] = "{isso não é json válido"
	fixture := &orderServiceFixture{userRepo: userRepo}
	fixture.seedTechnician("t1", "Carlos")

	roster, err := svc.ListTechnicians(context.Background())
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Carlos", roster[0].Name)
}
