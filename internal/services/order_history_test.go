package services

import (
	"context"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"os-system/internal/entities"
	"os-system/pkg/constants"
	apperrors "os-system/pkg/errors"
)

func TestListHistoryTranslatesLabels(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	historyRepo := &fakeHistoryRepo{}
	svc := NewOrderHistoryService(historyRepo, orderRepo, zap.NewNop())

	orderRepo.seed(entities.ServiceOrder{ID: "o1", Status: constants.StatusInProgress})
	require.NoError(t, historyRepo.InsertHistoryEntry(context.Background(), &entities.ServiceOrderHistory{
		ServiceOrderID: "o1",
		StatusFrom:     constants.StatusOpen,
		StatusTo:       constants.StatusInProgress,
		ChangedBy:      "admin-1",
		Notes:          null.StringFrom("Status alterado de Pendente para Em Andamento"),
	}))

	timeline, err := svc.ListHistory(authCtx("admin-1", constants.RoleAdmin, "Admin"), "o1")
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Equal(t, constants.LabelOpen, timeline[0].StatusFrom)
	assert.Equal(t, constants.LabelInProgress, timeline[0].StatusTo)
	assert.Equal(t, "admin-1", timeline[0].ChangedBy)
}

func TestListHistoryRequiresSession(t *testing.T) {
	svc := NewOrderHistoryService(&fakeHistoryRepo{}, newFakeOrderRepo(), zap.NewNop())

	_, err := svc.ListHistory(context.Background(), "o1")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestListHistoryOrderNotFound(t *testing.T) {
	svc := NewOrderHistoryService(&fakeHistoryRepo{}, newFakeOrderRepo(), zap.NewNop())

	_, err := svc.ListHistory(authCtx("admin-1", constants.RoleAdmin, "Admin"), "inexistente")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListHistoryEmptyTimeline(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.seed(entities.ServiceOrder{ID: "o1", Status: constants.StatusOpen})
	svc := NewOrderHistoryService(&fakeHistoryRepo{}, orderRepo, zap.NewNop())

	timeline, err := svc.ListHistory(authCtx("admin-1", constants.RoleAdmin, "Admin"), "o1")
	require.NoError(t, err)
	assert.Empty(t, timeline)
}
