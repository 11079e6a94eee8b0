package services

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"os-system/internal/entities"
	"os-system/pkg/constants"
	apperrors "os-system/pkg/errors"
)

func newReportFixture() (ReportServiceInterface, *orderServiceFixture) {
	f := &orderServiceFixture{
		orderRepo:  newFakeOrderRepo(),
		clientRepo: &fakeClientRepo{},
		userRepo:   &fakeUserRepo{},
	}
	return NewReportService(f.orderRepo, f.clientRepo, f.userRepo, zap.NewNop()), f
}

func TestStatusSummaryIncludesZeroCounts(t *testing.T) {
	svc, f := newReportFixture()
	f.orderRepo.seed(entities.ServiceOrder{ID: "o1", Status: constants.StatusOpen, CreatedBy: "admin-1"})
	f.orderRepo.seed(entities.ServiceOrder{ID: "o2", Status: constants.StatusOpen, CreatedBy: "admin-1"})
	f.orderRepo.seed(entities.ServiceOrder{ID: "o3", Status: constants.StatusCompleted, CreatedBy: "admin-1"})

	summary, err := svc.StatusSummary(authCtx("admin-1", constants.RoleAdmin, "Admin"))
	require.NoError(t, err)
	require.Len(t, summary, len(constants.AllStatusCodes()))

	counts := make(map[string]int64)
	for _, item := range summary {
		counts[item.Status] = item.Count
	}
	assert.Equal(t, int64(2), counts[constants.LabelOpen])
	assert.Equal(t, int64(1), counts[constants.LabelCompleted])
	assert.Equal(t, int64(0), counts[constants.LabelOnTheWay])
	assert.Equal(t, int64(0), counts[constants.LabelCancelled])
}

func TestStatusSummaryScopedByVisibility(t *testing.T) {
	svc, f := newReportFixture()
	f.orderRepo.seed(entities.ServiceOrder{ID: "o1", Status: constants.StatusOpen, CreatedBy: "client-1"})
	f.orderRepo.seed(entities.ServiceOrder{ID: "o2", Status: constants.StatusOpen, CreatedBy: "client-2"})

	summary, err := svc.StatusSummary(authCtx("client-1", constants.RoleClient, "Ana"))
	require.NoError(t, err)

	var total int64
	for _, item := range summary {
		total += item.Count
	}
	assert.Equal(t, int64(1), total)
}

func TestExportOrdersAdminOnly(t *testing.T) {
	svc, _ := newReportFixture()

	_, err := svc.ExportOrders(authCtx("tech-1", constants.RoleTechnician, "Carlos"))
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestExportOrdersProducesWorkbook(t *testing.T) {
	svc, f := newReportFixture()
	f.seedClient("c1", "Padaria Central", "admin-1")
	f.seedTechnician("t1", "Carlos")
	f.orderRepo.seed(entities.ServiceOrder{
		ID:                   "o1",
		OrderNumber:          null.Int64From(42),
		ClientID:             "c1",
		Description:          "Forno quebrado",
		Status:               constants.StatusInProgress,
		AssignedTechnicianID: null.StringFrom("t1"),
		CreatedBy:            "admin-1",
		CreatedAt:            time.Now(),
	})

	buf, err := svc.ExportOrders(authCtx("admin-1", constants.RoleAdmin, "Admin"))
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	workbook, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer workbook.Close()

	const sheet = "Ordens de Serviço"
	header, err := workbook.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Número", header)

	clientCell, err := workbook.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Padaria Central", clientCell)

	statusCell, err := workbook.GetCellValue(sheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, constants.LabelInProgress, statusCell)
}
