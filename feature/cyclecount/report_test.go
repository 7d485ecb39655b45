package cyclecount

import (
	"context"
	"errors"
	"io"
	"testing"

	"warehouse-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// completeCycle starts, counts, and finalizes a two-product cycle.
func completeCycle(t *testing.T, db *gorm.DB, svc *Service) uint {
	t.Helper()
	ctx := context.Background()

	seedProduct(t, db, 1, "SKU-1", 100)
	seedProduct(t, db, 2, "SKU-2", 50)

	cycleID, err := svc.StartCycle(ctx, 10)
	require.NoError(t, err)
	details := detailsOf(t, db, cycleID)
	require.NoError(t, svc.RecordCount(ctx, details[0].DetailID, 95, 20))
	require.NoError(t, svc.RecordCount(ctx, details[1].DetailID, 50, 20))
	require.NoError(t, svc.FinalizeCycle(ctx, cycleID, 30))
	return cycleID
}

func TestBuildReport(t *testing.T) {
	db, svc := setupEngine(t, "cc_report_build")
	cycleID := completeCycle(t, db, svc)

	report, err := svc.BuildReport(context.Background(), cycleID)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalProducts)
	assert.Equal(t, -5, report.TotalVariance)
	require.Len(t, report.Lines, 2)
	assert.Equal(t, "SKU-1", report.Lines[0].SKU)
	assert.Equal(t, -5, report.Lines[0].Variance)
	assert.Equal(t, 0, report.Lines[1].Variance)
	require.NotNil(t, report.FinalizedBy)
	assert.Equal(t, uint(30), *report.FinalizedBy)
}

func TestBuildReport_RejectsPendingCycle(t *testing.T) {
	db, svc := setupEngine(t, "cc_report_pending")
	ctx := context.Background()

	seedProduct(t, db, 1, "SKU-1", 100)
	cycleID, err := svc.StartCycle(ctx, 10)
	require.NoError(t, err)

	_, err = svc.BuildReport(ctx, cycleID)
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestExportReport(t *testing.T) {
	db, svc := setupEngine(t, "cc_report_export")
	cycleID := completeCycle(t, db, svc)

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "warehouse-reports").Return(true, nil)
	client.On("PutObject", mock.Anything, "warehouse-reports", mock.AnythingOfType("string"),
		mock.Anything, mock.AnythingOfType("int64"), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	svc.client = client

	objectName, err := svc.ExportReport(context.Background(), cycleID)
	require.NoError(t, err)
	assert.Contains(t, objectName, "cyclecounts/")
	assert.Contains(t, objectName, ".json")

	client.AssertExpectations(t)
}

func TestExportReport_CreatesMissingBucket(t *testing.T) {
	db, svc := setupEngine(t, "cc_report_bucket")
	cycleID := completeCycle(t, db, svc)

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "warehouse-reports").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "warehouse-reports", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "warehouse-reports", mock.AnythingOfType("string"),
		mock.Anything, mock.AnythingOfType("int64"), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	svc.client = client

	_, err := svc.ExportReport(context.Background(), cycleID)
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestExportReport_UploadFailure(t *testing.T) {
	db, svc := setupEngine(t, "cc_report_fail")
	cycleID := completeCycle(t, db, svc)

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "warehouse-reports").Return(true, nil)
	client.On("PutObject", mock.Anything, "warehouse-reports", mock.AnythingOfType("string"),
		mock.Anything, mock.AnythingOfType("int64"), mock.Anything).
		Return(minio.UploadInfo{}, io.ErrUnexpectedEOF)
	svc.client = client

	_, err := svc.ExportReport(context.Background(), cycleID)
	assert.Error(t, err)
}
