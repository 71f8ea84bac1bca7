package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	portssvc "github.com/mauzoapp/mauzo_backend/internal/core/ports/services"
	"github.com/mauzoapp/mauzo_backend/internal/core/services"
)

// --- Mock SyncRepository ---
type MockSyncRepository struct {
	mock.Mock
}

func (m *MockSyncRepository) ListPendingSync(ctx context.Context, entityType domain.EntityType, limit int) ([]domain.SyncRecord, error) {
	args := m.Called(ctx, entityType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SyncRecord), args.Error(1)
}

func (m *MockSyncRepository) MarkSyncStatus(ctx context.Context, entityType domain.EntityType, recordID string, status domain.SyncStatus, syncedAt time.Time) error {
	args := m.Called(ctx, entityType, recordID, status, syncedAt)
	return args.Error(0)
}

// --- Test Suite ---
type SyncServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSyncRepository
	service  portssvc.SyncSvcFacade
}

func (suite *SyncServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSyncRepository)
	suite.service = services.NewSyncService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *SyncServiceTestSuite) TestListPending() {
	ctx := context.Background()
	records := []domain.SyncRecord{
		{EntityType: domain.EntitySale, RecordID: uuid.NewString()},
		{EntityType: domain.EntitySale, RecordID: uuid.NewString()},
	}
	suite.mockRepo.On("ListPendingSync", ctx, domain.EntitySale, 25).Return(records, nil).Once()

	got, err := suite.service.ListPending(ctx, domain.EntitySale, 25)

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestListPending_DefaultLimit() {
	ctx := context.Background()
	suite.mockRepo.On("ListPendingSync", ctx, domain.EntityProduct, 100).
		Return([]domain.SyncRecord{}, nil).Once()

	got, err := suite.service.ListPending(ctx, domain.EntityProduct, 0)

	suite.Require().NoError(err)
	suite.Empty(got)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestListPending_UnknownEntityType() {
	ctx := context.Background()

	got, err := suite.service.ListPending(ctx, domain.EntityType("warehouses"), 10)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListPendingSync")
}

func (suite *SyncServiceTestSuite) TestMarkSynced() {
	ctx := context.Background()
	recordID := uuid.NewString()
	syncedAt := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)

	suite.mockRepo.On("MarkSyncStatus", ctx, domain.EntityCustomer, recordID, domain.SyncSynced, syncedAt).
		Return(nil).Once()

	err := suite.service.MarkSynced(ctx, domain.EntityCustomer, recordID, syncedAt)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestMarkSynced_ZeroTimeDefaultsToNow() {
	ctx := context.Background()
	recordID := uuid.NewString()

	suite.mockRepo.On("MarkSyncStatus", ctx, domain.EntityCustomer, recordID, domain.SyncSynced,
		mock.MatchedBy(func(ts time.Time) bool {
			return !ts.IsZero() && time.Since(ts) < time.Minute
		})).Return(nil).Once()

	err := suite.service.MarkSynced(ctx, domain.EntityCustomer, recordID, time.Time{})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestMarkSynced_MissingRecordID() {
	ctx := context.Background()

	err := suite.service.MarkSynced(ctx, domain.EntitySale, "", time.Now())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkSyncStatus")
}

func (suite *SyncServiceTestSuite) TestMarkSynced_NotFound() {
	ctx := context.Background()
	recordID := uuid.NewString()
	syncedAt := time.Now().UTC()

	suite.mockRepo.On("MarkSyncStatus", ctx, domain.EntitySale, recordID, domain.SyncSynced, syncedAt).
		Return(apperrors.ErrNotFound).Once()

	err := suite.service.MarkSynced(ctx, domain.EntitySale, recordID, syncedAt)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}
