package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/dto"
	"github.com/gemura/gemura-backend/internal/platform/cache"
)

type NotificationServiceTestSuite struct {
	suite.Suite
	mockNotificationRepo *MockNotificationRepository
	service              *services.NotificationService
	userID               string
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.mockNotificationRepo = new(MockNotificationRepository)
	// Disabled cache: every counter read falls through to the repository.
	suite.service = services.NewNotificationService(suite.mockNotificationRepo, cache.Disabled())
	suite.userID = uuid.NewString()
}

func (suite *NotificationServiceTestSuite) TestCreateNotification_StartsUnread() {
	ctx := context.Background()
	req := dto.CreateNotificationRequest{
		UserID:  suite.userID,
		Title:   "Payroll ready",
		Message: "Your March payslip has been generated",
		Type:    domain.NotificationInfo,
	}

	suite.mockNotificationRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Once()

	n, err := suite.service.CreateNotification(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.NotificationUnread, n.Status)
	suite.Nil(n.ReadAt)
}

func (suite *NotificationServiceTestSuite) TestMarkRead_FirstTransitionStampsReadAt() {
	ctx := context.Background()
	n := &domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         suite.userID,
		Status:         domain.NotificationUnread,
	}

	suite.mockNotificationRepo.On("FindNotificationByID", ctx, n.NotificationID).Return(n, nil).Once()
	suite.mockNotificationRepo.On("MarkRead", ctx, n.NotificationID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	read, err := suite.service.MarkRead(ctx, suite.userID, n.NotificationID)

	suite.Require().NoError(err)
	suite.Equal(domain.NotificationRead, read.Status)
	suite.Require().NotNil(read.ReadAt)
}

func (suite *NotificationServiceTestSuite) TestMarkRead_AlreadyReadIsNoOp() {
	ctx := context.Background()
	readAt := time.Now().UTC().Add(-time.Hour)
	n := &domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         suite.userID,
		Status:         domain.NotificationRead,
		ReadAt:         &readAt,
	}

	suite.mockNotificationRepo.On("FindNotificationByID", ctx, n.NotificationID).Return(n, nil).Once()

	read, err := suite.service.MarkRead(ctx, suite.userID, n.NotificationID)

	suite.Require().NoError(err)
	suite.Equal(&readAt, read.ReadAt)
	suite.mockNotificationRepo.AssertNotCalled(suite.T(), "MarkRead", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestMarkRead_OtherUsersNotificationHidden() {
	ctx := context.Background()
	n := &domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         uuid.NewString(),
		Status:         domain.NotificationUnread,
	}

	suite.mockNotificationRepo.On("FindNotificationByID", ctx, n.NotificationID).Return(n, nil).Once()

	_, err := suite.service.MarkRead(ctx, suite.userID, n.NotificationID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockNotificationRepo.AssertNotCalled(suite.T(), "MarkRead", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestListNotifications_NilBecomesEmpty() {
	ctx := context.Background()

	suite.mockNotificationRepo.On("ListNotifications", ctx, suite.userID, false, 20, 0).Return([]domain.Notification(nil), nil).Once()

	notifications, err := suite.service.ListNotifications(ctx, suite.userID, dto.ListNotificationsParams{})

	suite.Require().NoError(err)
	suite.NotNil(notifications)
	suite.Len(notifications, 0)
}

func (suite *NotificationServiceTestSuite) TestCountUnread_FallsBackToRepository() {
	ctx := context.Background()

	suite.mockNotificationRepo.On("CountUnread", ctx, suite.userID).Return(7, nil).Once()

	count, err := suite.service.CountUnread(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(7, count)
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
