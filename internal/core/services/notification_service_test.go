package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
	portssvc "github.com/pontocerto/ponto_backend/internal/core/ports/services"
	"github.com/pontocerto/ponto_backend/internal/core/services"
)

type NotificationServiceTestSuite struct {
	suite.Suite
	mockAlertRepo *MockAlertRepository
	mockPublisher *MockAlertPublisher
	service       portssvc.NotificationSvcFacade
	ctx           context.Context
	now           time.Time
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.mockAlertRepo = new(MockAlertRepository)
	suite.mockPublisher = new(MockAlertPublisher)
	suite.ctx = context.Background()
	suite.now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewNotificationService(
		suite.mockAlertRepo,
		suite.mockPublisher,
		fixedClock{now: suite.now},
	)
}

func (suite *NotificationServiceTestSuite) TestCreateAlert_SavesAndPublishes() {
	suite.mockAlertRepo.On("SaveAlert", suite.ctx, mock.MatchedBy(func(a domain.Alert) bool {
		return a.UserID == "user-1" &&
			a.Type == "adjustment_approved" &&
			a.Severity == domain.SeverityInfo &&
			a.AlertID != "" &&
			a.CreatedAt.Equal(suite.now)
	})).Return(nil).Once()
	suite.mockPublisher.On("Publish", mock.MatchedBy(func(a domain.Alert) bool {
		return a.UserID == "user-1"
	})).Once()

	suite.service.CreateAlert(suite.ctx, "user-1", "adjustment_approved", domain.SeverityInfo,
		"Adjustment approved", "Your entrada adjustment for 2026-03-10 was approved.")

	suite.mockAlertRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestCreateAlert_SaveFailureSkipsPublish() {
	suite.mockAlertRepo.On("SaveAlert", suite.ctx, mock.AnythingOfType("domain.Alert")).
		Return(context.DeadlineExceeded).Once()

	suite.service.CreateAlert(suite.ctx, "user-1", "adjustment_rejected", domain.SeverityWarning,
		"Adjustment rejected", "no evidence")

	suite.mockPublisher.AssertNotCalled(suite.T(), "Publish", mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestListAlerts_DefaultLimit() {
	suite.mockAlertRepo.On("FindAlertsByUser", suite.ctx, "user-1", 50).
		Return([]domain.Alert{{AlertID: "a1", UserID: "user-1"}}, nil).Once()

	alerts, err := suite.service.ListAlerts(suite.ctx, "user-1", 0)

	suite.Require().NoError(err)
	suite.Len(alerts, 1)
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
