package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pontocerto/ponto_backend/internal/apperrors"
	"github.com/pontocerto/ponto_backend/internal/core/domain"
	portssvc "github.com/pontocerto/ponto_backend/internal/core/ports/services"
	"github.com/pontocerto/ponto_backend/internal/core/services"
)

type ClosingServiceTestSuite struct {
	suite.Suite
	mockClosingRepo    *MockClosingRepository
	mockAdjustmentRepo *MockAdjustmentRepository
	mockUserRepo       *MockUserRepository
	mockAudit          *MockAuditSvc
	service            portssvc.ClosingSvcFacade
	ctx                context.Context
	now                time.Time
}

func (suite *ClosingServiceTestSuite) SetupTest() {
	suite.mockClosingRepo = new(MockClosingRepository)
	suite.mockAdjustmentRepo = new(MockAdjustmentRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAudit = new(MockAuditSvc)
	suite.ctx = context.Background()
	suite.now = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewClosingService(
		suite.mockClosingRepo,
		suite.mockAdjustmentRepo,
		suite.mockUserRepo,
		suite.mockAudit,
		fixedClock{now: suite.now},
		time.UTC,
	)
}

func (suite *ClosingServiceTestSuite) admin() *domain.User {
	return &domain.User{UserID: "admin-1", Username: "root", Role: domain.RoleAdmin, IsActive: true}
}

func (suite *ClosingServiceTestSuite) TestCloseMonth_Success() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "admin-1").Return(suite.admin(), nil).Once()
	suite.mockClosingRepo.On("FindClosingPeriod", suite.ctx, 2026, 3).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAdjustmentRepo.On("CountPendingInRange", suite.ctx,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(0, nil).Once()
	suite.mockClosingRepo.On("SaveClosingPeriod", suite.ctx, mock.MatchedBy(func(p domain.ClosingPeriod) bool {
		return p.Year == 2026 && p.Month == 3 && p.ClosedBy == "admin-1" && p.ClosedAt.Equal(suite.now)
	})).Return(nil).Once()
	suite.mockAudit.On("Log", suite.ctx, "period.closed", "admin-1", mock.Anything, mock.Anything, mock.Anything).Once()

	period, err := suite.service.CloseMonth(suite.ctx, 2026, 3, "payroll run", "admin-1")

	suite.Require().NoError(err)
	suite.Equal(2026, period.Year)
	suite.Equal(3, period.Month)
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestCloseMonth_AlreadyClosed() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "admin-1").Return(suite.admin(), nil).Once()
	suite.mockClosingRepo.On("FindClosingPeriod", suite.ctx, 2026, 3).
		Return(&domain.ClosingPeriod{ClosingID: "c1", Year: 2026, Month: 3}, nil).Once()

	_, err := suite.service.CloseMonth(suite.ctx, 2026, 3, "", "admin-1")

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockClosingRepo.AssertNotCalled(suite.T(), "SaveClosingPeriod", mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestCloseMonth_PendingAdjustmentsBlock() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "admin-1").Return(suite.admin(), nil).Once()
	suite.mockClosingRepo.On("FindClosingPeriod", suite.ctx, 2026, 3).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAdjustmentRepo.On("CountPendingInRange", suite.ctx,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(3, nil).Once()

	_, err := suite.service.CloseMonth(suite.ctx, 2026, 3, "", "admin-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorContains(err, "3 pending")
}

func (suite *ClosingServiceTestSuite) TestCloseMonth_RequiresAdmin() {
	manager := &domain.User{UserID: "mgr-1", Role: domain.RoleManager, IsActive: true}
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "mgr-1").Return(manager, nil).Once()

	_, err := suite.service.CloseMonth(suite.ctx, 2026, 3, "", "mgr-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ClosingServiceTestSuite) TestCloseMonth_InvalidMonth() {
	_, err := suite.service.CloseMonth(suite.ctx, 2026, 13, "", "admin-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ClosingServiceTestSuite) TestReopenMonth_Success() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "admin-1").Return(suite.admin(), nil).Once()
	suite.mockClosingRepo.On("FindClosingPeriod", suite.ctx, 2026, 3).
		Return(&domain.ClosingPeriod{ClosingID: "c1", Year: 2026, Month: 3}, nil).Once()
	suite.mockClosingRepo.On("DeleteClosingPeriod", suite.ctx, 2026, 3).Return(nil).Once()
	suite.mockAudit.On("Log", suite.ctx, "period.reopened", "admin-1", "c1", mock.Anything, mock.Anything).Once()

	err := suite.service.ReopenMonth(suite.ctx, 2026, 3, "admin-1")

	suite.Require().NoError(err)
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestReopenMonth_NotClosed() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "admin-1").Return(suite.admin(), nil).Once()
	suite.mockClosingRepo.On("FindClosingPeriod", suite.ctx, 2026, 3).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ReopenMonth(suite.ctx, 2026, 3, "admin-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockClosingRepo.AssertNotCalled(suite.T(), "DeleteClosingPeriod", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestIsDateClosed() {
	suite.mockClosingRepo.On("FindClosingPeriod", suite.ctx, 2026, 3).
		Return(&domain.ClosingPeriod{ClosingID: "c1", Year: 2026, Month: 3}, nil).Once()
	suite.mockClosingRepo.On("FindClosingPeriod", suite.ctx, 2026, 4).Return(nil, apperrors.ErrNotFound).Once()

	closed, err := suite.service.IsDateClosed(suite.ctx, time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.True(closed)

	closed, err = suite.service.IsDateClosed(suite.ctx, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.False(closed)
}

func TestClosingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClosingServiceTestSuite))
}
