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

type HolidayServiceTestSuite struct {
	suite.Suite
	mockHolidayRepo *MockHolidayRepository
	mockUserRepo    *MockUserRepository
	mockAudit       *MockAuditSvc
	service         portssvc.HolidaySvcFacade
	ctx             context.Context
}

func (suite *HolidayServiceTestSuite) SetupTest() {
	suite.mockHolidayRepo = new(MockHolidayRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAudit = new(MockAuditSvc)
	suite.ctx = context.Background()
	suite.service = services.NewHolidayService(
		suite.mockHolidayRepo,
		suite.mockUserRepo,
		suite.mockAudit,
		fixedClock{now: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)},
		time.UTC,
	)
}

func (suite *HolidayServiceTestSuite) TestCreateHoliday_TruncatesToDate() {
	admin := &domain.User{UserID: "admin-1", Role: domain.RoleAdmin, IsActive: true}
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "admin-1").Return(admin, nil).Once()
	suite.mockHolidayRepo.On("SaveHoliday", suite.ctx, mock.MatchedBy(func(h domain.Holiday) bool {
		return h.Name == "Tiradentes" &&
			h.HolidayDate.Equal(time.Date(2026, 4, 21, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()
	suite.mockAudit.On("Log", suite.ctx, "holiday.created", "admin-1", mock.Anything, mock.Anything, mock.Anything).Once()

	holiday, err := suite.service.CreateHoliday(suite.ctx,
		time.Date(2026, 4, 21, 15, 30, 0, 0, time.UTC), "Tiradentes", "admin-1")

	suite.Require().NoError(err)
	suite.Equal("Tiradentes", holiday.Name)
	suite.mockHolidayRepo.AssertExpectations(suite.T())
}

func (suite *HolidayServiceTestSuite) TestCreateHoliday_DuplicateDate() {
	admin := &domain.User{UserID: "admin-1", Role: domain.RoleAdmin, IsActive: true}
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "admin-1").Return(admin, nil).Once()
	suite.mockHolidayRepo.On("SaveHoliday", suite.ctx, mock.AnythingOfType("domain.Holiday")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateHoliday(suite.ctx,
		time.Date(2026, 4, 21, 0, 0, 0, 0, time.UTC), "Tiradentes", "admin-1")

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *HolidayServiceTestSuite) TestCreateHoliday_NameRequired() {
	_, err := suite.service.CreateHoliday(suite.ctx,
		time.Date(2026, 4, 21, 0, 0, 0, 0, time.UTC), "", "admin-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *HolidayServiceTestSuite) TestCreateHoliday_RequiresAdmin() {
	employee := &domain.User{UserID: "emp-1", Role: domain.RoleEmployee, IsActive: true}
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "emp-1").Return(employee, nil).Once()

	_, err := suite.service.CreateHoliday(suite.ctx,
		time.Date(2026, 4, 21, 0, 0, 0, 0, time.UTC), "Tiradentes", "emp-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *HolidayServiceTestSuite) TestListHolidays_InvalidRange() {
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err := suite.service.ListHolidays(suite.ctx, from, from)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestHolidayServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HolidayServiceTestSuite))
}
