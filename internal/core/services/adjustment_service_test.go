package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pontocerto/ponto_backend/internal/apperrors"
	"github.com/pontocerto/ponto_backend/internal/core/domain"
	portssvc "github.com/pontocerto/ponto_backend/internal/core/ports/services"
	"github.com/pontocerto/ponto_backend/internal/core/services"
	"github.com/pontocerto/ponto_backend/internal/dto"
)

type AdjustmentServiceTestSuite struct {
	suite.Suite
	mockAdjustmentRepo *MockAdjustmentRepository
	mockPunchRepo      *MockPunchRepository
	mockUserRepo       *MockUserRepository
	mockSequence       *MockSequenceValidator
	mockClosing        *MockClosingSvc
	mockLedger         *MockLedgerSvc
	mockAudit          *MockAuditSvc
	mockNotification   *MockNotificationSvc
	service            portssvc.AdjustmentSvcFacade
	ctx                context.Context
	now                time.Time
	day                time.Time
}

func (suite *AdjustmentServiceTestSuite) SetupTest() {
	suite.mockAdjustmentRepo = new(MockAdjustmentRepository)
	suite.mockPunchRepo = new(MockPunchRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockSequence = new(MockSequenceValidator)
	suite.mockClosing = new(MockClosingSvc)
	suite.mockLedger = new(MockLedgerSvc)
	suite.mockAudit = new(MockAuditSvc)
	suite.mockNotification = new(MockNotificationSvc)
	suite.ctx = context.Background()
	suite.now = time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	suite.day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	suite.service = services.NewAdjustmentService(
		suite.mockAdjustmentRepo,
		suite.mockPunchRepo,
		suite.mockUserRepo,
		suite.mockSequence,
		suite.mockClosing,
		suite.mockLedger,
		suite.mockAudit,
		suite.mockNotification,
		fixedClock{now: suite.now},
		time.UTC,
	)
}

func (suite *AdjustmentServiceTestSuite) employee() *domain.User {
	return &domain.User{UserID: "emp-1", Username: "jdoe", Role: domain.RoleEmployee, IsActive: true}
}

func (suite *AdjustmentServiceTestSuite) manager() *domain.User {
	return &domain.User{UserID: "mgr-1", Username: "boss", Role: domain.RoleManager, IsActive: true}
}

func (suite *AdjustmentServiceTestSuite) expectSideEffects() {
	suite.mockAudit.On("Log", suite.ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Once()
	suite.mockNotification.On("CreateAlert", suite.ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Once()
}

func (suite *AdjustmentServiceTestSuite) pendingAddition() *domain.Adjustment {
	return &domain.Adjustment{
		AdjustmentID:      "adj-1",
		UserID:            "emp-1",
		ProposedTimestamp: suite.day.Add(8 * time.Hour),
		ProposedType:      domain.PunchEntrada,
		Reason:            "forgot to punch in",
		RequesterID:       "emp-1",
		Status:            domain.AdjustmentPending,
		IsAddition:        true,
	}
}

func (suite *AdjustmentServiceTestSuite) TestRequestAdjustment_AdditionSuccess() {
	proposed := suite.day.Add(8 * time.Hour)
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "emp-1").Return(suite.employee(), nil).Once()
	suite.mockClosing.On("IsDateClosed", suite.ctx, proposed).Return(false, nil).Once()
	suite.mockAdjustmentRepo.On("FindPendingByUserTypeAndRange", suite.ctx, "emp-1", domain.PunchEntrada,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return([]domain.Adjustment{}, nil).Once()
	suite.mockAdjustmentRepo.On("SaveAdjustment", suite.ctx, mock.MatchedBy(func(a domain.Adjustment) bool {
		return a.UserID == "emp-1" &&
			a.IsAddition &&
			a.Status == domain.AdjustmentPending &&
			a.TargetPunchID == nil &&
			a.ProposedTimestamp.Equal(proposed)
	})).Return(nil).Once()
	suite.expectSideEffects()

	adjustment, err := suite.service.RequestAdjustment(suite.ctx, dto.CreateAdjustmentRequest{
		ProposedTimestamp: proposed,
		ProposedType:      "entrada",
		Reason:            "forgot to punch in",
	}, "emp-1")

	suite.Require().NoError(err)
	suite.True(adjustment.IsAddition)
	suite.Equal(domain.AdjustmentPending, adjustment.Status)
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestRequestAdjustment_CorrectionCapturesOriginal() {
	proposed := suite.day.Add(8 * time.Hour)
	originalAt := suite.day.Add(9*time.Hour + 30*time.Minute)
	target := &domain.Punch{PunchID: "p1", UserID: "emp-1", Type: domain.PunchEntrada, PunchedAt: originalAt}

	suite.mockUserRepo.On("FindUserByID", suite.ctx, "emp-1").Return(suite.employee(), nil).Once()
	suite.mockClosing.On("IsDateClosed", suite.ctx, mock.AnythingOfType("time.Time")).Return(false, nil).Twice()
	suite.mockPunchRepo.On("FindPunchByID", suite.ctx, "p1").Return(target, nil).Once()
	suite.mockAdjustmentRepo.On("FindPendingByUserTypeAndRange", suite.ctx, "emp-1", domain.PunchEntrada,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return([]domain.Adjustment{}, nil).Once()
	suite.mockAdjustmentRepo.On("SaveAdjustment", suite.ctx, mock.MatchedBy(func(a domain.Adjustment) bool {
		return !a.IsAddition &&
			a.TargetPunchID != nil && *a.TargetPunchID == "p1" &&
			a.OriginalTimestamp != nil && a.OriginalTimestamp.Equal(originalAt) &&
			a.OriginalType != nil && *a.OriginalType == domain.PunchEntrada
	})).Return(nil).Once()
	suite.expectSideEffects()

	targetID := "p1"
	adjustment, err := suite.service.RequestAdjustment(suite.ctx, dto.CreateAdjustmentRequest{
		TargetPunchID:     &targetID,
		ProposedTimestamp: proposed,
		ProposedType:      "entrada",
		Reason:            "badge reader recorded the wrong time",
	}, "emp-1")

	suite.Require().NoError(err)
	suite.False(adjustment.IsAddition)
	suite.Require().NotNil(adjustment.OriginalTimestamp)
	suite.True(adjustment.OriginalTimestamp.Equal(originalAt))
}

func (suite *AdjustmentServiceTestSuite) TestRequestAdjustment_PendingConflict() {
	proposed := suite.day.Add(8 * time.Hour)
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "emp-1").Return(suite.employee(), nil).Once()
	suite.mockClosing.On("IsDateClosed", suite.ctx, proposed).Return(false, nil).Once()
	suite.mockAdjustmentRepo.On("FindPendingByUserTypeAndRange", suite.ctx, "emp-1", domain.PunchEntrada,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.Adjustment{*suite.pendingAddition()}, nil).Once()

	adjustment, err := suite.service.RequestAdjustment(suite.ctx, dto.CreateAdjustmentRequest{
		ProposedTimestamp: proposed,
		ProposedType:      "entrada",
		Reason:            "forgot to punch in",
	}, "emp-1")

	suite.Nil(adjustment)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "SaveAdjustment", mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestRequestAdjustment_ClosedMonth() {
	proposed := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "emp-1").Return(suite.employee(), nil).Once()
	suite.mockClosing.On("IsDateClosed", suite.ctx, proposed).Return(true, nil).Once()

	_, err := suite.service.RequestAdjustment(suite.ctx, dto.CreateAdjustmentRequest{
		ProposedTimestamp: proposed,
		ProposedType:      "entrada",
		Reason:            "forgot to punch in",
	}, "emp-1")

	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
}

func (suite *AdjustmentServiceTestSuite) TestRequestAdjustment_OnBehalfRequiresManager() {
	otherUser := "emp-2"
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "emp-1").Return(suite.employee(), nil).Once()

	_, err := suite.service.RequestAdjustment(suite.ctx, dto.CreateAdjustmentRequest{
		UserID:            &otherUser,
		ProposedTimestamp: suite.day.Add(8 * time.Hour),
		ProposedType:      "entrada",
		Reason:            "forgot to punch in",
	}, "emp-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AdjustmentServiceTestSuite) TestRequestAdjustment_TargetOwnedByAnotherUser() {
	proposed := suite.day.Add(8 * time.Hour)
	target := &domain.Punch{PunchID: "p9", UserID: "emp-2", Type: domain.PunchEntrada, PunchedAt: proposed}
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "emp-1").Return(suite.employee(), nil).Once()
	suite.mockClosing.On("IsDateClosed", suite.ctx, proposed).Return(false, nil).Once()
	suite.mockPunchRepo.On("FindPunchByID", suite.ctx, "p9").Return(target, nil).Once()

	targetID := "p9"
	_, err := suite.service.RequestAdjustment(suite.ctx, dto.CreateAdjustmentRequest{
		TargetPunchID:     &targetID,
		ProposedTimestamp: proposed,
		ProposedType:      "entrada",
		Reason:            "wrong time",
	}, "emp-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AdjustmentServiceTestSuite) TestRequestAdjustment_ReasonRequired() {
	_, err := suite.service.RequestAdjustment(suite.ctx, dto.CreateAdjustmentRequest{
		ProposedTimestamp: suite.day.Add(8 * time.Hour),
		ProposedType:      "entrada",
	}, "emp-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AdjustmentServiceTestSuite) TestApprove_AdditionInsertsPunch() {
	adjustment := suite.pendingAddition()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "mgr-1").Return(suite.manager(), nil).Once()
	suite.mockAdjustmentRepo.On("FindAdjustmentByID", suite.ctx, "adj-1").Return(adjustment, nil).Once()
	suite.mockClosing.On("IsDateClosed", suite.ctx, mock.AnythingOfType("time.Time")).Return(false, nil).Once()
	suite.mockSequence.On("ValidateSequence", suite.ctx, "emp-1", domain.PunchEntrada, adjustment.ProposedTimestamp, (*string)(nil)).
		Return(nil).Once()
	suite.mockAdjustmentRepo.On("ApproveAdjustment", suite.ctx, mock.MatchedBy(func(a domain.Adjustment) bool {
		return a.Status == domain.AdjustmentApproved && a.ResolvedBy != nil && *a.ResolvedBy == "mgr-1"
	}), mock.MatchedBy(func(p domain.Punch) bool {
		return p.UserID == "emp-1" &&
			p.Type == domain.PunchEntrada &&
			p.Source == domain.SourceManual &&
			p.PunchedAt.Equal(adjustment.ProposedTimestamp) &&
			p.CreatedBy == "mgr-1"
	})).Return(nil).Once()
	suite.mockLedger.On("Recompute", suite.ctx, "emp-1", mock.AnythingOfType("time.Time")).Return(nil, nil).Once()
	suite.expectSideEffects()

	approved, err := suite.service.Approve(suite.ctx, "adj-1", "mgr-1")

	suite.Require().NoError(err)
	suite.Equal(domain.AdjustmentApproved, approved.Status)
	suite.Require().NotNil(approved.ResolvedAt)
	suite.True(approved.ResolvedAt.Equal(suite.now))
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestApprove_CorrectionAcrossDaysRecomputesBoth() {
	originalAt := suite.day.AddDate(0, 0, 1).Add(8 * time.Hour)
	targetID := "p1"
	origType := domain.PunchEntrada
	adjustment := suite.pendingAddition()
	adjustment.IsAddition = false
	adjustment.TargetPunchID = &targetID
	adjustment.OriginalTimestamp = &originalAt
	adjustment.OriginalType = &origType

	target := &domain.Punch{PunchID: "p1", UserID: "emp-1", Type: domain.PunchEntrada, PunchedAt: originalAt}

	suite.mockUserRepo.On("FindUserByID", suite.ctx, "mgr-1").Return(suite.manager(), nil).Once()
	suite.mockAdjustmentRepo.On("FindAdjustmentByID", suite.ctx, "adj-1").Return(adjustment, nil).Once()
	suite.mockClosing.On("IsDateClosed", suite.ctx, mock.AnythingOfType("time.Time")).Return(false, nil).Twice()
	suite.mockSequence.On("ValidateSequence", suite.ctx, "emp-1", domain.PunchEntrada, adjustment.ProposedTimestamp, &targetID).
		Return(nil).Once()
	suite.mockPunchRepo.On("FindPunchByID", suite.ctx, "p1").Return(target, nil).Once()
	suite.mockAdjustmentRepo.On("ApproveAdjustment", suite.ctx, mock.MatchedBy(func(a domain.Adjustment) bool {
		return a.Status == domain.AdjustmentApproved
	}), mock.MatchedBy(func(p domain.Punch) bool {
		return p.PunchID == "p1" &&
			p.PunchedAt.Equal(adjustment.ProposedTimestamp) &&
			p.PunchDate.Equal(suite.day) &&
			p.LastUpdatedBy == "mgr-1"
	})).Return(nil).Once()
	// Both the proposed day and the day the punch moved away from.
	suite.mockLedger.On("Recompute", suite.ctx, "emp-1", suite.day).Return(nil, nil).Once()
	suite.mockLedger.On("Recompute", suite.ctx, "emp-1", suite.day.AddDate(0, 0, 1)).Return(nil, nil).Once()
	suite.expectSideEffects()

	_, err := suite.service.Approve(suite.ctx, "adj-1", "mgr-1")

	suite.Require().NoError(err)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestApprove_RecomputeFailureDoesNotFailApproval() {
	adjustment := suite.pendingAddition()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "mgr-1").Return(suite.manager(), nil).Once()
	suite.mockAdjustmentRepo.On("FindAdjustmentByID", suite.ctx, "adj-1").Return(adjustment, nil).Once()
	suite.mockClosing.On("IsDateClosed", suite.ctx, mock.AnythingOfType("time.Time")).Return(false, nil).Once()
	suite.mockSequence.On("ValidateSequence", suite.ctx, "emp-1", domain.PunchEntrada, adjustment.ProposedTimestamp, (*string)(nil)).
		Return(nil).Once()
	suite.mockAdjustmentRepo.On("ApproveAdjustment", suite.ctx, mock.AnythingOfType("domain.Adjustment"),
		mock.AnythingOfType("domain.Punch")).Return(nil).Once()
	suite.mockLedger.On("Recompute", suite.ctx, "emp-1", mock.AnythingOfType("time.Time")).
		Return(nil, assert.AnError).Once()
	suite.expectSideEffects()

	approved, err := suite.service.Approve(suite.ctx, "adj-1", "mgr-1")

	suite.Require().NoError(err)
	suite.Equal(domain.AdjustmentApproved, approved.Status)
}

func (suite *AdjustmentServiceTestSuite) TestApprove_SequenceViolationRejectsApproval() {
	adjustment := suite.pendingAddition()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "mgr-1").Return(suite.manager(), nil).Once()
	suite.mockAdjustmentRepo.On("FindAdjustmentByID", suite.ctx, "adj-1").Return(adjustment, nil).Once()
	suite.mockClosing.On("IsDateClosed", suite.ctx, mock.AnythingOfType("time.Time")).Return(false, nil).Once()
	suite.mockSequence.On("ValidateSequence", suite.ctx, "emp-1", domain.PunchEntrada, adjustment.ProposedTimestamp, (*string)(nil)).
		Return(services.ErrDuplicateType).Once()

	_, err := suite.service.Approve(suite.ctx, "adj-1", "mgr-1")

	suite.ErrorIs(err, services.ErrDuplicateType)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "ApproveAdjustment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestApprove_LostResolveRaceLeavesNothingBehind() {
	adjustment := suite.pendingAddition()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "mgr-1").Return(suite.manager(), nil).Once()
	suite.mockAdjustmentRepo.On("FindAdjustmentByID", suite.ctx, "adj-1").Return(adjustment, nil).Once()
	suite.mockClosing.On("IsDateClosed", suite.ctx, mock.AnythingOfType("time.Time")).Return(false, nil).Once()
	suite.mockSequence.On("ValidateSequence", suite.ctx, "emp-1", domain.PunchEntrada, adjustment.ProposedTimestamp, (*string)(nil)).
		Return(nil).Once()
	// A concurrent resolver won: the punch write and the status transition
	// roll back together, so the approval fails without side effects.
	suite.mockAdjustmentRepo.On("ApproveAdjustment", suite.ctx, mock.AnythingOfType("domain.Adjustment"),
		mock.AnythingOfType("domain.Punch")).Return(apperrors.ErrConflict).Once()

	approved, err := suite.service.Approve(suite.ctx, "adj-1", "mgr-1")

	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPunchRepo.AssertNotCalled(suite.T(), "SavePunch", mock.Anything, mock.Anything)
	suite.mockLedger.AssertNotCalled(suite.T(), "Recompute", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAudit.AssertNotCalled(suite.T(), "Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestApprove_AlreadyResolved() {
	adjustment := suite.pendingAddition()
	adjustment.Status = domain.AdjustmentApproved
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "mgr-1").Return(suite.manager(), nil).Once()
	suite.mockAdjustmentRepo.On("FindAdjustmentByID", suite.ctx, "adj-1").Return(adjustment, nil).Once()

	_, err := suite.service.Approve(suite.ctx, "adj-1", "mgr-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *AdjustmentServiceTestSuite) TestApprove_ManagerCannotApproveOwnRequest() {
	adjustment := suite.pendingAddition()
	adjustment.RequesterID = "mgr-1"
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "mgr-1").Return(suite.manager(), nil).Once()
	suite.mockAdjustmentRepo.On("FindAdjustmentByID", suite.ctx, "adj-1").Return(adjustment, nil).Once()

	_, err := suite.service.Approve(suite.ctx, "adj-1", "mgr-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AdjustmentServiceTestSuite) TestApprove_EmployeeForbidden() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "emp-1").Return(suite.employee(), nil).Once()

	_, err := suite.service.Approve(suite.ctx, "adj-1", "emp-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AdjustmentServiceTestSuite) TestReject_AllowedInClosedMonth() {
	adjustment := suite.pendingAddition()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "mgr-1").Return(suite.manager(), nil).Once()
	suite.mockAdjustmentRepo.On("FindAdjustmentByID", suite.ctx, "adj-1").Return(adjustment, nil).Once()
	suite.mockAdjustmentRepo.On("ResolveAdjustment", suite.ctx, mock.MatchedBy(func(a domain.Adjustment) bool {
		return a.Status == domain.AdjustmentRejected && a.ResolutionNotes == "no evidence"
	})).Return(nil).Once()
	suite.expectSideEffects()

	rejected, err := suite.service.Reject(suite.ctx, "adj-1", "mgr-1", "no evidence")

	suite.Require().NoError(err)
	suite.Equal(domain.AdjustmentRejected, rejected.Status)
	// Rejection never consults the closing guard, so stale requests can be
	// cleared after the month is locked.
	suite.mockClosing.AssertNotCalled(suite.T(), "IsDateClosed", mock.Anything, mock.Anything)
	suite.mockLedger.AssertNotCalled(suite.T(), "Recompute", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestReject_ReasonRequired() {
	_, err := suite.service.Reject(suite.ctx, "adj-1", "mgr-1", "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AdjustmentServiceTestSuite) TestReject_DoubleResolve() {
	adjustment := suite.pendingAddition()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "mgr-1").Return(suite.manager(), nil).Once()
	suite.mockAdjustmentRepo.On("FindAdjustmentByID", suite.ctx, "adj-1").Return(adjustment, nil).Once()
	suite.mockAdjustmentRepo.On("ResolveAdjustment", suite.ctx, mock.AnythingOfType("domain.Adjustment")).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.Reject(suite.ctx, "adj-1", "mgr-1", "duplicate request")

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *AdjustmentServiceTestSuite) TestListPending_DefaultLimit() {
	suite.mockAdjustmentRepo.On("FindAdjustmentsByStatus", suite.ctx, domain.AdjustmentPending, 50).
		Return([]domain.Adjustment{*suite.pendingAddition()}, nil).Once()

	pending, err := suite.service.ListPending(suite.ctx, 0)

	suite.Require().NoError(err)
	suite.Len(pending, 1)
}

func TestAdjustmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdjustmentServiceTestSuite))
}
