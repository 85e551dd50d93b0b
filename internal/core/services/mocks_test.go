package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
	"github.com/pontocerto/ponto_backend/internal/dto"
)

// fixedClock pins time for deterministic assertions.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// --- Mock PunchRepository ---
type MockPunchRepository struct {
	mock.Mock
}

func (m *MockPunchRepository) FindPunchByID(ctx context.Context, punchID string) (*domain.Punch, error) {
	args := m.Called(ctx, punchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Punch), args.Error(1)
}

func (m *MockPunchRepository) FindPunchesByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Punch, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Punch), args.Error(1)
}

func (m *MockPunchRepository) SavePunch(ctx context.Context, punch domain.Punch) error {
	args := m.Called(ctx, punch)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) FindActiveUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntry(ctx context.Context, userID string, date time.Time) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) UpsertEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

// --- Mock HolidayRepository ---
type MockHolidayRepository struct {
	mock.Mock
}

func (m *MockHolidayRepository) FindHolidayByDate(ctx context.Context, date time.Time) (*domain.Holiday, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holiday), args.Error(1)
}

func (m *MockHolidayRepository) SaveHoliday(ctx context.Context, holiday domain.Holiday) error {
	args := m.Called(ctx, holiday)
	return args.Error(0)
}

func (m *MockHolidayRepository) DeleteHoliday(ctx context.Context, holidayID string) error {
	args := m.Called(ctx, holidayID)
	return args.Error(0)
}

func (m *MockHolidayRepository) ListHolidays(ctx context.Context, from, to time.Time) ([]domain.Holiday, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holiday), args.Error(1)
}

// --- Mock AdjustmentRepository ---
type MockAdjustmentRepository struct {
	mock.Mock
}

func (m *MockAdjustmentRepository) FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error) {
	args := m.Called(ctx, adjustmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Adjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) FindPendingByUserTypeAndRange(ctx context.Context, userID string, proposedType domain.PunchType, from, to time.Time) ([]domain.Adjustment, error) {
	args := m.Called(ctx, userID, proposedType, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Adjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) CountPendingInRange(ctx context.Context, from, to time.Time) (int, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockAdjustmentRepository) FindAdjustmentsByStatus(ctx context.Context, status domain.AdjustmentStatus, limit int) ([]domain.Adjustment, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Adjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) SaveAdjustment(ctx context.Context, adjustment domain.Adjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) ResolveAdjustment(ctx context.Context, adjustment domain.Adjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) ApproveAdjustment(ctx context.Context, adjustment domain.Adjustment, punch domain.Punch) error {
	args := m.Called(ctx, adjustment, punch)
	return args.Error(0)
}

// --- Mock ClosingRepository ---
type MockClosingRepository struct {
	mock.Mock
}

func (m *MockClosingRepository) FindClosingPeriod(ctx context.Context, year, month int) (*domain.ClosingPeriod, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingPeriod), args.Error(1)
}

func (m *MockClosingRepository) SaveClosingPeriod(ctx context.Context, period domain.ClosingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockClosingRepository) DeleteClosingPeriod(ctx context.Context, year, month int) error {
	args := m.Called(ctx, year, month)
	return args.Error(0)
}

func (m *MockClosingRepository) ListClosingPeriods(ctx context.Context) ([]domain.ClosingPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClosingPeriod), args.Error(1)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Mock AlertRepository ---
type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) SaveAlert(ctx context.Context, alert domain.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertRepository) FindAlertsByUser(ctx context.Context, userID string, limit int) ([]domain.Alert, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *MockAlertRepository) MarkAlertRead(ctx context.Context, alertID string, userID string) error {
	args := m.Called(ctx, alertID, userID)
	return args.Error(0)
}

// --- Mock ClosingSvc ---
type MockClosingSvc struct {
	mock.Mock
}

func (m *MockClosingSvc) CloseMonth(ctx context.Context, year, month int, notes, adminID string) (*domain.ClosingPeriod, error) {
	args := m.Called(ctx, year, month, notes, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingPeriod), args.Error(1)
}

func (m *MockClosingSvc) ReopenMonth(ctx context.Context, year, month int, adminID string) error {
	args := m.Called(ctx, year, month, adminID)
	return args.Error(0)
}

func (m *MockClosingSvc) IsDateClosed(ctx context.Context, at time.Time) (bool, error) {
	args := m.Called(ctx, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockClosingSvc) ListClosings(ctx context.Context) ([]domain.ClosingPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClosingPeriod), args.Error(1)
}

// --- Mock LedgerSvc ---
type MockLedgerSvc struct {
	mock.Mock
}

func (m *MockLedgerSvc) Recompute(ctx context.Context, userID string, date time.Time) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerSvc) DailyClosing(ctx context.Context, date time.Time) (*dto.DailyClosingResult, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DailyClosingResult), args.Error(1)
}

func (m *MockLedgerSvc) GetBalance(ctx context.Context, userID string, from, to time.Time) (*dto.BalanceSummary, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BalanceSummary), args.Error(1)
}

func (m *MockLedgerSvc) ListEntries(ctx context.Context, userID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// --- Mock AuditSvc ---
type MockAuditSvc struct {
	mock.Mock
}

func (m *MockAuditSvc) Log(ctx context.Context, eventType, actorID, subjectID, description string, details map[string]any) {
	m.Called(ctx, eventType, actorID, subjectID, description, details)
}

// --- Mock NotificationSvc ---
type MockNotificationSvc struct {
	mock.Mock
}

func (m *MockNotificationSvc) CreateAlert(ctx context.Context, userID, alertType string, severity domain.AlertSeverity, title, message string) {
	m.Called(ctx, userID, alertType, severity, title, message)
}

func (m *MockNotificationSvc) ListAlerts(ctx context.Context, userID string, limit int) ([]domain.Alert, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *MockNotificationSvc) MarkRead(ctx context.Context, alertID, userID string) error {
	args := m.Called(ctx, alertID, userID)
	return args.Error(0)
}

// --- Mock PunchSequenceValidator ---
type MockSequenceValidator struct {
	mock.Mock
}

func (m *MockSequenceValidator) ValidateSequence(ctx context.Context, userID string, punchType domain.PunchType, at time.Time, excludePunchID *string) error {
	args := m.Called(ctx, userID, punchType, at, excludePunchID)
	return args.Error(0)
}

// --- Mock AlertPublisher ---
type MockAlertPublisher struct {
	mock.Mock
}

func (m *MockAlertPublisher) Publish(alert domain.Alert) {
	m.Called(alert)
}
