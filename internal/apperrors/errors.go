package apperrors

import "errors"

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation lost against concurrent or pending state
// (e.g. a pending adjustment of the same type, or a terminal status transition
// attempted twice). Recoverable by resubmission.
var ErrConflict = errors.New("conflicting state")

// ErrPeriodClosed indicates the target date falls inside an administratively
// closed month. Recoverable only by reopening the period.
var ErrPeriodClosed = errors.New("period is closed")

// ErrUserInactive indicates the target user exists but is deactivated.
var ErrUserInactive = errors.New("user is inactive")

// ErrForbidden indicates the actor lacks the role required for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure with no partial commit.
var ErrInternal = errors.New("internal error")
