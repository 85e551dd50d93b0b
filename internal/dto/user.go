package dto

import (
	"time"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
)

// CreateUserRequest registers a new employee.
type CreateUserRequest struct {
	Username           string   `json:"username" binding:"required,min=3"`
	Password           string   `json:"password" binding:"required,min=8"`
	Name               string   `json:"name" binding:"required"`
	Role               string   `json:"role,omitempty" binding:"omitempty,oneof=employee manager admin"`
	IsDutyShift        bool     `json:"isDutyShift,omitempty"`
	ExpectedDailyHours *float64 `json:"expectedDailyHours,omitempty" binding:"omitempty,gt=0,lte=24"`
	NonWorkingWeekdays []int32  `json:"nonWorkingWeekdays,omitempty" binding:"omitempty,dive,min=0,max=6"`
}

// UpdateUserRequest carries optional field updates; nil means unchanged.
type UpdateUserRequest struct {
	Name               *string  `json:"name,omitempty"`
	Role               *string  `json:"role,omitempty" binding:"omitempty,oneof=employee manager admin"`
	IsActive           *bool    `json:"isActive,omitempty"`
	IsDutyShift        *bool    `json:"isDutyShift,omitempty"`
	ExpectedDailyHours *float64 `json:"expectedDailyHours,omitempty" binding:"omitempty,gt=0,lte=24"`
	NonWorkingWeekdays []int32  `json:"nonWorkingWeekdays,omitempty" binding:"omitempty,dive,min=0,max=6"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	UserID             string     `json:"userID"`
	Username           string     `json:"username"`
	Name               string     `json:"name"`
	Role               string     `json:"role"`
	IsActive           bool       `json:"isActive"`
	IsDutyShift        bool       `json:"isDutyShift"`
	ExpectedDailyHours string     `json:"expectedDailyHours"`
	NonWorkingWeekdays []int32    `json:"nonWorkingWeekdays,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	DeletedAt          *time.Time `json:"deletedAt,omitempty"`
}

// ToUserResponse maps a domain user to its API shape.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:             u.UserID,
		Username:           u.Username,
		Name:               u.Name,
		Role:               string(u.Role),
		IsActive:           u.IsActive,
		IsDutyShift:        u.IsDutyShift,
		ExpectedDailyHours: u.ExpectedDailyHours.StringFixed(2),
		NonWorkingWeekdays: u.NonWorkingWeekdays,
		CreatedAt:          u.CreatedAt,
		DeletedAt:          u.DeletedAt,
	}
}

// ToUserResponses maps a slice of users.
func ToUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
