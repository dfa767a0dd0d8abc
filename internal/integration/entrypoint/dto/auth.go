// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/zakat-calculator/backend/internal/domain/entity"
)

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Password    string `json:"password" binding:"required,min=8"`
	Currency    string `json:"currency"`
	NisabMethod string `json:"nisab_method"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
	AllDevices   bool   `json:"all_devices"`
}

// NotificationPreferencesRequest carries optional preference changes.
type NotificationPreferencesRequest struct {
	EnablePush             *bool   `json:"enable_push"`
	EnableEmail            *bool   `json:"enable_email"`
	EnableSMS              *bool   `json:"enable_sms"`
	ReminderFrequency      *string `json:"reminder_frequency"`
	PreRamadanReminder     *bool   `json:"pre_ramadan_reminder"`
	HawlCompletionReminder *bool   `json:"hawl_completion_reminder"`
	NisabThresholdAlert    *bool   `json:"nisab_threshold_alert"`
}

// UpdatePreferencesRequest represents PATCH /users/me. Omitted fields are unchanged.
type UpdatePreferencesRequest struct {
	Name          *string                         `json:"name" binding:"omitempty,min=1,max=100"`
	PhoneNumber   *string                         `json:"phone_number"`
	Currency      *string                         `json:"currency"`
	NisabMethod   *string                         `json:"nisab_method"`
	Notifications *NotificationPreferencesRequest `json:"notifications"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// TokenResponse represents the response for token refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// NotificationPreferencesResponse mirrors entity.NotificationPreferences.
type NotificationPreferencesResponse struct {
	EnablePush             bool   `json:"enable_push"`
	EnableEmail            bool   `json:"enable_email"`
	EnableSMS              bool   `json:"enable_sms"`
	ReminderFrequency      string `json:"reminder_frequency"`
	PreRamadanReminder     bool   `json:"pre_ramadan_reminder"`
	HawlCompletionReminder bool   `json:"hawl_completion_reminder"`
	NisabThresholdAlert    bool   `json:"nisab_threshold_alert"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID                      string                          `json:"id"`
	Email                   string                          `json:"email"`
	Name                    string                          `json:"name"`
	PhoneNumber             string                          `json:"phone_number,omitempty"`
	Currency                string                          `json:"currency"`
	NisabMethod             string                          `json:"nisab_method"`
	NotificationPreferences NotificationPreferencesResponse `json:"notification_preferences"`
	CreatedAt               time.Time                       `json:"created_at"`
	LastLoginAt             *time.Time                      `json:"last_login_at,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	prefs := user.NotificationPreferences
	resp := UserResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		Name:        user.Name,
		PhoneNumber: user.PhoneNumber,
		Currency:    user.Currency.Code(),
		NisabMethod: user.NisabMethod.String(),
		NotificationPreferences: NotificationPreferencesResponse{
			EnablePush:             prefs.EnablePush,
			EnableEmail:            prefs.EnableEmail,
			EnableSMS:              prefs.EnableSMS,
			ReminderFrequency:      string(prefs.ReminderFrequency),
			PreRamadanReminder:     prefs.PreRamadanReminder,
			HawlCompletionReminder: prefs.HawlCompletionReminder,
			NisabThresholdAlert:    prefs.NisabThresholdAlert,
		},
		CreatedAt: user.CreatedAt,
	}
	if !user.LastLoginAt.IsZero() {
		last := user.LastLoginAt
		resp.LastLoginAt = &last
	}
	return resp
}
