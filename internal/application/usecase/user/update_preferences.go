package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// NotificationPreferencesInput carries optional preference changes.
// Nil fields keep their current value.
type NotificationPreferencesInput struct {
	EnablePush             *bool
	EnableEmail            *bool
	EnableSMS              *bool
	ReminderFrequency      *string
	PreRamadanReminder     *bool
	HawlCompletionReminder *bool
	NisabThresholdAlert    *bool
}

// UpdateUserPreferencesInput represents a partial profile update.
type UpdateUserPreferencesInput struct {
	UserID        uuid.UUID
	Name          *string
	PhoneNumber   *string
	Currency      *string
	NisabMethod   *string
	Notifications *NotificationPreferencesInput
}

// UpdateUserPreferencesOutput represents the output of a profile update.
type UpdateUserPreferencesOutput struct {
	User *entity.User
}

// UpdateUserPreferencesUseCase applies profile, nisab and notification changes.
type UpdateUserPreferencesUseCase struct {
	userRepo adapter.UserRepository
}

// NewUpdateUserPreferencesUseCase creates a new UpdateUserPreferencesUseCase instance.
func NewUpdateUserPreferencesUseCase(userRepo adapter.UserRepository) *UpdateUserPreferencesUseCase {
	return &UpdateUserPreferencesUseCase{userRepo: userRepo}
}

// Execute validates every supplied field before changing the user.
func (uc *UpdateUserPreferencesUseCase) Execute(ctx context.Context, input UpdateUserPreferencesInput) (*UpdateUserPreferencesOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	name := user.Name
	if input.Name != nil && *input.Name != "" {
		name = *input.Name
	}
	currency := user.Currency
	if input.Currency != nil {
		if currency, err = valueobject.ParseCurrency(*input.Currency); err != nil {
			return nil, err
		}
	}
	method := user.NisabMethod
	if input.NisabMethod != nil {
		if method, err = valueobject.ParseNisabMethod(*input.NisabMethod); err != nil {
			return nil, err
		}
	}
	prefs, err := mergePreferences(user.NotificationPreferences, input.Notifications)
	if err != nil {
		return nil, err
	}

	user.UpdateProfile(name, currency)
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if method != user.NisabMethod {
		user.UpdateNisabMethod(method)
	}
	user.UpdateNotificationPreferences(prefs)

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &UpdateUserPreferencesOutput{User: user}, nil
}

func mergePreferences(current entity.NotificationPreferences, in *NotificationPreferencesInput) (entity.NotificationPreferences, error) {
	if in == nil {
		return current, nil
	}
	setBool(&current.EnablePush, in.EnablePush)
	setBool(&current.EnableEmail, in.EnableEmail)
	setBool(&current.EnableSMS, in.EnableSMS)
	setBool(&current.PreRamadanReminder, in.PreRamadanReminder)
	setBool(&current.HawlCompletionReminder, in.HawlCompletionReminder)
	setBool(&current.NisabThresholdAlert, in.NisabThresholdAlert)
	if in.ReminderFrequency != nil {
		frequency, err := entity.ParseReminderFrequency(*in.ReminderFrequency)
		if err != nil {
			return current, err
		}
		current.ReminderFrequency = frequency
	}
	return current, nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
