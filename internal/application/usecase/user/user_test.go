package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakat-calculator/backend/internal/application/usecase/usecasetest"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

func ptr[T any](v T) *T { return &v }

func newUser() *entity.User {
	return entity.NewUser("aisha@example.com", "Aisha", "hash", valueobject.USD, valueobject.NisabMethodGold)
}

func TestGetUser(t *testing.T) {
	u := newUser()
	uc := NewGetUserUseCase(usecasetest.NewUserRepo(u))

	out, err := uc.Execute(context.Background(), GetUserInput{UserID: u.ID})
	require.NoError(t, err)
	assert.Same(t, u, out.User)

	_, err = uc.Execute(context.Background(), GetUserInput{UserID: uuid.New()})
	assert.True(t, domainerror.IsNotFound(err))
}

func TestUpdateUserPreferences_PartialUpdate(t *testing.T) {
	u := newUser()
	uc := NewUpdateUserPreferencesUseCase(usecasetest.NewUserRepo(u))

	out, err := uc.Execute(context.Background(), UpdateUserPreferencesInput{
		UserID:      u.ID,
		Currency:    ptr("sar"),
		NisabMethod: ptr("silver"),
		Notifications: &NotificationPreferencesInput{
			EnableSMS:         ptr(true),
			ReminderFrequency: ptr("quarterly"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Aisha", out.User.Name)
	assert.Equal(t, "SAR", out.User.Currency.Code())
	assert.Equal(t, valueobject.NisabMethodSilver, out.User.NisabMethod)
	assert.True(t, out.User.NotificationPreferences.EnableSMS)
	assert.True(t, out.User.NotificationPreferences.EnablePush)
	assert.Equal(t, entity.ReminderFrequencyQuarterly, out.User.NotificationPreferences.ReminderFrequency)
}

func TestUpdateUserPreferences_RejectsInvalidValuesAtomically(t *testing.T) {
	tests := []struct {
		name  string
		input UpdateUserPreferencesInput
		want  error
	}{
		{"currency", UpdateUserPreferencesInput{Currency: ptr("XYZ")}, domainerror.ErrUnsupportedCurrency},
		{"nisab", UpdateUserPreferencesInput{NisabMethod: ptr("copper")}, domainerror.ErrInvalidNisabMethod},
		{"frequency", UpdateUserPreferencesInput{
			Name:          ptr("Changed"),
			Notifications: &NotificationPreferencesInput{ReminderFrequency: ptr("daily")},
		}, domainerror.ErrInvalidReminderFrequency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newUser()
			tt.input.UserID = u.ID
			_, err := NewUpdateUserPreferencesUseCase(usecasetest.NewUserRepo(u)).Execute(context.Background(), tt.input)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, "Aisha", u.Name)
			assert.Equal(t, valueobject.USD, u.Currency)
		})
	}
}
