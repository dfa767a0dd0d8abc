package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZakatErrorFamilies(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		validation bool
		invariant  bool
		notFound   bool
	}{
		{"validation", NewZakatError(ErrCodeNegativeAmount, "negative", ErrNegativeAmount), true, false, false},
		{"invariant", NewZakatError(ErrCodeZakatAlreadyPaid, "paid", ErrZakatAlreadyPaid), false, true, false},
		{"not found", NewZakatError(ErrCodeAssetNotFound, "missing", ErrAssetNotFound), false, false, true},
		{"wrapped", fmt.Errorf("load: %w", NewZakatError(ErrCodeReminderNotFound, "missing", ErrReminderNotFound)), false, false, true},
		{"plain", errors.New("boom"), false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.validation, IsValidation(tt.err))
			assert.Equal(t, tt.invariant, IsInvariantViolation(tt.err))
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
		})
	}
}

func TestIsPermanentEmailFailure(t *testing.T) {
	cause := errors.New("422 invalid recipient")
	permanent := NewEmailError(ErrCodePermanentEmailFailure, "permanent email failure", cause)
	temporary := NewEmailError(ErrCodeTemporaryEmailFailure, "temporary email failure", cause)

	assert.True(t, IsPermanentEmailFailure(fmt.Errorf("send: %w", permanent)))
	assert.False(t, IsPermanentEmailFailure(temporary))
	assert.False(t, IsPermanentEmailFailure(cause))
	assert.ErrorIs(t, permanent, cause)
	assert.Equal(t, "permanent email failure: 422 invalid recipient", permanent.Error())
}
