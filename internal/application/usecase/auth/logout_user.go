package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout.
// AllDevices revokes every refresh token of UserID.
type LogoutUserInput struct {
	UserID       uuid.UUID
	RefreshToken string
	AllDevices   bool
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute invalidates the refresh token, or all of the user's tokens.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	if input.AllDevices {
		if err := uc.tokenService.InvalidateAllUserTokens(ctx, input.UserID); err != nil {
			return nil, fmt.Errorf("failed to invalidate user tokens: %w", err)
		}
		return &LogoutUserOutput{Message: "Logged out from all devices"}, nil
	}

	// Already invalid tokens are not an error
	_ = uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken)

	return &LogoutUserOutput{
		Message: "Successfully logged out",
	}, nil
}
