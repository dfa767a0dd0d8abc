// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// CreateUserInput represents the input for user registration.
// Currency and NisabMethod fall back to USD and GOLD when empty.
type CreateUserInput struct {
	Email       string
	Name        string
	Password    string
	Currency    string
	NisabMethod string
}

// CreateUserOutput represents the output of user registration.
type CreateUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// CreateUserUseCase registers a user with default notification preferences.
type CreateUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	emailService    adapter.EmailService
}

// NewCreateUserUseCase creates a new CreateUserUseCase instance.
// emailService may be nil, in which case no welcome email is queued.
func NewCreateUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	emailService adapter.EmailService,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		emailService:    emailService,
	}
}

// Execute performs the user registration.
func (uc *CreateUserUseCase) Execute(ctx context.Context, input CreateUserInput) (*CreateUserOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || strings.TrimSpace(input.Name) == "" || input.Password == "" {
		return nil, domainerror.NewZakatError(
			domainerror.ErrCodeMissingFields,
			"email, name and password are required",
			domainerror.ErrMissingFields,
		)
	}

	if !emailRegex.MatchString(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

	currency, nisabMethod, err := parseUserSettings(input.Currency, input.NisabMethod)
	if err != nil {
		return nil, err
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewZakatError(
			domainerror.ErrCodeEmailAlreadyExists,
			"email already registered",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(email, strings.TrimSpace(input.Name), passwordHash, currency, nisabMethod)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if uc.emailService != nil {
		if err := uc.emailService.QueueWelcomeEmail(ctx, adapter.QueueWelcomeInput{
			UserEmail:   user.Email,
			UserName:    user.Name,
			NisabMethod: user.NisabMethod.DisplayName(),
			Currency:    user.Currency.Code(),
		}); err != nil {
			slog.Warn("failed to queue welcome email", "user_id", user.ID, "error", err)
		}
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email, false)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &CreateUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

func parseUserSettings(currencyCode, method string) (valueobject.Currency, valueobject.NisabMethod, error) {
	currency := valueobject.USD
	if currencyCode != "" {
		parsed, err := valueobject.ParseCurrency(currencyCode)
		if err != nil {
			return valueobject.Currency{}, "", err
		}
		currency = parsed
	}
	if method == "" {
		return currency, valueobject.NisabMethodGold, nil
	}
	nisabMethod, err := valueobject.ParseNisabMethod(method)
	if err != nil {
		return valueobject.Currency{}, "", err
	}
	return currency, nisabMethod, nil
}
