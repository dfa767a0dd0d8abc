// Package liability contains use cases for debts deducted from zakatable wealth.
package liability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// CreateLiabilityInput represents the input for recording a debt.
// Currency defaults to the user's currency.
type CreateLiabilityInput struct {
	UserID           uuid.UUID
	Amount           decimal.Decimal
	Currency         string
	Description      string
	DueDate          *time.Time
	IsImmediatelyDue bool
}

// CreateLiabilityOutput represents the output of recording a debt.
type CreateLiabilityOutput struct {
	Liability *entity.Liability
}

// CreateLiabilityUseCase records a liability for a user.
type CreateLiabilityUseCase struct {
	userRepo      adapter.UserRepository
	liabilityRepo adapter.LiabilityRepository
}

// NewCreateLiabilityUseCase creates a new CreateLiabilityUseCase instance.
func NewCreateLiabilityUseCase(userRepo adapter.UserRepository, liabilityRepo adapter.LiabilityRepository) *CreateLiabilityUseCase {
	return &CreateLiabilityUseCase{
		userRepo:      userRepo,
		liabilityRepo: liabilityRepo,
	}
}

// Execute records the liability.
func (uc *CreateLiabilityUseCase) Execute(ctx context.Context, input CreateLiabilityInput) (*CreateLiabilityOutput, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, domainerror.NewZakatError(
			domainerror.ErrCodeMissingFields,
			"liability description is required",
			domainerror.ErrMissingFields,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	currency := user.Currency
	if input.Currency != "" {
		if currency, err = valueobject.ParseCurrency(input.Currency); err != nil {
			return nil, err
		}
	}
	amount, err := valueobject.NewMoneyIn(input.Amount, currency)
	if err != nil {
		return nil, err
	}

	l := entity.NewLiability(user.ID, amount, strings.TrimSpace(input.Description), input.DueDate, input.IsImmediatelyDue)
	if err := uc.liabilityRepo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to create liability: %w", err)
	}
	return &CreateLiabilityOutput{Liability: l}, nil
}
