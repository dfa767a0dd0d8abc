package zakat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/service"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// GetNisabThresholdInput selects the method and currency. Empty fields fall
// back to the user's settings.
type GetNisabThresholdInput struct {
	UserID   uuid.UUID
	Method   string
	Currency string
}

// GetNisabThresholdOutput describes the priced threshold.
type GetNisabThresholdOutput struct {
	Method       valueobject.NisabMethod
	Grams        decimal.Decimal
	PricePerGram valueobject.Money
	Threshold    valueobject.Money
}

// GetNisabThresholdUseCase prices the nisab threshold at today's metal price.
type GetNisabThresholdUseCase struct {
	userRepo     adapter.UserRepository
	priceService adapter.PriceService
	calculator   *service.ZakatCalculationService
}

// NewGetNisabThresholdUseCase creates a new GetNisabThresholdUseCase instance.
func NewGetNisabThresholdUseCase(userRepo adapter.UserRepository, priceService adapter.PriceService) *GetNisabThresholdUseCase {
	return &GetNisabThresholdUseCase{
		userRepo:     userRepo,
		priceService: priceService,
		calculator:   service.NewZakatCalculationService(),
	}
}

// Execute returns the threshold.
func (uc *GetNisabThresholdUseCase) Execute(ctx context.Context, input GetNisabThresholdInput) (*GetNisabThresholdOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	method := user.NisabMethod
	if input.Method != "" {
		if method, err = valueobject.ParseNisabMethod(input.Method); err != nil {
			return nil, err
		}
	}
	currency := user.Currency
	if input.Currency != "" {
		if currency, err = valueobject.ParseCurrency(input.Currency); err != nil {
			return nil, err
		}
	}

	price, err := adapter.MetalPriceFor(ctx, uc.priceService, method, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s price: %w", method.ReferenceMetal(), err)
	}
	threshold, err := uc.calculator.CalculateNisabForMethod(price, method)
	if err != nil {
		return nil, err
	}

	return &GetNisabThresholdOutput{
		Method:       method,
		Grams:        method.ReferenceGrams(),
		PricePerGram: price,
		Threshold:    threshold,
	}, nil
}
