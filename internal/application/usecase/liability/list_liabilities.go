package liability

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
)

// ListLiabilitiesInput represents the input for listing liabilities.
type ListLiabilitiesInput struct {
	UserID         uuid.UUID
	DeductibleOnly bool
}

// ListLiabilitiesOutput represents the output of listing liabilities.
type ListLiabilitiesOutput struct {
	Liabilities []*entity.Liability
}

// ListLiabilitiesUseCase lists a user's liabilities.
type ListLiabilitiesUseCase struct {
	liabilityRepo adapter.LiabilityRepository
}

// NewListLiabilitiesUseCase creates a new ListLiabilitiesUseCase instance.
func NewListLiabilitiesUseCase(liabilityRepo adapter.LiabilityRepository) *ListLiabilitiesUseCase {
	return &ListLiabilitiesUseCase{liabilityRepo: liabilityRepo}
}

// Execute returns the liabilities.
func (uc *ListLiabilitiesUseCase) Execute(ctx context.Context, input ListLiabilitiesInput) (*ListLiabilitiesOutput, error) {
	var (
		liabilities []*entity.Liability
		err         error
	)
	if input.DeductibleOnly {
		liabilities, err = uc.liabilityRepo.FindDeductibleByUserID(ctx, input.UserID)
	} else {
		liabilities, err = uc.liabilityRepo.FindByUserID(ctx, input.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list liabilities: %w", err)
	}
	return &ListLiabilitiesOutput{Liabilities: liabilities}, nil
}
