package liability

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
)

// DeleteLiabilityInput represents the input for deleting a liability.
type DeleteLiabilityInput struct {
	UserID      uuid.UUID
	LiabilityID uuid.UUID
}

// DeleteLiabilityUseCase removes one of the caller's liabilities.
type DeleteLiabilityUseCase struct {
	liabilityRepo adapter.LiabilityRepository
}

// NewDeleteLiabilityUseCase creates a new DeleteLiabilityUseCase instance.
func NewDeleteLiabilityUseCase(liabilityRepo adapter.LiabilityRepository) *DeleteLiabilityUseCase {
	return &DeleteLiabilityUseCase{liabilityRepo: liabilityRepo}
}

// Execute deletes the liability.
func (uc *DeleteLiabilityUseCase) Execute(ctx context.Context, input DeleteLiabilityInput) error {
	l, err := uc.liabilityRepo.FindByID(ctx, input.LiabilityID)
	if err != nil {
		return err
	}
	if l.UserID != input.UserID {
		return domainerror.NewZakatError(
			domainerror.ErrCodeLiabilityNotFound,
			fmt.Sprintf("liability %s not found", input.LiabilityID),
			domainerror.ErrLiabilityNotFound,
		)
	}
	if err := uc.liabilityRepo.Delete(ctx, input.LiabilityID); err != nil {
		return fmt.Errorf("failed to delete liability: %w", err)
	}
	return nil
}
