package asset

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
)

// DeleteAssetInput represents the input for deleting an asset.
type DeleteAssetInput struct {
	UserID  uuid.UUID
	AssetID uuid.UUID
}

// DeleteAssetUseCase removes an asset and the reminders tied to it.
type DeleteAssetUseCase struct {
	assetRepo    adapter.AssetRepository
	reminderRepo adapter.ReminderRepository
}

// NewDeleteAssetUseCase creates a new DeleteAssetUseCase instance.
func NewDeleteAssetUseCase(assetRepo adapter.AssetRepository, reminderRepo adapter.ReminderRepository) *DeleteAssetUseCase {
	return &DeleteAssetUseCase{
		assetRepo:    assetRepo,
		reminderRepo: reminderRepo,
	}
}

// Execute deletes the asset.
func (uc *DeleteAssetUseCase) Execute(ctx context.Context, input DeleteAssetInput) error {
	if _, err := loadOwnedAsset(ctx, uc.assetRepo, input.UserID, input.AssetID); err != nil {
		return err
	}
	if err := uc.reminderRepo.DeleteByAssetID(ctx, input.AssetID); err != nil {
		return fmt.Errorf("failed to delete asset reminders: %w", err)
	}
	if err := uc.assetRepo.Delete(ctx, input.AssetID); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}
