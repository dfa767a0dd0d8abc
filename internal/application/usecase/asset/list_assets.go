package asset

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// ListAssetsInput represents the input for listing assets.
// An empty Type lists every asset.
type ListAssetsInput struct {
	UserID uuid.UUID
	Type   string
}

// ListAssetsOutput represents the output of listing assets.
type ListAssetsOutput struct {
	Assets []*entity.Asset
}

// ListAssetsUseCase lists a user's assets.
type ListAssetsUseCase struct {
	assetRepo adapter.AssetRepository
}

// NewListAssetsUseCase creates a new ListAssetsUseCase instance.
func NewListAssetsUseCase(assetRepo adapter.AssetRepository) *ListAssetsUseCase {
	return &ListAssetsUseCase{assetRepo: assetRepo}
}

// Execute returns the assets in creation order.
func (uc *ListAssetsUseCase) Execute(ctx context.Context, input ListAssetsInput) (*ListAssetsOutput, error) {
	if input.Type == "" {
		assets, err := uc.assetRepo.FindByUserID(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to list assets: %w", err)
		}
		return &ListAssetsOutput{Assets: assets}, nil
	}

	assetType, err := valueobject.ParseAssetType(input.Type)
	if err != nil {
		return nil, err
	}
	assets, err := uc.assetRepo.FindByUserIDAndType(ctx, input.UserID, assetType)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return &ListAssetsOutput{Assets: assets}, nil
}
