package asset

import (
	"context"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
)

// GetAssetInput represents the input for fetching one asset.
type GetAssetInput struct {
	UserID  uuid.UUID
	AssetID uuid.UUID
}

// GetAssetOutput represents the output of fetching one asset.
type GetAssetOutput struct {
	Asset *entity.Asset
}

// GetAssetUseCase loads one of the caller's assets.
type GetAssetUseCase struct {
	assetRepo adapter.AssetRepository
}

// NewGetAssetUseCase creates a new GetAssetUseCase instance.
func NewGetAssetUseCase(assetRepo adapter.AssetRepository) *GetAssetUseCase {
	return &GetAssetUseCase{assetRepo: assetRepo}
}

// Execute returns the asset.
func (uc *GetAssetUseCase) Execute(ctx context.Context, input GetAssetInput) (*GetAssetOutput, error) {
	a, err := loadOwnedAsset(ctx, uc.assetRepo, input.UserID, input.AssetID)
	if err != nil {
		return nil, err
	}
	return &GetAssetOutput{Asset: a}, nil
}
