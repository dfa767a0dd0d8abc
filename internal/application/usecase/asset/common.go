// Package asset contains use cases for managing zakatable assets.
package asset

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
)

// loadOwnedAsset hides assets of other users behind a not-found error.
func loadOwnedAsset(ctx context.Context, repo adapter.AssetRepository, userID, assetID uuid.UUID) (*entity.Asset, error) {
	a, err := repo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, domainerror.NewZakatError(
			domainerror.ErrCodeAssetNotFound,
			fmt.Sprintf("asset %s not found", assetID),
			domainerror.ErrAssetNotFound,
		)
	}
	return a, nil
}
