// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/domain/entity"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// AssetRepository defines the interface for asset persistence operations.
// Implementations persist the zakat payment history together with the asset.
type AssetRepository interface {
	// Create persists a new asset.
	Create(ctx context.Context, asset *entity.Asset) error

	// FindByID retrieves an asset by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Asset, error)

	// FindByUserID retrieves all assets of a user in creation order.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Asset, error)

	// FindByUserIDAndType retrieves a user's assets of one type.
	FindByUserIDAndType(ctx context.Context, userID uuid.UUID, assetType valueobject.AssetType) ([]*entity.Asset, error)

	// FindByKind retrieves every asset of one kind across users.
	FindByKind(ctx context.Context, kind entity.AssetKind) ([]*entity.Asset, error)

	// Update saves the asset state and replaces its payment history.
	Update(ctx context.Context, asset *entity.Asset) error

	// Delete removes an asset and its payment history.
	Delete(ctx context.Context, id uuid.UUID) error
}
