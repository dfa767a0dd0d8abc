// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/domain/entity"
)

// LiabilityRepository defines the interface for liability persistence operations.
type LiabilityRepository interface {
	// Create persists a new liability.
	Create(ctx context.Context, liability *entity.Liability) error

	// FindByID retrieves a liability by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Liability, error)

	// FindByUserID retrieves all liabilities of a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Liability, error)

	// FindDeductibleByUserID retrieves the liabilities marked immediately due.
	FindDeductibleByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Liability, error)

	// Update saves changes to a liability.
	Update(ctx context.Context, liability *entity.Liability) error

	// Delete removes a liability.
	Delete(ctx context.Context, id uuid.UUID) error
}
