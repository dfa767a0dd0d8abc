package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
	"github.com/zakat-calculator/backend/internal/integration/persistence/model"
)

// assetRepository implements the adapter.AssetRepository interface.
// Payments live in their own table and are loaded with every asset.
type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository instance.
func NewAssetRepository(db *gorm.DB) adapter.AssetRepository {
	return &assetRepository{
		db: db,
	}
}

// Create persists the asset and its payment history.
func (r *assetRepository) Create(ctx context.Context, asset *entity.Asset) error {
	return r.db.WithContext(ctx).Create(model.AssetModelFromEntity(asset)).Error
}

// FindByID retrieves an asset by its ID.
func (r *assetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Asset, error) {
	var m model.AssetModel
	err := r.db.WithContext(ctx).
		Preload("Payments", orderPayments).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, notFoundOr(err, domainerror.ErrCodeAssetNotFound, domainerror.ErrAssetNotFound, "asset", id)
	}
	return m.ToEntity()
}

// FindByUserID retrieves all assets of a user in creation order.
func (r *assetRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Asset, error) {
	return r.find(ctx, r.db.Where("user_id = ?", userID))
}

// FindByUserIDAndType retrieves a user's assets of one type.
func (r *assetRepository) FindByUserIDAndType(ctx context.Context, userID uuid.UUID, assetType valueobject.AssetType) ([]*entity.Asset, error) {
	return r.find(ctx, r.db.Where("user_id = ? AND type = ?", userID, string(assetType)))
}

// FindByKind retrieves every asset of one kind across users.
func (r *assetRepository) FindByKind(ctx context.Context, kind entity.AssetKind) ([]*entity.Asset, error) {
	return r.find(ctx, r.db.Where("kind = ?", string(kind)))
}

// Update saves the asset row and replaces its payment history in one transaction.
func (r *assetRepository) Update(ctx context.Context, asset *entity.Asset) error {
	m := model.AssetModelFromEntity(asset)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return fmt.Errorf("failed to save asset: %w", err)
		}
		if err := tx.Where("asset_id = ?", m.ID).Delete(&model.ZakatPaymentModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear payments: %w", err)
		}
		if len(m.Payments) == 0 {
			return nil
		}
		if err := tx.Create(&m.Payments).Error; err != nil {
			return fmt.Errorf("failed to save payments: %w", err)
		}
		return nil
	})
}

// Delete removes an asset and its payment history.
func (r *assetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_id = ?", id).Delete(&model.ZakatPaymentModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.AssetModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return notFoundOr(gorm.ErrRecordNotFound, domainerror.ErrCodeAssetNotFound, domainerror.ErrAssetNotFound, "asset", id)
		}
		return nil
	})
}

func (r *assetRepository) find(ctx context.Context, scope *gorm.DB) ([]*entity.Asset, error) {
	var models []model.AssetModel
	result := scope.WithContext(ctx).
		Preload("Payments", orderPayments).
		Order("created_at ASC, id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	assets := make([]*entity.Asset, 0, len(models))
	for i := range models {
		a, err := models[i].ToEntity()
		if err != nil {
			return nil, fmt.Errorf("failed to restore asset %s: %w", models[i].ID, err)
		}
		assets = append(assets, a)
	}
	return assets, nil
}

func orderPayments(db *gorm.DB) *gorm.DB {
	return db.Order("hijri_year ASC")
}
