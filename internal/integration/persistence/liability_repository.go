package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/integration/persistence/model"
)

// liabilityRepository implements the adapter.LiabilityRepository interface.
type liabilityRepository struct {
	db *gorm.DB
}

// NewLiabilityRepository creates a new liability repository instance.
func NewLiabilityRepository(db *gorm.DB) adapter.LiabilityRepository {
	return &liabilityRepository{
		db: db,
	}
}

// Create persists a new liability.
func (r *liabilityRepository) Create(ctx context.Context, liability *entity.Liability) error {
	return r.db.WithContext(ctx).Create(model.LiabilityModelFromEntity(liability)).Error
}

// FindByID retrieves a liability by its ID.
func (r *liabilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Liability, error) {
	var m model.LiabilityModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFoundOr(err, domainerror.ErrCodeLiabilityNotFound, domainerror.ErrLiabilityNotFound, "liability", id)
	}
	return m.ToEntity()
}

// FindByUserID retrieves all liabilities of a user.
func (r *liabilityRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Liability, error) {
	return r.find(ctx, r.db.Where("user_id = ?", userID))
}

// FindDeductibleByUserID retrieves the liabilities marked immediately due.
func (r *liabilityRepository) FindDeductibleByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Liability, error) {
	return r.find(ctx, r.db.Where("user_id = ? AND is_immediately_due = ?", userID, true))
}

// Update saves changes to a liability.
func (r *liabilityRepository) Update(ctx context.Context, liability *entity.Liability) error {
	return r.db.WithContext(ctx).Save(model.LiabilityModelFromEntity(liability)).Error
}

// Delete removes a liability.
func (r *liabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.LiabilityModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, domainerror.ErrCodeLiabilityNotFound, domainerror.ErrLiabilityNotFound, "liability", id)
	}
	return nil
}

func (r *liabilityRepository) find(ctx context.Context, scope *gorm.DB) ([]*entity.Liability, error) {
	var models []model.LiabilityModel
	if err := scope.WithContext(ctx).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	liabilities := make([]*entity.Liability, 0, len(models))
	for i := range models {
		l, err := models[i].ToEntity()
		if err != nil {
			return nil, err
		}
		liabilities = append(liabilities, l)
	}
	return liabilities, nil
}
