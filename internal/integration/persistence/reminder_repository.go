package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
	"github.com/zakat-calculator/backend/internal/integration/persistence/model"
)

// reminderRepository implements the adapter.ReminderRepository interface.
type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new reminder repository instance.
func NewReminderRepository(db *gorm.DB) adapter.ReminderRepository {
	return &reminderRepository{
		db: db,
	}
}

// Create persists a new reminder.
func (r *reminderRepository) Create(ctx context.Context, reminder *entity.Reminder) error {
	return r.db.WithContext(ctx).Create(model.ReminderModelFromEntity(reminder)).Error
}

// CreateBatch persists several reminders in one statement.
func (r *reminderRepository) CreateBatch(ctx context.Context, reminders []*entity.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	models := make([]*model.ReminderModel, len(reminders))
	for i, rem := range reminders {
		models[i] = model.ReminderModelFromEntity(rem)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

// FindByID retrieves a reminder by its ID.
func (r *reminderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reminder, error) {
	var m model.ReminderModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFoundOr(err, domainerror.ErrCodeReminderNotFound, domainerror.ErrReminderNotFound, "reminder", id)
	}
	return m.ToEntity()
}

// FindByUserID retrieves a user's reminders ordered by scheduled date.
func (r *reminderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter adapter.ReminderFilter) ([]*entity.Reminder, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	return r.find(query.Order("scheduled_key ASC, created_at ASC"))
}

// FindDue retrieves pending reminders scheduled on or before date, plus
// snoozed ones whose snooze has elapsed by now.
func (r *reminderRepository) FindDue(ctx context.Context, date valueobject.HijriDate, now time.Time, limit int) ([]*entity.Reminder, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? OR (status = ? AND (snoozed_until IS NULL OR snoozed_until <= ?))",
			string(entity.ReminderStatusPending), string(entity.ReminderStatusSnoozed), now.UTC()).
		Where("scheduled_key <= ?", model.HijriKey(date)).
		Order("scheduled_key ASC, created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	return r.find(query)
}

// Exists reports whether a reminder of the type was already created for the
// date. Dismissed rows count so a dismissal is not undone by regeneration.
func (r *reminderRepository) Exists(ctx context.Context, userID uuid.UUID, assetID *uuid.UUID, reminderType entity.ReminderType, date valueobject.HijriDate) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&model.ReminderModel{}).
		Where("user_id = ? AND type = ? AND scheduled_key = ?", userID, string(reminderType), model.HijriKey(date))
	if assetID != nil {
		query = query.Where("asset_id = ?", *assetID)
	} else {
		query = query.Where("asset_id IS NULL")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update saves changes to a reminder.
func (r *reminderRepository) Update(ctx context.Context, reminder *entity.Reminder) error {
	return r.db.WithContext(ctx).Save(model.ReminderModelFromEntity(reminder)).Error
}

// Delete removes a reminder.
func (r *reminderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ReminderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, domainerror.ErrCodeReminderNotFound, domainerror.ErrReminderNotFound, "reminder", id)
	}
	return nil
}

// DeleteByAssetID removes every reminder tied to an asset.
func (r *reminderRepository) DeleteByAssetID(ctx context.Context, assetID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("asset_id = ?", assetID).Delete(&model.ReminderModel{}).Error
}

func (r *reminderRepository) find(query *gorm.DB) ([]*entity.Reminder, error) {
	var models []model.ReminderModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	reminders := make([]*entity.Reminder, 0, len(models))
	for i := range models {
		rem, err := models[i].ToEntity()
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, nil
}
