package repository

import (
	"context"
	"errors"

	"flightchange-service/internal/domain/entity"
	"flightchange-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormSubscriptionRepository implements the SubscriptionRepository interface
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GORM subscription repository
func NewGormSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &GormSubscriptionRepository{
		db: db,
	}
}

// Subscriptions GORM model for database mapping
type Subscriptions struct {
	AgencyID          int `gorm:"column:agency_id;primaryKey"`
	OriginCityID      int `gorm:"column:origin_city_id;primaryKey"`
	DestinationCityID int `gorm:"column:destination_city_id;primaryKey"`
}

// TableName overrides the default table name
func (Subscriptions) TableName() string {
	return "subscriptions"
}

func subscriptionToEntity(m *Subscriptions) *entity.Subscription {
	return &entity.Subscription{
		AgencyID:          m.AgencyID,
		OriginCityID:      m.OriginCityID,
		DestinationCityID: m.DestinationCityID,
	}
}

func subscriptionToModel(e *entity.Subscription) Subscriptions {
	return Subscriptions{
		AgencyID:          e.AgencyID,
		OriginCityID:      e.OriginCityID,
		DestinationCityID: e.DestinationCityID,
	}
}

// FindByKey looks up a subscription by its composite key
func (r *GormSubscriptionRepository) FindByKey(ctx context.Context, agencyID, originCityID, destinationCityID int) (*entity.Subscription, error) {
	var model Subscriptions
	result := r.db.WithContext(ctx).
		Where("agency_id = ? AND origin_city_id = ? AND destination_city_id = ?", agencyID, originCityID, destinationCityID).
		First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return subscriptionToEntity(&model), nil
}

// PersistBatch saves one import batch in a single transaction
func (r *GormSubscriptionRepository) PersistBatch(ctx context.Context, created []*entity.Subscription, updated []*entity.Subscription) error {
	if len(created) == 0 && len(updated) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(created) > 0 {
			models := make([]Subscriptions, 0, len(created))
			for _, e := range created {
				models = append(models, subscriptionToModel(e))
			}
			if err := tx.Create(&models).Error; err != nil {
				return err
			}
		}

		for _, e := range updated {
			model := subscriptionToModel(e)
			if err := tx.Save(&model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByAgency returns every subscription held by the given agency
func (r *GormSubscriptionRepository) ListByAgency(ctx context.Context, agencyID int) ([]*entity.Subscription, error) {
	var models []Subscriptions
	result := r.db.WithContext(ctx).Where("agency_id = ?", agencyID).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	subscriptions := make([]*entity.Subscription, 0, len(models))
	for i := range models {
		subscriptions = append(subscriptions, subscriptionToEntity(&models[i]))
	}
	return subscriptions, nil
}
