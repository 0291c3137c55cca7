package repository

import (
	"context"
	"time"

	"flightchange-service/internal/domain/entity"
	"flightchange-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormRouteRepository implements the RouteRepository interface
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GORM route repository
func NewGormRouteRepository(db *gorm.DB) repository.RouteRepository {
	return &GormRouteRepository{
		db: db,
	}
}

// Routes GORM model for database mapping
type Routes struct {
	RouteID           uint      `gorm:"column:route_id;primaryKey;autoIncrement"`
	OriginCityID      int       `gorm:"column:origin_city_id;uniqueIndex:idx_routes_natural_key"`
	DestinationCityID int       `gorm:"column:destination_city_id;uniqueIndex:idx_routes_natural_key"`
	DepartureDate     time.Time `gorm:"column:departure_date;uniqueIndex:idx_routes_natural_key"`
}

// TableName overrides the default table name
func (Routes) TableName() string {
	return "routes"
}

func routeToEntity(m *Routes) *entity.Route {
	return &entity.Route{
		RouteID:           m.RouteID,
		OriginCityID:      m.OriginCityID,
		DestinationCityID: m.DestinationCityID,
		DepartureDate:     m.DepartureDate,
	}
}

func routeToModel(e *entity.Route) Routes {
	return Routes{
		RouteID:           e.RouteID,
		OriginCityID:      e.OriginCityID,
		DestinationCityID: e.DestinationCityID,
		DepartureDate:     e.DepartureDate,
	}
}

// Any reports whether any routes exist
func (r *GormRouteRepository) Any(ctx context.Context) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&Routes{}).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// ListAll returns every stored route
func (r *GormRouteRepository) ListAll(ctx context.Context) ([]*entity.Route, error) {
	var models []Routes
	result := r.db.WithContext(ctx).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	routes := make([]*entity.Route, 0, len(models))
	for i := range models {
		routes = append(routes, routeToEntity(&models[i]))
	}
	return routes, nil
}

// FindByIDs returns the routes matching the given surrogate ids, keyed by id
func (r *GormRouteRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*entity.Route, error) {
	routes := make(map[uint]*entity.Route, len(ids))
	if len(ids) == 0 {
		return routes, nil
	}

	var models []Routes
	result := r.db.WithContext(ctx).Where("route_id IN ?", ids).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	for i := range models {
		routes[models[i].RouteID] = routeToEntity(&models[i])
	}
	return routes, nil
}

// PersistBatch saves one import batch in a single transaction
func (r *GormRouteRepository) PersistBatch(ctx context.Context, created []*entity.Route, updated []*entity.Route) error {
	if len(created) == 0 && len(updated) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(created) > 0 {
			models := make([]Routes, 0, len(created))
			for _, e := range created {
				models = append(models, routeToModel(e))
			}
			if err := tx.Create(&models).Error; err != nil {
				return err
			}
			// Propagate store-assigned ids back to the entities so the
			// caller's natural-key index resolves them for flight import.
			for i, e := range created {
				e.RouteID = models[i].RouteID
			}
		}

		for _, e := range updated {
			model := routeToModel(e)
			if err := tx.Save(&model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
