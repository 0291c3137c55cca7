package repository

import (
	"context"
	"errors"
	"time"

	"flightchange-service/internal/domain/entity"
	"flightchange-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormFlightRepository implements the FlightRepository interface
type GormFlightRepository struct {
	db *gorm.DB
}

// NewGormFlightRepository creates a new GORM flight repository
func NewGormFlightRepository(db *gorm.DB) repository.FlightRepository {
	return &GormFlightRepository{
		db: db,
	}
}

// Flights GORM model for database mapping
type Flights struct {
	FlightID      uint      `gorm:"column:flight_id;primaryKey;autoIncrement"`
	RouteID       uint      `gorm:"column:route_id;not null;index"`
	DepartureTime time.Time `gorm:"column:departure_time;index"`
	ArrivalTime   time.Time `gorm:"column:arrival_time"`
	AirlineID     int       `gorm:"column:airline_id"`
	Route         Routes    `gorm:"foreignKey:RouteID;references:RouteID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the default table name
func (Flights) TableName() string {
	return "flights"
}

func flightToEntity(m *Flights) *entity.Flight {
	return &entity.Flight{
		FlightID:      m.FlightID,
		RouteID:       m.RouteID,
		DepartureTime: m.DepartureTime,
		ArrivalTime:   m.ArrivalTime,
		AirlineID:     m.AirlineID,
	}
}

func flightToModel(e *entity.Flight) Flights {
	return Flights{
		FlightID:      e.FlightID,
		RouteID:       e.RouteID,
		DepartureTime: e.DepartureTime,
		ArrivalTime:   e.ArrivalTime,
		AirlineID:     e.AirlineID,
	}
}

// FindByNaturalKey looks up a flight by (route id, departure time, airline id)
func (r *GormFlightRepository) FindByNaturalKey(ctx context.Context, routeID uint, departure time.Time, airlineID int) (*entity.Flight, error) {
	var model Flights
	result := r.db.WithContext(ctx).
		Where("route_id = ? AND departure_time = ? AND airline_id = ?", routeID, departure, airlineID).
		First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return flightToEntity(&model), nil
}

// PersistBatch saves one import batch in a single transaction
func (r *GormFlightRepository) PersistBatch(ctx context.Context, created []*entity.Flight, updated []*entity.Flight) error {
	if len(created) == 0 && len(updated) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(created) > 0 {
			models := make([]Flights, 0, len(created))
			for _, e := range created {
				models = append(models, flightToModel(e))
			}
			if err := tx.Create(&models).Error; err != nil {
				return err
			}
			for i, e := range created {
				e.FlightID = models[i].FlightID
			}
		}

		for _, e := range updated {
			model := flightToModel(e)
			if err := tx.Save(&model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByCorridor returns flights on the given corridor departing within
// [start, end] inclusive, with Route populated
func (r *GormFlightRepository) ListByCorridor(ctx context.Context, originCityID, destinationCityID int, start, end time.Time) ([]*entity.Flight, error) {
	var models []Flights
	result := r.db.WithContext(ctx).
		Joins("JOIN routes ON routes.route_id = flights.route_id").
		Where("routes.origin_city_id = ? AND routes.destination_city_id = ?", originCityID, destinationCityID).
		Where("flights.departure_time >= ? AND flights.departure_time <= ?", start, end).
		Preload("Route").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	flights := make([]*entity.Flight, 0, len(models))
	for i := range models {
		f := flightToEntity(&models[i])
		f.Route = routeToEntity(&models[i].Route)
		flights = append(flights, f)
	}
	return flights, nil
}
