package repositories

import (
	"context"

	gormModels "ground-experiment/groundlink/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AirportRepository handles airport table operations
type AirportRepository struct {
	db *gorm.DB
}

// NewAirportRepository creates a new airport repository
func NewAirportRepository(db *gorm.DB) *AirportRepository {
	return &AirportRepository{db: db}
}

// FindByICAO finds an airport by ICAO code (case-insensitive)
func (r *AirportRepository) FindByICAO(ctx context.Context, icao string) (*gormModels.Airport, error) {
	var airport gormModels.Airport

	err := r.db.WithContext(ctx).
		Where("UPPER(icao) = UPPER(?)", icao).
		First(&airport).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &airport, nil
}

// ListAll returns all airports ordered by ICAO code
func (r *AirportRepository) ListAll(ctx context.Context) ([]gormModels.Airport, error) {
	var airports []gormModels.Airport
	err := r.db.WithContext(ctx).
		Order("icao asc").
		Find(&airports).Error
	return airports, err
}

// UpsertAirport inserts or refreshes one airport row; seeding runs this
// idempotently at startup
func (r *AirportRepository) UpsertAirport(ctx context.Context, airport *gormModels.Airport) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "icao"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(airport).Error
}

// Count returns total number of airports
func (r *AirportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gormModels.Airport{}).Count(&count).Error
	return count, err
}
