package sqlite

import (
	"context"
	"time"

	"shield/internal/domain/entity"
	domainerrors "shield/internal/domain/errors"
	"shield/internal/domain/repository"
	"shield/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// locationRepository implements the repository.LocationRepository interface using GORM.
type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository is the constructor for locationRepository.
func NewLocationRepository(db *gorm.DB) repository.LocationRepository {
	return &locationRepository{db: db}
}

// Upsert inserts or overwrites the single location row for a user.
func (repo *locationRepository) Upsert(ctx context.Context, userID int64, lat, lon float64) error {
	locationM := model.LocationModel{
		UserID:      userID,
		Latitude:    lat,
		Longitude:   lon,
		LastUpdated: time.Now().UTC(),
	}

	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "last_updated"}),
	}).Create(&locationM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert location")
	}

	return nil
}

// ListAll returns the last-known position of every user.
func (repo *locationRepository) ListAll(ctx context.Context) ([]*entity.Location, error) {
	var locationMs []model.LocationModel
	if err := repo.db.WithContext(ctx).Find(&locationMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list locations")
	}

	locations := make([]*entity.Location, 0, len(locationMs))
	for i := range locationMs {
		locations = append(locations, toLocationDomain(&locationMs[i]))
	}

	return locations, nil
}

// toLocationDomain converts a GORM LocationModel to a domain Location entity.
func toLocationDomain(data *model.LocationModel) *entity.Location {
	if data == nil {
		return nil
	}

	return &entity.Location{
		UserID:      data.UserID,
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		LastUpdated: data.LastUpdated,
	}
}
