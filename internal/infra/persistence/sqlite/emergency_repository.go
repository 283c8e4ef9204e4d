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
)

// emergencyRepository implements the repository.EmergencyRepository interface using GORM.
type emergencyRepository struct {
	db *gorm.DB
}

// NewEmergencyRepository is the constructor for emergencyRepository.
func NewEmergencyRepository(db *gorm.DB) repository.EmergencyRepository {
	return &emergencyRepository{db: db}
}

// Create appends an emergency event to the log.
func (repo *emergencyRepository) Create(ctx context.Context, emergency *entity.Emergency) error {
	emergencyM := model.EmergencyModel{
		UserID:    emergency.UserID,
		Latitude:  emergency.Latitude,
		Longitude: emergency.Longitude,
	}

	if err := repo.db.WithContext(ctx).Create(&emergencyM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create emergency")
	}

	emergency.ID = emergencyM.ID
	emergency.CreatedAt = emergencyM.CreatedAt

	return nil
}

// ListRecent returns events newest-first. The since cursor is exclusive:
// only events strictly newer than it are returned.
func (repo *emergencyRepository) ListRecent(ctx context.Context, since *time.Time, excludeUser int64, limit int) ([]*entity.Emergency, error) {
	query := repo.db.WithContext(ctx).Model(&model.EmergencyModel{})

	// SQLite compares timestamp text lexically; normalizing the cursor to
	// UTC keeps it in the same offset the rows were stamped with.
	if since != nil {
		query = query.Where("created_at > ?", since.UTC())
	}
	if excludeUser > 0 {
		query = query.Where("user_id <> ?", excludeUser)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var emergencyMs []model.EmergencyModel
	if err := query.Order("created_at DESC").Find(&emergencyMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list recent emergencies")
	}

	emergencies := make([]*entity.Emergency, 0, len(emergencyMs))
	for i := range emergencyMs {
		emergencies = append(emergencies, toEmergencyDomain(&emergencyMs[i]))
	}

	return emergencies, nil
}

// toEmergencyDomain converts a GORM EmergencyModel to a domain Emergency entity.
func toEmergencyDomain(data *model.EmergencyModel) *entity.Emergency {
	if data == nil {
		return nil
	}

	return &entity.Emergency{
		ID:        data.ID,
		UserID:    data.UserID,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
		CreatedAt: data.CreatedAt,
	}
}
