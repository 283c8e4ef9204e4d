package sqlite

import (
	"context"

	"shield/internal/domain/entity"
	domainerrors "shield/internal/domain/errors"
	"shield/internal/domain/repository"
	"shield/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByEmail retrieves a single user by their login email.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// FindByID retrieves a single user by their numeric id.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// RegisterPushToken stores the push token for a user, creating the user row
// when it does not exist yet. A non-empty name replaces the stored name.
func (repo *userRepository) RegisterPushToken(ctx context.Context, userID int64, token, name string) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userM model.UserModel
		err := tx.Where("id = ?", userID).First(&userM).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			userM = model.UserModel{
				ID:            userID,
				Name:          name,
				ExpoPushToken: token,
			}

			return tx.Create(&userM).Error
		}
		if err != nil {
			return err
		}

		updates := map[string]any{"expo_push_token": token}
		if name != "" {
			updates["name"] = name
		}

		return tx.Model(&userM).Updates(updates).Error
	})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to register push token")
	}

	return nil
}

// ListPushTokensExcept returns the non-empty push tokens of every user except
// the given one.
func (repo *userRepository) ListPushTokensExcept(ctx context.Context, userID int64) ([]string, error) {
	var tokens []string
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id <> ?", userID).
		Where("expo_push_token <> ''").
		Pluck("expo_push_token", &tokens).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list push tokens")
	}

	return tokens, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	var email string
	if data.Email != nil {
		email = *data.Email
	}

	return &entity.User{
		ID:            data.ID,
		Email:         email,
		PasswordHash:  data.PasswordHash,
		Name:          data.Name,
		ExpoPushToken: data.ExpoPushToken,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	var email *string
	if data.Email != "" {
		email = &data.Email
	}

	return &model.UserModel{
		ID:            data.ID,
		Email:         email,
		PasswordHash:  data.PasswordHash,
		Name:          data.Name,
		ExpoPushToken: data.ExpoPushToken,
	}
}
