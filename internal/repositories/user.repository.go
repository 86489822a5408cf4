package repositories

import (
	"context"
	"errors"
	"healthdash/internal/database"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"healthdash/internal/services"
	"time"

	"gorm.io/gorm"
)

const (
	USER_CACHE_EXPIRY = 1 * time.Hour
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Upsert(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Exists(ctx context.Context, id string) (bool, error)
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUser(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	found, err := database.NewCacheBuilder(r.db.Cache.User, id).WithContext(ctx).Get(&user)
	if err != nil {
		log.Warn("failed to read user from cache", "userID", id, "error", err)
	}
	if found {
		return &user, nil
	}

	if err := r.getDB(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get user by id", err, "id", id)
	}

	if err := r.addUserToCache(ctx, &user); err != nil {
		log.Warn("failed to add user to cache", "userID", id, "error", err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	log := r.log.Function("GetByEmail")

	var user User
	if err := r.getDB(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get user by email", err, "email", email)
	}

	return &user, nil
}

// Upsert creates the user row on first login and refreshes identity fields on
// subsequent ones. Subscription fields are never touched here.
func (r *userRepository) Upsert(ctx context.Context, user *User) error {
	log := r.log.Function("Upsert")

	var existing User
	err := r.getDB(ctx).First(&existing, "id = ?", user.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.getDB(ctx).Create(user).Error; err != nil {
			return log.Err("failed to create user", err, "userID", user.ID)
		}
	case err != nil:
		return log.Err("failed to look up user", err, "userID", user.ID)
	default:
		updates := map[string]any{
			"email":             user.Email,
			"first_name":        user.FirstName,
			"last_name":         user.LastName,
			"profile_image_url": user.ProfileImageURL,
		}
		if err := r.getDB(ctx).Model(&existing).Updates(updates).Error; err != nil {
			return log.Err("failed to update user identity", err, "userID", user.ID)
		}
		*user = existing
	}

	if err := r.addUserToCache(ctx, user); err != nil {
		log.Warn("failed to add user to cache", "userID", user.ID, "error", err)
	}

	return nil
}

func (r *userRepository) Update(ctx context.Context, user *User) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(user).Error; err != nil {
		return log.Err("failed to update user", err, "userID", user.ID)
	}

	if err := r.addUserToCache(ctx, user); err != nil {
		log.Warn("failed to update user in cache", "userID", user.ID, "error", err)
	}

	return nil
}

func (r *userRepository) Exists(ctx context.Context, id string) (bool, error) {
	log := r.log.Function("Exists")

	var count int64
	if err := r.getDB(ctx).Model(&User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, log.Err("failed to count users", err, "id", id)
	}

	return count > 0, nil
}

func (r *userRepository) addUserToCache(ctx context.Context, user *User) error {
	return database.NewCacheBuilder(r.db.Cache.User, user.ID).
		WithStruct(user).
		WithTTL(USER_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}
