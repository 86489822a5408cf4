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
	SESSION_CACHE_EXPIRY = 30 * time.Minute
)

type SessionRepository interface {
	Get(ctx context.Context, sid string) (*Session, error)
	Create(ctx context.Context, session *Session) error
	Delete(ctx context.Context, sid string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type sessionRepository struct {
	db  database.DB
	log logger.Logger
}

func NewSession(db database.DB) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: logger.New("sessionRepository"),
	}
}

func (r *sessionRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// Get returns the session only while it is unexpired: the expire timestamp is
// authoritative even if a stale copy is still cached.
func (r *sessionRepository) Get(ctx context.Context, sid string) (*Session, error) {
	log := r.log.Function("Get")

	var session Session
	found, err := database.NewCacheBuilder(r.db.Cache.Session, sid).WithContext(ctx).Get(&session)
	if err != nil {
		log.Warn("failed to read session from cache", "error", err)
	}

	if !found {
		if err := r.getDB(ctx).First(&session, "sid = ?", sid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, log.Err("failed to get session", err)
		}
	}

	if session.Expired() {
		return nil, ErrNotFound
	}

	if !found {
		if err := r.addSessionToCache(ctx, &session); err != nil {
			log.Warn("failed to cache session", "error", err)
		}
	}

	return &session, nil
}

func (r *sessionRepository) Create(ctx context.Context, session *Session) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(session).Error; err != nil {
		return log.Err("failed to create session", err)
	}

	if err := r.addSessionToCache(ctx, session); err != nil {
		log.Warn("failed to cache session", "error", err)
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, sid string) error {
	log := r.log.Function("Delete")

	if err := r.getDB(ctx).Delete(&Session{}, "sid = ?", sid).Error; err != nil {
		return log.Err("failed to delete session", err)
	}

	if err := database.NewCacheBuilder(r.db.Cache.Session, sid).WithContext(ctx).Delete(); err != nil {
		log.Warn("failed to remove session from cache", "error", err)
	}

	return nil
}

// DeleteExpired reaps rows past their expire timestamp.
func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	log := r.log.Function("DeleteExpired")

	result := r.getDB(ctx).Where("expires_at < ?", time.Now()).Delete(&Session{})
	if result.Error != nil {
		return 0, log.Err("failed to delete expired sessions", result.Error)
	}

	if result.RowsAffected > 0 {
		log.Info("reaped expired sessions", "count", result.RowsAffected)
	}

	return result.RowsAffected, nil
}

func (r *sessionRepository) addSessionToCache(ctx context.Context, session *Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl > SESSION_CACHE_EXPIRY {
		ttl = SESSION_CACHE_EXPIRY
	}
	if ttl <= 0 {
		return nil
	}

	return database.NewCacheBuilder(r.db.Cache.Session, session.SID).
		WithStruct(session).
		WithTTL(ttl).
		WithContext(ctx).
		Set()
}
