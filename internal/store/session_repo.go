package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("record not found")

// SessionRepo is keyed durable storage for lesson-creation sessions.
type SessionRepo interface {
	// Create inserts a new session row.
	Create(ctx context.Context, s *Session) error

	// Get loads a session by its id. Returns ErrNotFound if unknown.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Save writes the full mutable state of the session back.
	Save(ctx context.Context, s *Session) error

	// ListActive returns all of the user's sessions still in progress.
	ListActive(ctx context.Context, userID string) ([]Session, error)

	// Delete removes the user's session. Returns ErrNotFound when the
	// session does not exist or belongs to someone else.
	Delete(ctx context.Context, sessionID, userID string) error
}

type sessionRepo struct {
	db *gorm.DB
}

func (r *sessionRepo) Create(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) Get(ctx context.Context, sessionID string) (*Session, error) {
	var s Session
	err := r.db.WithContext(ctx).First(&s, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) Save(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *sessionRepo) ListActive(ctx context.Context, userID string) ([]Session, error) {
	var sessions []Session
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, StatusInProgress).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) Delete(ctx context.Context, sessionID, userID string) error {
	res := r.db.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Delete(&Session{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
