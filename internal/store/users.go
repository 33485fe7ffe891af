package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/skilltreedocs/skilltreedocs/internal/model"
)

// UserStore defines operations on users.
type UserStore interface {
	Create(user *model.User) error
	GetByID(id string) (*model.User, error)
	GetBySession(session string) (*model.User, error)
	// Touch records activity for a session.
	Touch(session string, at time.Time) error
	Count() (int64, error)
	// InactiveSessions lists sessions not seen since cutoff.
	InactiveSessions(cutoff time.Time) ([]string, error)
	// DeleteBySessions permanently removes the given sessions' users.
	DeleteBySessions(sessions []string) (int64, error)
}

type userStore struct {
	db *gorm.DB
}

func newUserStore(db *gorm.DB) UserStore {
	return &userStore{db: db}
}

func (s *userStore) Create(user *model.User) error {
	if user.LastSeenAt.IsZero() {
		user.LastSeenAt = time.Now()
	}
	return s.db.Create(user).Error
}

func (s *userStore) GetByID(id string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userStore) GetBySession(session string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("session = ?", session).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userStore) Touch(session string, at time.Time) error {
	return s.db.Model(&model.User{}).
		Where("session = ?", session).
		Update("last_seen_at", at).Error
}

func (s *userStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&model.User{}).Count(&count).Error
	return count, err
}

func (s *userStore) InactiveSessions(cutoff time.Time) ([]string, error) {
	var sessions []string
	err := s.db.Model(&model.User{}).
		Where("last_seen_at < ?", cutoff).
		Pluck("session", &sessions).Error
	return sessions, err
}

func (s *userStore) DeleteBySessions(sessions []string) (int64, error) {
	if len(sessions) == 0 {
		return 0, nil
	}
	result := s.db.Unscoped().Where("session IN ?", sessions).Delete(&model.User{})
	return result.RowsAffected, result.Error
}
