// Package store is the data access layer for users and their skill values.
package store

import "gorm.io/gorm"

// Store aggregates the per-model stores.
type Store interface {
	Users() UserStore
	SkillValues() SkillValueStore

	// DB returns the underlying connection.
	DB() *gorm.DB

	// Transaction runs fn with stores bound to one transaction.
	Transaction(fn func(Store) error) error
}

type gormStore struct {
	db         *gorm.DB
	userStore  UserStore
	valueStore SkillValueStore
}

// NewStore creates a Store backed by db.
func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:         db,
		userStore:  newUserStore(db),
		valueStore: newSkillValueStore(db),
	}
}

func (s *gormStore) Users() UserStore {
	return s.userStore
}

func (s *gormStore) SkillValues() SkillValueStore {
	return s.valueStore
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) Transaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
