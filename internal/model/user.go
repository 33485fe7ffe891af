package model

import (
	"time"

	"gorm.io/gorm"
)

// User is a visitor tracking progress through the skill tree. Session is the
// token embedded in tab URLs and update requests.
type User struct {
	ID        string         `gorm:"primarykey;size:20" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name       string    `gorm:"size:128;not null" json:"name"`
	Session    string    `gorm:"size:64;not null;uniqueIndex" json:"session"`
	LastSeenAt time.Time `gorm:"index" json:"last_seen_at"`
}

// SkillValue is one user's 0-100 progress value for one skill.
type SkillValue struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Session string `gorm:"size:64;not null;uniqueIndex:idx_session_skill,priority:1" json:"session"`
	Skill   string `gorm:"size:255;not null;uniqueIndex:idx_session_skill,priority:2" json:"skill"`
	Value   int    `gorm:"not null;default:0" json:"value"`
}

// AllModels returns all models for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&SkillValue{},
	}
}
