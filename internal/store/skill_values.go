package store

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skilltreedocs/skilltreedocs/internal/model"
)

// SkillValueStore defines operations on per-session skill values.
type SkillValueStore interface {
	// Upsert sets the value for (session, skill), creating the row if needed.
	Upsert(session, skill string, value int) error
	Get(session, skill string) (*model.SkillValue, error)
	ListBySession(session string) ([]model.SkillValue, error)
	// ValuesBySession maps skill identifier to value for one session.
	ValuesBySession(session string) (map[string]int, error)
	DeleteBySessions(sessions []string) (int64, error)
	Count() (int64, error)
}

type skillValueStore struct {
	db *gorm.DB
}

func newSkillValueStore(db *gorm.DB) SkillValueStore {
	return &skillValueStore{db: db}
}

func (s *skillValueStore) Upsert(session, skill string, value int) error {
	row := &model.SkillValue{Session: session, Skill: skill, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session"}, {Name: "skill"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(row).Error
}

func (s *skillValueStore) Get(session, skill string) (*model.SkillValue, error) {
	var v model.SkillValue
	if err := s.db.Where("session = ? AND skill = ?", session, skill).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *skillValueStore) ListBySession(session string) ([]model.SkillValue, error) {
	var values []model.SkillValue
	err := s.db.Where("session = ?", session).Order("skill ASC").Find(&values).Error
	return values, err
}

func (s *skillValueStore) ValuesBySession(session string) (map[string]int, error) {
	values, err := s.ListBySession(session)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(values))
	for _, v := range values {
		out[v.Skill] = v.Value
	}
	return out, nil
}

func (s *skillValueStore) DeleteBySessions(sessions []string) (int64, error) {
	if len(sessions) == 0 {
		return 0, nil
	}
	result := s.db.Where("session IN ?", sessions).Delete(&model.SkillValue{})
	return result.RowsAffected, result.Error
}

func (s *skillValueStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&model.SkillValue{}).Count(&count).Error
	return count, err
}
