package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skilltreedocs/skilltreedocs/internal/model"
)

func TestSessionCleanupService_Purge(t *testing.T) {
	store, cleanup := SetupTestDB(t)
	defer cleanup()

	stale := CreateTestUser(t, store, func(u *model.User) {
		u.LastSeenAt = time.Now().AddDate(0, 0, -10)
	})
	fresh := CreateTestUser(t, store)
	require.NoError(t, store.SkillValues().Upsert(stale.Session, "handstand", 10))
	require.NoError(t, store.SkillValues().Upsert(fresh.Session, "handstand", 20))

	svc := NewSessionCleanupService(store, 7)
	purged, err := svc.Purge()
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = store.Users().GetBySession(stale.Session)
	assert.Error(t, err)
	_, err = store.Users().GetBySession(fresh.Session)
	assert.NoError(t, err)

	values, err := store.SkillValues().ValuesBySession(stale.Session)
	require.NoError(t, err)
	assert.Empty(t, values)
	values, err = store.SkillValues().ValuesBySession(fresh.Session)
	require.NoError(t, err)
	assert.Equal(t, 20, values["handstand"])
}

func TestSessionCleanupService_RetentionDefaults(t *testing.T) {
	svc := NewSessionCleanupService(nil, 0)
	assert.Equal(t, DefaultSessionRetentionDays, svc.RetentionDays())

	svc.SetRetentionDays(3)
	assert.Equal(t, 3, svc.RetentionDays())
	svc.SetRetentionDays(-1)
	assert.Equal(t, DefaultSessionRetentionDays, svc.RetentionDays())
}

func TestSessionCleanupService_UsesClock(t *testing.T) {
	store, cleanup := SetupTestDB(t)
	defer cleanup()

	CreateTestUser(t, store)
	svc := NewSessionCleanupService(store, 1)
	svc.now = func() time.Time { return time.Now().AddDate(0, 0, 2) }

	purged, err := svc.Purge()
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}

func TestSessionCleanupService_StartStop(t *testing.T) {
	store, cleanup := SetupTestDB(t)
	defer cleanup()

	svc := NewSessionCleanupService(store, 30)
	require.NoError(t, svc.Start())
	svc.Stop()
}
