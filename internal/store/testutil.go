package store

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/skilltreedocs/skilltreedocs/internal/database"
	"github.com/skilltreedocs/skilltreedocs/internal/model"
	"github.com/skilltreedocs/skilltreedocs/pkg/idgen"
)

// SetupTestDB creates a temp-file SQLite database for testing. The returned
// cleanup function should be deferred.
func SetupTestDB(t *testing.T) (Store, func()) {
	database.ResetForTesting()

	tmpFile, err := os.CreateTemp("", "test_*.db")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()

	if err := database.InitWithPath(tmpPath); err != nil {
		os.Remove(tmpPath)
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	store := NewStore(database.Get())
	cleanup := func() {
		database.Close()
		database.ResetForTesting()
		os.Remove(tmpPath)
		os.Remove(tmpPath + "-wal")
		os.Remove(tmpPath + "-shm")
	}
	return store, cleanup
}

// CreateTestUser creates a user with a fresh session token.
func CreateTestUser(t *testing.T, store Store, overrides ...func(*model.User)) *model.User {
	user := &model.User{
		ID:         idgen.NewUserID(),
		Name:       fmt.Sprintf("user-%s", t.Name()),
		Session:    idgen.NewSessionToken(),
		LastSeenAt: time.Now(),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := store.Users().Create(user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}
