package store

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
	"github.com/skilltreedocs/skilltreedocs/pkg/telemetry"
)

const (
	// DefaultSessionRetentionDays is used when retention is not configured
	DefaultSessionRetentionDays = 90
	// SessionCleanupSchedule runs the purge daily at 3 AM
	SessionCleanupSchedule = "0 3 * * *"
)

// SessionCleanupService purges sessions idle longer than the retention period,
// together with their skill values.
type SessionCleanupService struct {
	store         Store
	cron          *cron.Cron
	retentionDays int
	entryID       cron.EntryID
	mu            sync.RWMutex
	running       sync.WaitGroup
	now           func() time.Time
}

// NewSessionCleanupService creates a cleanup service
func NewSessionCleanupService(store Store, retentionDays int) *SessionCleanupService {
	if retentionDays <= 0 {
		retentionDays = DefaultSessionRetentionDays
	}
	return &SessionCleanupService{
		store:         store,
		cron:          cron.New(),
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// Start schedules the purge and runs one immediately in the background.
func (s *SessionCleanupService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, err := s.cron.AddFunc(SessionCleanupSchedule, s.cleanup)
	if err != nil {
		logger.Error("Failed to schedule session cleanup", zap.Error(err))
		return err
	}
	s.entryID = entryID
	s.cron.Start()

	logger.Info("Session cleanup service started",
		zap.String("schedule", SessionCleanupSchedule),
		zap.Int("retention_days", s.retentionDays),
	)

	s.running.Add(1)
	go func() {
		defer s.running.Done()
		s.cleanup()
	}()
	return nil
}

// Stop stops the scheduler and waits for a running purge.
func (s *SessionCleanupService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running.Wait()
	logger.Info("Session cleanup service stopped")
}

// RetentionDays returns the configured retention.
func (s *SessionCleanupService) RetentionDays() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.retentionDays
}

// SetRetentionDays takes effect on the next purge
func (s *SessionCleanupService) SetRetentionDays(days int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if days <= 0 {
		days = DefaultSessionRetentionDays
	}
	s.retentionDays = days
}

// Purge removes sessions not seen within the retention period and returns
// how many were removed.
func (s *SessionCleanupService) Purge() (int64, error) {
	cutoff := s.now().AddDate(0, 0, -s.RetentionDays())

	var purged int64
	err := s.store.Transaction(func(tx Store) error {
		sessions, err := tx.Users().InactiveSessions(cutoff)
		if err != nil {
			return err
		}
		if _, err := tx.SkillValues().DeleteBySessions(sessions); err != nil {
			return err
		}
		purged, err = tx.Users().DeleteBySessions(sessions)
		return err
	})
	if err != nil {
		return 0, err
	}
	return purged, nil
}

func (s *SessionCleanupService) cleanup() {
	start := time.Now()
	purged, err := s.Purge()
	if err != nil {
		logger.Error("Failed to purge inactive sessions",
			zap.Int("retention_days", s.RetentionDays()),
			zap.Error(err),
		)
		return
	}
	telemetry.GetMetrics().RecordSessionsPurged(context.Background(), purged)
	logger.Info("Session cleanup completed",
		zap.Int64("purged", purged),
		zap.Int("retention_days", s.RetentionDays()),
		zap.Duration("duration", time.Since(start)),
	)
}
