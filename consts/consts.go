// Package consts defines cross-module constants used throughout the application.
package consts

import (
	"sync"
	"time"
)

// ServiceName is the service name reported to logs and telemetry
const ServiceName = "skilltreedocs"

const (
	// ProjectName is the display name of the site
	ProjectName = "Skill Tree Docs"

	// ProjectURL is the source repository URL
	ProjectURL = "https://github.com/skilltreedocs/skilltreedocs"
)

// Skill value bounds accepted from the injected range controls.
const (
	MinSkillValue = 0
	MaxSkillValue = 100
)

// Build information, set via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	startedAt   time.Time
	startedOnce sync.Once
)

// SetStartedAt records the server start time. Only the first call counts.
func SetStartedAt(t time.Time) {
	startedOnce.Do(func() {
		startedAt = t
	})
}

// GetStartedAt returns the server start time
func GetStartedAt() time.Time {
	return startedAt
}

// GetUptime returns the duration since the server started
func GetUptime() time.Duration {
	if startedAt.IsZero() {
		return 0
	}
	return time.Since(startedAt)
}
