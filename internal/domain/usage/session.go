// Package usage holds the core domain model for internet usage analytics:
// recorded sessions, windowed summaries, and the store contract the
// aggregation queries run against.
package usage

import (
	"fmt"
	"strings"
	"time"
)

// Session represents a single recorded internet usage session for a user.
// The total volume is denormalized at construction time and never
// recomputed at query time.
type Session struct {
	id               uint
	username         string
	macAddress       string
	startTime        time.Time
	usageTimeSeconds int
	uploadKB         float64
	downloadKB       float64
	totalKB          float64
}

// NewSession creates a validated usage session. Duplicate
// (username, start_time) pairs are allowed: a user may hold several
// concurrent connections.
func NewSession(
	username string,
	macAddress string,
	startTime time.Time,
	usageTimeSeconds int,
	uploadKB float64,
	downloadKB float64,
) (*Session, error) {
	username = strings.TrimSpace(username)
	macAddress = strings.TrimSpace(macAddress)

	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	if macAddress == "" {
		return nil, fmt.Errorf("mac address cannot be empty")
	}
	if startTime.IsZero() {
		return nil, fmt.Errorf("start time is required")
	}
	if usageTimeSeconds < 0 {
		return nil, fmt.Errorf("usage time cannot be negative")
	}
	if uploadKB < 0 {
		return nil, fmt.Errorf("upload volume cannot be negative")
	}
	if downloadKB < 0 {
		return nil, fmt.Errorf("download volume cannot be negative")
	}

	return &Session{
		username:         username,
		macAddress:       macAddress,
		startTime:        startTime,
		usageTimeSeconds: usageTimeSeconds,
		uploadKB:         uploadKB,
		downloadKB:       downloadKB,
		totalKB:          uploadKB + downloadKB,
	}, nil
}

// ReconstructSession rebuilds a session entity from persistence.
func ReconstructSession(
	id uint,
	username string,
	macAddress string,
	startTime time.Time,
	usageTimeSeconds int,
	uploadKB float64,
	downloadKB float64,
	totalKB float64,
) *Session {
	return &Session{
		id:               id,
		username:         username,
		macAddress:       macAddress,
		startTime:        startTime,
		usageTimeSeconds: usageTimeSeconds,
		uploadKB:         uploadKB,
		downloadKB:       downloadKB,
		totalKB:          totalKB,
	}
}

func (s *Session) ID() uint              { return s.id }
func (s *Session) Username() string      { return s.username }
func (s *Session) MACAddress() string    { return s.macAddress }
func (s *Session) StartTime() time.Time  { return s.startTime }
func (s *Session) UsageTimeSeconds() int { return s.usageTimeSeconds }
func (s *Session) UploadKB() float64     { return s.uploadKB }
func (s *Session) DownloadKB() float64   { return s.downloadKB }
func (s *Session) TotalKB() float64      { return s.totalKB }
