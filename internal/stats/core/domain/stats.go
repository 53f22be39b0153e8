package domain

import (
	"fmt"
	"time"
)

// Time layouts used as map keys for the bucket collections. Always UTC.
const (
	HourKeyLayout = "2006-01-02T15"
	DayKeyLayout  = "2006-01-02"
)

// Snapshot holds the aggregate counters owned by the stats store.
// Total and RequestsCount currently move in lockstep but are tracked
// and persisted as separate fields.
type Snapshot struct {
	Total         int64  `json:"total"`
	Today         int64  `json:"today"`
	Online        int    `json:"online"`
	PeakOnline    int    `json:"peakOnline"`
	PeakToday     int64  `json:"peakToday"`
	LastResetDate string `json:"lastResetDate"`
	RequestsCount int64  `json:"requestsCount"`
}

// UserRecord is one distinct participant.
type UserRecord struct {
	UserID         string    `json:"userId"`
	DisplayName    string    `json:"displayName"`
	FirstSeen      time.Time `json:"firstSeen"`
	LastSeen       time.Time `json:"lastSeen"`
	ExecutionCount int64     `json:"executionCount"`
}

// SessionRecord is one client-held activity handle. A session counts as
// online while now - LastHeartbeatAt stays within the liveness window.
type SessionRecord struct {
	SessionID       string    `json:"sessionId"`
	UserID          string    `json:"userId"`
	DisplayName     string    `json:"displayName"`
	CreatedAt       time.Time `json:"createdAt"`
	LastHeartbeatAt time.Time `json:"lastHeartbeatAt"`
	GameID          string    `json:"gameId,omitempty"`
}

// Live reports whether the session still counts as online at now.
func (r *SessionRecord) Live(now time.Time, window time.Duration) bool {
	return now.Sub(r.LastHeartbeatAt) <= window
}

// HourBucket aggregates events for one calendar hour.
type HourBucket struct {
	Count         int64     `json:"count"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// DayBucket aggregates events for one calendar date. Users is a set of
// the userIds seen that day.
type DayBucket struct {
	Count int64
	Users map[string]struct{}
}

// State is the complete in-memory state of one aggregator instance.
type State struct {
	Snapshot Snapshot
	Users    *UserIndex
	Sessions *SessionSet
	Buckets  *BucketLedger
}

// NewState returns a zero state, used on cold start when no snapshot
// document exists yet.
func NewState() *State {
	return &State{
		Users:    NewUserIndex(),
		Sessions: NewSessionSet(),
		Buckets:  NewBucketLedger(),
	}
}

// HourKey returns the bucket key for the calendar hour containing t.
func HourKey(t time.Time) string {
	return t.UTC().Format(HourKeyLayout)
}

// DayKey returns the bucket key for the calendar date containing t.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyLayout)
}

// DerivedDisplayName builds the placeholder name used when a caller
// reports no display name of its own.
func DerivedDisplayName(userID string) string {
	suffix := userID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("user-%s", suffix)
}
