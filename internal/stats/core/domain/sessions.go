package domain

import "time"

// SessionSet tracks the currently known sessions, keyed by sessionId.
// The stats store is the only mutator; none of the contained records
// escape except as values copied into responses.
type SessionSet struct {
	byID map[string]*SessionRecord
}

func NewSessionSet() *SessionSet {
	return &SessionSet{byID: make(map[string]*SessionRecord)}
}

// Live returns the number of tracked sessions. ExpireStale must have
// run for the same instant for this to equal the online count.
func (s *SessionSet) Live() int {
	return len(s.byID)
}

// Get returns the session with the given id, or nil.
func (s *SessionSet) Get(sessionID string) *SessionRecord {
	return s.byID[sessionID]
}

// ExpireStale evicts every session whose last heartbeat is older than
// the liveness window and returns how many were removed.
func (s *SessionSet) ExpireStale(now time.Time, window time.Duration) int {
	removed := 0
	for id, rec := range s.byID {
		if !rec.Live(now, window) {
			delete(s.byID, id)
			removed++
		}
	}
	return removed
}

// Upsert registers or overwrites a session by sessionId. A repeated
// registration for the same id simply refreshes the whole record.
func (s *SessionSet) Upsert(rec SessionRecord) {
	stored := rec
	s.byID[rec.SessionID] = &stored
}

// Heartbeat refreshes the caller's live session.
//
// Resolution order:
//  1. A session with this sessionId exists: refresh it, unless it is
//     owned by a different user, which is rejected.
//  2. The user already owns some live session under another id: that
//     one is refreshed instead of creating a duplicate.
//  3. Otherwise a new session is created.
//
// Returns whether the heartbeat was accepted.
func (s *SessionSet) Heartbeat(sessionID, userID, displayName string, now time.Time, window time.Duration) bool {
	if rec, ok := s.byID[sessionID]; ok {
		if rec.UserID != userID {
			return false
		}
		rec.LastHeartbeatAt = now
		return true
	}

	for _, rec := range s.byID {
		if rec.UserID == userID && rec.Live(now, window) {
			rec.LastHeartbeatAt = now
			return true
		}
	}

	s.byID[sessionID] = &SessionRecord{
		SessionID:       sessionID,
		UserID:          userID,
		DisplayName:     displayName,
		CreatedAt:       now,
		LastHeartbeatAt: now,
	}
	return true
}
