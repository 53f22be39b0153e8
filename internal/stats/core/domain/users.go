package domain

import "time"

// UserIndex tracks distinct participants, keyed by userId.
type UserIndex struct {
	byID map[string]*UserRecord
}

func NewUserIndex() *UserIndex {
	return &UserIndex{byID: make(map[string]*UserRecord)}
}

// Upsert records one event for the user. A first sighting creates the
// record with ExecutionCount 1; later sightings increment it and
// refresh LastSeen. An empty displayName keeps the existing name, or a
// derived placeholder on creation. The returned record is a copy.
func (u *UserIndex) Upsert(userID, displayName string, now time.Time) UserRecord {
	rec, ok := u.byID[userID]
	if !ok {
		if displayName == "" {
			displayName = DerivedDisplayName(userID)
		}
		rec = &UserRecord{
			UserID:         userID,
			DisplayName:    displayName,
			FirstSeen:      now.UTC(),
			LastSeen:       now.UTC(),
			ExecutionCount: 1,
		}
		u.byID[userID] = rec
		return *rec
	}

	rec.ExecutionCount++
	rec.LastSeen = now.UTC()
	if displayName != "" {
		rec.DisplayName = displayName
	}
	return *rec
}

// Count returns the number of distinct users ever recorded.
func (u *UserIndex) Count() int {
	return len(u.byID)
}

// Get returns a copy of the user's record, or false if unknown.
func (u *UserIndex) Get(userID string) (UserRecord, bool) {
	rec, ok := u.byID[userID]
	if !ok {
		return UserRecord{}, false
	}
	return *rec, true
}
