package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// persistedDocument is the single durable document the aggregator state
// is written as. Collections are flat key->record mappings; day-bucket
// user sets travel as ordered sequences and are rebuilt into sets on
// decode, so the round trip is exact regardless of sequence order.
type persistedDocument struct {
	Snapshot Snapshot                   `json:"snapshot"`
	Users    map[string]*UserRecord     `json:"users"`
	Sessions map[string]*SessionRecord  `json:"sessions"`
	Hours    map[string]*HourBucket     `json:"hourBuckets"`
	Days     map[string]persistedDayRow `json:"dayBuckets"`
	SavedAt  time.Time                  `json:"savedAt"`
}

type persistedDayRow struct {
	Count int64    `json:"count"`
	Users []string `json:"users"`
}

// EncodeState serializes the full aggregator state into one document.
func EncodeState(state *State, now time.Time) ([]byte, error) {
	doc := persistedDocument{
		Snapshot: state.Snapshot,
		Users:    state.Users.byID,
		Sessions: state.Sessions.byID,
		Hours:    state.Buckets.hours,
		Days:     make(map[string]persistedDayRow, len(state.Buckets.days)),
		SavedAt:  now.UTC(),
	}

	for key, bucket := range state.Buckets.days {
		users := make([]string, 0, len(bucket.Users))
		for id := range bucket.Users {
			users = append(users, id)
		}
		sort.Strings(users)
		doc.Days[key] = persistedDayRow{Count: bucket.Count, Users: users}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot document: %w", err)
	}
	return data, nil
}

// DecodeState rebuilds aggregator state from a persisted document.
func DecodeState(data []byte) (*State, error) {
	var doc persistedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot document: %w", err)
	}

	state := NewState()
	state.Snapshot = doc.Snapshot

	for id, rec := range doc.Users {
		if rec != nil {
			state.Users.byID[id] = rec
		}
	}
	for id, rec := range doc.Sessions {
		if rec != nil {
			state.Sessions.byID[id] = rec
		}
	}
	for key, bucket := range doc.Hours {
		if bucket != nil {
			state.Buckets.hours[key] = bucket
		}
	}
	for key, row := range doc.Days {
		bucket := &DayBucket{Count: row.Count, Users: make(map[string]struct{}, len(row.Users))}
		for _, id := range row.Users {
			bucket.Users[id] = struct{}{}
		}
		state.Buckets.days[key] = bucket
	}

	return state, nil
}
