package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"usage-telemetry-service/internal/stats/core/domain"
	"usage-telemetry-service/internal/stats/core/ports"

	"github.com/sirupsen/logrus"
)

var ErrMissingUserID = errors.New("userId is required")

const (
	// DefaultLivenessWindow is how long a session stays online after
	// its last heartbeat.
	DefaultLivenessWindow = 90 * time.Second

	// Retention for the append-only bucket collections, applied
	// during daily rollover.
	DefaultHourlyRetention = 14 * 24 * time.Hour
	DefaultDailyRetention  = 60 * 24 * time.Hour

	trailingHourCount = 12
	trailingDayCount  = 7
)

// Options tunes one StatsStore instance. Zero values fall back to the
// defaults above.
type Options struct {
	LivenessWindow  time.Duration
	HourlyRetention time.Duration
	DailyRetention  time.Duration
}

func (o Options) withDefaults() Options {
	if o.LivenessWindow <= 0 {
		o.LivenessWindow = DefaultLivenessWindow
	}
	if o.HourlyRetention <= 0 {
		o.HourlyRetention = DefaultHourlyRetention
	}
	if o.DailyRetention <= 0 {
		o.DailyRetention = DefaultDailyRetention
	}
	return o
}

// StatsStore owns the aggregate state: counters, unique users, live
// sessions and time buckets. It is the sole mutator of that state; all
// operations serialize on one mutex. Every mutating operation flushes
// the full state to the snapshot store before reporting success, so a
// restarted instance resumes from the last committed write. Queries
// never write: expiry and rollover effects they observe are folded into
// the next mutating operation's flush.
type StatsStore struct {
	mu    sync.Mutex
	store ports.SnapshotStorePort
	opts  Options
	log   *logrus.Logger

	state *domain.State
}

// NewStatsStore loads the latest snapshot and returns a ready store.
// A missing document starts from zero state; a corrupted document is
// logged and also starts from zero state rather than failing startup.
// Backend errors during the load do fail construction.
func NewStatsStore(ctx context.Context, store ports.SnapshotStorePort, opts Options, log *logrus.Logger) (*StatsStore, error) {
	if log == nil {
		log = logrus.New()
	}

	s := &StatsStore{
		store: store,
		opts:  opts.withDefaults(),
		log:   log,
		state: domain.NewState(),
	}

	doc, found, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		log.Info("no snapshot found, starting from zero state")
		return s, nil
	}

	state, err := domain.DecodeState(doc)
	if err != nil {
		log.WithError(err).Warn("snapshot document corrupted, starting from zero state")
		return s, nil
	}

	s.state = state
	log.WithFields(logrus.Fields{
		"total":  state.Snapshot.Total,
		"unique": state.Users.Count(),
	}).Info("snapshot restored")
	return s, nil
}

type RecordEventInput struct {
	UserID      string
	DisplayName string
	SessionID   string
	GameID      string
}

// Summary is the result of a recorded event.
type Summary struct {
	Total     int64
	Today     int64
	Online    int
	Unique    int
	YourTotal int64
}

// CounterView is the plain counter read.
type CounterView struct {
	Total      int64
	Today      int64
	Online     int
	Unique     int
	PeakOnline int
	PeakToday  int64
}

// Report extends CounterView with the trailing bucket series.
type Report struct {
	Summary       CounterView
	RequestsCount int64
	LastResetDate string
	Hourly        []domain.HourPoint
	Daily         []domain.DayPoint
	CurrentHour   domain.HourPoint
}

type HeartbeatResult struct {
	Success bool
	Online  int
	Message string
}

// RecordEvent counts one usage event for the given user, optionally
// registering the reporting session, and persists the new state.
func (s *StatsStore) RecordEvent(ctx context.Context, in RecordEventInput, now time.Time) (Summary, error) {
	if in.UserID == "" {
		return Summary{}, ErrMissingUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(now)

	snap := &s.state.Snapshot
	snap.Total++
	snap.Today++
	snap.RequestsCount++
	if snap.Today > snap.PeakToday {
		snap.PeakToday = snap.Today
	}

	s.state.Buckets.RecordHour(now)
	s.state.Buckets.RecordDay(now, in.UserID)

	user := s.state.Users.Upsert(in.UserID, in.DisplayName, now)

	if in.SessionID != "" {
		s.state.Sessions.Upsert(domain.SessionRecord{
			SessionID:       in.SessionID,
			UserID:          in.UserID,
			DisplayName:     user.DisplayName,
			CreatedAt:       now.UTC(),
			LastHeartbeatAt: now.UTC(),
			GameID:          in.GameID,
		})
		s.refreshOnline()
	}

	if err := s.persist(ctx, now); err != nil {
		return Summary{}, err
	}

	return Summary{
		Total:     snap.Total,
		Today:     snap.Today,
		Online:    snap.Online,
		Unique:    s.state.Users.Count(),
		YourTotal: user.ExecutionCount,
	}, nil
}

// GetSummary expires stale sessions, applies any pending daily rollover
// and returns the counters. No event is recorded and nothing is
// persisted.
func (s *StatsStore) GetSummary(now time.Time) CounterView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(now)
	return s.counterView()
}

// GetDetailedReport is GetSummary plus the trailing 12-hour and 7-day
// series and the current hour bucket.
func (s *StatsStore) GetDetailedReport(now time.Time) Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(now)
	return Report{
		Summary:       s.counterView(),
		RequestsCount: s.state.Snapshot.RequestsCount,
		LastResetDate: s.state.Snapshot.LastResetDate,
		Hourly:        s.state.Buckets.TrailingHours(trailingHourCount, now),
		Daily:         s.state.Buckets.TrailingDays(trailingDayCount, now),
		CurrentHour:   s.state.Buckets.CurrentHour(now),
	}
}

// Heartbeat keeps the caller's session alive. Missing identifiers fail
// softly; a sessionId owned by another user is rejected. The state is
// persisted only when the heartbeat actually mutated it.
func (s *StatsStore) Heartbeat(ctx context.Context, sessionID, userID string, now time.Time) (HeartbeatResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(now)

	if sessionID == "" || userID == "" {
		return HeartbeatResult{Online: s.state.Snapshot.Online, Message: "sessionId and userId are required"}, nil
	}

	displayName := domain.DerivedDisplayName(userID)
	if user, ok := s.state.Users.Get(userID); ok {
		displayName = user.DisplayName
	}

	ok := s.state.Sessions.Heartbeat(sessionID, userID, displayName, now, s.opts.LivenessWindow)
	if !ok {
		return HeartbeatResult{Online: s.state.Snapshot.Online, Message: "session is owned by another user"}, nil
	}

	s.refreshOnline()

	if err := s.persist(ctx, now); err != nil {
		return HeartbeatResult{}, err
	}

	return HeartbeatResult{Success: true, Online: s.state.Snapshot.Online}, nil
}

// sweep runs the lazy maintenance every operation starts with: expire
// stale sessions, recompute online, and reset the daily counters once
// the calendar date has advanced past the last reset. Rollover is also
// when old buckets get pruned.
func (s *StatsStore) sweep(now time.Time) {
	s.state.Sessions.ExpireStale(now, s.opts.LivenessWindow)
	s.state.Snapshot.Online = s.state.Sessions.Live()

	today := domain.DayKey(now)
	if s.state.Snapshot.LastResetDate == today {
		return
	}

	if s.state.Snapshot.LastResetDate != "" {
		s.log.WithFields(logrus.Fields{
			"from": s.state.Snapshot.LastResetDate,
			"to":   today,
		}).Info("daily rollover")
	}
	s.state.Snapshot.Today = 0
	s.state.Snapshot.PeakToday = 0
	s.state.Snapshot.LastResetDate = today

	if pruned := s.state.Buckets.Prune(now, s.opts.HourlyRetention, s.opts.DailyRetention); pruned > 0 {
		s.log.WithField("buckets", pruned).Info("pruned expired buckets")
	}
}

func (s *StatsStore) refreshOnline() {
	online := s.state.Sessions.Live()
	s.state.Snapshot.Online = online
	if online > s.state.Snapshot.PeakOnline {
		s.state.Snapshot.PeakOnline = online
	}
}

func (s *StatsStore) counterView() CounterView {
	snap := s.state.Snapshot
	return CounterView{
		Total:      snap.Total,
		Today:      snap.Today,
		Online:     snap.Online,
		Unique:     s.state.Users.Count(),
		PeakOnline: snap.PeakOnline,
		PeakToday:  snap.PeakToday,
	}
}

func (s *StatsStore) persist(ctx context.Context, now time.Time) error {
	doc, err := domain.EncodeState(s.state, now)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}
