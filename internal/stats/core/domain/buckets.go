package domain

import "time"

// BucketLedger maintains the hourly and daily event counts. Buckets are
// created on first write; trailing windows are computed at read time so
// gaps in activity need no special handling.
type BucketLedger struct {
	hours map[string]*HourBucket
	days  map[string]*DayBucket
}

func NewBucketLedger() *BucketLedger {
	return &BucketLedger{
		hours: make(map[string]*HourBucket),
		days:  make(map[string]*DayBucket),
	}
}

// HourPoint is one entry of a trailing hourly series.
type HourPoint struct {
	Hour  string `json:"hour"`
	Count int64  `json:"count"`
}

// DayPoint is one entry of a trailing daily series.
type DayPoint struct {
	Date        string `json:"date"`
	Count       int64  `json:"count"`
	UniqueUsers int    `json:"uniqueUsers"`
}

// RecordHour counts one event in the hour bucket containing now.
func (b *BucketLedger) RecordHour(now time.Time) {
	key := HourKey(now)
	bucket, ok := b.hours[key]
	if !ok {
		bucket = &HourBucket{}
		b.hours[key] = bucket
	}
	bucket.Count++
	bucket.LastUpdatedAt = now.UTC()
}

// RecordDay counts one event in the day bucket containing now and adds
// userID to that day's unique set.
func (b *BucketLedger) RecordDay(now time.Time, userID string) {
	key := DayKey(now)
	bucket, ok := b.days[key]
	if !ok {
		bucket = &DayBucket{Users: make(map[string]struct{})}
		b.days[key] = bucket
	}
	bucket.Count++
	bucket.Users[userID] = struct{}{}
}

// TrailingHours returns n entries for the n hours ending at now's hour,
// oldest first. Hours with no recorded activity report count 0.
func (b *BucketLedger) TrailingHours(n int, now time.Time) []HourPoint {
	points := make([]HourPoint, 0, n)
	end := now.UTC().Truncate(time.Hour)
	for i := n - 1; i >= 0; i-- {
		key := HourKey(end.Add(-time.Duration(i) * time.Hour))
		point := HourPoint{Hour: key}
		if bucket, ok := b.hours[key]; ok {
			point.Count = bucket.Count
		}
		points = append(points, point)
	}
	return points
}

// TrailingDays returns n entries for the n calendar dates ending at
// now's date, oldest first, including each day's unique user count.
func (b *BucketLedger) TrailingDays(n int, now time.Time) []DayPoint {
	points := make([]DayPoint, 0, n)
	end := now.UTC()
	for i := n - 1; i >= 0; i-- {
		key := DayKey(end.AddDate(0, 0, -i))
		point := DayPoint{Date: key}
		if bucket, ok := b.days[key]; ok {
			point.Count = bucket.Count
			point.UniqueUsers = len(bucket.Users)
		}
		points = append(points, point)
	}
	return points
}

// CurrentHour returns the series entry for the hour containing now.
func (b *BucketLedger) CurrentHour(now time.Time) HourPoint {
	key := HourKey(now)
	point := HourPoint{Hour: key}
	if bucket, ok := b.hours[key]; ok {
		point.Count = bucket.Count
	}
	return point
}

// Prune drops hour buckets older than hourly and day buckets older than
// daily, both measured back from now. Keys that fail to parse are
// dropped as well; they cannot be reached by any trailing window.
func (b *BucketLedger) Prune(now time.Time, hourly, daily time.Duration) int {
	removed := 0

	hourCutoff := now.UTC().Add(-hourly)
	for key := range b.hours {
		t, err := time.Parse(HourKeyLayout, key)
		if err != nil || t.Before(hourCutoff) {
			delete(b.hours, key)
			removed++
		}
	}

	dayCutoff := now.UTC().Add(-daily)
	for key := range b.days {
		t, err := time.Parse(DayKeyLayout, key)
		if err != nil || t.Before(dayCutoff) {
			delete(b.days, key)
			removed++
		}
	}

	return removed
}
