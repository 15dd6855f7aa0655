package services

import (
	"math"
	"time"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
)

// Segment is one concrete [start, end] window on a specific date, derived
// from a recurring FreeSlot.
type Segment struct {
	Start time.Time
	End   time.Time
	Used  int
}

// Capacity is the segment's remaining room.
func (s *Segment) Capacity() int {
	c := int(s.End.Sub(s.Start).Minutes()) - s.Used
	if c < 0 {
		return 0
	}
	return c
}

// DayBucket holds one calendar day's allocatable segments and daily cap.
type DayBucket struct {
	ISODate        string
	Weekday        int
	Date           time.Time
	Segments       []*Segment
	AllowedMinutes int
	Used           int
}

// HasCapacity reports whether the bucket can still accept focus minutes.
func (b *DayBucket) HasCapacity() bool {
	return b.Used < b.AllowedMinutes
}

// DayBucketBuilder projects a cleaned weekly slot pattern onto a concrete
// date range (C3).
type DayBucketBuilder struct{}

func NewDayBucketBuilder() *DayBucketBuilder { return &DayBucketBuilder{} }

// Build implements the Day Bucket Builder algorithm. now and end must
// already carry the owner's timezone location. dailyLimitMinutes and
// bufferPercent are the *effective* settings values (post Feedback Tuner).
func (DayBucketBuilder) Build(now, end time.Time, slots []pdomain.FreeSlot, dailyLimitMinutes int, bufferPercent float64) []*DayBucket {
	loc := now.Location()
	start := pdomain.StartOfDay(now)
	last := pdomain.StartOfDay(end)

	var buckets []*DayBucket
	for d := start; !d.After(last); d = d.AddDate(0, 0, 1) {
		weekday := pdomain.WeekdaySundayZero(d)
		bucket := &DayBucket{
			ISODate: pdomain.DateKey(d),
			Weekday: weekday,
			Date:    d,
		}

		totalMinutes := 0
		for _, slot := range slots {
			if slot.Weekday() != weekday {
				continue
			}
			segStart := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc).Add(time.Duration(slot.StartMinutes()) * time.Minute)
			segEnd := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc).Add(time.Duration(slot.EndMinutes()) * time.Minute)

			if pdomain.DateKey(d) == pdomain.DateKey(now) && segStart.Before(now) {
				segStart = now
			}

			minutes := int(segEnd.Sub(segStart).Minutes())
			if minutes < 0 {
				minutes = 0
			}
			totalMinutes += minutes
			if minutes > 0 {
				bucket.Segments = append(bucket.Segments, &Segment{Start: segStart, End: segEnd})
			}
		}

		allowed := int(math.Floor(float64(totalMinutes) * (1 - bufferPercent)))
		if allowed > dailyLimitMinutes {
			allowed = dailyLimitMinutes
		}
		if allowed < 0 {
			allowed = 0
		}
		bucket.AllowedMinutes = allowed

		buckets = append(buckets, bucket)
	}

	return buckets
}
