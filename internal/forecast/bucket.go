// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package forecast

import (
	"fmt"
	"sort"
	"time"
)

const (
	// MaxHorizon is the largest number of days a forecast is reduced to. Larger requests are
	// clamped.
	MaxHorizon = 7

	noon = 12 * time.Hour
)

// DayBucket holds the reading chosen to represent one local calendar day.
type DayBucket struct {
	Date           Date
	Representative Reading
	Samples        int
}

// BucketByDay groups readings by their calendar date in loc and picks the reading closest to
// local noon for each day. Ties go to the earliest reading; readings sharing a timestamp are
// resolved in favour of the later entry. At most days buckets are returned, ordered by date.
// A nil loc means UTC.
func BucketByDay(readings []Reading, loc *time.Location, days int) ([]DayBucket, error) {
	if len(readings) == 0 {
		return nil, fmt.Errorf("forecast series is empty: %w", ErrInvalidInput)
	}
	if days <= 0 {
		return nil, fmt.Errorf("horizon must be a positive number of days, got %d: %w", days, ErrInvalidInput)
	}
	if days > MaxHorizon {
		days = MaxHorizon
	}
	if loc == nil {
		loc = time.UTC
	}

	buckets := make([]DayBucket, 0, days)
	index := make(map[Date]int)
	for _, reading := range readings {
		date := DateOf(reading.Time.In(loc))
		pos, ok := index[date]
		if !ok {
			index[date] = len(buckets)
			buckets = append(buckets, DayBucket{Date: date, Representative: reading, Samples: 1})
			continue
		}

		bucket := &buckets[pos]
		bucket.Samples++
		if closerToNoon(reading, bucket.Representative, loc) {
			bucket.Representative = reading
		}
	}

	// The input is time-sorted, so this is a no-op unless a caller hands us an unsorted series.
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Date.Before(buckets[j].Date)
	})
	if len(buckets) > days {
		buckets = buckets[:days]
	}

	return buckets, nil
}

// closerToNoon reports whether candidate should replace current as the representative reading.
func closerToNoon(candidate, current Reading, loc *time.Location) bool {
	candDist, curDist := noonDistance(candidate.Time.In(loc)), noonDistance(current.Time.In(loc))
	if candDist != curDist {
		return candDist < curDist
	}
	if candidate.Time.Equal(current.Time) {
		return true
	}
	return candidate.Time.Before(current.Time)
}

// noonDistance returns how far the wall clock time of t is from 12:00.
func noonDistance(t time.Time) time.Duration {
	hour, minute, second := t.Clock()
	sinceMidnight := time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute +
		time.Duration(second)*time.Second + time.Duration(t.Nanosecond())
	if sinceMidnight > noon {
		return sinceMidnight - noon
	}
	return noon - sinceMidnight
}
