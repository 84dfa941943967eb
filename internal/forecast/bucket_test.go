// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package forecast

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

var testZone = time.FixedZone("SAST", 2*60*60)

func TestBucketByDay(t *testing.T) {
	t.Run("an empty series fails with invalid input", func(t *testing.T) {
		_, err := BucketByDay(nil, testZone, 5)
		if err == nil {
			t.Fatal("expected bucketing to fail")
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected error to be %s, got %s", ErrInvalidInput, err)
		}
	})
	t.Run("a non-positive horizon fails with invalid input", func(t *testing.T) {
		readings := dayReadings(2025, 3, 20, 12)
		for _, days := range []int{0, -1, -7} {
			_, err := BucketByDay(readings, testZone, days)
			if err == nil {
				t.Fatalf("expected bucketing with horizon %d to fail", days)
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected error to be %s, got %s", ErrInvalidInput, err)
			}
		}
	})
	t.Run("the reading closest to noon represents the day", func(t *testing.T) {
		readings := dayReadings(2025, 3, 20, 0, 3, 6, 9, 12, 15, 18, 21)
		buckets, err := BucketByDay(readings, testZone, 1)
		if err != nil {
			t.Fatalf("failed to bucket readings: %s", err)
		}
		if len(buckets) != 1 {
			t.Fatalf("expected 1 bucket, got %d", len(buckets))
		}
		if hour := buckets[0].Representative.Time.In(testZone).Hour(); hour != 12 {
			t.Errorf("expected representative hour to be 12, got %d", hour)
		}
		if buckets[0].Samples != 8 {
			t.Errorf("expected bucket to hold 8 samples, got %d", buckets[0].Samples)
		}
	})
	t.Run("equal distance to noon picks the earliest reading", func(t *testing.T) {
		readings := dayReadings(2025, 3, 20, 9, 15)
		buckets, err := BucketByDay(readings, testZone, 1)
		if err != nil {
			t.Fatalf("failed to bucket readings: %s", err)
		}
		if hour := buckets[0].Representative.Time.In(testZone).Hour(); hour != 9 {
			t.Errorf("expected representative hour to be 9, got %d", hour)
		}
	})
	t.Run("minutes count when measuring the distance to noon", func(t *testing.T) {
		readings := []Reading{
			{Time: time.Date(2025, 3, 20, 10, 40, 0, 0, testZone)},
			{Time: time.Date(2025, 3, 20, 13, 10, 0, 0, testZone)},
		}
		buckets, err := BucketByDay(readings, testZone, 1)
		if err != nil {
			t.Fatalf("failed to bucket readings: %s", err)
		}
		if !buckets[0].Representative.Time.Equal(readings[1].Time) {
			t.Errorf("expected representative to be %s, got %s", readings[1].Time,
				buckets[0].Representative.Time)
		}
	})
	t.Run("equal distance in minutes picks the earliest reading", func(t *testing.T) {
		readings := []Reading{
			{Time: time.Date(2025, 3, 20, 13, 10, 0, 0, testZone)},
			{Time: time.Date(2025, 3, 20, 10, 50, 0, 0, testZone)},
		}
		buckets, err := BucketByDay(readings, testZone, 1)
		if err != nil {
			t.Fatalf("failed to bucket readings: %s", err)
		}
		if !buckets[0].Representative.Time.Equal(readings[1].Time) {
			t.Errorf("expected representative to be %s, got %s", readings[1].Time,
				buckets[0].Representative.Time)
		}
	})
	t.Run("duplicate timestamps resolve to the later entry", func(t *testing.T) {
		ts := time.Date(2025, 3, 20, 12, 0, 0, 0, testZone)
		readings := []Reading{
			{Time: ts, Temperature: 10},
			{Time: ts, Temperature: 20},
		}
		buckets, err := BucketByDay(readings, testZone, 1)
		if err != nil {
			t.Fatalf("failed to bucket readings: %s", err)
		}
		if buckets[0].Representative.Temperature != 20 {
			t.Errorf("expected representative temperature to be 20, got %f",
				buckets[0].Representative.Temperature)
		}
	})
	t.Run("days are derived in the requested time zone", func(t *testing.T) {
		// 23:00 UTC on the 20th is 01:00 on the 21st in UTC+2
		readings := []Reading{
			{Time: time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC)},
			{Time: time.Date(2025, 3, 20, 23, 0, 0, 0, time.UTC)},
		}
		buckets, err := BucketByDay(readings, testZone, 5)
		if err != nil {
			t.Fatalf("failed to bucket readings: %s", err)
		}
		if len(buckets) != 2 {
			t.Fatalf("expected 2 buckets, got %d", len(buckets))
		}
		want := Date{Year: 2025, Month: time.March, Day: 21}
		if buckets[1].Date != want {
			t.Errorf("expected second bucket date to be %s, got %s", want, buckets[1].Date)
		}

		buckets, err = BucketByDay(readings, time.UTC, 5)
		if err != nil {
			t.Fatalf("failed to bucket readings: %s", err)
		}
		if len(buckets) != 1 {
			t.Errorf("expected 1 bucket in UTC, got %d", len(buckets))
		}
	})
	t.Run("a nil location buckets in UTC", func(t *testing.T) {
		readings := []Reading{{Time: time.Date(2025, 3, 20, 23, 30, 0, 0, time.UTC)}}
		buckets, err := BucketByDay(readings, nil, 1)
		if err != nil {
			t.Fatalf("failed to bucket readings: %s", err)
		}
		want := Date{Year: 2025, Month: time.March, Day: 20}
		if buckets[0].Date != want {
			t.Errorf("expected bucket date to be %s, got %s", want, buckets[0].Date)
		}
	})
	t.Run("fewer days than requested are not padded", func(t *testing.T) {
		readings := append(dayReadings(2025, 3, 20, 9, 12, 15), dayReadings(2025, 3, 21, 9, 12, 15)...)
		buckets, err := BucketByDay(readings, testZone, 5)
		if err != nil {
			t.Fatalf("failed to bucket readings: %s", err)
		}
		if len(buckets) != 2 {
			t.Errorf("expected 2 buckets, got %d", len(buckets))
		}
	})
	t.Run("the result is truncated to the horizon", func(t *testing.T) {
		readings := multiDayReadings(5)
		buckets, err := BucketByDay(readings, testZone, 3)
		if err != nil {
			t.Fatalf("failed to bucket readings: %s", err)
		}
		if len(buckets) != 3 {
			t.Fatalf("expected 3 buckets, got %d", len(buckets))
		}
		want := Date{Year: 2025, Month: time.March, Day: 20}
		if buckets[0].Date != want {
			t.Errorf("expected first bucket date to be %s, got %s", want, buckets[0].Date)
		}
	})
	t.Run("horizons above the maximum are clamped", func(t *testing.T) {
		readings := multiDayReadings(10)
		buckets, err := BucketByDay(readings, testZone, 10)
		if err != nil {
			t.Fatalf("failed to bucket readings: %s", err)
		}
		if len(buckets) != MaxHorizon {
			t.Errorf("expected %d buckets, got %d", MaxHorizon, len(buckets))
		}
	})
	t.Run("buckets are ordered by date", func(t *testing.T) {
		readings := multiDayReadings(4)
		readings[0], readings[len(readings)-1] = readings[len(readings)-1], readings[0]
		buckets, err := BucketByDay(readings, testZone, 7)
		if err != nil {
			t.Fatalf("failed to bucket readings: %s", err)
		}
		for i := 1; i < len(buckets); i++ {
			if !buckets[i-1].Date.Before(buckets[i].Date) {
				t.Errorf("expected bucket %d (%s) to be before bucket %d (%s)", i-1, buckets[i-1].Date,
					i, buckets[i].Date)
			}
		}
	})
	t.Run("bucketing the same input twice yields the same result", func(t *testing.T) {
		readings := multiDayReadings(6)
		first, err := BucketByDay(readings, testZone, 5)
		if err != nil {
			t.Fatalf("failed to bucket readings: %s", err)
		}
		second, err := BucketByDay(readings, testZone, 5)
		if err != nil {
			t.Fatalf("failed to bucket readings: %s", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("expected repeated bucketing to yield identical results")
		}
	})
	t.Run("output never exceeds horizon or distinct days", func(t *testing.T) {
		for numDays := 1; numDays <= 9; numDays++ {
			for horizon := 1; horizon <= 9; horizon++ {
				buckets, err := BucketByDay(multiDayReadings(numDays), testZone, horizon)
				if err != nil {
					t.Fatalf("failed to bucket readings: %s", err)
				}
				if len(buckets) > horizon || len(buckets) > numDays || len(buckets) > MaxHorizon {
					t.Errorf("%d days with horizon %d produced %d buckets", numDays, horizon, len(buckets))
				}
			}
		}
	})
}

func TestDate(t *testing.T) {
	t.Run("date string uses ISO format", func(t *testing.T) {
		date := Date{Year: 2025, Month: time.March, Day: 7}
		if date.String() != "2025-03-07" {
			t.Errorf("expected date string to be %q, got %q", "2025-03-07", date.String())
		}
	})
	t.Run("date converts to local midnight", func(t *testing.T) {
		date := Date{Year: 2025, Month: time.March, Day: 7}
		want := time.Date(2025, 3, 7, 0, 0, 0, 0, testZone)
		if !date.In(testZone).Equal(want) {
			t.Errorf("expected midnight to be %s, got %s", want, date.In(testZone))
		}
	})
	t.Run("date is parsed from ISO format", func(t *testing.T) {
		var date Date
		if err := date.UnmarshalText([]byte("2025-03-07")); err != nil {
			t.Fatalf("failed to parse date: %s", err)
		}
		if date != (Date{Year: 2025, Month: time.March, Day: 7}) {
			t.Errorf("unexpected date: %s", date)
		}
	})
	t.Run("parsing an invalid date fails", func(t *testing.T) {
		var date Date
		if err := date.UnmarshalText([]byte("07.03.2025")); err == nil {
			t.Error("expected parsing to fail")
		}
	})
}

// dayReadings returns one reading per given local hour on the given day in testZone.
func dayReadings(year int, month time.Month, day int, hours ...int) []Reading {
	readings := make([]Reading, 0, len(hours))
	for _, hour := range hours {
		readings = append(readings, Reading{
			Time:        time.Date(year, month, day, hour, 0, 0, 0, testZone),
			Temperature: float64(hour),
			WindSpeed:   3,
			Sky:         SkyClear,
		})
	}
	return readings
}

// multiDayReadings returns a 3-hourly series spanning numDays days, starting 2025-03-20.
func multiDayReadings(numDays int) []Reading {
	var readings []Reading
	start := time.Date(2025, 3, 20, 0, 0, 0, 0, testZone)
	for i := 0; i < numDays; i++ {
		day := start.AddDate(0, 0, i)
		readings = append(readings, dayReadings(day.Year(), day.Month(), day.Day(), 0, 3, 6, 9, 12, 15, 18, 21)...)
	}
	return readings
}
