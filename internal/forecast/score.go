// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package forecast

import "time"

// ScoredDay is a day bucket with its cycling suitability attached.
type ScoredDay struct {
	Date           Date
	Representative Reading
	Samples        int

	TemperatureScore float64
	WindScore        float64
	SkyScore         float64
	Score            float64
	Band             Band
}

// Band is one of eight ordinal suitability classes. Lower values are better.
type Band int

const (
	BandExcellent Band = iota
	BandVeryGood
	BandGood
	BandFair
	BandModerate
	BandMediocre
	BandBad
	BandPoor
)

// bandThresholds lists the lower score bound of every band except BandPoor, best band first.
var bandThresholds = [...]float64{90, 80, 70, 60, 50, 40, 30}

var bandNames = [...]string{"excellent", "very good", "good", "fair", "moderate", "mediocre", "bad", "poor"}

// BandFor maps a composite score to its band.
func BandFor(score float64) Band {
	for i, threshold := range bandThresholds {
		if score >= threshold {
			return Band(i)
		}
	}
	return BandPoor
}

func (b Band) String() string {
	if b < BandExcellent || b > BandPoor {
		return bandNames[BandPoor]
	}
	return bandNames[b]
}

// TemperatureScore rates the instantaneous temperature in degrees Celsius.
func TemperatureScore(celsius float64) float64 {
	switch {
	case celsius < 0:
		return 30
	case celsius < 10:
		return 50 + 3*celsius
	case celsius < 15:
		return 80 + 4*(celsius-10)
	case celsius <= 25:
		return 100
	case celsius <= 30:
		return 100 - 10*(celsius-25)
	default:
		return 50
	}
}

// WindScore rates the wind speed in km/h.
func WindScore(kph float64) float64 {
	switch {
	case kph < 5:
		return 100
	case kph < 15:
		return 90
	case kph < 25:
		return 70
	case kph < 35:
		return 50
	default:
		return 30
	}
}

// SkyScore rates the sky condition.
func SkyScore(sky SkyCondition) float64 {
	switch sky {
	case SkyClear:
		return 100
	case SkyClouds:
		return 90
	case SkyMist:
		return 70
	case SkyFog:
		return 60
	case SkyDrizzle:
		return 50
	case SkyRain:
		return 40
	case SkySnow:
		return 30
	case SkyThunderstorm:
		return 20
	default:
		return 50
	}
}

// Score rates the representative reading of a bucket. The composite score is the unrounded
// mean of the temperature, wind and sky sub-scores.
func Score(bucket DayBucket) ScoredDay {
	reading := bucket.Representative
	day := ScoredDay{
		Date:             bucket.Date,
		Representative:   reading,
		Samples:          bucket.Samples,
		TemperatureScore: TemperatureScore(reading.Temperature),
		WindScore:        WindScore(reading.WindSpeed),
		SkyScore:         SkyScore(reading.Sky),
	}
	day.Score = (day.TemperatureScore + day.WindScore + day.SkyScore) / 3
	day.Band = BandFor(day.Score)
	return day
}

// Rate buckets the readings by day in loc and scores every bucket. It either returns the full
// result or an error.
func Rate(readings []Reading, loc *time.Location, days int) ([]ScoredDay, error) {
	buckets, err := BucketByDay(readings, loc, days)
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredDay, 0, len(buckets))
	for _, bucket := range buckets {
		scored = append(scored, Score(bucket))
	}
	return scored, nil
}

// Best returns the highest scoring day. Ties go to the earlier day. The boolean is false if
// days is empty.
func Best(days []ScoredDay) (ScoredDay, bool) {
	if len(days) == 0 {
		return ScoredDay{}, false
	}
	best := days[0]
	for _, day := range days[1:] {
		if day.Score > best.Score {
			best = day
		}
	}
	return best, true
}
