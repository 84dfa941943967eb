// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"github.com/vorlif/spreak/localize"

	"github.com/wneessen/bestbikeday/internal/forecast"
)

// MoonPhaseIcon is a map where moon phase names are keys and their corresponding emoji representations are values.
var MoonPhaseIcon = map[string]string{
	"New Moon":        "🌑",
	"Waxing Crescent": "🌒",
	"First Quarter":   "🌓",
	"Waxing Gibbous":  "🌔",
	"Full Moon":       "🌕",
	"Waning Gibbous":  "🌖",
	"Third Quarter":   "🌗",
	"Waning Crescent": "🌘",
}

// BandColors maps suitability bands to hex colors, green for excellent through red for poor
var BandColors = map[forecast.Band]string{
	forecast.BandExcellent: "#4CAF50",
	forecast.BandVeryGood:  "#8BC34A",
	forecast.BandGood:      "#CDDC39",
	forecast.BandFair:      "#FFEB3B",
	forecast.BandModerate:  "#FFC107",
	forecast.BandMediocre:  "#FF9800",
	forecast.BandBad:       "#FF5722",
	forecast.BandPoor:      "#F44336",
}

var BandLabels = map[forecast.Band]localize.MsgID{
	forecast.BandExcellent: "Excellent",
	forecast.BandVeryGood:  "Very good",
	forecast.BandGood:      "Good",
	forecast.BandFair:      "Fair",
	forecast.BandModerate:  "Moderate",
	forecast.BandMediocre:  "Mediocre",
	forecast.BandBad:       "Bad",
	forecast.BandPoor:      "Poor",
}

var SkyLabels = map[forecast.SkyCondition]localize.MsgID{
	forecast.SkyOther:        "Unknown",
	forecast.SkyClear:        "Clear",
	forecast.SkyClouds:       "Clouds",
	forecast.SkyMist:         "Mist",
	forecast.SkyFog:          "Fog",
	forecast.SkyDrizzle:      "Drizzle",
	forecast.SkyRain:         "Rain",
	forecast.SkySnow:         "Snow",
	forecast.SkyThunderstorm: "Thunderstorm",
}

// SkyIcons maps sky conditions to single emoji icons
var SkyIcons = map[forecast.SkyCondition]string{
	forecast.SkyOther:        "❔",
	forecast.SkyClear:        "☀️",
	forecast.SkyClouds:       "☁️",
	forecast.SkyMist:         "🌫️",
	forecast.SkyFog:          "🌫️",
	forecast.SkyDrizzle:      "🌦️",
	forecast.SkyRain:         "🌧️",
	forecast.SkySnow:         "❄️",
	forecast.SkyThunderstorm: "⛈️",
}

var i18nVars = map[string]localize.MsgID{
	"location":        "Location",
	"bestday":         "Best day",
	"score":           "Score",
	"temp":            "Temperature",
	"windspeed":       "Wind speed",
	"sunrise":         "Sunrise",
	"sunset":          "Sunset",
	"moonphase":       "Moonphase",
	"new moon":        "New moon",
	"waxing crescent": "Waxing crescent",
	"first quarter":   "First quarter",
	"waxing gibbous":  "Waxing gibbous",
	"full moon":       "Full moon",
	"waning gibbous":  "Waning gibbous",
	"third quarter":   "Third quarter",
	"waning crescent": "Waning crescent",
}

// BandColor returns the hex color of a band. Unknown bands get the color of BandPoor.
func BandColor(band forecast.Band) string {
	if color, ok := BandColors[band]; ok {
		return color
	}
	return BandColors[forecast.BandPoor]
}
