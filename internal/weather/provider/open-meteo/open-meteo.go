// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hectormalot/omgo"

	"github.com/wneessen/bestbikeday/internal/forecast"
	"github.com/wneessen/bestbikeday/internal/geo"
	"github.com/wneessen/bestbikeday/internal/http"
	"github.com/wneessen/bestbikeday/internal/logger"
	"github.com/wneessen/bestbikeday/internal/weather"
)

const (
	name       = "open-meteo"
	apiTimeout = time.Second * 10

	metricTemperature = "temperature_2m"
	metricWindSpeed   = "wind_speed_10m"
	metricWeatherCode = "weather_code"
)

// wmoCode describes a WMO weather interpretation code.
type wmoCode struct {
	sky         forecast.SkyCondition
	description string
}

// wmoCodes maps WMO weather codes to sky conditions and descriptions
var wmoCodes = map[int]wmoCode{
	0:  {forecast.SkyClear, "clear sky"},
	1:  {forecast.SkyClouds, "mainly clear"},
	2:  {forecast.SkyClouds, "partly cloudy"},
	3:  {forecast.SkyClouds, "overcast"},
	45: {forecast.SkyFog, "fog"},
	48: {forecast.SkyFog, "depositing rime fog"},
	51: {forecast.SkyDrizzle, "light drizzle"},
	53: {forecast.SkyDrizzle, "moderate drizzle"},
	55: {forecast.SkyDrizzle, "dense drizzle"},
	56: {forecast.SkyDrizzle, "light freezing drizzle"},
	57: {forecast.SkyDrizzle, "dense freezing drizzle"},
	61: {forecast.SkyRain, "slight rain"},
	63: {forecast.SkyRain, "moderate rain"},
	65: {forecast.SkyRain, "heavy rain"},
	66: {forecast.SkyRain, "light freezing rain"},
	67: {forecast.SkyRain, "heavy freezing rain"},
	71: {forecast.SkySnow, "slight snow fall"},
	73: {forecast.SkySnow, "moderate snow fall"},
	75: {forecast.SkySnow, "heavy snow fall"},
	77: {forecast.SkySnow, "snow grains"},
	80: {forecast.SkyRain, "slight rain showers"},
	81: {forecast.SkyRain, "moderate rain showers"},
	82: {forecast.SkyRain, "violent rain showers"},
	85: {forecast.SkySnow, "slight snow showers"},
	86: {forecast.SkySnow, "heavy snow showers"},
	95: {forecast.SkyThunderstorm, "thunderstorm"},
	96: {forecast.SkyThunderstorm, "thunderstorm with slight hail"},
	99: {forecast.SkyThunderstorm, "thunderstorm with heavy hail"},
}

type OpenMeteo struct {
	log    *logger.Logger
	http   *http.Client
	client omgo.Client
}

func New(httpClient *http.Client, log *logger.Logger) (*OpenMeteo, error) {
	if httpClient == nil {
		return nil, errors.New("http client is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	client, err := omgo.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo client: %w", err)
	}
	client.Client = httpClient.Client
	client.UserAgent = http.UserAgent

	return &OpenMeteo{log: log, http: httpClient, client: client}, nil
}

func (o *OpenMeteo) Name() string {
	return name
}

func (o *OpenMeteo) GetForecast(ctx context.Context, coords geo.Coordinate) (*weather.Data, error) {
	location, err := omgo.NewLocation(coords.Lat, coords.Lon)
	if err != nil {
		return nil, fmt.Errorf("invalid location: %w", err)
	}

	// Times are requested in UTC so that they are absolute instants
	opts := &omgo.Options{
		Timezone:        "UTC",
		TemperatureUnit: "celsius",
		WindspeedUnit:   "kmh",
		HourlyMetrics:   []string{metricTemperature, metricWindSpeed, metricWeatherCode},
	}

	ctx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()

	var result *omgo.Forecast
	err = o.http.Guard(ctx, func() error {
		var fcErr error
		result, fcErr = o.client.Forecast(ctx, location, opts)
		return fcErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve forecast data from Open-Meteo API: %w", err)
	}

	data, err := normalize(coords, result)
	if err != nil {
		return nil, err
	}
	o.log.Debug("forecast received", "provider", name, "readings", len(data.Readings))
	return data, nil
}

// normalize converts the hourly Open-Meteo forecast into provider-neutral readings.
func normalize(coords geo.Coordinate, result *omgo.Forecast) (*weather.Data, error) {
	if result == nil {
		return nil, errors.New("empty forecast response")
	}
	temps := result.HourlyMetrics[metricTemperature]
	winds := result.HourlyMetrics[metricWindSpeed]
	codes := result.HourlyMetrics[metricWeatherCode]
	if len(temps) != len(result.HourlyTimes) || len(winds) != len(result.HourlyTimes) ||
		len(codes) != len(result.HourlyTimes) {
		return nil, fmt.Errorf("inconsistent hourly forecast: %d times, %d temperatures, %d wind speeds, "+
			"%d weather codes", len(result.HourlyTimes), len(temps), len(winds), len(codes))
	}

	data := weather.NewData(coords)
	data.Readings = make([]forecast.Reading, 0, len(result.HourlyTimes))
	for i, ts := range result.HourlyTimes {
		code, ok := wmoCodes[int(codes[i])]
		if !ok {
			code = wmoCode{forecast.SkyOther, "unknown"}
		}
		data.Readings = append(data.Readings, forecast.Reading{
			Time:           time.Date(ts.Year(), ts.Month(), ts.Day(), ts.Hour(), ts.Minute(), 0, 0, time.UTC),
			Temperature:    temps[i],
			TemperatureMin: temps[i],
			TemperatureMax: temps[i],
			WindSpeed:      winds[i],
			Sky:            code.sky,
			Description:    code.description,
		})
	}
	return data, nil
}
