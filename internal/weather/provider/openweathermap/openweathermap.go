// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openweathermap

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/wneessen/bestbikeday/internal/forecast"
	"github.com/wneessen/bestbikeday/internal/geo"
	"github.com/wneessen/bestbikeday/internal/http"
	"github.com/wneessen/bestbikeday/internal/logger"
	"github.com/wneessen/bestbikeday/internal/weather"
)

const (
	name        = "openweathermap"
	apiEndpoint = "https://api.openweathermap.org/data/2.5/forecast"
	apiTimeout  = time.Second * 10

	// msToKmh converts the metric wind speed of the API (m/s) to km/h
	msToKmh = 3.6
)

type OpenWeatherMap struct {
	apikey string
	log    *logger.Logger
	http   *http.Client
}

type response struct {
	Cod     any `json:"cod"`
	Message any `json:"message"`
	List    []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp    float64 `json:"temp"`
			TempMin float64 `json:"temp_min"`
			TempMax float64 `json:"temp_max"`
		} `json:"main"`
		Weather []struct {
			ID          int    `json:"id"`
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
		Coord   struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Timezone int `json:"timezone"`
	} `json:"city"`
}

func New(http *http.Client, log *logger.Logger, apikey string) (*OpenWeatherMap, error) {
	if http == nil {
		return nil, errors.New("http client is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	if apikey == "" {
		return nil, errors.New("API key is required")
	}

	return &OpenWeatherMap{apikey: apikey, http: http, log: log}, nil
}

func (o *OpenWeatherMap) Name() string {
	return name
}

func (o *OpenWeatherMap) GetForecast(ctx context.Context, coords geo.Coordinate) (*weather.Data, error) {
	res := new(response)
	data := weather.NewData(coords)

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	query.Set("appid", o.apikey)
	query.Set("units", "metric")

	code, err := o.http.GetWithTimeout(ctx, apiEndpoint, res, query, nil, apiTimeout)
	if err != nil {
		return data, fmt.Errorf("failed to retrieve forecast data from OpenWeatherMap API: %w", err)
	}
	if code != 200 {
		return data, fmt.Errorf("OpenWeatherMap API returned non-positive response code: %d (%v)", code,
			res.Message)
	}
	if len(res.List) == 0 {
		return data, errors.New("empty forecast response")
	}

	data.Name = res.City.Name
	data.Location = time.FixedZone(zoneName(res.City.Timezone), res.City.Timezone)
	for _, entry := range res.List {
		reading := forecast.Reading{
			Time:           time.Unix(entry.Dt, 0).UTC(),
			Temperature:    entry.Main.Temp,
			TemperatureMin: entry.Main.TempMin,
			TemperatureMax: entry.Main.TempMax,
			WindSpeed:      entry.Wind.Speed * msToKmh,
			Sky:            forecast.SkyOther,
		}
		if len(entry.Weather) > 0 {
			reading.Sky = forecast.ParseSkyCondition(entry.Weather[0].Main)
			reading.Description = entry.Weather[0].Description
		}
		data.Readings = append(data.Readings, reading)
	}
	o.log.Debug("forecast received", "provider", name, "city", data.Name, "readings", len(data.Readings))

	return data, nil
}

// zoneName renders a UTC offset in seconds as a zone name like "UTC+02:00".
func zoneName(offset int) string {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, offset/3600, offset%3600/60)
}
