// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/wneessen/bestbikeday/internal/config"
	"github.com/wneessen/bestbikeday/internal/geocode"
	"github.com/wneessen/bestbikeday/internal/geocode/provider/opencage"
	nominatim "github.com/wneessen/bestbikeday/internal/geocode/provider/osm-nominatim"
	"github.com/wneessen/bestbikeday/internal/http"
	"github.com/wneessen/bestbikeday/internal/logger"
	"github.com/wneessen/bestbikeday/internal/weather"
	openmeteo "github.com/wneessen/bestbikeday/internal/weather/provider/open-meteo"
	"github.com/wneessen/bestbikeday/internal/weather/provider/openweathermap"
)

func (s *Service) selectGeocodeProvider(conf *config.Config, log *logger.Logger, lang language.Tag) (geocode.Geocoder, error) {
	var geocoder geocode.Geocoder

	switch strings.ToLower(conf.GeoCoder.Provider) {
	case config.GeoCoderNominatim:
		geocoder = geocode.NewCachedGeocoder(nominatim.New(http.New(log), lang),
			conf.GeoCoder.CacheTTL, conf.GeoCoder.MissTTL)
	case config.GeoCoderOpenCage:
		if conf.GeoCoder.APIKey == "" {
			return nil, fmt.Errorf("opencage geocoder requires an API key")
		}
		geocoder = geocode.NewCachedGeocoder(opencage.New(http.New(log), lang, conf.GeoCoder.APIKey),
			conf.GeoCoder.CacheTTL, conf.GeoCoder.MissTTL)
	default:
		return nil, fmt.Errorf("unsupported geocoder type: %s", conf.GeoCoder.Provider)
	}

	return geocoder, nil
}

func (s *Service) selectWeatherProvider() (provider weather.Provider, err error) {
	httpClient := http.New(s.logger, http.WithRateLimit(s.config.Weather.RateLimit, s.config.Weather.RateBurst))

	switch strings.ToLower(s.config.Weather.Provider) {
	case config.ProviderOpenMeteo:
		provider, err = openmeteo.New(httpClient, s.logger)
		if err != nil {
			return provider, fmt.Errorf("failed to create Open-Meteo weather provider: %w", err)
		}
	case config.ProviderOpenWeatherMap:
		provider, err = openweathermap.New(httpClient, s.logger, s.config.Weather.APIKey)
		if err != nil {
			return provider, fmt.Errorf("failed to create OpenWeatherMap weather provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported weather provider: %s", s.config.Weather.Provider)
	}
	return provider, nil
}
