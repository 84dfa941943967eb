// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kkyr/fig"

	"github.com/wneessen/bestbikeday/internal/geo"
)

const (
	configEnv = "BESTBIKEDAY"
	envFile   = ".env"

	ProviderOpenWeatherMap = "openweathermap"
	ProviderOpenMeteo      = "open-meteo"

	GeoCoderNominatim = "nominatim"
	GeoCoderOpenCage  = "opencage"

	DefaultForecastDays = 5

	DefaultDayTpl = "{{.SkyIcon}} {{pad .DateLabel 24}} {{pad (percent .Score) 5}} " +
		"{{pad .BandLabel 10}} {{floatFormat .Representative.Temperature 1}}°C, " +
		"{{floatFormat .Representative.WindSpeed 1}} km/h, {{.Description}}"
	DefaultSummaryTpl = "{{loc \"location\"}}: {{.Location}}" +
		"{{if .HasBest}}\n{{loc \"bestday\"}}: {{.Best.DateLabel}} ({{percent .Best.Score}}){{end}}"
)

// Config represents the application's configuration structure.
type Config struct {
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Location struct {
		City      string  `fig:"city" default:"Cape Town"`
		Latitude  float64 `fig:"latitude"`
		Longitude float64 `fig:"longitude"`
		// IANA time zone name. Empty means the zone reported by the weather provider.
		Timezone string `fig:"timezone"`
	} `fig:"location"`

	Weather struct {
		// Allowed values: openweathermap, open-meteo
		Provider string `fig:"provider" default:"open-meteo"`
		APIKey   string `fig:"apikey"`
		// Values above 7 are clamped to 7. An explicit 0 is rejected, not defaulted.
		Days      *int    `fig:"days" default:"5"`
		RateLimit float64 `fig:"rate_limit" default:"1"`
		RateBurst int     `fig:"rate_burst" default:"3"`
	} `fig:"weather"`

	GeoCoder struct {
		// Allowed values: nominatim, opencage
		Provider string        `fig:"provider" default:"nominatim"`
		APIKey   string        `fig:"apikey"`
		CacheTTL time.Duration `fig:"cache_ttl" default:"24h"`
		MissTTL  time.Duration `fig:"miss_ttl" default:"10m"`
	} `fig:"geocoder"`

	Intervals struct {
		WeatherUpdate time.Duration `fig:"weather_update" default:"30m"`
		StorePrune    time.Duration `fig:"store_prune" default:"5m"`
	} `fig:"intervals"`

	Server struct {
		Listen string `fig:"listen" default:"127.0.0.1:8080"`
	} `fig:"server"`

	Templates struct {
		Day     string `fig:"day"`
		Summary string `fig:"summary"`
	} `fig:"templates"`
}

// NewFromFile loads the configuration from the given file, with environment variables taking
// precedence.
func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = loadEnvFile(); err != nil {
		return conf, err
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// New loads the configuration from defaults and environment variables only.
func New() (*Config, error) {
	conf := new(Config)
	if err := loadEnvFile(); err != nil {
		return conf, err
	}
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	if c.Weather.Days == nil {
		days := DefaultForecastDays
		c.Weather.Days = &days
	}
	if *c.Weather.Days < 1 {
		return fmt.Errorf("invalid forecast days: %d", *c.Weather.Days)
	}
	switch strings.ToLower(c.Weather.Provider) {
	case ProviderOpenMeteo:
	case ProviderOpenWeatherMap:
		if c.Weather.APIKey == "" {
			return fmt.Errorf("weather provider %s requires an API key", c.Weather.Provider)
		}
	default:
		return fmt.Errorf("unsupported weather provider: %s", c.Weather.Provider)
	}
	switch strings.ToLower(c.GeoCoder.Provider) {
	case GeoCoderNominatim:
	case GeoCoderOpenCage:
		if c.GeoCoder.APIKey == "" {
			return fmt.Errorf("geocoder %s requires an API key", c.GeoCoder.Provider)
		}
	default:
		return fmt.Errorf("unsupported geocoder: %s", c.GeoCoder.Provider)
	}
	if c.Weather.RateBurst < 1 {
		return fmt.Errorf("invalid rate limit burst: %d", c.Weather.RateBurst)
	}
	if c.HasCoordinates() {
		coords := geo.Coordinate{Lat: c.Location.Latitude, Lon: c.Location.Longitude}
		if !coords.Valid() {
			return fmt.Errorf("invalid coordinates: %f, %f", coords.Lat, coords.Lon)
		}
	}
	if c.Location.City == "" && !c.HasCoordinates() {
		return errors.New("either a city or coordinates are required")
	}
	if c.Location.Timezone != "" {
		if _, err := time.LoadLocation(c.Location.Timezone); err != nil {
			return fmt.Errorf("invalid time zone %q: %w", c.Location.Timezone, err)
		}
	}
	if c.Intervals.WeatherUpdate <= 0 {
		return fmt.Errorf("invalid weather update interval: %s", c.Intervals.WeatherUpdate)
	}
	if c.Server.Listen == "" {
		return errors.New("server listen address must not be empty")
	}
	if c.Templates.Day == "" {
		c.Templates.Day = DefaultDayTpl
	}
	if c.Templates.Summary == "" {
		c.Templates.Summary = DefaultSummaryTpl
	}

	return nil
}

// ForecastDays returns the configured forecast horizon.
func (c *Config) ForecastDays() int {
	if c.Weather.Days == nil {
		return DefaultForecastDays
	}
	return *c.Weather.Days
}

// HasCoordinates reports whether explicit coordinates were configured.
func (c *Config) HasCoordinates() bool {
	return c.Location.Latitude != 0 || c.Location.Longitude != 0
}

// TimeZone returns the configured time zone or nil if none was configured.
func (c *Config) TimeZone() *time.Location {
	if c.Location.Timezone == "" {
		return nil
	}
	loc, err := time.LoadLocation(c.Location.Timezone)
	if err != nil {
		return nil
	}
	return loc
}

// loadEnvFile loads a .env file from the working directory if one exists. Variables that are
// already set are not overridden.
func loadEnvFile() error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s file: %w", envFile, err)
	}
	return nil
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
