// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/vorlif/spreak"

	"github.com/wneessen/bestbikeday/internal/city"
	"github.com/wneessen/bestbikeday/internal/config"
	"github.com/wneessen/bestbikeday/internal/forecast"
	"github.com/wneessen/bestbikeday/internal/geo"
	"github.com/wneessen/bestbikeday/internal/geocode"
	"github.com/wneessen/bestbikeday/internal/job"
	"github.com/wneessen/bestbikeday/internal/logger"
	"github.com/wneessen/bestbikeday/internal/presenter"
	"github.com/wneessen/bestbikeday/internal/store"
	"github.com/wneessen/bestbikeday/internal/weather"
)

const (
	weatherUpdateJob = "weather_update_job"
	storePruneJob    = "store_prune_job"
)

var ErrNoForecast = errors.New("no forecast available yet")

// Location is a resolved place the forecast is fetched for.
type Location struct {
	Name   string
	Coords geo.Coordinate
	// Timezone is the zone days are derived in. Nil leaves the choice to the weather provider.
	Timezone *time.Location
}

// Result is a rated forecast for one location.
type Result struct {
	Location Location
	Zone     *time.Location
	Updated  time.Time
	Days     []forecast.ScoredDay
	Best     forecast.ScoredDay
	HasBest  bool
}

type Service struct {
	config    *config.Config
	logger    *logger.Logger
	t         *spreak.Localizer
	presenter *presenter.Presenter
	scheduler gocron.Scheduler
	store     *store.MemoryStore
	output    io.Writer
	SignalSrc signalSource

	geocoder    geocode.Geocoder
	weatherProv weather.Provider

	fetchLock   sync.Mutex
	fetchSeq    uint64
	fetchCancel context.CancelFunc

	locationLock sync.RWMutex
	location     Location
	current      *weather.Data
}

func New(conf *config.Config, log *logger.Logger, t *spreak.Localizer) (*Service, error) {
	if log == nil {
		return nil, errors.New("logger is required")
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	pres, err := presenter.New(conf, t)
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	service := &Service{
		config:    conf,
		logger:    log,
		t:         t,
		presenter: pres,
		scheduler: scheduler,
		store:     store.NewMemoryStore(conf.Intervals.WeatherUpdate),
		output:    os.Stdout,
		SignalSrc: stdLibSignalSource{},
	}
	return service, nil
}

// Init selects the configured providers and resolves the configured location.
func (s *Service) Init(ctx context.Context) error {
	if s.geocoder == nil {
		geocoder, err := s.selectGeocodeProvider(s.config, s.logger, s.t.Language())
		if err != nil {
			return fmt.Errorf("failed to create geocode provider: %w", err)
		}
		s.geocoder = geocoder
	}
	if s.weatherProv == nil {
		provider, err := s.selectWeatherProvider()
		if err != nil {
			return fmt.Errorf("failed to create weather provider: %w", err)
		}
		s.weatherProv = provider
	}

	loc, err := s.configuredLocation(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve location: %w", err)
	}
	s.locationLock.Lock()
	s.location = loc
	s.locationLock.Unlock()
	s.logger.Debug("location resolved", slog.String("name", loc.Name),
		slog.Float64("lat", loc.Coords.Lat), slog.Float64("lon", loc.Coords.Lon))
	return nil
}

// RunOnce fetches and rates the forecast for the configured location and writes the rendered
// output to the service's output.
func (s *Service) RunOnce(ctx context.Context) error {
	if err := s.Init(ctx); err != nil {
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	return s.printForecast()
}

// Run starts the daemon mode. It refreshes the forecast periodically, on SIGHUP and on resume
// from suspend until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if err := s.Init(ctx); err != nil {
		return err
	}

	if err := s.Refresh(ctx); err != nil && !errors.Is(err, weather.ErrSuperseded) {
		s.logger.Error("initial forecast fetch failed", logger.Err(err))
	}

	if err := s.createScheduledJob(ctx, s.config.Intervals.WeatherUpdate, s.refreshJob,
		weatherUpdateJob); err != nil {
		return err
	}
	s.scheduler.Start()

	pruner := job.New(storePruneJob, s.config.Intervals.StorePrune, s.pruneStore)
	go pruner.Start(ctx)

	sigChan := make(chan os.Signal, 1)
	s.SignalSrc.Notify(sigChan, syscall.SIGHUP)
	go func() {
		defer s.SignalSrc.Stop(sigChan)
		s.HandleRefreshSignal(ctx, sigChan)
	}()

	go s.monitorSleepResume(ctx)

	<-ctx.Done()
	return s.scheduler.Shutdown()
}

// Current returns the last successfully rated forecast for the configured location.
func (s *Service) Current() (Result, error) {
	s.locationLock.RLock()
	loc, data := s.location, s.current
	s.locationLock.RUnlock()
	if data == nil {
		return Result{}, ErrNoForecast
	}
	return s.rate(loc, data, s.config.ForecastDays())
}

// ResolveLocation turns a place name into a Location. Built-in cities are resolved without a
// network call, everything else is looked up through the geocoder.
func (s *Service) ResolveLocation(ctx context.Context, name string) (Location, error) {
	if c, err := city.Lookup(name); err == nil {
		return s.cityLocation(c), nil
	}
	if s.geocoder == nil {
		return Location{}, fmt.Errorf("%w: %s", city.ErrUnknownCity, name)
	}

	coords, err := s.geocoder.Search(ctx, name)
	if err != nil {
		return Location{}, fmt.Errorf("failed to geocode %q: %w", name, err)
	}
	if !coords.Found {
		return Location{}, fmt.Errorf("%w: %s", city.ErrUnknownCity, name)
	}
	return Location{Name: name, Coords: coords, Timezone: s.config.TimeZone()}, nil
}

// Forecast returns the rated forecast for loc, served from the store while it is fresh.
func (s *Service) Forecast(ctx context.Context, loc Location, days int) (Result, error) {
	data, err := s.store.Get(loc.Coords.Key())
	if err != nil {
		ctxFetch, cancelFetch := context.WithTimeout(ctx, FetchTimeout)
		defer cancelFetch()
		data, err = s.fetchWeather(ctxFetch, loc)
		if err != nil {
			return Result{}, err
		}
		s.store.Save(loc.Coords.Key(), data)
	}
	return s.rate(loc, data, days)
}

// configuredLocation resolves the location from the configuration. Explicit coordinates take
// precedence over the city name.
func (s *Service) configuredLocation(ctx context.Context) (Location, error) {
	if s.config.HasCoordinates() {
		coords := geo.Coordinate{Lat: s.config.Location.Latitude, Lon: s.config.Location.Longitude, Found: true}
		loc := Location{Name: s.config.Location.City, Coords: coords, Timezone: s.config.TimeZone()}
		address, err := s.geocoder.Reverse(ctx, coords)
		if err != nil {
			s.logger.Error("failed to reverse geocode coordinates", logger.Err(err))
			return loc, nil
		}
		if address.AddressFound && address.City != "" {
			loc.Name = address.City
		}
		return loc, nil
	}
	return s.ResolveLocation(ctx, s.config.Location.City)
}

// cityLocation converts a built-in city. The configured time zone wins over the city's own.
func (s *Service) cityLocation(c city.City) Location {
	zone := s.config.TimeZone()
	if zone == nil {
		if tz, err := time.LoadLocation(c.Timezone); err == nil {
			zone = tz
		}
	}
	return Location{Name: c.Name, Coords: c.Coords, Timezone: zone}
}

func (s *Service) rate(loc Location, data *weather.Data, days int) (Result, error) {
	zone := data.Zone(loc.Timezone)
	scored, err := forecast.Rate(data.Readings, zone, days)
	if err != nil {
		return Result{}, fmt.Errorf("failed to rate forecast for %s: %w", loc.Name, err)
	}
	result := Result{
		Location: loc,
		Zone:     zone,
		Updated:  data.GeneratedAt,
		Days:     scored,
	}
	result.Best, result.HasBest = forecast.Best(scored)
	return result, nil
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

func (s *Service) refreshJob(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil && !errors.Is(err, weather.ErrSuperseded) {
		s.logger.Error("failed to refresh forecast", logger.Err(err))
	}
}

func (s *Service) pruneStore(context.Context) {
	if removed := s.store.Prune(); removed > 0 {
		s.logger.Debug("pruned expired forecasts", slog.Int("removed", removed))
	}
}

// printForecast renders the current forecast to the service's output.
func (s *Service) printForecast() error {
	result, err := s.Current()
	if err != nil {
		return err
	}
	tplCtx := s.presenter.BuildContext(result.Location.Name, result.Location.Coords, result.Zone,
		result.Updated, result.Days)
	if err = s.presenter.Write(s.output, tplCtx); err != nil {
		return fmt.Errorf("failed to write forecast: %w", err)
	}
	return nil
}

// BandLabel returns the localized label of band.
func (s *Service) BandLabel(band forecast.Band) string {
	return s.presenter.BandLabel(band)
}
