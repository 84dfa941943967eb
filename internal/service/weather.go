// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/bestbikeday/internal/weather"
)

const FetchTimeout = time.Second * 10

// Refresh fetches a new forecast for the configured location. A newer call cancels an in-flight
// one, and a result that is no longer the latest is discarded with weather.ErrSuperseded.
func (s *Service) Refresh(ctx context.Context) error {
	s.locationLock.RLock()
	loc := s.location
	s.locationLock.RUnlock()

	s.fetchLock.Lock()
	if s.fetchCancel != nil {
		s.fetchCancel()
	}
	s.fetchSeq++
	seq := s.fetchSeq
	ctxFetch, cancelFetch := context.WithTimeout(ctx, FetchTimeout)
	s.fetchCancel = cancelFetch
	s.fetchLock.Unlock()
	defer cancelFetch()

	data, err := s.fetchWeather(ctxFetch, loc)

	s.fetchLock.Lock()
	defer s.fetchLock.Unlock()
	if seq != s.fetchSeq {
		s.logger.Debug("discarding superseded forecast", slog.Uint64("sequence", seq),
			slog.Uint64("latest", s.fetchSeq))
		return weather.ErrSuperseded
	}
	s.fetchCancel = nil
	if err != nil {
		return err
	}

	s.store.Save(loc.Coords.Key(), data)
	s.locationLock.Lock()
	s.current = data
	s.locationLock.Unlock()
	s.logger.Debug("forecast refreshed", slog.String("location", loc.Name),
		slog.Int("readings", len(data.Readings)))
	return nil
}

func (s *Service) fetchWeather(ctx context.Context, loc Location) (*weather.Data, error) {
	if s.weatherProv == nil {
		return nil, fmt.Errorf("no weather provider configured")
	}
	if !loc.Coords.Valid() {
		return nil, fmt.Errorf("invalid coordinates for %q: %f, %f", loc.Name, loc.Coords.Lat, loc.Coords.Lon)
	}
	data, err := s.weatherProv.GetForecast(ctx, loc.Coords)
	if err != nil {
		return nil, fmt.Errorf("failed to get forecast data from %s: %w", s.weatherProv.Name(), err)
	}
	data.Name = loc.Name
	return data, nil
}
