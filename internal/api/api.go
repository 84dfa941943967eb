// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package api exposes rated forecasts over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/wneessen/bestbikeday/internal/city"
	"github.com/wneessen/bestbikeday/internal/forecast"
	"github.com/wneessen/bestbikeday/internal/http"
	"github.com/wneessen/bestbikeday/internal/logger"
	"github.com/wneessen/bestbikeday/internal/presenter"
	"github.com/wneessen/bestbikeday/internal/service"
)

const (
	appName = "bestbikeday"

	readTimeout  = 10 * time.Second
	writeTimeout = 20 * time.Second
)

var validate = validator.New()

// Forecaster resolves places and rates their forecasts.
type Forecaster interface {
	ResolveLocation(ctx context.Context, name string) (service.Location, error)
	Forecast(ctx context.Context, loc service.Location, days int) (service.Result, error)
	BandLabel(band forecast.Band) string
}

// DayResponse is the JSON representation of one rated day.
type DayResponse struct {
	Date        forecast.Date         `json:"date"`
	Score       float64               `json:"score"`
	Band        forecast.Band         `json:"band"`
	BandLabel   string                `json:"band_label"`
	BandColor   string                `json:"band_color"`
	Temperature float64               `json:"temperature"`
	WindSpeed   float64               `json:"wind_speed"`
	Sky         forecast.SkyCondition `json:"sky"`
	Description string                `json:"description"`
}

// BikeDaysResponse is the JSON body of the bikedays endpoint.
type BikeDaysResponse struct {
	Location  string         `json:"location"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Timezone  string         `json:"timezone"`
	Updated   time.Time      `json:"updated"`
	Days      []DayResponse  `json:"days"`
	Best      *forecast.Date `json:"best"`
}

// bikeDaysQuery holds the query parameters of the bikedays endpoint.
type bikeDaysQuery struct {
	City string `validate:"required"`
	Days int    `validate:"gte=1"`
}

// New creates the Fiber app serving the API. defaultDays is used when a request names no horizon.
func New(fc Forecaster, log *logger.Logger, defaultDays int) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           readTimeout,
		WriteTimeout:          writeTimeout,
		ErrorHandler:          errorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})

	RegisterRoutes(app, fc, defaultDays)
	return app
}

// RegisterRoutes wires the API handlers into app.
func RegisterRoutes(app *fiber.App, fc Forecaster, defaultDays int) {
	v1 := app.Group("/api/v1")

	v1.Get("/bikedays", func(c *fiber.Ctx) error {
		query, err := parseBikeDaysQuery(c, defaultDays)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc, err := fc.ResolveLocation(c.UserContext(), query.City)
		if err != nil {
			return err
		}
		result, err := fc.Forecast(c.UserContext(), loc, query.Days)
		if err != nil {
			return err
		}

		return c.JSON(newBikeDaysResponse(fc, result))
	})
}

func parseBikeDaysQuery(c *fiber.Ctx, defaultDays int) (bikeDaysQuery, error) {
	query := bikeDaysQuery{
		City: strings.TrimSpace(c.Query("city")),
		Days: defaultDays,
	}
	if val := c.Query("days"); val != "" {
		days, err := strconv.Atoi(val)
		if err != nil {
			return query, errors.New("days must be an integer")
		}
		query.Days = days
	}

	if err := validate.Struct(query); err != nil {
		return query, err
	}
	return query, nil
}

func newBikeDaysResponse(fc Forecaster, result service.Result) BikeDaysResponse {
	resp := BikeDaysResponse{
		Location:  result.Location.Name,
		Latitude:  result.Location.Coords.Lat,
		Longitude: result.Location.Coords.Lon,
		Timezone:  result.Zone.String(),
		Updated:   result.Updated,
		Days:      make([]DayResponse, 0, len(result.Days)),
	}
	for _, day := range result.Days {
		resp.Days = append(resp.Days, DayResponse{
			Date:        day.Date,
			Score:       day.Score,
			Band:        day.Band,
			BandLabel:   fc.BandLabel(day.Band),
			BandColor:   presenter.BandColor(day.Band),
			Temperature: day.Representative.Temperature,
			WindSpeed:   day.Representative.WindSpeed,
			Sky:         day.Representative.Sky,
			Description: day.Representative.Description,
		})
	}
	if result.HasBest {
		best := result.Best.Date
		resp.Best = &best
	}
	return resp
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, forecast.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, city.ErrUnknownCity):
		return fiber.StatusNotFound
	case errors.Is(err, http.ErrCircuitOpen):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusBadGateway
	}
}

func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := statusFor(err)
		if code >= fiber.StatusInternalServerError {
			log.Error("request failed", slog.String("path", c.Path()), slog.Int("status", code), logger.Err(err))
		}
		return c.Status(code).JSON(fiber.Map{
			"error":   true,
			"message": err.Error(),
		})
	}
}

func requestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug("request handled", slog.String("method", c.Method()), slog.String("path", c.Path()),
			slog.Duration("duration", time.Since(start)))
		return err
	}
}
