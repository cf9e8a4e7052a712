package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-month-history/internal/weather"
)

var validate = validator.New()

// errInvalidRequest is what clients see for an unknown month.
var errInvalidRequest = errors.New("Invalid Request")

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, opts Options) {
	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":   "ok",
			"service":  "weather-month-history",
			"provider": service.ProviderName(),
		}
		if opts.Probe != nil && opts.Probe.Enabled() {
			if probe, ok := opts.Probe.LastProbe(); ok {
				body["upstream"] = probe
			} else {
				body["upstream"] = fiber.Map{"healthy": nil}
			}
		}
		return c.JSON(body)
	})

	api := app.Group(opts.Prefix)

	// Fetch a month's worth of hourly temperatures, grouped by day.
	api.Get("/weather/:month", func(c *fiber.Ctx) error {
		var q monthQuery
		if err := q.bind(c, opts); err != nil {
			log.Debug().Err(err).Str("month", c.Params("month")).Msg("rejected weather request")
			if errors.Is(err, weather.ErrInvalidMonth) {
				return errInvalidRequest
			}
			return err
		}

		grouped, err := service.MonthlyTemps(c.UserContext(), q.month, q.Coordinates())
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"status": fiber.StatusOK,
			"data":   weather.MonthResponse{q.MonthID: grouped},
		})
	})
}

// monthQuery holds the path and query parameters of the month endpoint.
type monthQuery struct {
	MonthID string  `validate:"required"`
	Lat     float64 `validate:"gte=-90,lte=90"`
	Long    float64 `validate:"gte=-180,lte=180"`

	month time.Month
}

func (q monthQuery) Coordinates() weather.Coordinates {
	return weather.Coordinates{Lat: q.Lat, Long: q.Long}
}

// bind validates the month first so a bad month never reaches geocoding or upstream.
func (q *monthQuery) bind(c *fiber.Ctx, opts Options) error {
	q.MonthID = c.Params("month")
	month, err := weather.ParseMonth(q.MonthID)
	if err != nil {
		return err
	}
	q.month = month

	coords, err := resolveCoordinates(c, opts)
	if err != nil {
		return err
	}
	q.Lat, q.Long = coords.Lat, coords.Long

	return validate.Struct(q)
}

// resolveCoordinates applies explicit lat/long, then city lookup, then defaults.
func resolveCoordinates(c *fiber.Ctx, opts Options) (weather.Coordinates, error) {
	coords := opts.DefaultCoords
	latStr, longStr := c.Query("lat"), c.Query("long")

	if latStr == "" && longStr == "" && opts.Geocoder != nil {
		if city := c.Query("city"); city != "" {
			return opts.Geocoder.Resolve(c.UserContext(), city, c.Query("country"))
		}
	}

	if latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return coords, fmt.Errorf("invalid lat %q: %w", latStr, err)
		}
		coords.Lat = lat
	}
	if longStr != "" {
		long, err := strconv.ParseFloat(longStr, 64)
		if err != nil {
			return coords, fmt.Errorf("invalid long %q: %w", longStr, err)
		}
		coords.Long = long
	}
	return coords, nil
}
