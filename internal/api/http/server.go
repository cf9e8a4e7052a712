package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/i474232898/weather-month-history/internal/geocode"
	"github.com/i474232898/weather-month-history/internal/scheduler"
	"github.com/i474232898/weather-month-history/internal/weather"
)

// Options configures the HTTP surface.
type Options struct {
	Prefix        string
	DefaultCoords weather.Coordinates
	AllowOrigins  string

	// Geocoder resolves ?city=&country= when set.
	Geocoder geocode.Resolver

	// Probe feeds /health with upstream status when set.
	Probe *scheduler.Scheduler

	// BaseContext is the parent of every request's upstream calls. Fiber does
	// not cancel on client disconnect, so cancelling it is what stops in-flight
	// fan-outs on shutdown.
	BaseContext context.Context
}

// errorBody is the failure shape shared by every error path.
type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// NewServer builds the Fiber app with middleware and routes wired.
func NewServer(service *weather.Service, opts Options) *fiber.App {
	if opts.AllowOrigins == "" {
		opts.AllowOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               "weather-month-history",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// A month fans out into ~30 upstream calls.
		WriteTimeout: 60 * time.Second,
		ErrorHandler: errorHandler,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(requestLogger())
	if opts.BaseContext != nil {
		app.Use(func(c *fiber.Ctx) error {
			c.SetUserContext(opts.BaseContext)
			return c.Next()
		})
	}
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.AllowOrigins,
		AllowHeaders: "Origin, X-Requested-With, Content-Type, Accept",
	}))

	RegisterRoutes(app, service, opts)
	return app
}

// errorHandler renders {message, status}. Handler failures are always 500;
// router-level errors (unknown route, bad method) keep Fiber's code.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(errorBody{
		Message: err.Error(),
		Status:  code,
	})
}
