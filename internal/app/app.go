// Package app assembles the HTTP application and its backing store.
package app

import (
	"errors"

	"productapi/internal/handlers"
	"productapi/internal/middleware"
	"productapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// New builds the fiber app serving the product API under /api together with
// /health, /ready and /metrics.
func New(service *services.ProductService, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "productapi",
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(log),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.Metrics())
	app.Use(recover.New())

	handlers.NewHealthHandler(service).RegisterRoutes(app)
	app.Get("/metrics", middleware.MetricsHandler())

	api := app.Group("/api")
	handlers.NewProductHandler(service, log).RegisterRoutes(api)

	return app
}

// ErrorHandler renders errors that escaped the handlers as {"message": ...}.
// Errors other than *fiber.Error become a 500 without leaking details.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			log.Error().Err(err).Str("request_id", middleware.GetRequestID(c)).Msg("unhandled error")
		}

		return c.Status(code).JSON(fiber.Map{
			"message": message,
		})
	}
}
