// Package main provides the Tessellate API server implementation.
package main

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tessellate-io/tessellate/pkg/engine"
	"github.com/tessellate-io/tessellate/pkg/eventbus"
	"github.com/tessellate-io/tessellate/pkg/otelhelper"
	"github.com/tessellate-io/tessellate/pkg/persistence"
	"github.com/tessellate-io/tessellate/pkg/store"
	"github.com/tessellate-io/tessellate/pkg/synthesis"
	"github.com/tessellate-io/tessellate/pkg/validation"
	"github.com/tessellate-io/tessellate/pkg/web"
	"github.com/tessellate-io/tessellate/pkg/workflows"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	registry    workflows.Registry
	eventBus    eventbus.EventBus
	validate    *validator.Validate
	tracer      trace.Tracer
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	registry workflows.Registry,
	eventBus eventbus.EventBus,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		registry:    registry,
		eventBus:    eventBus,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// EnableTracing attaches an OTLP tracer; every request then runs inside a
// span carrying the request path.
func (a *API) EnableTracing(ctx context.Context) error {
	tracer, err := otelhelper.NewTracer(ctx, "tessellate-api")
	if err != nil {
		return err
	}

	a.tracer = tracer

	return nil
}

func (a *API) App() *fiber.App {
	templateStore := store.New(a.logger, a.persistence, a.registry, synthesis.New())
	eng := engine.New(templateStore, validation.NewRegistry())

	handlers := web.NewAPIHandlers(a.logger, eng, a.eventBus, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	if a.tracer != nil {
		app.Use(a.traceRequests)
	}

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Tessellate API")
	})

	ct := app.Group("/config-templates")
	ct.Get("/industry/:industry", handlers.ListTemplatesByIndustry)
	ct.Post("/import", handlers.ImportTemplate)
	ct.Get("/validators", handlers.ListValidators)
	ct.Get("/configurations/:configId", handlers.GetConfiguration)
	ct.Post("/configurations/:configId/variants", handlers.GenerateVariants)
	ct.Get("/:industry/:useCase", handlers.GetTemplate)
	ct.Get("/:industry/:useCase/export", handlers.ExportTemplate)
	ct.Post("/:industry/:useCase/apply", handlers.ApplyTemplate)
	ct.Post("/:industry/:useCase/validate", handlers.ValidateTemplate)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) traceRequests(c fiber.Ctx) error {
	ctx, span := otelhelper.StartSpan(c.Context(), a.tracer, c.Method()+" "+c.Path(),
		attribute.String(otelhelper.ServiceIDKey, "tessellate-api"),
		attribute.String(otelhelper.IndustryIDKey, c.Params("industry")),
		attribute.String(otelhelper.UseCaseIDKey, c.Params("useCase")),
	)
	defer span.End()

	c.SetContext(ctx)

	err := c.Next()
	if err != nil {
		otelhelper.SetError(span, err)
	}

	return err
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
