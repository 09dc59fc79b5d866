// Package web provides the REST endpoints for template and configuration
// management.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/tessellate-io/tessellate/pkg/engine"
	"github.com/tessellate-io/tessellate/pkg/eventbus"
	"github.com/tessellate-io/tessellate/pkg/events"
	"github.com/tessellate-io/tessellate/pkg/models"
	"github.com/tessellate-io/tessellate/pkg/persistence"
)

type APIHandlers struct {
	logger    *slog.Logger
	engine    *engine.Engine
	eventBus  eventbus.EventPublisher
	validator *validator.Validate
}

func NewAPIHandlers(
	logger *slog.Logger,
	eng *engine.Engine,
	eventBus eventbus.EventPublisher,
	validate *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		logger:    logger,
		engine:    eng,
		eventBus:  eventBus,
		validator: validate,
	}
}

// GetTemplate returns the full template for an industry/use-case pair,
// synthesizing it on first access.
func (h *APIHandlers) GetTemplate(c fiber.Ctx) error {
	template, err := h.loadTemplate(c)
	if err != nil {
		return internalError(c, err)
	}

	if template == nil {
		return notFound(c, "Template not found")
	}

	return c.JSON(template)
}

// ListTemplatesByIndustry returns summaries of the cached templates for one
// industry. Only templates already synthesized or imported appear here.
func (h *APIHandlers) ListTemplatesByIndustry(c fiber.Ctx) error {
	industry := c.Params("industry")
	if industry == "" {
		return badRequest(c, "Industry is required")
	}

	templates, err := h.engine.Store().TemplatesByIndustry(c.Context(), industry)
	if err != nil {
		return internalError(c, err)
	}

	summaries := make([]TemplateSummary, 0, len(templates))
	for _, template := range templates {
		summaries = append(summaries, TransformTemplateSummary(template))
	}

	return c.JSON(fiber.Map{
		"templates": summaries,
		"count":     len(summaries),
	})
}

// ApplyTemplate merges user data with template defaults, validates the
// result and saves it. Validation failures return 400 with the accumulated
// findings; nothing is persisted in that case.
func (h *APIHandlers) ApplyTemplate(c fiber.Ctx) error {
	template, err := h.loadTemplate(c)
	if err != nil {
		return internalError(c, err)
	}

	if template == nil {
		return notFound(c, "Template not found")
	}

	var req ApplyRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	config, err := h.engine.Apply(template, req.Data)
	if err != nil {
		return internalError(c, err)
	}

	result := h.engine.Validate(template, config)
	if !result.Valid {
		return validationFailed(c, result)
	}

	id, err := h.engine.Store().SaveConfiguration(c.Context(), config)
	if err != nil {
		return internalError(c, err)
	}

	h.publish(c, template.CacheKey(), events.ConfigurationApplied{
		BaseEvent:       events.NewBaseEvent(events.ConfigurationAppliedEvent),
		ConfigurationID: id,
		TemplateID:      template.ID,
		IndustryID:      template.IndustryID,
		UseCaseID:       template.UseCaseID,
		Warnings:        len(result.Warnings),
	})

	config.ID = id

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":            id,
		"configuration": config,
		"validation":    result,
	})
}

// ValidateTemplate checks user data against a template without persisting
// anything. Findings come back in the response body regardless of outcome.
func (h *APIHandlers) ValidateTemplate(c fiber.Ctx) error {
	template, err := h.loadTemplate(c)
	if err != nil {
		return internalError(c, err)
	}

	if template == nil {
		return notFound(c, "Template not found")
	}

	var req ValidateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	config := &models.Configuration{TemplateID: template.ID, Values: req.Data}

	return c.JSON(h.engine.Validate(template, config))
}

// ExportTemplate delivers the template as a standalone JSON document.
func (h *APIHandlers) ExportTemplate(c fiber.Ctx) error {
	template, err := h.loadTemplate(c)
	if err != nil {
		return internalError(c, err)
	}

	if template == nil {
		return notFound(c, "Template not found")
	}

	data, err := h.engine.Store().ExportTemplate(template)
	if err != nil {
		return internalError(c, err)
	}

	filename := template.IndustryID + "-" + template.UseCaseID + "-template.json"
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)

	return c.Send(data)
}

// ImportTemplate installs an exported template document, replacing any
// cached template for the same industry/use-case key.
func (h *APIHandlers) ImportTemplate(c fiber.Ctx) error {
	var req ImportRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	template, err := h.engine.Store().ImportTemplate(c.Context(), req.TemplateJSON)
	if err != nil {
		return badRequest(c, "Invalid template document: "+err.Error())
	}

	h.publish(c, template.CacheKey(), events.TemplateImported{
		BaseEvent:  events.NewBaseEvent(events.TemplateImportedEvent),
		TemplateID: template.ID,
		IndustryID: template.IndustryID,
		UseCaseID:  template.UseCaseID,
		Version:    template.Version,
	})

	return c.Status(fiber.StatusCreated).JSON(template)
}

// GetConfiguration returns a saved configuration by id.
func (h *APIHandlers) GetConfiguration(c fiber.Ctx) error {
	id := c.Params("configId")
	if id == "" {
		return badRequest(c, "Configuration ID is required")
	}

	config, err := h.engine.Store().LoadConfiguration(c.Context(), id)
	if err != nil {
		if persistence.IsConfigurationNotFound(err) {
			return notFound(c, "Configuration not found")
		}

		return internalError(c, err)
	}

	return c.JSON(config)
}

// GenerateVariants runs variation rules against a saved configuration. Each
// variant derives from the base independently.
func (h *APIHandlers) GenerateVariants(c fiber.Ctx) error {
	id := c.Params("configId")
	if id == "" {
		return badRequest(c, "Configuration ID is required")
	}

	config, err := h.engine.Store().LoadConfiguration(c.Context(), id)
	if err != nil {
		if persistence.IsConfigurationNotFound(err) {
			return notFound(c, "Configuration not found")
		}

		return internalError(c, err)
	}

	var req VariantsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	variants := h.engine.GenerateVariants(config, req.Variations)

	variantIDs := make([]string, 0, len(variants))
	for _, variant := range variants {
		variantIDs = append(variantIDs, variant.ID)
	}

	h.publish(c, config.ID, events.VariantsGenerated{
		BaseEvent:       events.NewBaseEvent(events.VariantsGeneratedEvent),
		ConfigurationID: config.ID,
		TemplateID:      config.TemplateID,
		VariantIDs:      variantIDs,
	})

	return c.JSON(fiber.Map{
		"variants": variants,
		"count":    len(variants),
	})
}

// ListValidators names the registered validator predicates. Registration
// itself happens in-process through the engine API; the HTTP surface never
// accepts validator source text.
func (h *APIHandlers) ListValidators(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"validators": h.engine.ValidatorNames(),
	})
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	storeCheck, ok := h.engine.Store().HealthCheck(c.Context())

	status := "unhealthy"
	message := "Tessellate API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if ok {
		status = "healthy"
		message = "Tessellate API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"store": storeCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) loadTemplate(c fiber.Ctx) (*models.ConfigTemplate, error) {
	industry := c.Params("industry")
	useCase := c.Params("useCase")

	return h.engine.Store().LoadTemplate(c.Context(), industry, useCase)
}

func (h *APIHandlers) publish(c fiber.Ctx, key string, event eventbus.Event) {
	if h.eventBus == nil {
		return
	}

	if err := h.eventBus.Publish(c.Context(), key, event); err != nil {
		h.logger.WarnContext(c.Context(), "Failed to publish event",
			"event_type", event.GetType(), "error", err)
	}
}
