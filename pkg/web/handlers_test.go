package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessellate-io/tessellate/pkg/engine"
	"github.com/tessellate-io/tessellate/pkg/models"
	"github.com/tessellate-io/tessellate/pkg/persistence/memory"
	"github.com/tessellate-io/tessellate/pkg/store"
	"github.com/tessellate-io/tessellate/pkg/synthesis"
	"github.com/tessellate-io/tessellate/pkg/validation"
	"github.com/tessellate-io/tessellate/pkg/web"
	"github.com/tessellate-io/tessellate/pkg/workflows"
)

func fraudWorkflow() *models.Workflow {
	return &models.Workflow{
		ID:       "wf-fraud",
		Name:     "Fraud Detection",
		Industry: "finance",
		UseCase:  "fraud-detection",
		Steps: []models.WorkflowStep{
			{ID: "ingest", Type: "http_request", Parameters: map[string]any{
				"url":     "${sourceUrl}",
				"retries": "2",
			}},
		},
		Metadata: models.WorkflowMetadata{Criticality: models.CriticalityHigh},
	}
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	templateStore := store.New(
		slog.Default(),
		memory.NewPersistence(),
		workflows.NewStaticRegistry(fraudWorkflow()),
		synthesis.New(),
	)
	eng := engine.New(templateStore, validation.NewRegistry())
	validate := validator.New(validator.WithRequiredStructEnabled())
	handlers := web.NewAPIHandlers(slog.Default(), eng, nil, validate)

	app := fiber.New()

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

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, raw
}

func TestGetTemplate(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/config-templates/finance/fraud-detection", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var template models.ConfigTemplate
	require.NoError(t, json.Unmarshal(body, &template))
	assert.Equal(t, "finance", template.IndustryID)
	assert.Equal(t, "fraud-detection", template.UseCaseID)
	assert.NotNil(t, template.Variable("sourceUrl"))
	assert.NotNil(t, template.Variable("executionTimeout"))
}

func TestGetTemplate_NotFound(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/config-templates/finance/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListTemplatesByIndustry(t *testing.T) {
	app := setupTestApp(t)

	// Synthesize one template into the cache first.
	resp, _ := doJSON(t, app, http.MethodGet, "/config-templates/finance/fraud-detection", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/config-templates/industry/finance", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Templates []web.TemplateSummary `json:"templates"`
		Count     int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(body, &listing))
	require.Equal(t, 1, listing.Count)
	assert.Equal(t, "Fraud Detection Configuration", listing.Templates[0].Name)
	assert.Positive(t, listing.Templates[0].VariableCount)
}

func TestApplyTemplate(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/config-templates/finance/fraud-detection/apply", web.ApplyRequest{
		Data: map[string]any{
			"sourceUrl":        "https://example.com/transactions",
			"executionTimeout": 3600,
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		ID            string                  `json:"id"`
		Configuration models.Configuration    `json:"configuration"`
		Validation    models.ValidationResult `json:"validation"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.NotEmpty(t, result.ID)
	assert.True(t, result.Validation.Valid)
	assert.Equal(t, "https://example.com/transactions", result.Configuration.Values["sourceUrl"])
	assert.Equal(t, 3600.0, result.Configuration.Values["executionTimeout"])
	assert.Equal(t, 3.0, result.Configuration.Values["retryAttempts"], "defaults fill untouched variables")
}

func TestApplyTemplate_ValidationFailure(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/config-templates/finance/fraud-detection/apply", web.ApplyRequest{
		Data: map[string]any{
			"sourceUrl":        "https://example.com/transactions",
			"executionTimeout": 999_999,
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var failure struct {
		Error      string                  `json:"error"`
		Validation models.ValidationResult `json:"validation"`
	}
	require.NoError(t, json.Unmarshal(body, &failure))
	assert.Equal(t, "Configuration validation failed", failure.Error)
	assert.False(t, failure.Validation.Valid)
	require.NotEmpty(t, failure.Validation.Errors)
	assert.Equal(t, "executionTimeout", failure.Validation.Errors[0].Field)
}

func TestApplyTemplate_MissingRequiredIsHardFailure(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/config-templates/finance/fraud-detection/apply", web.ApplyRequest{
		Data: map[string]any{"executionTimeout": 3600},
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestApplyTemplate_InvalidBody(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/config-templates/finance/fraud-detection/apply", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValidateTemplate(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/config-templates/finance/fraud-detection/validate", web.ValidateRequest{
		Data: map[string]any{
			"sourceUrl":        "https://example.com/transactions",
			"executionTimeout": -5,
		},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode, "validation findings are a successful response")

	var result models.ValidationResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.False(t, result.Valid)
}

func TestExportTemplate(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/config-templates/finance/fraud-detection/export", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "finance-fraud-detection-template.json")

	var template models.ConfigTemplate
	require.NoError(t, json.Unmarshal(body, &template))
	assert.Equal(t, "fraud-detection", template.UseCaseID)
}

func TestImportTemplate_RoundTrip(t *testing.T) {
	app := setupTestApp(t)

	_, exported := doJSON(t, app, http.MethodGet, "/config-templates/finance/fraud-detection/export", nil)

	resp, body := doJSON(t, app, http.MethodPost, "/config-templates/import", map[string]any{
		"template_json": json.RawMessage(exported),
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var imported models.ConfigTemplate
	require.NoError(t, json.Unmarshal(body, &imported))
	assert.Equal(t, "finance", imported.IndustryID)
	assert.Equal(t, "fraud-detection", imported.UseCaseID)
}

func TestImportTemplate_Malformed(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/config-templates/import", map[string]any{
		"template_json": map[string]any{"name": "incomplete"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func applyConfiguration(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/config-templates/finance/fraud-detection/apply", web.ApplyRequest{
		Data: map[string]any{
			"sourceUrl":        "https://example.com/transactions",
			"executionTimeout": 3600,
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	require.NotEmpty(t, result.ID)

	return result.ID
}

func TestGetConfiguration(t *testing.T) {
	app := setupTestApp(t)
	id := applyConfiguration(t, app)

	resp, body := doJSON(t, app, http.MethodGet, "/config-templates/configurations/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var config models.Configuration
	require.NoError(t, json.Unmarshal(body, &config))
	assert.Equal(t, id, config.ID)

	resp, _ = doJSON(t, app, http.MethodGet, "/config-templates/configurations/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGenerateVariants(t *testing.T) {
	app := setupTestApp(t)
	id := applyConfiguration(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/config-templates/configurations/"+id+"/variants", web.VariantsRequest{
		Variations: []models.VariationRule{
			{Name: "aggressive retries", Changes: map[string]any{
				"retryAttempts": map[string]any{"operation": "multiply", "factor": 2},
			}},
		},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Variants []models.ConfigVariant `json:"variants"`
		Count    int                    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	require.Equal(t, 1, result.Count)
	assert.Equal(t, 6.0, result.Variants[0].Overrides["retryAttempts"])
}

func TestGenerateVariants_UnknownConfiguration(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/config-templates/configurations/missing/variants", web.VariantsRequest{
		Variations: []models.VariationRule{{Name: "noop", Changes: map[string]any{}}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListValidators(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/config-templates/validators", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Validators []string `json:"validators"`
	}
	require.NoError(t, json.Unmarshal(body, &listing))
	assert.Subset(t, listing.Validators, []string{"email", "url", "dateRange", "sum"})
}

func TestHealthCheck(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "healthy", health.Status)
}
