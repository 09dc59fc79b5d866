// Package events defines event types for template and configuration
// lifecycle notifications.
package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

// Topic carries every lifecycle event.
const Topic = "tessellate.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	TemplateImportedEvent     EventType = "template.imported"
	ConfigurationAppliedEvent EventType = "configuration.applied"
	VariantsGeneratedEvent    EventType = "variants.generated"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// TemplateImported signals that an exported template document was imported
// and now shadows any cached entry for its industry/use-case key.
type TemplateImported struct {
	BaseEvent

	TemplateID string `json:"template_id"`
	IndustryID string `json:"industry_id"`
	UseCaseID  string `json:"use_case_id"`
	Version    string `json:"version,omitempty"`
}

func (t TemplateImported) GetType() EventType {
	return TemplateImportedEvent
}

// ConfigurationApplied signals that a template was applied to user data and
// the resulting configuration passed validation and was saved.
type ConfigurationApplied struct {
	BaseEvent

	ConfigurationID string `json:"configuration_id"`
	TemplateID      string `json:"template_id"`
	IndustryID      string `json:"industry_id"`
	UseCaseID       string `json:"use_case_id"`
	Warnings        int    `json:"warnings"`
}

func (c ConfigurationApplied) GetType() EventType {
	return ConfigurationAppliedEvent
}

// VariantsGenerated signals that variation rules were run against a saved
// configuration.
type VariantsGenerated struct {
	BaseEvent

	ConfigurationID string   `json:"configuration_id"`
	TemplateID      string   `json:"template_id"`
	VariantIDs      []string `json:"variant_ids"`
}

func (v VariantsGenerated) GetType() EventType {
	return VariantsGeneratedEvent
}

func NewBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]any),
	}
}
