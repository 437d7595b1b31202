// Package registry holds the static tool catalog. Each descriptor carries the
// JSON schema that is both advertised to callers on /v1 and compiled for
// runtime validation of tool inputs, so the two cannot drift.
package registry

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/artermis-ops/agency-mcp/internal/models"
)

// Descriptor describes one tool to the calling agent.
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`

	compiled *gojsonschema.Schema
}

// Validate checks a raw request body against the descriptor's input schema.
// Failures come back as a *models.ValidationError listing every violation.
func (d *Descriptor) Validate(doc []byte) error {
	result, err := d.compiled.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &models.ValidationError{Message: "invalid request body: " + err.Error()}
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return &models.ValidationError{Message: strings.Join(msgs, "; ")}
}

// Catalog is the immutable set of available tools.
type Catalog struct {
	descriptors []Descriptor
	byName      map[string]*Descriptor
}

// New builds the catalog and compiles every input schema.
func New() (*Catalog, error) {
	c := &Catalog{
		descriptors: descriptors(),
		byName:      make(map[string]*Descriptor),
	}
	for i := range c.descriptors {
		d := &c.descriptors[i]
		if _, dup := c.byName[d.Name]; dup {
			return nil, fmt.Errorf("duplicate tool descriptor %q", d.Name)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(d.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compile schema for %q: %w", d.Name, err)
		}
		d.compiled = schema
		c.byName[d.Name] = d
	}
	return c, nil
}

// Descriptors returns the full tool list in declaration order.
func (c *Catalog) Descriptors() []Descriptor { return c.descriptors }

// Lookup returns the descriptor for a tool name.
func (c *Catalog) Lookup(name string) (*Descriptor, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// Names returns every tool name in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.descriptors))
	for i, d := range c.descriptors {
		names[i] = d.Name
	}
	return names
}

func descriptors() []Descriptor {
	return []Descriptor{
		{
			Name:        "get_current_weather",
			Description: "Get real-time weather for any city",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"city": map[string]any{"type": "string", "minLength": 1},
				},
				"required": []string{"city"},
			},
		},
		{
			Name:        "list_emails",
			Description: "List recent emails from the Gmail inbox",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"limit": map[string]any{"type": "integer", "minimum": 1, "maximum": 100},
				},
			},
		},
		{
			Name:        "read_email",
			Description: "Read a specific email by ID",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"email_id": map[string]any{"type": "string", "minLength": 1},
				},
				"required": []string{"email_id"},
			},
		},
		{
			Name:        "send_email",
			Description: "Send an email reply",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"to":      map[string]any{"type": "string", "minLength": 1},
					"subject": map[string]any{"type": "string"},
					"body":    map[string]any{"type": "string"},
				},
				"required": []string{"to", "subject", "body"},
			},
		},
		{
			Name:        "classify_lead",
			Description: "Classify a lead as Hot, Warm or Cold from its email text",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"email_body": map[string]any{"type": "string"},
				},
				"required": []string{"email_body"},
			},
		},
		{
			Name:        "create_calendar_event",
			Description: "Book a meeting on Google Calendar",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":            map[string]any{"type": "string", "minLength": 1},
					"date":             map[string]any{"type": "string", "minLength": 1},
					"time":             map[string]any{"type": "string", "minLength": 1},
					"duration_minutes": map[string]any{"type": "integer", "minimum": 1},
				},
				"required": []string{"title", "date", "time"},
			},
		},
	}
}
