package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/artermis-ops/agency-mcp/internal/models"
	"github.com/artermis-ops/agency-mcp/internal/registry"
)

// ToolFunc executes one tool against an already schema-validated body.
type ToolFunc func(ctx context.Context, input json.RawMessage) (any, error)

// Dispatcher routes POST /v1/tools/{tool} to the registered ToolFunc after
// validating the body against the tool's descriptor.
type Dispatcher struct {
	catalog  *registry.Catalog
	handlers map[string]ToolFunc
	timeout  time.Duration
}

// NewDispatcher registers every tool handler against the catalog. The same
// uniform timeout bounds each tool invocation.
func NewDispatcher(catalog *registry.Catalog, tools *Tools, timeout time.Duration) *Dispatcher {
	d := &Dispatcher{
		catalog:  catalog,
		handlers: make(map[string]ToolFunc),
		timeout:  timeout,
	}
	d.Register("get_current_weather", tools.GetCurrentWeather)
	d.Register("list_emails", tools.ListEmails)
	d.Register("read_email", tools.ReadEmail)
	d.Register("send_email", tools.SendEmail)
	d.Register("classify_lead", tools.ClassifyLead)
	d.Register("create_calendar_event", tools.CreateCalendarEvent)
	return d
}

func (d *Dispatcher) Register(name string, fn ToolFunc) {
	d.handlers[name] = fn
}

// Verify checks that descriptors and handlers stay in lock-step: every
// descriptor has exactly one handler and every handler a descriptor. Run at
// startup; a mismatch is fatal.
func (d *Dispatcher) Verify() error {
	for _, name := range d.catalog.Names() {
		if _, ok := d.handlers[name]; !ok {
			return fmt.Errorf("tool %q has a descriptor but no handler", name)
		}
	}
	for name := range d.handlers {
		if _, ok := d.catalog.Lookup(name); !ok {
			return fmt.Errorf("tool %q has a handler but no descriptor", name)
		}
	}
	return nil
}

// Call handles POST /v1/tools/{tool}
func (d *Dispatcher) Call(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tool")
	desc, ok := d.catalog.Lookup(name)
	if !ok {
		models.WriteToolError(w, http.StatusNotFound, name, "unknown tool")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		models.WriteToolError(w, http.StatusBadRequest, name, "read request body: "+err.Error())
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	// Validation happens before any external call.
	if err := desc.Validate(body); err != nil {
		models.WriteToolError(w, http.StatusBadRequest, name, err.Error())
		return
	}

	fn, ok := d.handlers[name]
	if !ok {
		// Verify runs at startup, so this only fires if it was skipped.
		models.WriteToolError(w, http.StatusInternalServerError, name, "tool has no registered handler")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), d.timeout)
	defer cancel()

	result, err := fn(ctx, body)
	if err != nil {
		d.writeFailure(w, name, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, result)
}

func (d *Dispatcher) writeFailure(w http.ResponseWriter, tool string, err error) {
	var (
		valErr  *models.ValidationError
		credErr *models.CredentialError
		upErr   *models.UpstreamError
	)
	switch {
	case errors.As(err, &valErr):
		models.WriteToolError(w, http.StatusBadRequest, tool, valErr.Message)
	case errors.As(err, &credErr):
		log.Warn().Str("tool", tool).Msg(credErr.Message)
		models.WriteToolError(w, http.StatusServiceUnavailable, tool, credErr.Message)
	case errors.As(err, &upErr):
		log.Error().Str("tool", tool).Err(err).Msg("upstream call failed")
		models.WriteToolError(w, http.StatusBadGateway, tool, err.Error())
	default:
		log.Error().Str("tool", tool).Err(err).Msg("tool call failed")
		models.WriteToolError(w, http.StatusInternalServerError, tool, err.Error())
	}
}
