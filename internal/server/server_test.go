package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/artermis-ops/agency-mcp/internal/config"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Host:                 "127.0.0.1",
		Port:                 0,
		LogLevel:             "error",
		CompanyName:          "Test Agency",
		WeatherBaseURL:       "http://127.0.0.1:1", // never reached in these tests
		RateLimitPerMinute:   1000,
		ToolTimeoutSeconds:   5,
		AdapterRetryAttempts: 1,
	}
	s := &Server{cfg: cfg}
	router, err := s.setupRoutes()
	if err != nil {
		t.Fatalf("setupRoutes: %v", err)
	}
	return router
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"Test Agency"`) {
		t.Errorf("health should report company, got %s", rr.Body.String())
	}
}

func TestDiscoveryListsAllTools(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/v1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var payload struct {
		Tools []struct {
			Name        string         `json:"name"`
			Description string         `json:"description"`
			InputSchema map[string]any `json:"inputSchema"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Tools) != 6 {
		t.Fatalf("got %d tools, want 6", len(payload.Tools))
	}
	for _, tool := range payload.Tools {
		if tool.Name == "" || tool.Description == "" || tool.InputSchema == nil {
			t.Errorf("incomplete descriptor: %+v", tool)
		}
	}
}

func TestDiscoveryIdenticalOnBothVerbs(t *testing.T) {
	router := newTestRouter(t)

	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/v1", nil))

	post := httptest.NewRecorder()
	router.ServeHTTP(post, httptest.NewRequest(http.MethodPost, "/v1", nil))

	if get.Code != http.StatusOK || post.Code != http.StatusOK {
		t.Fatalf("statuses = %d, %d", get.Code, post.Code)
	}
	if !bytes.Equal(get.Body.Bytes(), post.Body.Bytes()) {
		t.Error("GET and POST discovery should return byte-identical payloads")
	}
}

func TestToolsWithoutCredentialsReturn503(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/tools/list_emails", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rr.Code)
	}
}

func TestClassifyLeadEndToEnd(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/tools/classify_lead",
		strings.NewReader(`{"email_body":"we need this asap"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"Hot"`) {
		t.Errorf("got %s", rr.Body.String())
	}
}
