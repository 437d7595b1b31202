package registry

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestCatalogContainsAllTools(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := []string{
		"get_current_weather",
		"list_emails",
		"read_email",
		"send_email",
		"classify_lead",
		"create_calendar_event",
	}
	got := c.Names()
	if len(got) != len(want) {
		t.Fatalf("got %d tools, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("tool %d = %q, want %q", i, got[i], name)
		}
	}
}

func TestCatalogLookup(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := c.Lookup("get_current_weather"); !ok {
		t.Error("get_current_weather should resolve")
	}
	if _, ok := c.Lookup("no_such_tool"); ok {
		t.Error("unknown tool should not resolve")
	}
}

func TestDescriptorListIsStable(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	first, err := json.Marshal(c.Descriptors())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(c.Descriptors())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("repeated descriptor marshals should be byte-identical")
	}
}

func TestValidateMissingRequiredField(t *testing.T) {
	c, _ := New()
	d, _ := c.Lookup("get_current_weather")

	if err := d.Validate([]byte(`{}`)); err == nil {
		t.Error("missing city should fail validation")
	}
	if err := d.Validate([]byte(`{"city":"Jakarta"}`)); err != nil {
		t.Errorf("valid body rejected: %v", err)
	}
}

func TestValidateWrongType(t *testing.T) {
	c, _ := New()
	d, _ := c.Lookup("list_emails")

	if err := d.Validate([]byte(`{"limit":"ten"}`)); err == nil {
		t.Error("string limit should fail validation")
	}
	if err := d.Validate([]byte(`{"limit":5}`)); err != nil {
		t.Errorf("integer limit rejected: %v", err)
	}
	if err := d.Validate([]byte(`{}`)); err != nil {
		t.Errorf("limit is optional, empty body rejected: %v", err)
	}
}

func TestValidateSendEmailRequiresAllFields(t *testing.T) {
	c, _ := New()
	d, _ := c.Lookup("send_email")

	cases := []string{
		`{"subject":"hi","body":"text"}`,
		`{"to":"a@b.c","body":"text"}`,
		`{"to":"a@b.c","subject":"hi"}`,
	}
	for _, body := range cases {
		if err := d.Validate([]byte(body)); err == nil {
			t.Errorf("body %s should fail validation", body)
		}
	}
	if err := d.Validate([]byte(`{"to":"a@b.c","subject":"hi","body":"text"}`)); err != nil {
		t.Errorf("complete body rejected: %v", err)
	}
}
