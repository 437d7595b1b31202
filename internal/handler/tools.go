package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/artermis-ops/agency-mcp/internal/classify"
	"github.com/artermis-ops/agency-mcp/internal/models"
)

// WeatherService is the weather adapter consumed by the tool handlers.
type WeatherService interface {
	Current(ctx context.Context, city string) (*models.WeatherResponse, error)
}

// MailService is the mail adapter consumed by the tool handlers.
type MailService interface {
	ListMessages(ctx context.Context, limit int64) ([]models.EmailSummary, error)
	GetMessage(ctx context.Context, id string) (*models.ReadEmailResponse, error)
	Send(ctx context.Context, to, subject, body string) error
}

// CalendarService is the calendar adapter consumed by the tool handlers.
type CalendarService interface {
	CreateEvent(ctx context.Context, title string, start, end time.Time) (string, error)
}

// Tools implements one handler per catalog entry. Mail and calendar may be
// nil when Google credentials are not configured; their tools then report a
// credential error instead of crashing.
type Tools struct {
	weather  WeatherService
	mail     MailService
	calendar CalendarService
}

func NewTools(weather WeatherService, mail MailService, cal CalendarService) *Tools {
	return &Tools{weather: weather, mail: mail, calendar: cal}
}

func (t *Tools) GetCurrentWeather(ctx context.Context, input json.RawMessage) (any, error) {
	var req models.WeatherRequest
	if err := json.Unmarshal(input, &req); err != nil {
		return nil, &models.ValidationError{Message: err.Error()}
	}
	return t.weather.Current(ctx, req.City)
}

func (t *Tools) ListEmails(ctx context.Context, input json.RawMessage) (any, error) {
	if t.mail == nil {
		return nil, errMailDisabled()
	}
	var req models.ListEmailsRequest
	if err := json.Unmarshal(input, &req); err != nil {
		return nil, &models.ValidationError{Message: err.Error()}
	}
	req.SetDefaults()

	emails, err := t.mail.ListMessages(ctx, req.Limit)
	if err != nil {
		return nil, err
	}
	if int64(len(emails)) > req.Limit {
		emails = emails[:req.Limit]
	}
	if emails == nil {
		emails = []models.EmailSummary{}
	}
	return &models.ListEmailsResponse{Emails: emails}, nil
}

func (t *Tools) ReadEmail(ctx context.Context, input json.RawMessage) (any, error) {
	if t.mail == nil {
		return nil, errMailDisabled()
	}
	var req models.ReadEmailRequest
	if err := json.Unmarshal(input, &req); err != nil {
		return nil, &models.ValidationError{Message: err.Error()}
	}
	return t.mail.GetMessage(ctx, req.EmailID)
}

func (t *Tools) SendEmail(ctx context.Context, input json.RawMessage) (any, error) {
	if t.mail == nil {
		return nil, errMailDisabled()
	}
	var req models.SendEmailRequest
	if err := json.Unmarshal(input, &req); err != nil {
		return nil, &models.ValidationError{Message: err.Error()}
	}
	if err := t.mail.Send(ctx, req.To, req.Subject, req.Body); err != nil {
		return nil, err
	}
	return &models.SendEmailResponse{Status: "sent"}, nil
}

func (t *Tools) ClassifyLead(ctx context.Context, input json.RawMessage) (any, error) {
	var req models.ClassifyLeadRequest
	if err := json.Unmarshal(input, &req); err != nil {
		return nil, &models.ValidationError{Message: err.Error()}
	}
	result := classify.Lead(req.EmailBody)
	return &models.ClassifyLeadResponse{
		Classification: result.Classification,
		Confidence:     result.Confidence,
	}, nil
}

func (t *Tools) CreateCalendarEvent(ctx context.Context, input json.RawMessage) (any, error) {
	if t.calendar == nil {
		return nil, &models.CredentialError{
			Message: "calendar is not configured; set google_credentials_file and authorize",
		}
	}
	var req models.CreateEventRequest
	if err := json.Unmarshal(input, &req); err != nil {
		return nil, &models.ValidationError{Message: err.Error()}
	}
	req.SetDefaults()

	start, err := parseStart(req.Date, req.Time)
	if err != nil {
		return nil, &models.ValidationError{Message: err.Error()}
	}
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)

	link, err := t.calendar.CreateEvent(ctx, req.Title, start, end)
	if err != nil {
		return nil, err
	}
	return &models.CreateEventResponse{EventLink: link, Status: "booked"}, nil
}

// parseStart validates the date and time strings before any arithmetic so a
// malformed timestamp fails as a client error, not an adapter failure.
func parseStart(date, clock string) (time.Time, error) {
	stamp := date + "T" + clock
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if ts, err := time.Parse(layout, stamp); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("malformed timestamp %q: want date YYYY-MM-DD and time HH:MM[:SS]", stamp)
}

func errMailDisabled() error {
	return &models.CredentialError{
		Message: "email is not configured; set google_credentials_file and authorize",
	}
}
