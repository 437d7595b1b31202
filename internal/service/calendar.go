package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/artermis-ops/agency-mcp/internal/models"
)

// timestampLayout is the zone-less format the Calendar API pairs with an
// explicit TimeZone field.
const timestampLayout = "2006-01-02T15:04:05"

// CalendarService inserts events on one calendar in a fixed time zone.
type CalendarService struct {
	svc        *calendar.Service
	calendarID string
	timeZone   string
}

func NewCalendarService(ctx context.Context, client *http.Client, calendarID, timeZone string) (*CalendarService, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("calendar.NewService: %w", err)
	}
	return &CalendarService{svc: svc, calendarID: calendarID, timeZone: timeZone}, nil
}

// CreateEvent inserts an event and returns its shareable link. Inserts are
// not retried.
func (s *CalendarService) CreateEvent(ctx context.Context, title string, start, end time.Time) (string, error) {
	ev := &calendar.Event{
		Summary: title,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(timestampLayout),
			TimeZone: s.timeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(timestampLayout),
			TimeZone: s.timeZone,
		},
	}

	created, err := s.svc.Events.Insert(s.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return "", &models.UpstreamError{Service: "calendar", Err: fmt.Errorf("insert event: %w", err)}
	}
	return created.HtmlLink, nil
}
