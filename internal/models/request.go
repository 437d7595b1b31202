package models

// WeatherRequest for POST /v1/tools/get_current_weather
type WeatherRequest struct {
	City string `json:"city"`
}

// ListEmailsRequest for POST /v1/tools/list_emails
type ListEmailsRequest struct {
	Limit int64 `json:"limit"`
}

func (r *ListEmailsRequest) SetDefaults() {
	if r.Limit == 0 {
		r.Limit = 10
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
}

// ReadEmailRequest for POST /v1/tools/read_email
type ReadEmailRequest struct {
	EmailID string `json:"email_id"`
}

// SendEmailRequest for POST /v1/tools/send_email
type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ClassifyLeadRequest for POST /v1/tools/classify_lead
type ClassifyLeadRequest struct {
	EmailBody string `json:"email_body"`
}

// CreateEventRequest for POST /v1/tools/create_calendar_event
type CreateEventRequest struct {
	Title           string `json:"title"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
}

func (r *CreateEventRequest) SetDefaults() {
	if r.DurationMinutes == 0 {
		r.DurationMinutes = 30
	}
}
