package models

// WeatherResponse is returned by the get_current_weather tool
type WeatherResponse struct {
	TemperatureC float64 `json:"temperature_c"`
	Description  string  `json:"description"`
}

// EmailSummary is one entry in a list_emails result
type EmailSummary struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	From    string `json:"from"`
}

// ListEmailsResponse is returned by the list_emails tool
type ListEmailsResponse struct {
	Emails []EmailSummary `json:"emails"`
}

// ReadEmailResponse is returned by the read_email tool
type ReadEmailResponse struct {
	Body    string `json:"body"`
	Snippet string `json:"snippet"`
}

// SendEmailResponse is returned by the send_email tool
type SendEmailResponse struct {
	Status string `json:"status"`
}

// ClassifyLeadResponse is returned by the classify_lead tool
type ClassifyLeadResponse struct {
	Classification string  `json:"classification"`
	Confidence     float64 `json:"confidence"`
}

// CreateEventResponse is returned by the create_calendar_event tool
type CreateEventResponse struct {
	EventLink string `json:"event_link"`
	Status    string `json:"status"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Company string            `json:"company,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}
