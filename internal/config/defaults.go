package config

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8000
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"

	// DefaultConfigFile is the per-deployment file; it is the only artifact
	// that changes between clients.
	DefaultConfigFile = "client_config.json"

	DefaultRateLimitPerMinute = 60

	DefaultWeatherBaseURL = "https://wttr.in"

	DefaultGoogleTokenFile  = "token.json"
	DefaultCalendarID       = "primary"
	DefaultCalendarTimeZone = "UTC"

	DefaultToolTimeoutSeconds   = 15
	DefaultAdapterRetryAttempts = 3
)

var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8080",
}
