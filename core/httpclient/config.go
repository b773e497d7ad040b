package httpclient

// Config holds configuration for outbound API calls.
type Config struct {
	// TimeoutSeconds bounds connection setup and the wait for response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// RequestsPerSecond paces outgoing requests. Zero disables pacing.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"0"`
}
