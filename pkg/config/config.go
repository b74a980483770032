package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	DB              string // connection string for the database (durable store)
	APIBaseURL      string // base URL of the telemetry API
	NatsURL         string // URL of the NATS server used for the shared cache
	CacheBucket     string // name of the key-value bucket for cached payloads
	LogLevel        string // sets the log level (zap log level values)
	LogFormat       string // text vs json
	LogFilter       string // zapfilter rules for namespace filtering
	WaitForServices string // duration to wait for other services to be ready
)

// Config holds the configuration values which are used by the application
type Config struct {
	// if true, every assembled snapshot is printed on debug level
	PrintSnapshots bool
}
