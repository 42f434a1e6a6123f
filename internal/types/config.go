package types

// RunMode is the deployment mode of the service
type RunMode string

const (
	RunModeLocal RunMode = "local"
	RunModeProd  RunMode = "prod"
)

// LogLevel controls logger verbosity
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// HTTP headers propagated by the middleware stack
const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
)
