package constants

import "time"

const (
	// ServiceName OpenTelemetry service name
	ServiceName = "herald"
	// MysqlMaxIdleConnection max mysql idle connections.
	MysqlMaxIdleConnection = 25
	// MysqlMaxOpenConnection max mysql open connections.
	MysqlMaxOpenConnection = 25
	// MysqlMaxConnectionLifetime max mysql connection lifetime.
	MysqlMaxConnectionLifetime = 5 * time.Minute
	// DefaultVaultNamespace the default vault namespace.
	DefaultVaultNamespace = "admin"
	// DefaultShutDownDelay is the delay for graceful shutdown of all queue consumers
	DefaultShutDownDelay = 15e9 // 15 seconds, value is int64 nanoseconds due to issue in viper.
	// DefaultGracefulTimeout is default timeout for graceful shutdown of the app.
	DefaultGracefulTimeout = 5 * 6e10 // 5 minutes
	// DefaultJWTTimeout is the lifetime of internal tokens.
	DefaultJWTTimeout = 36e11 // 1 hour
	// DefaultDescriptionPrefix is prepended to the commit status descriptions.
	DefaultDescriptionPrefix = "Herald"
	// DefaultDeliveryAttempts is the number of CreateStatus attempts.
	DefaultDeliveryAttempts = 5
	// DefaultDeliveryDelay is the base delay between CreateStatus attempts.
	DefaultDeliveryDelay = 5e8 // 500 milliseconds
	// DefaultDeliveryMaxJitter is the max jitter added to the delivery delay.
	DefaultDeliveryMaxJitter = 25e7 // 250 milliseconds
	// DefaultDedupeTTL is how long a delivered status update is remembered.
	DefaultDedupeTTL = 24 * time.Hour
	// DefaultTransactionRetries is the number of times a deadlocked transaction is retried.
	DefaultTransactionRetries = 3
	// DefaultTransactionDelay is the delay between two transaction attempts.
	DefaultTransactionDelay = 100 * time.Millisecond
	// DefaultTransactionMaxJitter is the max jitter added to the transaction delay.
	DefaultTransactionMaxJitter = 50 * time.Millisecond
)

// Delivery modes.
const (
	// DeliveryModeDirect posts statuses from the goroutine handling the event.
	DeliveryModeDirect = "direct"
	// DeliveryModeQueue posts statuses through the status kafka topic.
	DeliveryModeQueue = "queue"
)

// All possible env values
const (
	Dev   = "dev"
	Prod  = "prod"
	Stage = "stage"
)

// BinaryVersion version of the herald binary, set at build time.
var BinaryVersion string

// Redis key prefixes.
const (
	ProblemsKeyPrefix = "problems:"
)

// CorsAllowedOrigins list of allowed origins, the configured frontend url is appended at startup.
var CorsAllowedOrigins = []string{"http://localhost:3000"}
