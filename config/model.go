package config

import (
	"time"

	"github.com/LambdaTest/herald/pkg/lumber"
)

type (
	// ConfigWrapper is a wrapper for the config
	ConfigWrapper struct {
		Config `json:"data"`
	}

	// Config the application's configuration
	Config struct {
		DB              DBConfig
		Kafka           KafkaConfig
		FrontendURL     string `json:"frontendURL"`
		Port            string
		LogFile         string
		LogConfig       lumber.LoggingConfig
		Env             string
		Verbose         bool
		JWT             JWT
		Redis           Redis
		Vault           VaultConfig
		Tracing         TracingConfig
		Delivery        DeliveryConfig
		Tokens          TokenConfig
		Publishers      []PublisherFeature `json:"publishers"`
		GracefulTimeout time.Duration
		ShutDownDelay   time.Duration
	}

	// PublisherFeature is a commit status publisher build feature.
	PublisherFeature struct {
		FeatureID      string            `json:"feature_id"`
		Publisher      string            `json:"publisher"`
		BuildTypes     []string          `json:"build_types"`
		Driver         string            `json:"driver"`
		ServerURL      string            `json:"server_url"`
		TokenPath      string            `json:"token_path"`
		ReportOnStart  bool              `json:"report_on_start"`
		ReportOnFinish bool              `json:"report_on_finish"`
		Extra          map[string]string `json:"extra"`
	}

	// DeliveryConfig configures how commit statuses reach the git SCM provider.
	DeliveryConfig struct {
		// Mode is either queue or direct
		Mode string
		// DescriptionPrefix is prepended to every status description
		DescriptionPrefix string
		// Attempts is the number of CreateStatus calls made before giving up
		Attempts uint
		// Delay between two CreateStatus attempts
		Delay time.Duration
		// MaxJitter added to Delay
		MaxJitter time.Duration
		// DedupeTTL is how long a delivered status is remembered
		DedupeTTL time.Duration
	}

	// TokenConfig holds the static tokens used when a publisher has no vault token path.
	TokenConfig struct {
		GitHub    string
		GitLab    string
		Bitbucket string
	}

	// TracingConfig provides opentelemetry configurations
	TracingConfig struct {
		// OtelEndpoint for storing host name for otel collector
		OtelEndpoint string
	}

	// DBConfig providers the mysql db configuration.
	DBConfig struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		User     string `json:"user"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}

	// JWT represents the JWT configuration.
	JWT struct {
		// Secret HMAC key signing internal tokens
		Secret string
		// Timeout JWT Token timeout
		Timeout time.Duration
	}
	// VaultConfig represents the vault server configuration.
	VaultConfig struct {
		// Token directly specify token(optional)
		Token string
		// Address the vault server address
		Address string
		// Namespace the vault Namespace
		Namespace string
	}
	// Redis represents the redis configuration.
	Redis struct {
		// Redis host:port address.
		Addr string
		// Redis username.
		Username string
		// Redis password.
		Password string
		// TLS enabled
		TLS bool
	}
	// KafkaConfig provides the kafka configuration.
	KafkaConfig struct {
		Brokers           string              `json:"brokers"`
		BuildEventsConfig KafkaConsumerConfig `json:"build_events"`
		StatusQueueConfig KafkaConsumerConfig `json:"status_queue"`
	}
	// KafkaConsumerConfig provides the kafka configuration.
	KafkaConsumerConfig struct {
		Topic         string `json:"topic"`
		ConsumerGroup string `json:"consumer_group"`
	}
)
