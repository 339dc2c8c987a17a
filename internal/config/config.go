// Package config holds service configuration: YAML file with environment
// variable overrides and defaults.
package config

import "time"

// Default configuration values.
const (
	defaultServiceName     = "fir-extractor"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8085
	defaultConcurrency     = 10
	defaultBatchLimit      = 100
	defaultRateLimitRPS    = 50
	defaultReadTimeoutSec  = 30
	defaultWriteTimeoutSec = 60
	defaultStoreDriver     = "sqlite"
	defaultStorePath       = "fir_records.db"
	defaultDBHost          = "localhost"
	defaultDBPort          = 5432
	defaultDBUser          = "postgres"
	defaultDBName          = "fir"
	defaultDBSSLMode       = "disable"
	defaultDBMaxConns      = 25
	defaultDBMaxIdleConns  = 5
	defaultLogLevel        = "info"
)

// Config holds all configuration for the extraction service.
type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
	Extraction ExtractionConfig `yaml:"extraction"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name         string        `yaml:"name"`
	Version      string        `yaml:"version"`
	Port         int           `env:"FIR_PORT"        yaml:"port"`
	Debug        bool          `env:"APP_DEBUG"       yaml:"debug"`
	Concurrency  int           `env:"FIR_CONCURRENCY" yaml:"concurrency"`
	BatchLimit   int           `yaml:"batch_limit"`
	RateLimitRPS int           `yaml:"rate_limit_rps"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// StorageConfig holds record store configuration. Driver selects the
// backend: "sqlite" (default, file-backed) or "postgres".
type StorageConfig struct {
	Driver          string        `env:"FIR_STORE_DRIVER"  yaml:"driver"`
	Path            string        `env:"FIR_STORE_PATH"    yaml:"path"`
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level       string `env:"LOG_LEVEL" yaml:"level"`
	Development bool   `yaml:"development"`
}

// ExtractionConfig holds extraction pipeline settings.
type ExtractionConfig struct {
	// WitnessHeuristic toggles the corpus-tuned witness extractor.
	// Defaults to enabled; nil means "not set".
	WitnessHeuristic *bool `env:"FIR_WITNESS_HEURISTIC" yaml:"witness_heuristic"`
}

// WitnessHeuristicEnabled resolves the witness toggle with its default.
func (e ExtractionConfig) WitnessHeuristicEnabled() bool {
	if e.WitnessHeuristic == nil {
		return true
	}
	return *e.WitnessHeuristic
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setStorageDefaults(&cfg.Storage)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.BatchLimit == 0 {
		s.BatchLimit = defaultBatchLimit
	}
	if s.RateLimitRPS == 0 {
		s.RateLimitRPS = defaultRateLimitRPS
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = defaultReadTimeoutSec * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = defaultWriteTimeoutSec * time.Second
	}
}

func setStorageDefaults(s *StorageConfig) {
	if s.Driver == "" {
		s.Driver = defaultStoreDriver
	}
	if s.Path == "" {
		s.Path = defaultStorePath
	}
	if s.Host == "" {
		s.Host = defaultDBHost
	}
	if s.Port == 0 {
		s.Port = defaultDBPort
	}
	if s.User == "" {
		s.User = defaultDBUser
	}
	if s.Database == "" {
		s.Database = defaultDBName
	}
	if s.SSLMode == "" {
		s.SSLMode = defaultDBSSLMode
	}
	if s.MaxConnections == 0 {
		s.MaxConnections = defaultDBMaxConns
	}
	if s.MaxIdleConns == 0 {
		s.MaxIdleConns = defaultDBMaxIdleConns
	}
	if s.ConnMaxLifetime == 0 {
		s.ConnMaxLifetime = time.Hour
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
}
