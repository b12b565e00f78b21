package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL (Supabase) connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	SkipMigrations  bool          `yaml:"skip_migrations"    env:"DATABASE_SKIP_MIGRATIONS"`
}

// AuthConfig holds Supabase token verification settings.
type AuthConfig struct {
	JWTSecret   string `yaml:"jwt_secret"   env:"SUPABASE_JWT_SECRET"   env-required:"true"`
	JWTIssuer   string `yaml:"jwt_issuer"   env:"SUPABASE_JWT_ISSUER"`
	JWTAudience string `yaml:"jwt_audience" env:"SUPABASE_JWT_AUDIENCE" env-default:"authenticated"`
}

// DictionaryConfig holds term resolver and external dictionary settings.
type DictionaryConfig struct {
	ExternalBaseURL string        `yaml:"external_base_url" env:"DICT_EXTERNAL_BASE_URL" env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	ExternalTimeout time.Duration `yaml:"external_timeout"  env:"DICT_EXTERNAL_TIMEOUT"  env-default:"10s"`
	RetryAttempts   uint          `yaml:"retry_attempts"    env:"DICT_RETRY_ATTEMPTS"    env-default:"2"`
	RetryDelay      time.Duration `yaml:"retry_delay"       env:"DICT_RETRY_DELAY"       env-default:"500ms"`
	CacheTTL        time.Duration `yaml:"cache_ttl"         env:"DICT_CACHE_TTL"         env-default:"24h"`
	NotFoundTTL     time.Duration `yaml:"not_found_ttl"     env:"DICT_NOT_FOUND_TTL"     env-default:"1h"`
	// LookupRateLimit is the number of definition requests allowed per IP per minute.
	LookupRateLimit int `yaml:"lookup_rate_limit" env:"DICT_LOOKUP_RATE_LIMIT" env-default:"120"`
}

// VocabularyConfig holds the saved-words document location.
type VocabularyConfig struct {
	Path string `yaml:"path" env:"VOCABULARY_PATH" env-default:"./data/vocabulary.yaml"`
}

// TelemetryConfig holds background event dispatch settings.
type TelemetryConfig struct {
	QueueSize     int `yaml:"queue_size"     env:"TELEMETRY_QUEUE_SIZE"     env-default:"256"`
	RetentionDays int `yaml:"retention_days" env:"TELEMETRY_RETENTION_DAYS" env-default:"90"`
	// DisableLogPersistence keeps fault events in the process log only,
	// without writing them to app_logs.
	DisableLogPersistence bool `yaml:"disable_log_persistence" env:"TELEMETRY_DISABLE_LOG_PERSISTENCE"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
