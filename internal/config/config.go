package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"    validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Admin    AdminConfig    `mapstructure:"admin"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// RateLimitRPS and RateLimitBurst configure the admission-control
	// token bucket applied per client in front of the study service.
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"   validate:"gt=0"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// CacheConfig contains the statistics cache settings. The TTL is a
// safety net bounding staleness when an invalidation is missed;
// explicit invalidation is the primary consistency mechanism.
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"required,gt=0"`
	MaxEntries int `mapstructure:"max_entries" validate:"required,gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
// Token issuance lives outside this service; only verification happens here.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// AdminConfig contains settings for destructive administrative operations.
type AdminConfig struct {
	// ResetConfirmToken is the token a caller must echo back to confirm
	// a full history reset. The reset is irreversible.
	ResetConfirmToken string `mapstructure:"reset_confirm_token" validate:"required,min=8"`
}
