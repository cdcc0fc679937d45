package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
//
// TokenSecret signs session tokens; its absence (or a value shorter than
// 32 bytes) is a fatal startup condition, never a per-request error.
type AuthConfig struct {
	TokenSecret string `mapstructure:"token_secret" validate:"required,min=32"`

	// TokenLifetimeHours is the session token lifetime. Defaults to 168 (7 days).
	TokenLifetimeHours int `mapstructure:"token_lifetime_hours" validate:"required,gt=0"`

	// BcryptCost is the bcrypt cost factor for password hashing. The default
	// of 10 keeps verification around 100ms on current hardware.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
}
