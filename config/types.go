package config

// Config represents the complete configuration structure
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Upload  UploadConfig  `mapstructure:"upload"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds Corpora server connection and credential details.
// Either an access token or an email/password pair may be configured; the
// token takes precedence when both are present.
type ServerConfig struct {
	URL         string `mapstructure:"url"`
	Email       string `mapstructure:"email"`
	Password    string `mapstructure:"password"`
	AccessToken string `mapstructure:"access_token"`
	TimeoutSecs int    `mapstructure:"timeout_seconds"`
}

// UploadConfig contains document upload settings
type UploadConfig struct {
	IngestionMode string `mapstructure:"ingestion_mode"`
	Concurrency   int    `mapstructure:"concurrency"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
