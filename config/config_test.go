package config

import (
	"testing"
)

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{
				URL:      "http://localhost:7272/v1",
				Email:    "user@example.com",
				Password: "secret",
			},
			Upload:  UploadConfig{Concurrency: 4},
			Logging: LoggingConfig{Level: "info", Format: "console"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "missing server URL",
			mutate:  func(c *Config) { c.Server.URL = "" },
			wantErr: true,
		},
		{
			name:    "email without password",
			mutate:  func(c *Config) { c.Server.Password = "" },
			wantErr: true,
		},
		{
			name: "token without password is fine",
			mutate: func(c *Config) {
				c.Server.Password = ""
				c.Server.Email = ""
				c.Server.AccessToken = "token"
			},
		},
		{
			name:    "zero upload concurrency",
			mutate:  func(c *Config) { c.Upload.Concurrency = 0 },
			wantErr: true,
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
