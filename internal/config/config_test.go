package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:            "5000",
		JWTSecret:       "development-secret-development-secret",
		DBPassword:      "password",
		Env:             "development",
		MaxUploadSizeMB: 5,
	}
}

func TestValidate_Development(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingPort(t *testing.T) {
	cfg := validConfig()
	cfg.Port = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_MissingJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_UploadSize(t *testing.T) {
	cfg := validConfig()
	cfg.MaxUploadSizeMB = 0
	assert.Error(t, cfg.Validate())

	cfg.MaxUploadSizeMB = 5
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadSizeBytes())
}

func TestValidate_Production(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name: "default secret rejected",
			mutate: func(c *Config) {
				c.JWTSecret = "your-secret-key-change-in-production"
			},
			wantErr: true,
		},
		{
			name: "short secret rejected",
			mutate: func(c *Config) {
				c.JWTSecret = "short"
			},
			wantErr: true,
		},
		{
			name: "weak db password rejected",
			mutate: func(c *Config) {
				c.DBPassword = "password"
			},
			wantErr: true,
		},
		{
			name: "dev admin bootstrap rejected",
			mutate: func(c *Config) {
				c.DevBootstrapAdmin = true
			},
			wantErr: true,
		},
		{
			name:   "strong settings accepted",
			mutate: func(c *Config) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Env = "production"
			cfg.JWTSecret = "a-strong-production-secret-at-least-32-chars"
			cfg.DBPassword = "sufficiently-strong-db-password"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
