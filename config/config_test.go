package config

import (
	"os"
	"testing"

	"github.com/AquaBuilt/aqua-built-backend/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	m.Run()
}

func TestLoadConfigDefaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "l1.prodbx.com", cfg.Prodbx.Host)
	assert.Equal(t, 15, cfg.Prodbx.FetchTimeoutSeconds)
	assert.Equal(t, 4, cfg.Prodbx.MaxParallelFetches)
	assert.False(t, cfg.Email.Enabled)
	assert.Equal(t, 10, cfg.WorkerPool.MaxWorkers)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	os.Clearenv()
	t.Setenv("PORT", "9090")
	t.Setenv("PRODBX_HOST", "l2.prodbx.com")
	t.Setenv("PRODBX_FETCH_TIMEOUT_SECONDS", "30")
	t.Setenv("SERVER_ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "l2.prodbx.com", cfg.Prodbx.Host)
	assert.Equal(t, 30, cfg.Prodbx.FetchTimeoutSeconds)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
	}{
		{
			name:        "defaults are valid",
			envVars:     map[string]string{},
			expectError: false,
		},
		{
			name: "zero fetch timeout rejected",
			envVars: map[string]string{
				"PRODBX_FETCH_TIMEOUT_SECONDS": "0",
			},
			expectError: true,
		},
		{
			name: "zero parallel fetches rejected",
			envVars: map[string]string{
				"PRODBX_MAX_PARALLEL_FETCHES": "0",
			},
			expectError: true,
		},
		{
			name: "email enabled without API key rejected",
			envVars: map[string]string{
				"EMAIL_ENABLED": "true",
			},
			expectError: true,
		},
		{
			name: "email enabled with full settings accepted",
			envVars: map[string]string{
				"EMAIL_ENABLED":          "true",
				"RESEND_API_KEY":         "re_test_key",
				"EMAIL_FROM_ADDRESS":     "noreply@aquabuilt.example",
				"EMAIL_DIGEST_RECIPIENT": "ops@aquabuilt.example",
			},
			expectError: false,
		},
		{
			name: "zero worker count rejected",
			envVars: map[string]string{
				"WORKER_POOL_MAX_WORKERS": "0",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			_, err := LoadConfig()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
