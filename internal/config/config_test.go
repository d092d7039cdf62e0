package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("TEXTFILE_DIR", "/var/lib/node_exporter")

	path := writeConfig(t, `
flavor: delivery-profile
concurrency: 4
validation:
  maxClockSkew: 5m
logging:
  level: debug
  format: json
metrics:
  file: ${TEXTFILE_DIR}/sbdhcheck.prom
codelist:
  file: /etc/sbdh/schemes.yaml
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "delivery-profile", cfg.Flavor)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 5*time.Minute, cfg.Validation.MaxClockSkew)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/var/lib/node_exporter/sbdhcheck.prom", cfg.Metrics.File)
	assert.Equal(t, "/etc/sbdh/schemes.yaml", cfg.Codelist.File)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "metrics:\n  file: \"\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "peppol", cfg.Flavor)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Concurrency)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Zero(t, cfg.Validation.MaxClockSkew)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown flavor", "flavor: as4\n", "flavor must be one of"},
		{"negative concurrency", "concurrency: -1\n", "concurrency must be positive"},
		{"negative skew", "validation:\n  maxClockSkew: -1m\n", "maxClockSkew must not be negative"},
		{"bad level", "logging:\n  level: verbose\n", "logging.level"},
		{"bad format", "logging:\n  format: xml\n", "logging.format"},
		{"bad yaml", "flavor: [peppol\n", "parsing config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_AfterOverrides(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Flavor = "xhe"
	assert.NoError(t, cfg.Validate())

	cfg.Concurrency = 0
	assert.Error(t, cfg.Validate())
}
