package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"customer_doc": "customer.json",
		"goal": "schedule a technical demo",
		"channel": "email",
		"exchanges": 4,
		"thread_id": "demo-thread",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "customer.json", cfg.CustomerDoc)
	assert.Equal(t, "schedule a technical demo", cfg.Goal)
	assert.Equal(t, "email", cfg.Channel)
	assert.Equal(t, 4, cfg.Exchanges)
	assert.Equal(t, "demo-thread", cfg.ThreadID)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_ExchangesOutOfRange(t *testing.T) {
	cfg := &Config{Exchanges: 40}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exchanges")
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := &Config{MaxIterations: -1}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "max_iterations")
}

func TestValidate_MissingCustomerDoc(t *testing.T) {
	cfg := &Config{CustomerDoc: "/nonexistent/customer.json"}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "customer document not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "customer.json")
	require.NoError(t, os.WriteFile(doc, []byte(`{}`), 0644))

	cfg := &Config{
		CustomerDoc: doc,
		Goal:        "discovery call",
		Exchanges:   6,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Goal:        "default goal",
		Tone:        "professional",
		Channel:     "email",
		Exchanges:   6,
		CustomerDoc: "default.json",
	}

	partial := Config{
		Goal:     "custom goal",
		ThreadID: "custom-thread",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "custom goal", merged.Goal)
	assert.Equal(t, "custom-thread", merged.ThreadID)

	// Default values should fill in empty fields
	assert.Equal(t, "professional", merged.Tone)
	assert.Equal(t, "email", merged.Channel)
	assert.Equal(t, 6, merged.Exchanges)
	assert.Equal(t, "default.json", merged.CustomerDoc)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		Goal:     "test goal",
		ThreadID: "test-thread",
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "test goal", merged.Goal)
	assert.Equal(t, "test-thread", merged.ThreadID)
}
