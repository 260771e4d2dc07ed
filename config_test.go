package pyhdl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "pyhdl.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, getDefaultConfig(), config)
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("PYHDL_OUT", "/tmp/out")

	path := filepath.Join(t.TempDir(), "pyhdl.yaml")
	content := `receiver: s
input:
  format: markdown
output:
  format: xml
  positions: true
  path: ${PYHDL_OUT}/tick.xml
log:
  level: debug
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "s", config.Receiver)
	assert.Equal(t, "markdown", config.Input.Format)
	assert.Equal(t, "xml", config.Output.Format)
	assert.True(t, config.Output.Positions)
	assert.Equal(t, "/tmp/out/tick.xml", config.Output.Path)
	assert.Equal(t, "debug", config.Log.Level)
}

func TestParseConfig_AppliesDefaults(t *testing.T) {
	config, err := parseConfig([]byte("receiver: self\n"))
	assert.NoError(t, err)
	assert.Equal(t, "self", config.Receiver)
	assert.Equal(t, "auto", config.Input.Format)
	assert.Equal(t, "text", config.Output.Format)
	assert.Equal(t, "info", config.Log.Level)
}

func TestParseConfig_UnknownField(t *testing.T) {
	_, err := parseConfig([]byte("reciever: self\n"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"bad input format", func(c *Config) { c.Input.Format = "toml" }},
		{"bad output format", func(c *Config) { c.Output.Format = "json" }},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }},
		{"bad receiver", func(c *Config) { c.Receiver = "1self" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := getDefaultConfig()
			tt.modify(config)

			err := validateConfig(config)
			assert.True(t, errors.Is(err, ErrConfigValidation))
		})
	}

	assert.NoError(t, validateConfig(getDefaultConfig()))
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PYHDL_A", "alpha")
	t.Setenv("PYHDL_B", "beta")

	assert.Equal(t, "alpha/beta", expandEnvVars("${PYHDL_A}/$PYHDL_B"))
	assert.Equal(t, "plain", expandEnvVars("plain"))
}
