package main_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docagent"
	main "github.com/fwojciec/docagent/cmd/docagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Layers(t *testing.T) {
	t.Parallel()

	// Story: the config file picks openai, .env supplies the key, the
	// environment overrides the model and a flag overrides max tokens.
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
provider = "openai"
model = "from-file"
cache = "sqlite"
extractor = "trafilatura"
requests_per_second = 2.5
`), 0644))
	dotenvPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenvPath, []byte("OPENAI_API_KEY=sk-dotenv\nDOCAGENT_MODEL=from-dotenv\n"), 0644))

	env := map[string]string{"DOCAGENT_MODEL": "from-env"}

	cfg := main.DefaultConfig()
	require.NoError(t, cfg.LoadFile(configPath, true))
	getenv, err := main.Environ(dotenvPath, func(k string) string { return env[k] })
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyEnv(getenv))
	cfg.ApplyFlags(&main.CLI{MaxTokens: 512})

	require.NoError(t, cfg.Validate())
	assert.Equal(t, main.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "from-env", cfg.Model)
	assert.Equal(t, "sk-dotenv", cfg.OpenAIAPIKey)
	assert.Equal(t, 512, cfg.MaxTokens)
	assert.Equal(t, main.CacheSQLite, cfg.Cache)
	assert.Equal(t, main.ExtractorTrafilatura, cfg.Extractor)
	assert.InDelta(t, 2.5, cfg.RequestsPerSecond, 0.001)
}

func TestConfig_LoadFile(t *testing.T) {
	t.Parallel()

	t.Run("ignores missing optional file", func(t *testing.T) {
		t.Parallel()

		cfg := main.DefaultConfig()
		require.NoError(t, cfg.LoadFile(filepath.Join(t.TempDir(), "none.toml"), false))
		assert.Equal(t, main.DefaultConfig(), cfg)
	})

	t.Run("fails on missing required file", func(t *testing.T) {
		t.Parallel()

		cfg := main.DefaultConfig()
		assert.Error(t, cfg.LoadFile(filepath.Join(t.TempDir(), "none.toml"), true))
	})

	t.Run("fails on invalid toml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("model = "), 0644))

		cfg := main.DefaultConfig()
		err := cfg.LoadFile(path, true)
		assert.Equal(t, docagent.EINVALID, docagent.ErrorCode(err))
	})
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Parallel()

	t.Run("reads max tokens", func(t *testing.T) {
		t.Parallel()

		cfg := main.DefaultConfig()
		require.NoError(t, cfg.ApplyEnv(func(k string) string {
			if k == "DOCAGENT_MAX_TOKENS" {
				return "1024"
			}
			return ""
		}))
		assert.Equal(t, 1024, cfg.MaxTokens)
	})

	t.Run("rejects non-numeric max tokens", func(t *testing.T) {
		t.Parallel()

		cfg := main.DefaultConfig()
		err := cfg.ApplyEnv(func(k string) string {
			if k == "DOCAGENT_MAX_TOKENS" {
				return "many"
			}
			return ""
		})
		assert.Equal(t, docagent.EINVALID, docagent.ErrorCode(err))
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*main.Config)
	}{
		{"unknown provider", func(c *main.Config) { c.Provider = "bedrock" }},
		{"unknown cache", func(c *main.Config) { c.Cache = "redis" }},
		{"unknown extractor", func(c *main.Config) { c.Extractor = "magic" }},
		{"empty model", func(c *main.Config) { c.Model = "" }},
		{"zero max tokens", func(c *main.Config) { c.MaxTokens = 0 }},
		{"max tokens above provider range", func(c *main.Config) { c.MaxTokens = docagent.MaxTokensLimit + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := main.DefaultConfig()
			tt.modify(&cfg)
			assert.Equal(t, docagent.EINVALID, docagent.ErrorCode(cfg.Validate()))
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()

		cfg := main.DefaultConfig()
		assert.NoError(t, cfg.Validate())
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Parallel()

	path := main.DefaultConfigPath(func(k string) string {
		if k == "DOCAGENT_CONFIG" {
			return "/etc/docagent.toml"
		}
		return ""
	})
	assert.Equal(t, "/etc/docagent.toml", path)

	path = main.DefaultConfigPath(func(string) string { return "" })
	assert.Equal(t, "config.toml", filepath.Base(path))
}
