package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/gemini"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Providers and cache backends.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	CacheFS     = "fs"
	CacheSQLite = "sqlite"
)

// Extractors selectable with --extractor.
const (
	ExtractorNone        = "none"
	ExtractorTrafilatura = "trafilatura"
	ExtractorReadability = "readability"
)

// Config holds settings shared by all commands.
type Config struct {
	Provider          string  `toml:"provider"`
	Model             string  `toml:"model"`
	MaxTokens         int     `toml:"max_tokens"`
	CacheDir          string  `toml:"cache_dir"`
	Cache             string  `toml:"cache"`
	Browser           bool    `toml:"browser"`
	Extractor         string  `toml:"extractor"`
	RequestsPerSecond float64 `toml:"requests_per_second"`

	GeminiAPIKey  string `toml:"gemini_api_key"`
	OpenAIAPIKey  string `toml:"openai_api_key"`
	OpenAIBaseURL string `toml:"openai_base_url"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		Provider:          ProviderGemini,
		Model:             gemini.DefaultModel,
		MaxTokens:         4096,
		CacheDir:          defaultDir("cache"),
		Cache:             CacheFS,
		Extractor:         ExtractorNone,
		RequestsPerSecond: 1,
	}
}

// defaultDir returns a directory under ~/.docagent, or under the working
// directory when the home directory is unknown.
func defaultDir(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".docagent", name)
	}
	return filepath.Join(home, ".docagent", name)
}

// DefaultConfigPath returns $DOCAGENT_CONFIG or ~/.docagent/config.toml.
func DefaultConfigPath(getenv func(string) string) string {
	if path := getenv("DOCAGENT_CONFIG"); path != "" {
		return path
	}
	return defaultDir("config.toml")
}

// LoadFile overlays the TOML file at path onto c. A missing file is
// ignored unless required is set.
func (c *Config) LoadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	} else if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return docagent.Errorf(docagent.EINVALID, "config %s: %v", path, err)
	}
	return nil
}

// Environ returns a lookup that prefers the process environment and falls
// back to the dotenv file at path. A missing file is ignored.
func Environ(path string, getenv func(string) string) (func(string) string, error) {
	dotenv, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		dotenv = map[string]string{}
	} else if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}, nil
}

// ApplyEnv overlays environment variables onto c.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Provider, "DOCAGENT_PROVIDER")
	set(&c.Model, "DOCAGENT_MODEL")
	set(&c.CacheDir, "DOCAGENT_CACHE_DIR")
	set(&c.GeminiAPIKey, "GEMINI_API_KEY")
	set(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	set(&c.OpenAIBaseURL, "OPENAI_BASE_URL")

	if v := getenv("DOCAGENT_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return docagent.Errorf(docagent.EINVALID, "DOCAGENT_MAX_TOKENS must be an integer, got %q", v)
		}
		c.MaxTokens = n
	}
	return nil
}

// ApplyFlags overlays flags the user set onto c.
func (c *Config) ApplyFlags(cli *CLI) {
	if cli.Provider != "" {
		c.Provider = cli.Provider
	}
	if cli.Model != "" {
		c.Model = cli.Model
	}
	if cli.MaxTokens > 0 {
		c.MaxTokens = cli.MaxTokens
	}
	if cli.CacheDir != "" {
		c.CacheDir = cli.CacheDir
	}
	if cli.Cache != "" {
		c.Cache = cli.Cache
	}
	if cli.Browser {
		c.Browser = true
	}
	if cli.Extractor != "" {
		c.Extractor = cli.Extractor
	}
}

// Validate reports settings no command can work with.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return docagent.Errorf(docagent.EINVALID, "unknown provider %q (want gemini or openai)", c.Provider)
	}
	switch c.Cache {
	case CacheFS, CacheSQLite:
	default:
		return docagent.Errorf(docagent.EINVALID, "unknown cache %q (want fs or sqlite)", c.Cache)
	}
	switch c.Extractor {
	case ExtractorNone, ExtractorTrafilatura, ExtractorReadability:
	default:
		return docagent.Errorf(docagent.EINVALID, "unknown extractor %q (want none, trafilatura or readability)", c.Extractor)
	}
	if c.Model == "" {
		return docagent.Errorf(docagent.EINVALID, "model required")
	}
	if c.MaxTokens <= 0 || c.MaxTokens > docagent.MaxTokensLimit {
		return docagent.Errorf(docagent.EINVALID, "max tokens must be between 1 and %d", docagent.MaxTokensLimit)
	}
	return nil
}
