package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/fs"
	"github.com/fwojciec/docagent/gemini"
	"github.com/fwojciec/docagent/goquery"
	"github.com/fwojciec/docagent/htmltomarkdown"
	dahttp "github.com/fwojciec/docagent/http"
	"github.com/fwojciec/docagent/llm"
	"github.com/fwojciec/docagent/openai"
	"github.com/fwojciec/docagent/readability"
	"github.com/fwojciec/docagent/rod"
	"github.com/fwojciec/docagent/scrape"
	dalog "github.com/fwojciec/docagent/slog"
	"github.com/fwojciec/docagent/sqlite"
	"github.com/fwojciec/docagent/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorText(err))
		stop()
		os.Exit(1)
	}
}

// errorText returns the message of an application error, or the error
// text for any other error.
func errorText(err error) string {
	if docagent.ErrorCode(err) != docagent.EINTERNAL {
		return docagent.ErrorMessage(err)
	}
	return err.Error()
}

// Main represents the program.
type Main struct {
	// Stdin supplies answers to the model's questions.
	Stdin io.Reader

	// Getenv looks up environment variables.
	Getenv func(string) string

	// DotenvPath is read for variables missing from the environment.
	DotenvPath string

	// Services for end-to-end testing. When set they replace the
	// provider transport and the page fetcher.
	Transport docagent.Transport
	Fetcher   docagent.Fetcher

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin:      os.Stdin,
		Getenv:     os.Getenv,
		DotenvPath: ".env",
	}
}

// Close releases the services opened by Run.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docagent"),
		kong.Description("Read documentation with a language model"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"start_url": DefaultStartURL},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docagent --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := m.loadConfig(cli)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)
	deps := &Dependencies{
		Ctx:        ctx,
		Stdout:     stdout,
		Stderr:     stderr,
		Logger:     logger,
		Config:     cfg,
		Questioner: NewQuestioner(m.Stdin, stdout),
	}
	defer m.Close()

	cmd := kongCtx.Command()

	if cli.needsCaller(cmd) {
		if deps.Caller, err = m.openCaller(ctx, cfg, logger); err != nil {
			return err
		}
	}

	if cmd == "run <task>" || cmd == "fetch <url>" {
		if deps.Pages, err = m.openPageReader(cfg, logger); err != nil {
			return err
		}
	}

	if cmd == "run <task>" && cli.Run.Sitemap {
		deps.Sitemaps = dalog.NewLoggingSitemapService(dahttp.NewSitemapService(nil), logger)
	}

	if cmd == "summarize <root>" && cli.Summarize.Stats {
		counter, err := gemini.NewTokenCounter(cfg.Model)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		if counter.Model() != cfg.Model {
			logger.Info("counting tokens with another model", "model", counter.Model())
		}
		deps.Tokens = counter
	}

	return kongCtx.Run(deps)
}

// loadConfig layers defaults, the config file, .env, the environment
// and flags.
func (m *Main) loadConfig(cli *CLI) (Config, error) {
	cfg := DefaultConfig()

	path, required := cli.ConfigFile, true
	if path == "" {
		path, required = DefaultConfigPath(m.Getenv), false
	}
	if err := cfg.LoadFile(path, required); err != nil {
		return cfg, err
	}

	getenv, err := Environ(m.DotenvPath, m.Getenv)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return cfg, err
	}

	cfg.ApplyFlags(cli)
	return cfg, cfg.Validate()
}

// openCaller wires the provider transport and response cache into a
// memoizing client.
func (m *Main) openCaller(ctx context.Context, cfg Config, logger *slog.Logger) (docagent.Caller, error) {
	transport := m.Transport
	if transport == nil {
		var err error
		if transport, err = newTransport(ctx, cfg); err != nil {
			return nil, err
		}
	}

	var cache docagent.ResponseCache
	switch cfg.Cache {
	case CacheSQLite:
		if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		db := sqlite.NewDB(filepath.Join(cfg.CacheDir, "responses.db"))
		if err := db.Open(); err != nil {
			return nil, fmt.Errorf("failed to open cache database: %w", err)
		}
		m.closers = append(m.closers, db)
		cache = sqlite.NewResponseCache(db)
	default:
		cache = fs.NewResponseCache(cfg.CacheDir)
	}

	return llm.NewClient(
		dalog.NewLoggingTransport(transport, logger),
		dalog.NewLoggingCache(cache, logger),
		llm.WithLogger(logger),
	), nil
}

func newTransport(ctx context.Context, cfg Config) (docagent.Transport, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" && cfg.OpenAIBaseURL == "" {
			return nil, docagent.Errorf(docagent.EINVALID, "OPENAI_API_KEY not set")
		}
		return openai.NewTransport(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL), nil
	default:
		if cfg.GeminiAPIKey == "" {
			return nil, docagent.Errorf(docagent.EINVALID, "GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewTransport(client), nil
	}
}

// openPageReader wires the fetch, extract and convert pipeline.
func (m *Main) openPageReader(cfg Config, logger *slog.Logger) (docagent.PageReader, error) {
	fetcher := m.Fetcher
	if fetcher == nil {
		if cfg.Browser {
			f, err := rod.NewFetcher()
			if err != nil {
				return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
			}
			fetcher = f
		} else {
			fetcher = dahttp.NewFetcher()
		}
		m.closers = append(m.closers, fetcher)
	}

	var extractor docagent.Extractor
	switch cfg.Extractor {
	case ExtractorTrafilatura:
		extractor = trafilatura.NewExtractor()
	case ExtractorReadability:
		extractor = readability.NewExtractor()
	}

	return &scrape.Reader{
		Fetcher:     dalog.NewLoggingFetcher(fetcher, logger),
		Converter:   htmltomarkdown.NewConverter(),
		Extractor:   extractor,
		Links:       goquery.NewLinkSelector(),
		Title:       goquery.Title,
		RateLimiter: scrape.NewDomainLimiter(cfg.RequestsPerSecond),
		Logger:      logger,
	}, nil
}
