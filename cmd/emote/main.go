package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/zoobzio/emote"
	"github.com/zoobzio/emote/gemini"
	"github.com/zoobzio/emote/internal/config"
	"github.com/zoobzio/emote/internal/console"
	"github.com/zoobzio/emote/internal/logging"
	"github.com/zoobzio/emote/internal/server"
	"github.com/zoobzio/emote/internal/state"
	"github.com/zoobzio/emote/openai"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(flag.CommandLine, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}

	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}
	if err := opts.apply(&cfg, os.LookupEnv); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Fprintln(os.Stderr, "API_KEY environment variable not set. Set it in the environment or a .env file.")
			return 1
		}
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}

	color := isatty.IsTerminal(os.Stdout.Fd())

	var logger *slog.Logger
	if opts.Serve {
		logger = logging.InitLogger(cfg.LogLevel)
	} else {
		logger = logging.InitLoggerTo(os.Stderr, cfg.LogLevel, !isatty.IsTerminal(os.Stderr.Fd()))
	}
	if opts.Serve || cfg.LogLevel <= slog.LevelDebug {
		stop := logging.ObserveHooks(logger)
		defer stop()
	}

	provider, err := newProvider(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}

	var analyzerOpts []emote.Option
	if cfg.LogLevel <= slog.LevelDebug {
		analyzerOpts = append(analyzerOpts, emote.WithDebug(logger))
	}
	analyzer := emote.NewAnalyzer(provider, analyzerOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := state.New()

	switch {
	case opts.Serve:
		router := server.NewRouter(server.NewAnalyzeHandler(analyzer, st), cfg.AllowedOrigins)
		if err := server.Run(ctx, cfg.Addr, router); err != nil {
			slog.Error("error starting server", "error", err)
			return 1
		}
	case len(opts.Text) > 0:
		c := console.New(analyzer, st, os.Stdout, color)
		if err := c.Submit(ctx, strings.Join(opts.Text, " ")); err != nil {
			return 1
		}
	default:
		c := console.New(analyzer, st, os.Stdout, color)
		if err := c.Run(ctx, os.Stdin); err != nil {
			slog.Error("error reading input", "error", err)
			return 1
		}
	}
	return 0
}

// options are command-line overrides. Zero values leave the environment setting alone.
type options struct {
	Serve    bool
	EnvFile  string
	Addr     string
	Provider string
	Model    string
	LogLevel string
	Timeout  time.Duration
	Text     []string
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	opts := options{EnvFile: ".env"}
	fs.SetOutput(os.Stderr)

	fs.BoolVar(&opts.Serve, "serve", false, "Serve the HTTP API instead of the interactive console")
	fs.StringVar(&opts.EnvFile, "env-file", opts.EnvFile, "Optional .env file loaded before the environment (empty disables)")
	fs.StringVar(&opts.Addr, "addr", "", "HTTP listen address (overrides EMOTE_ADDR)")
	fs.StringVar(&opts.Provider, "provider", "", "LLM provider: gemini|openai (overrides EMOTE_PROVIDER)")
	fs.StringVar(&opts.Model, "model", "", "Model name (overrides EMOTE_MODEL)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug|info|warn|error (overrides EMOTE_LOG_LEVEL)")
	fs.DurationVar(&opts.Timeout, "timeout", 0, "Provider request timeout (overrides EMOTE_TIMEOUT)")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  emote [flags] [text...]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExamples:")
		fmt.Fprintln(fs.Output(), "  emote")
		fmt.Fprintln(fs.Output(), "  emote \"I can't believe you did that, I'm thrilled!\"")
		fmt.Fprintln(fs.Output(), "  emote -serve -addr :9000 -provider openai")
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.Serve && fs.NArg() > 0 {
		return options{}, fmt.Errorf("-serve takes no text arguments")
	}
	opts.Text = fs.Args()
	return opts, nil
}

func (o options) apply(cfg *config.Config, lookup func(string) (string, bool)) error {
	if o.Provider != "" {
		cfg.Provider = strings.ToLower(strings.TrimSpace(o.Provider))
		cfg.ResolveAPIKey(lookup)
	}
	if o.Model != "" {
		cfg.Model = o.Model
	}
	if o.Addr != "" {
		cfg.Addr = o.Addr
	}
	if o.LogLevel != "" {
		level, err := config.ParseLevel(o.LogLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	if o.Timeout != 0 {
		cfg.Timeout = o.Timeout
	}
	return nil
}

func newProvider(cfg config.Config) (emote.Provider, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return gemini.New(gemini.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}), nil
	case config.ProviderOpenAI:
		return openai.New(openai.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
