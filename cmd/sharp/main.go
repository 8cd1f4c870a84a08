// Command sharp is the Sharp Assistant CLI.
// It answers scripture questions from the terminal and serves the REST
// and WebSocket API.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/FocuswithJustin/SharpAssistant/core/assistant"
	"github.com/FocuswithJustin/SharpAssistant/core/index"
	"github.com/FocuswithJustin/SharpAssistant/core/provider"
	"github.com/FocuswithJustin/SharpAssistant/core/search"
	"github.com/FocuswithJustin/SharpAssistant/core/text"
	"github.com/FocuswithJustin/SharpAssistant/internal/api"
	"github.com/FocuswithJustin/SharpAssistant/internal/config"
	"github.com/FocuswithJustin/SharpAssistant/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for sharp.
var CLI struct {
	Config string `name:"config" short:"c" help:"Path to config file" default:"sharp.yml" type:"path"`

	Ask     AskCmd     `cmd:"" help:"Answer one question and exit"`
	Serve   ServeCmd   `cmd:"" help:"Start the REST and WebSocket API server"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// loadConfig loads and validates the configuration file named by the
// global --config flag, then initializes logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logging.InitLogger(cfg.LogLevel(), cfg.LogFormat())
	return cfg, nil
}

// fileTranslations are the modern translations served from book files
// under the data dir.
var fileTranslations = []text.TranslationID{
	text.KJV, text.WEB, text.ASV, text.GENEVA, text.BISHOPS,
}

// ancientTranslations are the word-tokenized manuscript sources.
var ancientTranslations = []text.TranslationID{
	text.WLC, text.LXX, text.SINAITICUS,
}

// buildAssistant wires providers, the search index, and the supporting
// indices from the data directory. The returned cleanup releases the
// search index.
func buildAssistant(cfg *config.Config) (*assistant.Assistant, *provider.Fetcher, func(), error) {
	var providers []provider.Provider
	for _, id := range fileTranslations {
		providers = append(providers, provider.NewFileProvider(id, cfg.SourceDir(id)))
	}
	for _, id := range ancientTranslations {
		providers = append(providers, provider.NewAncientProvider(id, cfg.SourceDir(id)))
	}
	if cfg.ESV.Token != "" {
		providers = append(providers, provider.NewESVProvider(cfg.ESV.Token, cfg.ESV.BaseURL))
	}

	fetcher := provider.NewFetcherSized(providers,
		provider.NewApocryphaProvider(cfg.ApocryphaDir()), cfg.Cache.MaxSize)

	idx, err := search.NewSeededIndex()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("building search index: %w", err)
	}
	cleanup := func() { idx.Close() }

	crossRefs, err := index.NewCrossReferenceIndex(cfg.DataDir)
	if err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("loading cross references: %w", err)
	}
	dict, err := index.NewDictionaryIndex(cfg.DataDir)
	if err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("loading dictionary: %w", err)
	}
	geo, err := index.NewGeoIndex(cfg.DataDir)
	if err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("loading locations: %w", err)
	}
	religions, err := index.NewReligionIndex(cfg.DataDir)
	if err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("loading religions: %w", err)
	}

	a := assistant.New(assistant.Config{
		Fetcher:    fetcher,
		Search:     idx,
		CrossRefs:  crossRefs,
		Dictionary: dict,
		Geo:        geo,
		Religions:  religions,
	})
	return a, fetcher, cleanup, nil
}

// AskCmd answers a single question.
type AskCmd struct {
	Question    []string `arg:"" help:"The question to answer"`
	Translation string   `short:"t" help:"Preferred translation (KJV, WEB, ESV, ASV, ...)"`
	User        string   `help:"User ID for personalized answers"`
}

func (c *AskCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, _, cleanup, err := buildAssistant(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	qctx := assistant.Context{UserID: c.User}
	if c.Translation != "" {
		qctx.SelectedTranslation = text.ParseTranslation(c.Translation)
	}

	resp, err := a.Answer(context.Background(), strings.Join(c.Question, " "), qctx)
	if err != nil {
		return err
	}

	fmt.Println(resp.Answer)
	if len(resp.Citations) > 0 {
		fmt.Println()
		for _, cit := range resp.Citations {
			fmt.Printf("— %s (%s)\n", cit.Ref, cit.Translation)
		}
	}
	return nil
}

// ServeCmd starts the API server.
type ServeCmd struct {
	Port int `help:"HTTP server port (overrides config)"`
}

func (c *ServeCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}

	a, fetcher, cleanup, err := buildAssistant(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := api.NewServer(api.Config{
		Port:              cfg.Server.Port,
		RateLimitRequests: cfg.Server.RateLimitRequests,
		RateLimitBurst:    cfg.Server.RateLimitBurst,
		Auth: api.AuthConfig{
			Enabled: cfg.Server.AuthEnabled,
			APIKey:  cfg.Server.APIKey,
		},
		TLS: api.TLSConfig{
			Enabled:  cfg.Server.TLSEnabled,
			CertFile: cfg.Server.TLSCertFile,
			KeyFile:  cfg.Server.TLSKeyFile,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, a, fetcher)
	if err != nil {
		return err
	}
	return srv.Start()
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("sharp version %s\n", version)
	return nil
}

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name("sharp"),
		kong.Description("Sharp Assistant - scripture question answering"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
