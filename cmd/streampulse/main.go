package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"log/slog"

	"github.com/lmittmann/tint"

	"github.com/bdougie/streampulse/internal/analyzer"
	"github.com/bdougie/streampulse/internal/capture"
	"github.com/bdougie/streampulse/internal/config"
	"github.com/bdougie/streampulse/internal/pipeline"
	"github.com/bdougie/streampulse/internal/storage"
)

func main() {
	// SIGINT/SIGTERM cancel the capture loop; the pipeline still aggregates
	// whatever was captured before the signal.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Configure logger
	logger := slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: "15:04:05",
		}),
	)

	// Parse command line arguments
	configPath := ""
	streamName := ""
	outputDir := ""
	durationMin := 0
	intervalSec := 0
	provider := ""

	for i := 1; i < len(os.Args); i++ {
		switch os.Args[i] {
		case "--config":
			if i+1 < len(os.Args) {
				configPath = os.Args[i+1]
				i++
			}
		case "--stream":
			if i+1 < len(os.Args) {
				streamName = os.Args[i+1]
				i++
			}
		case "--output":
			if i+1 < len(os.Args) {
				outputDir = os.Args[i+1]
				i++
			}
		case "--duration":
			if i+1 < len(os.Args) {
				durationMin, _ = strconv.Atoi(os.Args[i+1])
				i++
			}
		case "--interval":
			if i+1 < len(os.Args) {
				intervalSec, _ = strconv.Atoi(os.Args[i+1])
				i++
			}
		case "--provider":
			if i+1 < len(os.Args) {
				provider = os.Args[i+1]
				i++
			}
		case "--help", "-h":
			fmt.Println("Usage: streampulse [--config config.yaml] [--stream name] [--output dir] [--duration minutes] [--interval seconds] [--provider ollama|openai]")
			os.Exit(0)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override the file
	if streamName != "" {
		cfg.StreamName = streamName
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if durationMin > 0 {
		cfg.DurationMinutes = durationMin
	}
	if intervalSec > 0 {
		cfg.IntervalSeconds = intervalSec
	}
	if provider != "" {
		cfg.Provider = provider
	}

	extractor, err := newExtractor(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize extractor: %v", err)
	}

	frameAnalyzer := analyzer.New(extractor, logger,
		analyzer.WithMaxRetries(cfg.MaxRetries),
		analyzer.WithBackoff(cfg.RetryBackoff()),
	)

	frameDir := filepath.Join(cfg.OutputDir, cfg.StreamName, "frames")
	session := capture.NewSession(
		&capture.FFmpegGrabber{Display: cfg.Capture.Display},
		logger,
		cfg.Interval(),
		cfg.Duration(),
		frameDir,
	)

	store := storage.NewFileStore(cfg.OutputDir, cfg.StreamName)

	fmt.Printf("Starting stream analysis for '%s' (%s, sampling every %s)...\n",
		cfg.StreamName, cfg.Duration(), cfg.Interval())

	runner := pipeline.NewRunner(session, frameAnalyzer, store, logger, cfg.Duration())
	if err := runner.Run(ctx); err != nil {
		log.Printf("Error running analysis: %v", err)
		os.Exit(1)
	}

	fmt.Println("Stream analysis completed successfully!")
}

func newExtractor(ctx context.Context, cfg *config.Config, logger *slog.Logger) (analyzer.Extractor, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key (config or OPENAI_API_KEY)")
		}
		return analyzer.NewOpenAIExtractor(cfg.OpenAI.APIKey, cfg.OpenAI.Model), nil
	case "ollama", "":
		return analyzer.NewOllamaExtractor(ctx, logger, cfg.Ollama.BaseURL, cfg.Ollama.Port, cfg.Ollama.Model)
	default:
		return nil, fmt.Errorf("unknown provider '%s'", cfg.Provider)
	}
}
