package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/df07/go-event-injector/pkg/config"
	"github.com/df07/go-event-injector/pkg/core"
	"github.com/df07/go-event-injector/pkg/generator"
	"github.com/df07/go-event-injector/pkg/loaders"
)

// overrides holds command line values that take precedence over the config file
type overrides struct {
	events  int
	seed    int64
	workers int
	output  string
	set     map[string]bool
}

func main() {
	configPath := flag.String("config", "", "Path to the JSON run configuration")
	events := flag.Int("n", 0, "Number of events to generate (overrides config)")
	seed := flag.Int64("seed", 0, "Base random seed (overrides config)")
	workers := flag.Int("workers", 0, "Number of parallel workers (overrides config)")
	output := flag.String("out", "", "Output file for JSON-lines events (overrides config)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help || *configPath == "" {
		fmt.Println("Event Injector")
		fmt.Println("Usage: injector -config run.json [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Environment: INJECTOR_SEED, INJECTOR_EVENTS, INJECTOR_WORKERS,")
		fmt.Println("INJECTOR_OUTPUT and INJECTOR_REPLAY_PATH override the config file;")
		fmt.Println("command line options override both.")
		return
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := overrides{events: *events, seed: *seed, workers: *workers, output: *output, set: set}
	if err := run(ctx, *configPath, opts, core.NewDefaultLogger()); err != nil {
		log.Fatalf("injector: %v", err)
	}
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(path string, opts overrides) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.set["n"] {
		cfg.Events = opts.events
	}
	if opts.set["seed"] {
		cfg.Seed = opts.seed
	}
	if opts.set["workers"] {
		cfg.Workers = opts.workers
	}
	if opts.set["out"] {
		cfg.Output = opts.output
	}
	return cfg, nil
}

// run builds the configured injector and writes the requested events
func run(ctx context.Context, configPath string, opts overrides, logger core.Logger) error {
	cfg, err := loadConfig(configPath, opts)
	if err != nil {
		return err
	}

	inj, err := cfg.Injector.Build(ctx, loaders.SQLiteReplayLoader{})
	if err != nil {
		return err
	}
	logger.Printf("Using %s injector, writing %d events to %s\n", cfg.Injector.Kind, cfg.Events, cfg.Output)

	gen, err := generator.NewGenerator(inj, generator.Config{
		Seed:      cfg.Seed,
		Events:    cfg.Events,
		BatchSize: cfg.BatchSize,
		Workers:   cfg.Workers,
	}, logger)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	file, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	if _, err := gen.Run(ctx, file); err != nil {
		return err
	}
	return file.Close()
}
