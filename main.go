package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"vpet/internal/config"
	"vpet/internal/metrics"
	"vpet/internal/roster"
	"vpet/internal/ui"
)

type options struct {
	configPath string
	stats      bool
	metrics    bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("vpet", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", defaultConfigPath(), "path to the YAML config file")
	fs.BoolVar(&opts.stats, "stats", false, "show the saved pets and exit")
	fs.BoolVar(&opts.metrics, "metrics", false, "print the saved pets in Prometheus text format and exit")
	err := fs.Parse(args)
	return opts, err
}

func defaultConfigPath() string {
	dir, err := roster.DefaultDir()
	if err != nil {
		return config.DefaultFileName
	}
	return filepath.Join(dir, config.DefaultFileName)
}

// setupLogging sends the standard logger to the state directory so it never
// draws over the TUI.
func setupLogging(cfg *config.Config) (io.Closer, error) {
	if err := os.MkdirAll(cfg.StateDir, 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	return f, nil
}

func run(opts options, stdout io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logFile, err := setupLogging(cfg)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logFile.Close()

	store, err := roster.NewFileStore(cfg.StateDir)
	if err != nil {
		return err
	}

	if opts.metrics {
		return metrics.Write(stdout, roster.LoadPets(store), metrics.Counters{})
	}
	if opts.stats {
		return ui.DisplayStats(roster.LoadPets(store))
	}

	var extra []roster.Observer
	if cfg.MetricsTextfile != "" {
		extra = append(extra, metrics.NewTextfile(cfg.MetricsTextfile))
	}

	model := ui.NewModel(cfg, store, os.Stdout, extra...)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// The watcher needs the directory even before a config file exists
	if err := os.MkdirAll(filepath.Dir(opts.configPath), 0755); err != nil {
		log.Printf("Creating config dir: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		err := config.Watch(ctx, opts.configPath, func(c *config.Config) {
			p.Send(ui.ConfigMsg{Config: c})
		})
		if err != nil {
			log.Printf("Config hot reload disabled: %v", err)
		}
	}()

	_, err = p.Run()
	return err
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}
	if err := run(opts, os.Stdout); err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}
