package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"grubgrip/internal/browse"
	"grubgrip/internal/config"
	"grubgrip/internal/eventbus"
	"grubgrip/internal/feed"
	"grubgrip/internal/ui"
)

func main() {
	var feedPath string
	var configPath string
	flag.StringVar(&feedPath, "feed", "", "path to the restaurant feed JSON file")
	flag.StringVar(&feedPath, "f", "", "path to the restaurant feed JSON file (shorthand)")
	flag.StringVar(&configPath, "config", "", "path to the config file (default: user config dir)")
	flag.Parse()
	if feedPath == "" && flag.NArg() > 0 {
		feedPath = flag.Arg(0)
	}

	// Log to a file so the TUI owns the terminal
	logFile, err := os.OpenFile("grubgrip.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Warn("could not open log file", "error", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}
	if os.Getenv("GRUBGRIP_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Load configuration, from the -config path when one was given so
	// the quit-time save lands in the same file
	var configSvc config.ConfigService
	if configPath != "" {
		configSvc = config.NewConfigServiceAt(configPath)
	} else {
		configSvc = config.NewConfigService()
	}
	cfg, err := configSvc.Load()
	if err != nil {
		log.Error("error loading config", "error", err)
		// Use default config
		cfg = config.DefaultConfig()
	}
	if feedPath != "" {
		cfg.FeedPath = feedPath
	}

	// Create event bus
	bus := eventbus.New()

	// Initialize services
	loader := feed.NewLoader(cfg.FeedPath)
	feedSvc := feed.NewService(ctx, bus, loader)

	catalog, ok := browse.CatalogByName(cfg.Catalog)
	if !ok {
		log.Warn("unknown catalog in config, using standard", "catalog", cfg.Catalog)
		catalog = browse.StandardCatalog()
	}

	defaultKey, ok := browse.KeyByID(cfg.DefaultSort)
	if !ok {
		log.Warn("unknown sort key in config, using best match", "key", cfg.DefaultSort)
		defaultKey = browse.BestMatch
	}

	// Create UI model
	uiModel := ui.NewModel(cfg, configSvc, feedSvc, catalog, defaultKey)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			// Channel full, drop event
			log.Warn("event channel full, dropping event", "type", e.Type())
		}
	}
	bus.Subscribe(eventbus.EventFeedLoadStarted, forward)
	bus.Subscribe(eventbus.EventFeedLoadCompleted, forward)
	bus.Subscribe(eventbus.EventFeedLoadFailed, forward)

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Cleanup
	bus.Close()
	close(eventChan)
	cancel()
}
