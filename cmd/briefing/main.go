package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/briefing/pkg/aggregate"
	"github.com/umputun/briefing/pkg/briefing"
	"github.com/umputun/briefing/pkg/config"
	"github.com/umputun/briefing/pkg/feed"
	"github.com/umputun/briefing/pkg/rules"
	"github.com/umputun/briefing/pkg/scheduler"
	"github.com/umputun/briefing/pkg/storage"
	"github.com/umputun/briefing/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DB     string `long:"db" env:"DB" description:"database DSN, overrides config"`

	ImportTitles  []string `long:"import-titles" description:"title snapshot JSON file to import on start"`
	ImportFeeds   []string `long:"import-feeds" description:"feed snapshot JSON file to import on start"`
	SnapshotFeeds bool     `long:"snapshot-feeds" env:"SNAPSHOT_FEEDS" description:"store configured feeds into today's snapshot on start, periodic with fetch.snapshot_interval"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)

	log.Printf("[INFO] starting briefing version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DB != "" {
		cfg.Database.DSN = opts.DB
	}

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := storage.New(ctx, storage.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("[WARN] failed to close storage: %v", err)
		}
	}()

	if err := importSnapshots(ctx, store, opts.ImportTitles, opts.ImportFeeds); err != nil {
		return fmt.Errorf("failed to import snapshots: %w", err)
	}

	fetcher := feed.NewFetcher(cfg.Fetch.Timeout, cfg.Fetch.UserAgent, cfg.Fetch.Workers)
	sources := feedSources(cfg.Feeds)
	sched := scheduler.New(store, fetcher, scheduler.Config{
		Sources:  sources,
		Interval: cfg.Fetch.SnapshotInterval,
		Location: loc,
	})
	switch {
	case cfg.Fetch.SnapshotInterval > 0:
		sched.Start(ctx)
		defer sched.Stop()
	case opts.SnapshotFeeds:
		if err := sched.SnapshotNow(ctx); err != nil {
			return fmt.Errorf("failed to snapshot feeds: %w", err)
		}
	}

	ruleSet := rules.Parse(cfg.Rules.Blocks)
	log.Printf("[INFO] loaded %d rule groups, %d feeds", len(ruleSet.Groups), len(sources))

	agg := aggregate.New(aggregate.Config{Titles: store, Feeds: store, Workers: cfg.Aggregation.Workers})
	svc := briefing.New(briefing.Config{
		Aggregator:   agg,
		Fetcher:      fetcher,
		Rules:        ruleSet,
		Feeds:        sources,
		Location:     loc,
		DefaultRange: cfg.Briefing.DefaultRange,
	})

	srv := server.New(cfg, store, svc, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func feedSources(feeds []config.Feed) []feed.Source {
	res := make([]feed.Source, 0, len(feeds))
	for _, f := range feeds {
		res = append(res, feed.Source{ID: f.ID, Name: f.Name, URL: f.URL})
	}
	return res
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if noColor {
		color.NoColor = true
	} else {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
