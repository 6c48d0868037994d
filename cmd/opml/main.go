// Command opml converts an OPML subscription list into the feeds section of the config,
// or exports configured feeds back to OPML with --export
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"

	"github.com/umputun/briefing/pkg/config"
	"github.com/umputun/briefing/pkg/feed"
)

// Opts with all CLI options
type Opts struct {
	File   string `short:"f" long:"file" description:"OPML file to convert, stdin if empty"`
	Export string `long:"export" description:"config file whose feeds are exported as OPML"`
	Title  string `long:"title" default:"briefing feeds" description:"title of the exported OPML"`
	Debug  bool   `long:"dbg" env:"DEBUG" description:"debug mode"`
}

func main() {
	var opts Opts
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Debug {
		lgr.Setup(lgr.Debug)
	}

	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

func run(opts Opts, in io.Reader, out io.Writer) error {
	if opts.Export != "" {
		return exportOPML(opts.Export, opts.Title, out)
	}

	if opts.File != "" {
		fh, err := os.Open(opts.File)
		if err != nil {
			return fmt.Errorf("open %s: %w", opts.File, err)
		}
		defer fh.Close()
		in = fh
	}

	sources, err := feed.ParseOPML(in)
	if err != nil {
		return fmt.Errorf("parse opml: %w", err)
	}
	lgr.Printf("[DEBUG] found %d feeds", len(sources))

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(struct {
		Feeds []feed.Source `yaml:"feeds"`
	}{Feeds: sources}); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func exportOPML(configPath, title string, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	sources := make([]feed.Source, 0, len(cfg.Feeds))
	for _, f := range cfg.Feeds {
		sources = append(sources, feed.Source{ID: f.ID, Name: f.Name, URL: f.URL})
	}
	doc, err := feed.GenerateOPML(title, sources)
	if err != nil {
		return fmt.Errorf("generate opml: %w", err)
	}
	_, err = io.WriteString(out, doc+"\n")
	return err
}
