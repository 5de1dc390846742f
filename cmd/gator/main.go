package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/edgardcham/gator/pkg/cli"
	"github.com/edgardcham/gator/pkg/config"
	"github.com/edgardcham/gator/pkg/db"
	"github.com/edgardcham/gator/pkg/feed"
)

// Opts with all CLI options; the command and its arguments are positional
type Opts struct {
	Config string `short:"c" long:"config" env:"GATOR_CONFIG" description:"config file location (default ~/.gatorconfig.json)"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`

	Args struct {
		Command string   `positional-arg-name:"command"`
		Rest    []string `positional-arg-name:"args"`
	} `positional-args:"yes"`
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

	if opts.Args.Command == "" {
		fmt.Fprintln(os.Stderr, "no command provided")
		os.Exit(1)
	}

	if err := run(context.Background(), opts); err != nil {
		// the single error boundary: one line per failed command
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts Opts) error {
	cfgPath := opts.Config
	if cfgPath == "" {
		var err error
		if cfgPath, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	lgr.Printf("[DEBUG] config loaded from %s, active user %q", cfgPath, cfg.CurrentUserName)

	database, err := db.New(db.Config{DSN: cfg.DBURL})
	if err != nil {
		return err
	}
	defer database.Close()

	state := &cli.State{
		Cfg:     cfg,
		CfgPath: cfgPath,
		DB:      database,
		Fetcher: feed.NewFetcher(cli.DefaultFetchTimeout),
		Out:     os.Stdout,
	}

	cmd := cli.Command{Name: opts.Args.Command, Args: opts.Args.Rest}
	lgr.Printf("[DEBUG] running command %s with %d args", cmd.Name, len(cmd.Args))

	return cli.NewDefaultRegistry().Run(ctx, state, cmd)
}

func setupLog(dbg, noColor bool) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc: func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:  func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:  func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc: func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			TimeFunc:  func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
