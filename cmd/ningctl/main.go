package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "subdomain",
		Usage:   "Ning network subdomain (eg, 'apiexample')",
		EnvVars: []string{"NING_SUBDOMAIN"},
	},
	&cli.StringFlag{
		Name:    "email",
		Usage:   "account email, for login",
		EnvVars: []string{"NING_EMAIL"},
	},
	&cli.StringFlag{
		Name:    "password",
		Usage:   "account password, for login",
		EnvVars: []string{"NING_PASSWORD"},
	},
	&cli.StringFlag{
		Name:    "consumer-key",
		Usage:   "OAuth consumer key of the network's API application",
		EnvVars: []string{"NING_CONSUMER_KEY"},
	},
	&cli.StringFlag{
		Name:    "consumer-secret",
		Usage:   "OAuth consumer secret of the network's API application",
		EnvVars: []string{"NING_CONSUMER_SECRET"},
	},
	&cli.StringFlag{
		Name:    "api-host",
		Usage:   "override API hostname (and port)",
		EnvVars: []string{"NING_API_HOST"},
	},
	&cli.DurationFlag{
		Name:    "timeout",
		Usage:   "bound on each API request",
		EnvVars: []string{"NING_TIMEOUT"},
	},
	&cli.StringFlag{
		Name:    "log-level",
		Usage:   "log verbosity level (eg: warn, info, debug)",
		Value:   "warn",
		EnvVars: []string{"NINGCTL_LOG_LEVEL", "LOG_LEVEL"},
	},
	&cli.StringFlag{
		Name:    "log-format",
		Usage:   "log output format: 'text' or 'json'",
		Value:   "text",
		EnvVars: []string{"NINGCTL_LOG_FORMAT"},
	},
}

func run(args []string) error {

	app := cli.App{
		Name:    "ningctl",
		Usage:   "command-line client for the Ning REST API",
		Version: versioninfo.Short(),
		Flags:   globalFlags,
		Before: func(cctx *cli.Context) error {
			configLogger(cctx, os.Stderr)
			return nil
		},
	}
	app.Commands = []*cli.Command{
		cmdLogin,
		cmdLogout,
		callCommand("get"),
		callCommand("post"),
		callCommand("put"),
		callCommand("delete"),
		listCommand("recent"),
		listCommand("alpha"),
		listCommand("count"),
	}
	return app.Run(args)
}

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cctx.String("log-format")) == "json" {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
