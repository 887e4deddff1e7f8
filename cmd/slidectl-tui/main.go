package main

import (
	"flag"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"slidectl/internal/app"
	"slidectl/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (yaml, json or toml)")
	timeout := flag.Duration("timeout", 0, "Timeout for daemon calls (default: client.timeout from the config)")
	startDaemon := flag.Bool("start-daemon", false, "Start a daemon in this process if none is running")
	flag.Parse()

	// The alternate screen owns the terminal; keep log lines out of it.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: io.Discard, NoColor: true})

	controller := app.New(app.Options{ConfigPath: *configPath})
	if err := tui.Run(controller, tui.Options{Timeout: *timeout, StartDaemon: *startDaemon}); err != nil {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		log.Fatal().Err(err).Msg("tui exited with error")
	}
}
