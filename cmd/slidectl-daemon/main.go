package main

import (
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"slidectl/internal/config"
	"slidectl/internal/daemon"
)

type overrideFlags []string

func (o *overrideFlags) String() string     { return strings.Join(*o, ",") }
func (o *overrideFlags) Set(v string) error { *o = append(*o, v); return nil }

func main() {
	configPath := flag.String("config", "", "Path to a config file (yaml, json or toml)")
	force := flag.Bool("force", false, "Stop an existing daemon before starting")
	debug := flag.Bool("debug", false, "Enable debug logging")
	var sets overrideFlags
	flag.Var(&sets, "set", "Override a config key (key=value); repeatable")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	overrides, err := config.ParseOverrides(sets)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid --set")
	}

	if daemon.IsRunning() {
		if !*force {
			pid, err := daemon.RunningPID()
			if err != nil {
				log.Fatal().Err(err).Msg("daemon appears running but pid check failed")
			}
			log.Info().Int("pid", pid).Msg("daemon is already running; use --force to restart")
			return
		}
		log.Info().Msg("stopping existing daemon")
		if err := daemon.StopRunningDaemon(true); err != nil {
			log.Fatal().Err(err).Msg("failed to stop running daemon")
		}
	}

	srv, err := daemon.StartDaemon(daemon.Options{ConfigPath: *configPath, Overrides: overrides})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start daemon")
	}
	log.Info().Int("pid", os.Getpid()).Msg("daemon started; press Ctrl+C to stop")

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	log.Info().Msg("stopping daemon")
	if err := srv.Close(); err != nil {
		log.Fatal().Err(err).Msg("error shutting down daemon")
	}
	log.Info().Msg("daemon stopped")
}
