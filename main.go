package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/habedi/prodcat/cmd"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// main is the entry point of the application.
// It sets up logging from DEBUG_PRODCAT, listens for interrupts and runs the root command.
func main() {
	configureLogLevelFromEnv()

	ctx, cancel := context.WithCancel(context.Background())

	stopChan := setupInterruptListener()
	go handleInterrupt(stopChan, cancel, func(msg string) {
		log.Error().Msg(msg)
	}, os.Exit)

	code := cmd.Execute(ctx)
	cancel()
	os.Exit(code)
}

// configureLogLevelFromEnv enables debug logging when DEBUG_PRODCAT is set to anything
// other than "", "0" or "false". Otherwise logging is disabled.
func configureLogLevelFromEnv() {
	switch os.Getenv("DEBUG_PRODCAT") {
	case "", "0", "false":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func setupInterruptListener() chan os.Signal {
	stopChan := make(chan os.Signal, 2)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
	return stopChan
}

// handleInterrupt cancels the running command on the first signal and
// exits with code 1 on the second one.
func handleInterrupt(stopChan chan os.Signal, cancel context.CancelFunc, fatalLog func(string), exit func(int)) {
	<-stopChan
	log.Warn().Msg("Interrupt signal received. Stopping...")
	cancel()
	<-stopChan
	fatalLog("Interrupt signal received. Exiting...")
	exit(1)
}
