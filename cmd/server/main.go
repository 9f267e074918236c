package main

import (
	"os"
	"os/signal"
	"syscall"

	"notes-client/internal/config"
	"notes-client/internal/logger"
	"notes-client/internal/server"
)

const configFile = "config.yml"

func main() {
	appConfig, err := config.Load(configFile)
	if err != nil {
		os.Stderr.WriteString("Error initializing config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(os.Stderr, appConfig.Logger, false)
	log.Info("starting reference notes service", "port", appConfig.Server.PortHTTP)

	srv := server.NewServer(appConfig, log)

	errChan, err := srv.Start(nil)
	if err != nil {
		log.Error("failed to start server", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-sigChan:
		log.Info("received signal, shutting down", "signal", sig.String())
	}

	if err := srv.Shutdown(); err != nil {
		log.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("notes service stopped")
}
