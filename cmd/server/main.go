package main

import (
	"context"
	"fmt"

	"github.com/mpetrenko/shroud/internal/config"
	"github.com/mpetrenko/shroud/internal/handler"
	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/internal/push"
	"github.com/mpetrenko/shroud/internal/server"
	"github.com/mpetrenko/shroud/internal/service"
	"github.com/mpetrenko/shroud/internal/sms"
	"github.com/mpetrenko/shroud/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("shroud-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	pushSender := push.NewGatewayClient(cfg.Push, log)
	smsSender := sms.NewGatewayClient(cfg.SMS, log)

	services := service.NewServices(storages, pushSender, smsSender, cfg.App, log)
	handlers := handler.NewHandlers(services, log)

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
