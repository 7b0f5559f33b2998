package main

import (
	"net/http"
	"os"

	"teamfinder/internal/app/server/api"
	"teamfinder/internal/app/server/config"
	"teamfinder/internal/infrastructure/storage/postgres"
	"teamfinder/internal/utils/logger"
)

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env)

	storage, err := postgres.New(conf)
	if err != nil {
		log.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Error("storage close", "error", err)
		}
	}()

	mux := api.New(storage, log)

	log.Info("server listening", "address", conf.Server.RunAddress, "env", conf.Env)
	if err := http.ListenAndServe(conf.Server.RunAddress, mux); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
