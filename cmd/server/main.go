package main

import (
	"log"

	"github.com/loctime/controldoc/internal/app"
	"github.com/loctime/controldoc/internal/config"
	"github.com/loctime/controldoc/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.InitLogger(cfg.Env); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := app.Run(cfg); err != nil {
		log.Fatal(err)
	}
}
