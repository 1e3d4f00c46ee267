package main

import (
	"fmt"
	"log"

	"eod-reports/internal/blob"
	"eod-reports/internal/config"
	"eod-reports/internal/database"
	"eod-reports/internal/handlers"
	"eod-reports/internal/server"
)

func main() {
	cfg := config.Load()
	database.Init(cfg.DBDSN, cfg.AdminUsername, cfg.AdminPassword)

	if cfg.ImageHostURL != "" {
		handlers.SetBlobStore(blob.NewImageHost(cfg.ImageHostURL, cfg.ImageHostKey))
	} else {
		log.Println("IMAGE_HOST_URL not set, keeping screenshots in memory")
	}

	r := server.NewRouter(cfg)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
