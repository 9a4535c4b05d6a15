package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/harrylevesque/boxtrack/internal/api"
	"github.com/harrylevesque/boxtrack/internal/utils"
)

func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := utils.NewLogger(os.Stderr)
	if cfg.LogFile != "" {
		logger, err = utils.NewFileLogger(cfg.LogFile)
		if err != nil {
			log.Fatal(err)
		}
		defer logger.Close()
	}

	s, err := api.NewServer(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.NewRouter(s),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}
	logger.Infof("label server listening on %s (base url %s, qr %s/%s, max batch %d)",
		cfg.ListenAddr, cfg.BaseURL, cfg.QREncoder, cfg.ErrorCorrection, cfg.MaxBatch)
	log.Println("Server running on " + cfg.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error(err.Error())
		log.Fatal(err)
	}
}
