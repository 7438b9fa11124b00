// Command resetjob triggers the daily reset over HTTP. It is meant to be run
// from an external cron for deployments where the API server should not keep
// its own scheduler, and authenticates with the internal token instead of a
// session.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/robinoyako/sips/pkg/logger"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "base URL of the sips API server")
	flag.Parse()

	log := logger.Must(logger.New())
	defer func() { _ = log.Sync() }()

	_ = godotenv.Load()
	token := os.Getenv("INTERNAL_TOKEN")
	if token == "" {
		log.Fatal("INTERNAL_TOKEN must be provided")
	}

	client := resty.New().
		SetBaseURL(*baseURL).
		SetHeader("X-Internal-Token", token).
		SetTimeout(2 * time.Minute)

	var result struct {
		Message       string `json:"message"`
		ArchivedCount int    `json:"archivedCount"`
		Error         string `json:"error"`
	}

	resp, err := client.R().SetResult(&result).SetError(&result).Post("/api/reset-harian")
	if err != nil {
		log.Fatal("reset request failed", zap.Error(err))
	}

	if resp.IsError() {
		log.Fatal("reset rejected",
			zap.Int("status", resp.StatusCode()),
			zap.String("error", result.Error))
	}

	log.Info("reset done",
		zap.String("message", result.Message),
		zap.Int("archived", result.ArchivedCount))
}
