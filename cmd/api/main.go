package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/solcrm/pipeline-api/internal/app/api"
)

func main() {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("pipeline API failed: %v", err)
	}
}
