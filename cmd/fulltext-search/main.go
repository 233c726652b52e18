// Command fulltext-search resolves the search fields against the per-user search index.
package main

import (
	"context"
	"log"

	"wikicollector-backend/infrastructure/config"
	"wikicollector-backend/infrastructure/di"
	"wikicollector-backend/interfaces/appsync"

	"github.com/aws/aws-lambda-go/lambda"
)

var handler appsync.HandlerFunc

// init runs during cold start
func init() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	handler = appsync.NewFunctionHandler(container.Resolver.Only(appsync.SearchFields...), container.Logger)
}

func main() {
	lambda.Start(handler)
}
