// Command consistency-check rebuilds every user's index blobs from the
// record store. It runs on an EventBridge schedule.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"wikicollector-backend/infrastructure/config"
	"wikicollector-backend/infrastructure/di"
	"wikicollector-backend/interfaces/appsync"
	"wikicollector-backend/pkg/observability"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

var container *di.Container

// Response is returned to the scheduler. Body holds JSON text.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type syncSummary struct {
	Message      string `json:"message"`
	UserCount    int    `json:"userCount"`
	ArticleCount int    `json:"articleCount"`
}

// init runs during cold start
func init() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
}

// Handler runs one reconciliation pass
func Handler(ctx context.Context, event events.CloudWatchEvent) (Response, error) {
	logger := observability.WithLambdaContext(ctx, container.Logger)
	logger.Info("Consistency check triggered",
		zap.String("source", event.Source),
		zap.String("detailType", event.DetailType),
		zap.Time("time", event.Time),
	)

	result, err := container.Reconciler.Reconcile(ctx)
	if err != nil {
		return Response{}, appsync.InvokeError(err)
	}

	body, err := json.Marshal(syncSummary{
		Message:      "Sync successful",
		UserCount:    result.UserCount,
		ArticleCount: result.ArticleCount,
	})
	if err != nil {
		return Response{}, err
	}
	return Response{StatusCode: http.StatusOK, Body: string(body)}, nil
}

func main() {
	lambda.Start(Handler)
}
