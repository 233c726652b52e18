//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"wikicollector-backend/application/ports"
	"wikicollector-backend/infrastructure/config"
	"wikicollector-backend/pkg/observability"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideS3Client,
	ProvideCloudWatchClient,
	ProvideMetrics,
	wire.Bind(new(ports.Metrics), new(*observability.Metrics)),
	ProvideArticleRepository,
	ProvideIndexStore,
	ProvideUploadSigner,
	ApplicationSet,
	wire.Struct(new(Container), "*"),
)

// MemorySet wires the application over in-memory stores and no-op metrics
var MemorySet = wire.NewSet(
	ProvideMemoryArticleRepository,
	ProvideMemoryIndexStore,
	ProvideNoopMetrics,
	wire.Bind(new(ports.Metrics), new(*observability.Metrics)),
	ApplicationSet,
	wire.Struct(new(Container), "*"),
)

// ApplicationSet holds the providers that do not touch AWS
var ApplicationSet = wire.NewSet(
	ProvideIndexReader,
	ProvideSynchronizer,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideUploadService,
	ProvideReconciliationService,
	ProvideResolver,
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}

// InitializeMemoryContainer creates a container backed by in-memory stores
func InitializeMemoryContainer(cfg *config.Config, logger *zap.Logger, signer ports.UploadSigner) (*Container, error) {
	wire.Build(MemorySet)
	return nil, nil // Wire will replace this
}
