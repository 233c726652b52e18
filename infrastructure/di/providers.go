package di

import (
	"context"

	cmdbus "wikicollector-backend/application/commands/bus"
	cmdhandlers "wikicollector-backend/application/commands/handlers"
	"wikicollector-backend/application/index"
	"wikicollector-backend/application/ports"
	querybus "wikicollector-backend/application/queries/bus"
	queryhandlers "wikicollector-backend/application/queries/handlers"
	"wikicollector-backend/application/services"
	"wikicollector-backend/infrastructure/config"
	"wikicollector-backend/infrastructure/persistence/dynamodb"
	"wikicollector-backend/infrastructure/persistence/memory"
	s3index "wikicollector-backend/infrastructure/persistence/s3"
	s3upload "wikicollector-backend/infrastructure/storage/s3"
	"wikicollector-backend/interfaces/appsync"
	"wikicollector-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	ArticleRepo ports.ArticleRepository
	IndexStore  ports.IndexStore
	Metrics     *observability.Metrics
	CommandBus  *cmdbus.CommandBus
	QueryBus    *querybus.QueryBus
	Uploads     *services.UploadService
	Reconciler  *services.ReconciliationService
	Resolver    *appsync.Resolver
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	return observability.NewLogger(cfg.Environment, cfg.LogLevel)
}

// ProvideAWSConfig creates AWS configuration. SDK calls are traced with
// X-Ray when tracing is enabled.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}
	if cfg.EnableTracing {
		observability.InstrumentAWS(&awsCfg)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client, or nil when metrics
// are disabled
func ProvideCloudWatchClient(awsCfg aws.Config, cfg *config.Config) observability.CloudWatchAPI {
	if !cfg.EnableMetrics {
		return nil
	}
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideMetrics creates metrics instance
func ProvideMetrics(client observability.CloudWatchAPI, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	return observability.NewMetrics(metricsNamespace(cfg), client, logger)
}

// ProvideNoopMetrics creates a metrics instance that sends nothing
func ProvideNoopMetrics(cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	return observability.NewMetrics(metricsNamespace(cfg), nil, logger)
}

func metricsNamespace(cfg *config.Config) string {
	return cfg.MetricsNamespace + "/" + cfg.Environment
}

// ProvideArticleRepository creates the record store
func ProvideArticleRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ArticleRepository {
	if cfg.UseMemoryStore {
		logger.Warn("Using in-memory article repository")
		return memory.NewArticleRepository()
	}
	return dynamodb.NewArticleRepository(client, cfg.ArticlesTable, logger)
}

// ProvideIndexStore creates the index blob store
func ProvideIndexStore(client *awss3.Client, cfg *config.Config, logger *zap.Logger) ports.IndexStore {
	if cfg.UseMemoryStore {
		logger.Warn("Using in-memory index store")
		return memory.NewIndexStore()
	}
	return s3index.NewIndexStore(client, cfg.IndexBucket, logger)
}

// ProvideMemoryArticleRepository creates an in-memory record store
func ProvideMemoryArticleRepository() ports.ArticleRepository {
	return memory.NewArticleRepository()
}

// ProvideMemoryIndexStore creates an in-memory index store
func ProvideMemoryIndexStore() ports.IndexStore {
	return memory.NewIndexStore()
}

// ProvideUploadSigner creates the image upload presigner
func ProvideUploadSigner(client *awss3.Client, cfg *config.Config) ports.UploadSigner {
	return s3upload.NewUploadPresigner(awss3.NewPresignClient(client), cfg.ImageBucket)
}

// ProvideIndexReader creates the index reader
func ProvideIndexReader(store ports.IndexStore, metrics ports.Metrics, logger *zap.Logger) *index.Reader {
	return index.NewReader(store, metrics, logger)
}

// ProvideSynchronizer creates the index synchronizer
func ProvideSynchronizer(reader *index.Reader, store ports.IndexStore, logger *zap.Logger) *index.Synchronizer {
	return index.NewSynchronizer(reader, store, logger)
}

// ProvideCommandBus creates the command bus with all handlers registered
func ProvideCommandBus(
	repo ports.ArticleRepository,
	sync *index.Synchronizer,
	metrics ports.Metrics,
	logger *zap.Logger,
) (*cmdbus.CommandBus, error) {
	b := cmdbus.NewCommandBus(
		cmdbus.LoggingMiddleware(logger),
		cmdbus.MetricsMiddleware(metrics),
	)
	if err := cmdhandlers.RegisterAll(b, repo, sync, logger); err != nil {
		return nil, err
	}
	return b, nil
}

// ProvideQueryBus creates the query bus with all handlers registered
func ProvideQueryBus(
	repo ports.ArticleRepository,
	reader *index.Reader,
	metrics ports.Metrics,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	b := querybus.NewQueryBus(querybus.NewMetricsMiddleware(metrics))
	if err := queryhandlers.RegisterAll(b, repo, reader, logger); err != nil {
		return nil, err
	}
	return b, nil
}

// ProvideUploadService creates the upload URL service
func ProvideUploadService(signer ports.UploadSigner, cfg *config.Config, logger *zap.Logger) *services.UploadService {
	return services.NewUploadService(signer, cfg.UploadURLTTL(), logger)
}

// ProvideReconciliationService creates the reconciliation service
func ProvideReconciliationService(
	repo ports.ArticleRepository,
	sync *index.Synchronizer,
	metrics ports.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) *services.ReconciliationService {
	return services.NewReconciliationService(repo, sync, metrics, logger, cfg.ReconcileConcurrency)
}

// ProvideResolver creates the gateway resolver
func ProvideResolver(
	commandBus *cmdbus.CommandBus,
	queryBus *querybus.QueryBus,
	uploads *services.UploadService,
	logger *zap.Logger,
) *appsync.Resolver {
	return appsync.NewResolver(commandBus, queryBus, uploads, logger)
}
