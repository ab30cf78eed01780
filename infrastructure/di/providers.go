package di

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"library-backend/application/commands"
	"library-backend/application/commands/bus"
	"library-backend/application/ports"
	"library-backend/application/queries"
	querybus "library-backend/application/queries/bus"
	queryhandlers "library-backend/application/queries/handlers"
	"library-backend/domain/assistant"
	memorycache "library-backend/infrastructure/cache/memory"
	rediscache "library-backend/infrastructure/cache/redis"
	"library-backend/infrastructure/config"
	cognitoauth "library-backend/infrastructure/auth/cognito"
	mockauth "library-backend/infrastructure/auth/mock"
	"library-backend/infrastructure/covers"
	"library-backend/infrastructure/messaging/eventbridge"
	dynamorepo "library-backend/infrastructure/persistence/dynamodb"
	s3store "library-backend/infrastructure/storage/s3"
	"library-backend/interfaces/http/rest"
	"library-backend/pkg/auth"
	"library-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awscognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client.
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideS3Client creates an S3 client.
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client.
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client.
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideCognitoClient creates a Cognito client.
func ProvideCognitoClient(awsCfg aws.Config) *awscognito.Client {
	return awscognito.NewFromConfig(awsCfg)
}

// ProvideBookRepository creates the catalog repository.
func ProvideBookRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.BookRepository {
	return dynamorepo.NewBookRepository(client, cfg.TableName, cfg.TitleIndexName, cfg.FileIndexName, logger)
}

// ProvideBookmarkRepository creates the bookmark repository.
func ProvideBookmarkRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.BookmarkRepository {
	return dynamorepo.NewBookmarkRepository(client, cfg.TableName, logger)
}

// ProvideReviewRepository creates the review repository.
func ProvideReviewRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ReviewRepository {
	return dynamorepo.NewReviewRepository(client, cfg.TableName, logger)
}

// ProvideObjectStore creates the bucket-backed object store.
func ProvideObjectStore(client *awss3.Client, cfg *config.Config, logger *zap.Logger) ports.ObjectStore {
	return s3store.NewObjectStore(client, cfg.BucketName, logger)
}

// ProvideCache selects Redis when configured, falling back to an
// in-process cache for local runs.
func ProvideCache(cfg *config.Config, logger *zap.Logger) ports.Cache {
	if cfg.RedisAddr != "" {
		return rediscache.NewCache(rediscache.NewClient(cfg.RedisAddr, cfg.RedisPassword), logger)
	}
	return memorycache.NewCache()
}

// ProvideEventPublisher creates the event publisher, or a no-op when no
// bus is configured.
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return eventbridge.NoopPublisher{}
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the CloudWatch metrics recorder.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	return observability.NewMetrics(cfg.MetricsNamespace, client)
}

// ProvideTracer creates the X-Ray tracer when tracing is enabled.
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	if !cfg.EnableTracing {
		return nil
	}
	return observability.NewTracer("library-backend")
}

// ProvideCoverExtractor creates the cover pipeline.
func ProvideCoverExtractor(
	store ports.ObjectStore,
	cache ports.Cache,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	cfg *config.Config,
	logger *zap.Logger,
) ports.CoverExtractor {
	return covers.NewExtractor(store, cache, publisher, metrics, tracer, cfg.BooksPrefix, logger)
}

// ProvideJWTGenerator creates the token generator used by mock auth.
// Cognito issues its own tokens, so no generator is built for it.
func ProvideJWTGenerator(cfg *config.Config) (*auth.JWTGenerator, error) {
	if cfg.AuthProvider != "mock" {
		return nil, nil
	}
	return auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
		Audience:      []string{cfg.JWTAudience},
	})
}

// ProvideJWTValidator creates the bearer token validator. Cognito pools
// sign with RS256; the mock provider signs with the shared secret.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	if cfg.JWTPublicKey != "" {
		return auth.NewJWTValidator(auth.JWTConfig{
			SigningMethod: "RS256",
			PublicKey:     cfg.JWTPublicKey,
			Issuer:        cfg.JWTIssuer,
		})
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
		Audience:      []string{cfg.JWTAudience},
	})
}

// ProvideIdentityProvider selects the configured identity backend.
func ProvideIdentityProvider(
	cfg *config.Config,
	client *awscognito.Client,
	generator *auth.JWTGenerator,
	logger *zap.Logger,
) ports.IdentityProvider {
	if cfg.AuthProvider == "cognito" {
		return cognitoauth.NewProvider(client, cfg.CognitoClientID, logger)
	}
	return mockauth.NewProvider(generator)
}

// ProvideAssistant creates the library assistant.
func ProvideAssistant() *assistant.Assistant {
	return assistant.New(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// ProvideCommandBus registers every command handler.
func ProvideCommandBus(
	bookRepo ports.BookRepository,
	bookmarkRepo ports.BookmarkRepository,
	reviewRepo ports.ReviewRepository,
	store ports.ObjectStore,
	publisher ports.EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus()

	uploadHandler := commands.NewUploadBookHandler(bookRepo, store, publisher, cfg.BooksPrefix, logger)
	updateHandler := commands.NewUpdateBookHandler(bookRepo, publisher, logger)
	rateHandler := commands.NewRateBookHandler(bookRepo, reviewRepo, publisher, logger)
	bookmarkHandler := commands.NewBookmarkHandler(bookmarkRepo, bookRepo, logger)

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.UploadBookCommand{}, uploadHandler},
		{commands.UpdateBookCommand{}, updateHandler},
		{commands.RateBookCommand{}, rateHandler},
		{commands.AddBookmarkCommand{}, bookmarkHandler},
		{commands.RemoveBookmarkCommand{}, bookmarkHandler},
	}
	for _, reg := range registrations {
		if err := commandBus.Register(reg.cmd, reg.handler); err != nil {
			return nil, err
		}
	}

	return commandBus, nil
}

// ProvideQueryBus registers every query handler.
func ProvideQueryBus(
	bookRepo ports.BookRepository,
	bookmarkRepo ports.BookmarkRepository,
	reviewRepo ports.ReviewRepository,
	store ports.ObjectStore,
	extractor ports.CoverExtractor,
	cfg *config.Config,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()

	catalogHandler := queryhandlers.NewCatalogHandler(bookRepo, reviewRepo, store, cfg.BooksPrefix, logger)
	fileHandler := queryhandlers.NewFileHandler(bookRepo, store, cfg.BooksPrefix, logger)
	bookmarkHandler := queryhandlers.NewBookmarkHandler(bookmarkRepo, bookRepo, logger)
	reviewHandler := queryhandlers.NewReviewHandler(reviewRepo, logger)
	coverHandler := queryhandlers.NewCoverHandler(extractor, logger)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.ListBooksQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return catalogHandler.ListBooks(ctx, q.(queries.ListBooksQuery))
		})},
		{queries.SearchBooksQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return catalogHandler.SearchBooks(ctx, q.(queries.SearchBooksQuery))
		})},
		{queries.GetBookQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return catalogHandler.GetBook(ctx, q.(queries.GetBookQuery))
		})},
		{queries.ListGenresQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return catalogHandler.ListGenres(ctx, q.(queries.ListGenresQuery))
		})},
		{queries.GetBookFileQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return fileHandler.GetBookFile(ctx, q.(queries.GetBookFileQuery))
		})},
		{queries.ListBookmarksQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return bookmarkHandler.ListBookmarks(ctx, q.(queries.ListBookmarksQuery))
		})},
		{queries.ListReviewsQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return reviewHandler.ListReviews(ctx, q.(queries.ListReviewsQuery))
		})},
		{queries.GetCoverQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return coverHandler.GetCover(ctx, q.(queries.GetCoverQuery))
		})},
	}
	for _, reg := range registrations {
		if err := queryBus.Register(reg.query, reg.handler); err != nil {
			return nil, err
		}
	}

	return queryBus, nil
}

// ProvideRouter builds the HTTP handler.
func ProvideRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	provider ports.IdentityProvider,
	a *assistant.Assistant,
	validator *auth.JWTValidator,
	bookRepo ports.BookRepository,
	store ports.ObjectStore,
	logger *zap.Logger,
) http.Handler {
	return rest.NewRouter(cfg, commandBus, queryBus, provider, a, validator, bookRepo, store, logger).Setup()
}
