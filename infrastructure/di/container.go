package di

import (
	"net/http"

	"library-backend/application/commands/bus"
	"library-backend/application/ports"
	querybus "library-backend/application/queries/bus"
	"library-backend/infrastructure/config"
	"library-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies.
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	BookRepo     ports.BookRepository
	BookmarkRepo ports.BookmarkRepository
	ReviewRepo   ports.ReviewRepository
	Store        ports.ObjectStore
	Cache        ports.Cache
	Publisher    ports.EventPublisher
	Extractor    ports.CoverExtractor
	Identity     ports.IdentityProvider
	Metrics      *observability.Metrics
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	Handler      http.Handler
}
