package rest

import (
	"net/http"
	"time"

	"library-backend/application/commands/bus"
	"library-backend/application/ports"
	querybus "library-backend/application/queries/bus"
	"library-backend/domain/assistant"
	"library-backend/infrastructure/config"
	"library-backend/interfaces/http/rest/handlers"
	"library-backend/interfaces/http/rest/middleware"
	"library-backend/pkg/auth"
	"library-backend/pkg/common"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router.
type Router struct {
	cfg        *config.Config
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	provider   ports.IdentityProvider
	assistant  *assistant.Assistant
	validator  *auth.JWTValidator
	bookRepo   ports.BookRepository
	store      ports.ObjectStore
	logger     *zap.Logger
}

// NewRouter creates a new router instance.
func NewRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	provider ports.IdentityProvider,
	a *assistant.Assistant,
	validator *auth.JWTValidator,
	bookRepo ports.BookRepository,
	store ports.ObjectStore,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:        cfg,
		commandBus: commandBus,
		queryBus:   queryBus,
		provider:   provider,
		assistant:  a,
		validator:  validator,
		bookRepo:   bookRepo,
		store:      store,
		logger:     logger,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(chimiddleware.Timeout(rt.cfg.RequestTimeout))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/", rt.serviceInfo)
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	authHandler := handlers.NewAuthHandler(rt.provider, rt.logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/login", authHandler.Login)
		r.Post("/confirm", authHandler.Confirm)
		r.Get("/health", authHandler.Health)
	})

	ipLimiter := auth.NewIPRateLimiter(100)
	userLimiter := auth.NewUserRateLimiter(200)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, ipLimiter, userLimiter))

		bookHandler := handlers.NewBookHandler(rt.commandBus, rt.queryBus, rt.cfg.MaxUploadBytes, rt.logger)
		r.Route("/books", func(r chi.Router) {
			r.Get("/", bookHandler.ListBooks)
			r.Post("/", bookHandler.UploadBook)
			r.Get("/search", bookHandler.SearchBooks)
			r.Get("/{bookID}", bookHandler.GetBook)
			r.Put("/{bookID}", bookHandler.UpdateBook)
			r.Get("/{bookID}/reviews", bookHandler.ListReviews)
			r.Post("/{bookID}/rate", bookHandler.RateBook)
		})
		r.Get("/genres", bookHandler.ListGenres)

		bookmarkHandler := handlers.NewBookmarkHandler(rt.commandBus, rt.queryBus, rt.logger)
		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", bookmarkHandler.ListBookmarks)
			r.Post("/{bookID}", bookmarkHandler.AddBookmark)
			r.Delete("/{bookID}", bookmarkHandler.RemoveBookmark)
		})

		fileHandler := handlers.NewFileHandler(rt.queryBus, rt.logger)
		r.Route("/files", func(r chi.Router) {
			r.Get("/{filename}", fileHandler.GetFile)
			r.Get("/{filename}/cover", fileHandler.GetCover)
			r.Post("/{filename}/cover/extract", fileHandler.ExtractCover)
		})

		assistantHandler := handlers.NewAssistantHandler(rt.assistant, rt.queryBus, rt.logger)
		r.Post("/assistant", assistantHandler.Query)
	})

	return router
}

func (rt *Router) serviceInfo(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{
		"service":     "library-backend",
		"environment": rt.cfg.Environment,
	})
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// readinessCheck verifies the table and the bucket are reachable.
func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"dynamodb": "ok",
		"s3":       "ok",
	}
	status := http.StatusOK

	if err := rt.bookRepo.Ping(r.Context()); err != nil {
		checks["dynamodb"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := rt.store.Ping(r.Context()); err != nil {
		checks["s3"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	common.RespondJSON(w, status, checks)
}
