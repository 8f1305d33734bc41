package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"folio/internal/auth"
	"folio/internal/blocktypes"
	"folio/internal/config"
	"folio/internal/handler"
	"folio/internal/middleware"
	"folio/internal/repository"
	"folio/internal/search"
	serviceBlog "folio/internal/service/blog"
	"folio/internal/service/blog/export"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, closeLog, err := config.NewLogger(cfg, "server", os.Stdout)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
		"snippet_backend", cfg.SnippetBackend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// JWT verifier, only when a secret or JWKS URL is configured
	jwtVerifier, err := newVerifier(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	if jwtVerifier != nil {
		defer jwtVerifier.Close()
	} else {
		logger.Warn("AUTH DISABLED: write endpoints accept unauthenticated requests")
	}

	stores, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open stores: %v", err)
	}
	defer stores.Close()

	searchIndex, err := openSearchIndex(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}
	defer searchIndex.Close()

	blockRegistry, err := blocktypes.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize block type catalog: %v", err)
	}

	// Create services
	exporters := export.NewRegistry()
	docService := serviceBlog.NewDocumentService(
		stores.Index,
		stores.Snippets,
		stores.Artifacts,
		stores.Uploads,
		searchIndex,
		exporters,
		logger,
	)
	searchService := serviceBlog.NewSearchService(stores.Index, stores.Snippets, searchIndex, logger)
	reconcileService := serviceBlog.NewReconcileService(stores.Index, stores.Snippets, stores.Artifacts, logger)

	if n, err := searchService.Reindex(ctx); err != nil {
		logger.Warn("initial search indexing failed", "error", err)
	} else {
		logger.Info("search index ready", "documents", n)
	}

	// Create handlers
	postHandler := handler.NewPostHandler(docService, logger)
	searchHandler := handler.NewSearchHandler(searchService, logger)
	blockTypeHandler := handler.NewBlockTypeHandler(blockRegistry, logger)
	adminHandler := handler.NewAdminHandler(reconcileService, searchService, logger)

	logger.Info("services initialized", "export_formats", exporters.Formats())

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Post routes
	mux.HandleFunc("GET /api/posts", postHandler.ListPosts)
	mux.HandleFunc("POST /api/posts", postHandler.CreatePost)
	mux.HandleFunc("GET /api/posts/{id}", postHandler.GetPost)
	mux.HandleFunc("PUT /api/posts/{id}", postHandler.UpdatePost)
	mux.HandleFunc("DELETE /api/posts/{id}", postHandler.DeletePost)
	mux.HandleFunc("GET /api/posts/{id}/export", postHandler.ExportPost)

	mux.HandleFunc("GET /api/search", searchHandler.Search)
	mux.HandleFunc("GET /api/block-types", blockTypeHandler.ListBlockTypes)

	// Admin routes (always require auth when enabled)
	mux.HandleFunc("POST /api/admin/reconcile", adminHandler.Reconcile)
	mux.HandleFunc("POST /api/admin/reindex", adminHandler.Reindex)

	// Uploaded media is served from the upload directory unless the prefix
	// points at another host
	if !strings.Contains(cfg.UploadURLPrefix, "://") {
		prefix := "/" + strings.Trim(cfg.UploadURLPrefix, "/") + "/"
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.UploadDir))))
	}

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → RequestLogger → Auth → Routes
	h = middleware.AuthMiddleware(jwtVerifier, logger)(h)
	h = middleware.RequestLogger(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}

// newVerifier picks the JWKS verifier when a URL is set, else the shared
// secret verifier. Returns nil when auth is not configured.
func newVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (auth.JWTVerifier, error) {
	switch {
	case cfg.AuthJWKSURL != "":
		v, err := auth.NewJWKSVerifier(ctx, cfg.AuthJWKSURL, logger)
		if err != nil {
			return nil, err
		}
		return v, nil
	case cfg.AuthJWTSecret != "":
		v, err := auth.NewHMACVerifier(cfg.AuthJWTSecret, logger)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, nil
	}
}

// openSearchIndex opens the on-disk index, or an in-memory one when no path
// is configured. Either way it is rebuilt from the stores at startup.
func openSearchIndex(cfg *config.Config, logger *slog.Logger) (*search.Index, error) {
	if cfg.SearchIndexPath == "" {
		logger.Info("using in-memory search index")
		return search.NewMemOnly()
	}
	logger.Info("opening search index", "path", cfg.SearchIndexPath)
	return search.Open(cfg.SearchIndexPath)
}
