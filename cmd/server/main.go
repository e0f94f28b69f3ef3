package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"sopgen/internal/auth"
	"sopgen/internal/config"
	"sopgen/internal/domain/repositories"
	sopSvc "sopgen/internal/domain/services/sop"
	"sopgen/internal/handler"
	"sopgen/internal/middleware"
	"sopgen/internal/repository/jsonfile"
	"sopgen/internal/repository/postgres"
	"sopgen/internal/service/assets"
	"sopgen/internal/service/export"
	"sopgen/internal/service/generate"
	anthropicProvider "sopgen/internal/service/generate/providers/anthropic"
	mockProvider "sopgen/internal/service/generate/providers/mock"
	openaiProvider "sopgen/internal/service/generate/providers/openai"
	serviceSOP "sopgen/internal/service/sop"
	"sopgen/internal/service/template"
	"sopgen/internal/service/translate"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging. Outside dev the JSON stream is teed into a
	// timestamped log file with retention cleanup.
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	logOutput := io.Writer(os.Stdout)
	if cfg.Environment != "dev" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to create log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage_backend", cfg.StorageBackend,
	)

	ctx := context.Background()

	// Pick the document store
	var repo repositories.DocumentRepository
	switch cfg.StorageBackend {
	case "postgres":
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
		repo = postgres.NewDocumentRepository(&postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		})
		logger.Info("database connected", "table_prefix", cfg.TablePrefix)
	default:
		store, err := jsonfile.NewStore(cfg.DataDir, logger)
		if err != nil {
			log.Fatalf("Failed to open document store: %v", err)
		}
		repo = store
	}

	// Template library and standards catalog
	templates, err := template.NewManager(cfg.TemplateDir, logger)
	if err != nil {
		log.Fatalf("Failed to initialize template library: %v", err)
	}
	standards, err := template.NewStandardsCatalog()
	if err != nil {
		log.Fatalf("Failed to load standards catalog: %v", err)
	}

	// AI text providers; mock is always registered as the fallback
	var providers []sopSvc.TextProvider
	if cfg.AnthropicAPIKey != "" {
		p, err := anthropicProvider.NewProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		if err != nil {
			log.Fatalf("Failed to create anthropic provider: %v", err)
		}
		providers = append(providers, p)
	}
	if cfg.OpenAIAPIKey != "" {
		p, err := openaiProvider.NewProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			log.Fatalf("Failed to create openai provider: %v", err)
		}
		providers = append(providers, p)
	}
	providers = append(providers, mockProvider.NewProvider())

	generator := generate.NewService(logger, providers...)
	logger.Info("text providers registered", "providers", generator.Providers())

	// Services
	docService := serviceSOP.NewDocumentService(repo, templates, logger)
	translator := translate.NewGoogleTranslator(logger)
	assetService := assets.NewService(repo, logger)

	exportOpts := []export.Option{}
	if cfg.WkhtmltopdfPath != "" {
		exportOpts = append(exportOpts, export.WithPageConverter(export.NewWkhtmltopdfConverter(cfg.WkhtmltopdfPath)))
	}
	exporter := export.New(logger, exportOpts...)

	// JWT verifier; requests fall back to dev headers when unset
	var verifier auth.TokenVerifier
	if cfg.JWKSURL != "" {
		verifier, err = auth.NewJWKSVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
	} else {
		logger.Warn("JWKS_URL not set, authentication disabled (dev mode)")
	}

	// Handlers
	docHandler := handler.NewDocumentHandler(docService, logger)
	exportHandler := handler.NewExportHandler(docService, exporter, logger)
	generateHandler := handler.NewGenerateHandler(docService, generator, logger)
	translateHandler := handler.NewTranslateHandler(docService, translator, logger)
	assetHandler := handler.NewAssetHandler(assetService, logger)
	templateHandler := handler.NewTemplateHandler(templates, standards, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Document lifecycle routes
	mux.HandleFunc("POST /api/documents", docHandler.Create)
	mux.HandleFunc("GET /api/documents", docHandler.List)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.Get)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.Delete)

	// Section routes
	mux.HandleFunc("POST /api/documents/{id}/sections", docHandler.AddSection)
	mux.HandleFunc("PUT /api/documents/{id}/sections/{title}", docHandler.UpdateSection)
	mux.HandleFunc("DELETE /api/documents/{id}/sections/{title}", docHandler.RemoveSection)

	// Version log and approval
	mux.HandleFunc("GET /api/documents/{id}/versions", docHandler.ListVersions)
	mux.HandleFunc("POST /api/documents/{id}/versions", docHandler.LogVersion)
	mux.Handle("POST /api/documents/{id}/approve",
		middleware.RequireRole(auth.RoleApprover)(http.HandlerFunc(docHandler.Approve)))
	mux.Handle("POST /api/documents/{id}/unlock",
		middleware.RequireRole(auth.RoleAdmin)(http.HandlerFunc(docHandler.Unlock)))

	// Content generation
	mux.HandleFunc("GET /api/generate/providers", generateHandler.Providers)
	mux.HandleFunc("POST /api/documents/{id}/sections/{title}/generate", generateHandler.GenerateSection)

	// Translation
	mux.HandleFunc("GET /api/translate/languages", translateHandler.Languages)
	mux.HandleFunc("POST /api/documents/{id}/translate", translateHandler.Translate)

	// Export
	mux.HandleFunc("GET /api/export/formats", exportHandler.Formats)
	mux.HandleFunc("GET /api/documents/{id}/export/{format}", exportHandler.Export)

	// Asset uploads
	mux.HandleFunc("POST /api/documents/{id}/assets/logo", assetHandler.UploadLogo)
	mux.HandleFunc("POST /api/documents/{id}/assets/photos", assetHandler.UploadPhotos)
	mux.HandleFunc("POST /api/documents/{id}/assets/flowchart", assetHandler.UploadFlowchart)

	// Template library
	mux.HandleFunc("GET /api/templates", templateHandler.List)
	mux.HandleFunc("GET /api/templates/{name}", templateHandler.Info)
	mux.HandleFunc("PUT /api/templates/{name}", templateHandler.Save)
	mux.HandleFunc("GET /api/standards", templateHandler.Standards)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	h = middleware.Authenticate(verifier, logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
