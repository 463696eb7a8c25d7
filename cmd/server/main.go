package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"docvault/internal/auth"
	"docvault/internal/categories"
	"docvault/internal/config"
	"docvault/internal/handler"
	"docvault/internal/middleware"
	"docvault/internal/repository/postgres"
	"docvault/internal/service"
	"docvault/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Run migrations over a short-lived database/sql connection; the
	// pgx pool below is used for everything else
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open migration connection: %v", err)
	}
	if err := migrations.Migrate(migrationDB, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := migrationDB.Close(); err != nil {
		log.Fatalf("Failed to close migration connection: %v", err)
	}
	logger.Info("migrations applied")

	// JWT verifier against the identity provider's JWKS endpoint
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	registry, err := categories.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load category registry: %v", err)
	}

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	profileRepo := postgres.NewProfileRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	tagRepo := postgres.NewTagRepository(repoConfig)
	reminderRepo := postgres.NewReminderRepository(repoConfig)
	noteRepo := postgres.NewNoteRepository(repoConfig)
	backupRepo := postgres.NewBackupRepository(repoConfig)
	linkRepo := postgres.NewSharedLinkRepository(repoConfig)
	auditRepo := postgres.NewAuditLogRepository(repoConfig)
	analyticsRepo := postgres.NewAnalyticsRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Services
	profileService := service.NewProfileService(profileRepo, logger)
	docService := service.NewDocumentService(profileService, docRepo, folderRepo, tagRepo, profileRepo, auditRepo, analyticsRepo, txManager, registry, logger)
	folderService := service.NewFolderService(profileService, folderRepo, logger)
	tagService := service.NewTagService(profileService, tagRepo, logger)
	reminderService := service.NewReminderService(profileService, reminderRepo, analyticsRepo, auditRepo, logger)
	noteService := service.NewNoteService(profileService, noteRepo, docRepo, logger)
	backupService := service.NewBackupService(profileService, backupRepo, docRepo, folderRepo, tagRepo, reminderRepo, noteRepo, auditRepo, logger)
	shareService := service.NewShareService(profileService, docRepo, linkRepo, auditRepo, analyticsRepo, cfg.BaseURL, logger)
	analyticsService := service.NewAnalyticsService(profileService, docRepo, folderRepo, tagRepo, reminderRepo, noteRepo, analyticsRepo, registry, logger)
	syncService := service.NewSyncService(profileService, docRepo, folderRepo, tagRepo, reminderRepo, noteRepo, logger)

	// Handlers
	healthHandler := handler.NewHealthHandler(pool)
	profileHandler := handler.NewProfileHandler(profileService, logger)
	docHandler := handler.NewDocumentHandler(docService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	tagHandler := handler.NewTagHandler(tagService, logger)
	reminderHandler := handler.NewReminderHandler(reminderService, logger)
	noteHandler := handler.NewNoteHandler(noteService, logger)
	backupHandler := handler.NewBackupHandler(backupService, logger)
	shareHandler := handler.NewShareHandler(shareService, logger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, logger)
	categoryHandler := handler.NewCategoryHandler(registry, logger)
	syncHandler := handler.NewSyncHandler(syncService, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Check)

	// Profile routes; POST performs the onboarding create, which is the
	// same get-or-create-then-apply path as an update
	mux.HandleFunc("GET /api/profile", profileHandler.GetProfile)
	mux.HandleFunc("POST /api/profile", profileHandler.UpdateProfile)
	mux.HandleFunc("PUT /api/profile", profileHandler.UpdateProfile)
	mux.HandleFunc("PATCH /api/profile", profileHandler.UpdateProfile)

	// Document routes
	mux.HandleFunc("GET /api/documents", docHandler.ListDocuments)
	mux.HandleFunc("POST /api/documents", docHandler.CreateDocument)
	mux.HandleFunc("DELETE /api/documents", docHandler.DeleteDocuments)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("PUT /api/documents/{id}", docHandler.UpdateDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.DeleteDocuments)

	// Share routes
	mux.HandleFunc("GET /api/documents/{id}/share", shareHandler.GetShareInfo)
	mux.HandleFunc("POST /api/documents/{id}/share", shareHandler.CreateLink)
	mux.HandleFunc("DELETE /api/share/links/{id}", shareHandler.RevokeLink)

	// Folder routes
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)

	// Tag routes
	mux.HandleFunc("GET /api/tags", tagHandler.ListTags)
	mux.HandleFunc("POST /api/tags", tagHandler.CreateTag)
	mux.HandleFunc("PUT /api/tags/{id}", tagHandler.UpdateTag)
	mux.HandleFunc("PATCH /api/tags/{id}", tagHandler.UpdateTag)
	mux.HandleFunc("DELETE /api/tags/{id}", tagHandler.DeleteTag)

	// Reminder routes
	mux.HandleFunc("GET /api/reminders", reminderHandler.ListReminders)
	mux.HandleFunc("POST /api/reminders", reminderHandler.CreateReminder)
	mux.HandleFunc("PATCH /api/reminders/{id}", reminderHandler.UpdateReminder)
	mux.HandleFunc("DELETE /api/reminders/{id}", reminderHandler.DeleteReminder)

	// Note routes
	mux.HandleFunc("GET /api/notes", noteHandler.ListNotes)
	mux.HandleFunc("POST /api/notes", noteHandler.CreateNote)
	mux.HandleFunc("PUT /api/notes/{id}", noteHandler.UpdateNote)
	mux.HandleFunc("PATCH /api/notes/{id}", noteHandler.UpdateNote)
	mux.HandleFunc("DELETE /api/notes/{id}", noteHandler.DeleteNote)

	// Backup routes
	mux.HandleFunc("GET /api/backups", backupHandler.ListBackups)
	mux.HandleFunc("POST /api/backups", backupHandler.CreateBackup)
	mux.HandleFunc("POST /api/backups/restore", backupHandler.Restore)
	mux.HandleFunc("DELETE /api/backups/{id}", backupHandler.DeleteBackup)

	// Analytics routes
	mux.HandleFunc("GET /api/analytics", analyticsHandler.GetReport)
	mux.HandleFunc("POST /api/analytics", analyticsHandler.TrackEvent)

	// Category registry
	mux.HandleFunc("GET /api/categories", categoryHandler.ListCategories)

	// Client mirror sync
	mux.HandleFunc("GET /api/sync", syncHandler.Snapshot)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.Auth(jwtVerifier, logger)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
