package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"docvault/internal/categories"
	"docvault/internal/config"
	"docvault/internal/domain/services"
	"docvault/internal/repository/postgres"
	"docvault/internal/service"
	"docvault/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// seedUserID is the identity-provider subject the dev data hangs off.
const seedUserID = "00000000-0000-0000-0000-000000000001"

func main() {
	clearData := flag.Bool("clear-data", false, "Clear all seeded data before inserting (keep schema)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: never run destructive operations against production tables
	if cfg.Environment == "prod" {
		log.Fatalf("BLOCKED: seeding is not allowed in the production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open migration connection: %v", err)
	}
	if err := migrations.Migrate(migrationDB, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	migrationDB.Close()
	log.Println("Schema ready")

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *clearData {
		if err := clearSeedData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Existing data cleared")
	}

	registry, err := categories.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load category registry: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	profileRepo := postgres.NewProfileRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	tagRepo := postgres.NewTagRepository(repoConfig)
	reminderRepo := postgres.NewReminderRepository(repoConfig)
	noteRepo := postgres.NewNoteRepository(repoConfig)
	auditRepo := postgres.NewAuditLogRepository(repoConfig)
	analyticsRepo := postgres.NewAnalyticsRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	profileService := service.NewProfileService(profileRepo, logger)
	docService := service.NewDocumentService(profileService, docRepo, folderRepo, tagRepo, profileRepo, auditRepo, analyticsRepo, txManager, registry, logger)
	folderService := service.NewFolderService(profileService, folderRepo, logger)
	tagService := service.NewTagService(profileService, tagRepo, logger)
	reminderService := service.NewReminderService(profileService, reminderRepo, analyticsRepo, auditRepo, logger)
	noteService := service.NewNoteService(profileService, noteRepo, docRepo, logger)

	if err := seed(ctx, profileService, docService, folderService, tagService, reminderService, noteService); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}

func seed(
	ctx context.Context,
	profiles services.ProfileService,
	docs services.DocumentService,
	folders services.FolderService,
	tags services.TagService,
	reminders services.ReminderService,
	notes services.NoteService,
) error {
	name := "Asha Verma"
	email := "asha.verma@example.edu"
	college := "Crescent Engineering College"
	semester := "6"
	if _, err := profiles.UpdateProfile(ctx, seedUserID, &services.UpdateProfileRequest{
		Name:     &name,
		Email:    &email,
		College:  &college,
		Semester: &semester,
	}); err != nil {
		return fmt.Errorf("seed profile: %w", err)
	}

	semesterFolder, err := folders.CreateFolder(ctx, seedUserID, &services.CreateFolderRequest{
		Name: "Semester 6",
	})
	if err != nil {
		return fmt.Errorf("seed folder: %w", err)
	}
	if _, err := folders.CreateFolder(ctx, seedUserID, &services.CreateFolderRequest{
		Name:     "Lab Records",
		ParentID: &semesterFolder.ID,
	}); err != nil {
		return fmt.Errorf("seed subfolder: %w", err)
	}

	important, err := tags.CreateTag(ctx, seedUserID, &services.CreateTagRequest{Name: "important"})
	if err != nil {
		return fmt.Errorf("seed tag: %w", err)
	}

	if _, err := docs.CreateDocument(ctx, seedUserID, &services.CreateDocumentRequest{
		Title:    "Semester 5 Marksheet",
		Category: "academic",
		FileURL:  "https://storage.example.com/seed/marksheet-s5.pdf",
		FileName: "marksheet-s5.pdf",
		FileSize: 245_120,
		FileType: "pdf",
		MimeType: "application/pdf",
		FolderID: &semesterFolder.ID,
		TagIDs:   []string{important.ID},
	}); err != nil {
		return fmt.Errorf("seed document: %w", err)
	}

	if _, err := reminders.CreateReminder(ctx, seedUserID, &services.CreateReminderRequest{
		Title:   "Pay exam fee",
		Type:    "fee",
		DueDate: time.Now().AddDate(0, 0, 10),
	}); err != nil {
		return fmt.Errorf("seed reminder: %w", err)
	}

	if _, err := notes.CreateNote(ctx, seedUserID, &services.CreateNoteRequest{
		Title:    "Scholarship checklist",
		Content:  "Collect bonafide certificate and income proof before Friday.",
		IsPinned: true,
	}); err != nil {
		return fmt.Errorf("seed note: %w", err)
	}

	return nil
}

// clearSeedData truncates every data table under the active prefix.
func clearSeedData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	query := fmt.Sprintf(`TRUNCATE %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s CASCADE`,
		tables.DocumentTags,
		tables.SharedLinks,
		tables.Notes,
		tables.Documents,
		tables.Folders,
		tables.Tags,
		tables.Reminders,
		tables.Backups,
		tables.AuditLogs,
		tables.Analytics,
		tables.Profiles,
	)
	_, err := pool.Exec(ctx, query)
	return err
}
