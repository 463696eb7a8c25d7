package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"docvault/internal/categories"
	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

// topFolderCount is how many folders the report surfaces.
const topFolderCount = 5

type analyticsService struct {
	profiles      services.ProfileService
	docRepo       repositories.DocumentRepository
	folderRepo    repositories.FolderRepository
	tagRepo       repositories.TagRepository
	reminderRepo  repositories.ReminderRepository
	noteRepo      repositories.NoteRepository
	analyticsRepo repositories.AnalyticsRepository
	registry      *categories.Registry
	logger        *slog.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	profiles services.ProfileService,
	docRepo repositories.DocumentRepository,
	folderRepo repositories.FolderRepository,
	tagRepo repositories.TagRepository,
	reminderRepo repositories.ReminderRepository,
	noteRepo repositories.NoteRepository,
	analyticsRepo repositories.AnalyticsRepository,
	registry *categories.Registry,
	logger *slog.Logger,
) services.AnalyticsService {
	return &analyticsService{
		profiles:      profiles,
		docRepo:       docRepo,
		folderRepo:    folderRepo,
		tagRepo:       tagRepo,
		reminderRepo:  reminderRepo,
		noteRepo:      noteRepo,
		analyticsRepo: analyticsRepo,
		registry:      registry,
		logger:        logger,
	}
}

// Report recomputes the full analytics snapshot from the live entity
// set. At single-user volumes this is cheaper and simpler than keeping
// aggregates in sync.
func (s *analyticsService) Report(ctx context.Context, userID string, days int) (*models.AnalyticsReport, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if days < 1 || days > 365 {
		days = 7
	}

	docs, err := s.docRepo.ListAll(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	folders, err := s.folderRepo.ListAll(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	tags, err := s.tagRepo.List(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	reminders, err := s.reminderRepo.ListAll(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.ListAll(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &models.AnalyticsReport{
		DocumentsByCategory: map[string]int{},
		FileTypes:           map[string]int{},
		StorageByCategory:   map[string]models.CategoryStorage{},
	}

	var totalSize int64
	for _, d := range docs {
		totalSize += d.FileSize
		report.DocumentsByCategory[d.Category]++
		report.FileTypes[fileTypeLabel(d.MimeType, d.FileType)]++
	}

	completed, overdue := 0, 0
	for _, r := range reminders {
		if r.IsCompleted {
			completed++
		} else if r.DueDate.Before(now) {
			overdue++
		}
	}

	report.Overview = models.Overview{
		TotalDocuments:     len(docs),
		TotalSize:          totalSize,
		TotalReminders:     len(reminders),
		CompletedReminders: completed,
		PendingReminders:   len(reminders) - completed,
		OverdueReminders:   overdue,
		TotalFolders:       len(folders),
		TotalTags:          len(tags),
		TotalNotes:         len(notes),
	}
	if len(reminders) > 0 {
		report.Overview.CompletionRate = completed * 100 / len(reminders)
	}
	if len(docs) > 0 {
		report.Overview.AverageDocumentSize = totalSize / int64(len(docs))
	}

	report.DocumentsByDay = buildDayHistogram(docs, now, days)
	report.TopFolders = buildTopFolders(folders)
	report.StorageByCategory = s.buildStorageByCategory(docs)
	report.RecentActivity = buildRecentActivity(docs, reminders, now)

	return report, nil
}

// Track bumps one of the daily event counters for today
func (s *analyticsService) Track(ctx context.Context, userID, event string) error {
	switch event {
	case models.EventDocumentViewed, models.EventDocumentShared,
		models.EventReminderSet, models.EventReminderCompleted:
	default:
		return fmt.Errorf("%w: unknown event %q", domain.ErrValidation, event)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	return s.analyticsRepo.Increment(ctx, profile.ID, time.Now(), event)
}

// buildDayHistogram counts document creations per calendar day over the
// trailing window. Every day gets a bucket, oldest first, even when the
// count is zero.
func buildDayHistogram(docs []models.Document, now time.Time, days int) []models.DayCount {
	counts := make(map[string]int)
	for _, d := range docs {
		counts[d.CreatedAt.Format("2006-01-02")]++
	}

	histogram := make([]models.DayCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		histogram = append(histogram, models.DayCount{
			Date:  date,
			Count: counts[date],
		})
	}

	return histogram
}

// buildTopFolders ranks folders by live document count
func buildTopFolders(folders []models.Folder) []models.FolderCount {
	ranked := make([]models.FolderCount, 0, len(folders))
	for _, f := range folders {
		ranked = append(ranked, models.FolderCount{
			ID:            f.ID,
			Name:          f.Name,
			Color:         f.Color,
			DocumentCount: f.DocumentCount,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DocumentCount > ranked[j].DocumentCount
	})

	if len(ranked) > topFolderCount {
		ranked = ranked[:topFolderCount]
	}
	return ranked
}

// buildStorageByCategory reports count and size per registered category,
// including empty ones so the client renders a stable breakdown.
func (s *analyticsService) buildStorageByCategory(docs []models.Document) map[string]models.CategoryStorage {
	out := make(map[string]models.CategoryStorage)

	for _, cat := range s.registry.List() {
		out[cat.ID] = models.CategoryStorage{Label: cat.Label}
	}

	for _, d := range docs {
		entry, ok := out[d.Category]
		if !ok {
			entry = models.CategoryStorage{Label: d.Category}
		}
		entry.Count++
		entry.Size += d.FileSize
		out[d.Category] = entry
	}

	return out
}

func buildRecentActivity(docs []models.Document, reminders []models.Reminder, now time.Time) models.RecentActivity {
	today := now.Format("2006-01-02")

	var activity models.RecentActivity
	for _, d := range docs {
		if d.CreatedAt.Format("2006-01-02") == today {
			activity.DocumentsAddedToday++
		}
	}
	for _, r := range reminders {
		if r.DueDate.Format("2006-01-02") == today && !r.IsCompleted {
			activity.RemindersDueToday++
		}
		if r.CompletedAt != nil && r.CompletedAt.Format("2006-01-02") == today {
			activity.CompletedToday++
		}
	}

	return activity
}

// fileTypeLabel reduces a mime type to a short display label
func fileTypeLabel(mimeType, fileType string) string {
	if mimeType != "" {
		if _, sub, ok := strings.Cut(mimeType, "/"); ok && sub != "" {
			return sub
		}
	}
	if fileType != "" {
		return fileType
	}
	return "unknown"
}
