package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault/internal/categories"
	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/services"
)

type analyticsFixture struct {
	svc          services.AnalyticsService
	docRepo      *fakeDocumentRepo
	folderRepo   *fakeFolderRepo
	reminderRepo *fakeReminderRepo
	analytics    *fakeAnalyticsRepo
}

func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()

	registry, err := categories.NewRegistry()
	require.NoError(t, err)

	f := &analyticsFixture{
		docRepo:      newFakeDocumentRepo(),
		folderRepo:   newFakeFolderRepo(),
		reminderRepo: newFakeReminderRepo(),
		analytics:    newFakeAnalyticsRepo(),
	}
	profiles := NewProfileService(newFakeProfileRepo(), testLogger())
	f.svc = NewAnalyticsService(
		profiles, f.docRepo, f.folderRepo, newFakeTagRepo(), f.reminderRepo,
		newFakeNoteRepo(), f.analytics, registry, testLogger(),
	)
	return f
}

func (f *analyticsFixture) addDocument(t *testing.T, category, mimeType string, size int64, createdAt time.Time) {
	t.Helper()

	doc := &models.Document{
		ProfileID: "profile-1",
		Title:     "doc",
		Category:  category,
		MimeType:  mimeType,
		FileSize:  size,
	}
	require.NoError(t, f.docRepo.Create(context.Background(), doc))
	f.docRepo.docs[doc.ID].CreatedAt = createdAt
}

func TestReportOverview(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()
	now := time.Now()

	f.addDocument(t, "academic", "application/pdf", 1000, now)
	f.addDocument(t, "academic", "application/pdf", 3000, now)
	f.addDocument(t, "financial", "image/png", 2000, now.AddDate(0, 0, -1))

	require.NoError(t, f.reminderRepo.Create(ctx, &models.Reminder{
		ProfileID: "profile-1", Title: "done", DueDate: now.AddDate(0, 0, 1), IsCompleted: true,
	}))
	require.NoError(t, f.reminderRepo.Create(ctx, &models.Reminder{
		ProfileID: "profile-1", Title: "overdue", DueDate: now.AddDate(0, 0, -2),
	}))

	report, err := f.svc.Report(ctx, testUserID, 7)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Overview.TotalDocuments)
	assert.Equal(t, int64(6000), report.Overview.TotalSize)
	assert.Equal(t, int64(2000), report.Overview.AverageDocumentSize)
	assert.Equal(t, 2, report.Overview.TotalReminders)
	assert.Equal(t, 1, report.Overview.CompletedReminders)
	assert.Equal(t, 1, report.Overview.PendingReminders)
	assert.Equal(t, 1, report.Overview.OverdueReminders)
	assert.Equal(t, 50, report.Overview.CompletionRate)

	assert.Equal(t, 2, report.DocumentsByCategory["academic"])
	assert.Equal(t, 1, report.DocumentsByCategory["financial"])
	assert.Equal(t, 2, report.FileTypes["pdf"])
	assert.Equal(t, 1, report.FileTypes["png"])
}

func TestReportDocumentsByDay(t *testing.T) {
	f := newAnalyticsFixture(t)
	now := time.Now()

	f.addDocument(t, "academic", "application/pdf", 10, now)
	f.addDocument(t, "academic", "application/pdf", 10, now)
	f.addDocument(t, "academic", "application/pdf", 10, now.AddDate(0, 0, -3))
	// Outside the window, must not appear
	f.addDocument(t, "academic", "application/pdf", 10, now.AddDate(0, 0, -30))

	report, err := f.svc.Report(context.Background(), testUserID, 7)
	require.NoError(t, err)

	// One bucket per day, oldest first, zeros included
	require.Len(t, report.DocumentsByDay, 7)
	for i, day := range report.DocumentsByDay {
		expected := now.AddDate(0, 0, -(6 - i)).Format("2006-01-02")
		assert.Equal(t, expected, day.Date)
	}
	assert.Equal(t, 2, report.DocumentsByDay[6].Count)
	assert.Equal(t, 1, report.DocumentsByDay[3].Count)
	assert.Equal(t, 0, report.DocumentsByDay[0].Count)
}

func TestReportWindowClamped(t *testing.T) {
	f := newAnalyticsFixture(t)

	for _, days := range []int{0, -5, 400} {
		report, err := f.svc.Report(context.Background(), testUserID, days)
		require.NoError(t, err)
		assert.Len(t, report.DocumentsByDay, 7, "days=%d should fall back to a week", days)
	}

	report, err := f.svc.Report(context.Background(), testUserID, 30)
	require.NoError(t, err)
	assert.Len(t, report.DocumentsByDay, 30)
}

func TestReportTopFolders(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		require.NoError(t, f.folderRepo.Create(ctx, &models.Folder{
			ProfileID:     "profile-1",
			Name:          fmt.Sprintf("Folder %d", i),
			DocumentCount: i,
		}))
	}

	report, err := f.svc.Report(ctx, testUserID, 7)
	require.NoError(t, err)

	require.Len(t, report.TopFolders, 5)
	assert.Equal(t, "Folder 6", report.TopFolders[0].Name)
	assert.Equal(t, 6, report.TopFolders[0].DocumentCount)
	for i := 1; i < len(report.TopFolders); i++ {
		assert.GreaterOrEqual(t, report.TopFolders[i-1].DocumentCount, report.TopFolders[i].DocumentCount)
	}
}

func TestReportStorageByCategoryIncludesEmpty(t *testing.T) {
	f := newAnalyticsFixture(t)
	now := time.Now()

	f.addDocument(t, "academic", "application/pdf", 5000, now)

	report, err := f.svc.Report(context.Background(), testUserID, 7)
	require.NoError(t, err)

	academic := report.StorageByCategory["academic"]
	assert.Equal(t, "Academic", academic.Label)
	assert.Equal(t, 1, academic.Count)
	assert.Equal(t, int64(5000), academic.Size)

	// Categories with no documents still get a stable zero entry
	financial, ok := report.StorageByCategory["financial"]
	require.True(t, ok)
	assert.Equal(t, "Financial", financial.Label)
	assert.Zero(t, financial.Count)
	assert.Zero(t, financial.Size)
}

func TestReportRecentActivity(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()
	now := time.Now()

	f.addDocument(t, "academic", "application/pdf", 10, now)
	f.addDocument(t, "academic", "application/pdf", 10, now.AddDate(0, 0, -1))

	require.NoError(t, f.reminderRepo.Create(ctx, &models.Reminder{
		ProfileID: "profile-1", Title: "due today", DueDate: now,
	}))
	completedAt := now
	require.NoError(t, f.reminderRepo.Create(ctx, &models.Reminder{
		ProfileID: "profile-1", Title: "finished", DueDate: now.AddDate(0, 0, 3),
		IsCompleted: true, CompletedAt: &completedAt,
	}))

	report, err := f.svc.Report(ctx, testUserID, 7)
	require.NoError(t, err)

	assert.Equal(t, 1, report.RecentActivity.DocumentsAddedToday)
	assert.Equal(t, 1, report.RecentActivity.RemindersDueToday)
	assert.Equal(t, 1, report.RecentActivity.CompletedToday)
}

func TestTrack(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Track(ctx, testUserID, models.EventDocumentViewed))
	require.NoError(t, f.svc.Track(ctx, testUserID, models.EventReminderSet))
	assert.Equal(t, 1, f.analytics.counts[models.EventDocumentViewed])
	assert.Equal(t, 1, f.analytics.counts[models.EventReminderSet])

	err := f.svc.Track(ctx, testUserID, "page_scrolled")
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestFileTypeLabel(t *testing.T) {
	tests := []struct {
		mimeType string
		fileType string
		want     string
	}{
		{"application/pdf", "pdf", "pdf"},
		{"image/png", "", "png"},
		{"", "docx", "docx"},
		{"", "", "unknown"},
		{"weird", "fallback", "fallback"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fileTypeLabel(tt.mimeType, tt.fileType), "mime=%q file=%q", tt.mimeType, tt.fileType)
	}
}
