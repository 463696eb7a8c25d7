package models

import "time"

// Trackable analytics events, incremented via POST /api/analytics.
const (
	EventDocumentViewed    = "document_viewed"
	EventDocumentShared    = "document_shared"
	EventReminderSet       = "reminder_set"
	EventReminderCompleted = "reminder_completed"
)

// DailyAnalytics holds one profile's counters for one calendar day,
// keyed by a day-truncated date and created lazily on first event.
type DailyAnalytics struct {
	ID                 string    `json:"id" db:"id"`
	ProfileID          string    `json:"-" db:"profile_id"`
	Date               time.Time `json:"date" db:"date"`
	DocumentsViewed    int       `json:"documentsViewed" db:"documents_viewed"`
	DocumentsShared    int       `json:"documentsShared" db:"documents_shared"`
	RemindersSet       int       `json:"remindersSet" db:"reminders_set"`
	RemindersCompleted int       `json:"remindersCompleted" db:"reminders_completed"`
}

// AnalyticsReport is the full computed snapshot returned by
// GET /api/analytics. Everything is recomputed from the current entity
// set on each call; at single-user volumes no aggregation pipeline is
// warranted.
type AnalyticsReport struct {
	Overview            Overview                   `json:"overview"`
	DocumentsByCategory map[string]int             `json:"documentsByCategory"`
	DocumentsByDay      []DayCount                 `json:"documentsByDay"`
	FileTypes           map[string]int             `json:"fileTypes"`
	TopFolders          []FolderCount              `json:"topFolders"`
	StorageByCategory   map[string]CategoryStorage `json:"storageByCategory"`
	RecentActivity      RecentActivity             `json:"recentActivity"`
}

type Overview struct {
	TotalDocuments      int   `json:"totalDocuments"`
	TotalSize           int64 `json:"totalSize"`
	TotalReminders      int   `json:"totalReminders"`
	CompletedReminders  int   `json:"completedReminders"`
	PendingReminders    int   `json:"pendingReminders"`
	OverdueReminders    int   `json:"overdueReminders"`
	CompletionRate      int   `json:"completionRate"`
	AverageDocumentSize int64 `json:"averageDocumentSize"`
	TotalFolders        int   `json:"totalFolders"`
	TotalTags           int   `json:"totalTags"`
	TotalNotes          int   `json:"totalNotes"`
}

// DayCount is one bucket of the per-day creation histogram.
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

type FolderCount struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	DocumentCount int    `json:"documentCount"`
}

type CategoryStorage struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Size  int64  `json:"size"`
}

type RecentActivity struct {
	DocumentsAddedToday int `json:"documentsAddedToday"`
	RemindersDueToday   int `json:"remindersDueToday"`
	CompletedToday      int `json:"completedToday"`
}
