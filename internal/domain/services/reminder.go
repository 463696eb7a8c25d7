package services

import (
	"context"
	"time"

	"docvault/internal/domain/models"
)

// ReminderService handles deadline reminder business logic
type ReminderService interface {
	// CreateReminder creates a reminder and counts it in today's analytics
	CreateReminder(ctx context.Context, userID string, req *CreateReminderRequest) (*models.Reminder, error)

	// ListReminders returns a filtered, paginated listing sorted by
	// completion state then due date.
	ListReminders(ctx context.Context, userID string, filter *models.ReminderFilter) ([]models.Reminder, *models.Pagination, error)

	// UpdateReminder applies a partial update; completing a reminder
	// stamps completedAt and counts a completion event.
	UpdateReminder(ctx context.Context, id, userID string, req *UpdateReminderRequest) (*models.Reminder, error)

	DeleteReminder(ctx context.Context, id, userID string) error
}

// CreateReminderRequest represents a reminder creation request
type CreateReminderRequest struct {
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	Type          string     `json:"type"`
	DueDate       time.Time  `json:"dueDate"`
	ReminderDays  *int       `json:"reminderDays,omitempty"`
	IsRecurring   bool       `json:"isRecurring"`
	RecurringType *string    `json:"recurringType,omitempty"`
	RecurringEnd  *time.Time `json:"recurringEnd,omitempty"`
	Priority      *string    `json:"priority,omitempty"`
	Color         *string    `json:"color,omitempty"`
}

// UpdateReminderRequest represents a partial reminder update
type UpdateReminderRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Type          *string    `json:"type,omitempty"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	ReminderDays  *int       `json:"reminderDays,omitempty"`
	IsCompleted   *bool      `json:"isCompleted,omitempty"`
	IsRecurring   *bool      `json:"isRecurring,omitempty"`
	RecurringType *string    `json:"recurringType,omitempty"`
	RecurringEnd  *time.Time `json:"recurringEnd,omitempty"`
	Priority      *string    `json:"priority,omitempty"`
	Color         *string    `json:"color,omitempty"`
}
