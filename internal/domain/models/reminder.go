package models

import "time"

// Reminder types form a closed set, validated at the service layer.
const (
	ReminderTypeAssignment = "assignment"
	ReminderTypeExam       = "exam"
	ReminderTypeFee        = "fee"
	ReminderTypeRenewal    = "renewal"
	ReminderTypeOther      = "other"
)

// Reminder priorities, lowest to highest.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// DefaultReminderColor matches the client's default accent.
const DefaultReminderColor = "#3B82F6"

// DefaultReminderDays is the lead time applied when none is given.
const DefaultReminderDays = 3

type Reminder struct {
	ID            string     `json:"id" db:"id"`
	ProfileID     string     `json:"-" db:"profile_id"`
	Title         string     `json:"title" db:"title"`
	Description   *string    `json:"description,omitempty" db:"description"`
	Type          string     `json:"type" db:"type"`
	DueDate       time.Time  `json:"dueDate" db:"due_date"`
	ReminderDays  int        `json:"reminderDays" db:"reminder_days"`
	IsCompleted   bool       `json:"isCompleted" db:"is_completed"`
	CompletedAt   *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	IsRecurring   bool       `json:"isRecurring" db:"is_recurring"`
	RecurringType *string    `json:"recurringType,omitempty" db:"recurring_type"`
	RecurringEnd  *time.Time `json:"recurringEnd,omitempty" db:"recurring_end"`
	Priority      string     `json:"priority" db:"priority"`
	Color         string     `json:"color" db:"color"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}

// ReminderFilter narrows reminder listings.
type ReminderFilter struct {
	Type string
	// Completed is tri-state: nil means no filter.
	Completed *bool
	// Upcoming selects incomplete reminders due within the next 7 days.
	Upcoming bool
	Page     int
	Limit    int
}
