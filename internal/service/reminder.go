package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

type reminderService struct {
	profiles      services.ProfileService
	reminderRepo  repositories.ReminderRepository
	analyticsRepo repositories.AnalyticsRepository
	auditRepo     repositories.AuditLogRepository
	logger        *slog.Logger
}

// NewReminderService creates a new reminder service
func NewReminderService(
	profiles services.ProfileService,
	reminderRepo repositories.ReminderRepository,
	analyticsRepo repositories.AnalyticsRepository,
	auditRepo repositories.AuditLogRepository,
	logger *slog.Logger,
) services.ReminderService {
	return &reminderService{
		profiles:      profiles,
		reminderRepo:  reminderRepo,
		analyticsRepo: analyticsRepo,
		auditRepo:     auditRepo,
		logger:        logger,
	}
}

// CreateReminder creates a reminder with defaults applied
func (s *reminderService) CreateReminder(ctx context.Context, userID string, req *services.CreateReminderRequest) (*models.Reminder, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	reminder := &models.Reminder{
		ProfileID:     profile.ID,
		Title:         req.Title,
		Description:   req.Description,
		Type:          req.Type,
		DueDate:       req.DueDate,
		ReminderDays:  models.DefaultReminderDays,
		IsRecurring:   req.IsRecurring,
		RecurringType: req.RecurringType,
		RecurringEnd:  req.RecurringEnd,
		Priority:      models.PriorityMedium,
		Color:         models.DefaultReminderColor,
	}
	if req.ReminderDays != nil {
		reminder.ReminderDays = *req.ReminderDays
	}
	if req.Priority != nil && *req.Priority != "" {
		reminder.Priority = *req.Priority
	}
	if req.Color != nil && *req.Color != "" {
		reminder.Color = *req.Color
	}

	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, err
	}

	if err := s.analyticsRepo.Increment(ctx, profile.ID, time.Now(), models.EventReminderSet); err != nil {
		s.logger.Warn("failed to record reminder event", "reminder_id", reminder.ID, "error", err)
	}
	if err := s.auditRepo.Append(ctx, &models.AuditLog{
		UserID:     userID,
		Action:     "create",
		EntityType: "reminder",
		EntityID:   reminder.ID,
	}); err != nil {
		s.logger.Warn("failed to append audit entry", "reminder_id", reminder.ID, "error", err)
	}

	s.logger.Info("reminder created",
		"id", reminder.ID,
		"type", reminder.Type,
		"due_date", reminder.DueDate,
	)

	return reminder, nil
}

// ListReminders returns a filtered, paginated listing
func (s *reminderService) ListReminders(ctx context.Context, userID string, filter *models.ReminderFilter) ([]models.Reminder, *models.Pagination, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if filter == nil {
		filter = &models.ReminderFilter{}
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	reminders, total, err := s.reminderRepo.List(ctx, profile.ID, filter)
	if err != nil {
		return nil, nil, err
	}

	pagination := &models.Pagination{
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: (total + filter.Limit - 1) / filter.Limit,
	}

	return reminders, pagination, nil
}

// UpdateReminder applies a partial update. Completing a reminder stamps
// completedAt and counts a completion event; un-completing clears it.
func (s *reminderService) UpdateReminder(ctx context.Context, id, userID string, req *services.UpdateReminderRequest) (*models.Reminder, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	reminder, err := s.reminderRepo.GetByID(ctx, id, profile.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		reminder.Title = *req.Title
	}
	if req.Description != nil {
		reminder.Description = req.Description
	}
	if req.Type != nil {
		reminder.Type = *req.Type
	}
	if req.DueDate != nil {
		reminder.DueDate = *req.DueDate
	}
	if req.ReminderDays != nil {
		reminder.ReminderDays = *req.ReminderDays
	}
	if req.IsRecurring != nil {
		reminder.IsRecurring = *req.IsRecurring
	}
	if req.RecurringType != nil {
		reminder.RecurringType = req.RecurringType
	}
	if req.RecurringEnd != nil {
		reminder.RecurringEnd = req.RecurringEnd
	}
	if req.Priority != nil {
		reminder.Priority = *req.Priority
	}
	if req.Color != nil && *req.Color != "" {
		reminder.Color = *req.Color
	}

	completedNow := false
	if req.IsCompleted != nil && *req.IsCompleted != reminder.IsCompleted {
		reminder.IsCompleted = *req.IsCompleted
		if reminder.IsCompleted {
			now := time.Now()
			reminder.CompletedAt = &now
			completedNow = true
		} else {
			reminder.CompletedAt = nil
		}
	}
	reminder.UpdatedAt = time.Now()

	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, err
	}

	if completedNow {
		if err := s.analyticsRepo.Increment(ctx, profile.ID, time.Now(), models.EventReminderCompleted); err != nil {
			s.logger.Warn("failed to record completion event", "reminder_id", id, "error", err)
		}
	}

	s.logger.Info("reminder updated", "id", id, "completed", reminder.IsCompleted)

	return reminder, nil
}

// DeleteReminder removes a reminder
func (s *reminderService) DeleteReminder(ctx context.Context, id, userID string) error {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.reminderRepo.Delete(ctx, id, profile.ID); err != nil {
		return err
	}

	s.logger.Info("reminder deleted", "id", id)

	return nil
}

func (s *reminderService) validateCreateRequest(req *services.CreateReminderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&req.Type,
			validation.Required,
			validation.In(
				models.ReminderTypeAssignment,
				models.ReminderTypeExam,
				models.ReminderTypeFee,
				models.ReminderTypeRenewal,
				models.ReminderTypeOther,
			),
		),
		validation.Field(&req.DueDate, validation.Required),
		validation.Field(&req.Priority, validation.By(validPriority)),
	)
}

func (s *reminderService) validateUpdateRequest(req *services.UpdateReminderRequest) error {
	rules := []*validation.FieldRules{}

	if req.Title != nil {
		rules = append(rules, validation.Field(&req.Title, validation.Length(1, 300)))
	}
	if req.Type != nil {
		rules = append(rules, validation.Field(&req.Type, validation.In(
			models.ReminderTypeAssignment,
			models.ReminderTypeExam,
			models.ReminderTypeFee,
			models.ReminderTypeRenewal,
			models.ReminderTypeOther,
		)))
	}
	if req.Priority != nil {
		rules = append(rules, validation.Field(&req.Priority, validation.By(validPriority)))
	}

	return validation.ValidateStruct(req, rules...)
}

func validPriority(value interface{}) error {
	var priority string
	switch v := value.(type) {
	case *string:
		if v == nil {
			return nil
		}
		priority = *v
	case string:
		priority = v
	}
	if priority == "" {
		return nil
	}
	switch priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent:
		return nil
	}
	return fmt.Errorf("unknown priority %q", priority)
}
