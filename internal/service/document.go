package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"docvault/internal/categories"
	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

type documentService struct {
	profiles      services.ProfileService
	docRepo       repositories.DocumentRepository
	folderRepo    repositories.FolderRepository
	tagRepo       repositories.TagRepository
	profileRepo   repositories.ProfileRepository
	auditRepo     repositories.AuditLogRepository
	analyticsRepo repositories.AnalyticsRepository
	txManager     repositories.TransactionManager
	registry      *categories.Registry
	logger        *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	profiles services.ProfileService,
	docRepo repositories.DocumentRepository,
	folderRepo repositories.FolderRepository,
	tagRepo repositories.TagRepository,
	profileRepo repositories.ProfileRepository,
	auditRepo repositories.AuditLogRepository,
	analyticsRepo repositories.AnalyticsRepository,
	txManager repositories.TransactionManager,
	registry *categories.Registry,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		profiles:      profiles,
		docRepo:       docRepo,
		folderRepo:    folderRepo,
		tagRepo:       tagRepo,
		profileRepo:   profileRepo,
		auditRepo:     auditRepo,
		analyticsRepo: analyticsRepo,
		txManager:     txManager,
		registry:      registry,
		logger:        logger,
	}
}

// CreateDocument records an uploaded file's metadata. The insert, tag
// links, quota charge and audit entry commit atomically.
func (s *documentService) CreateDocument(ctx context.Context, userID string, req *services.CreateDocumentRequest) (*models.Document, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.StorageUsed+req.FileSize > profile.StorageLimit {
		return nil, fmt.Errorf("%w: %d of %d bytes used",
			domain.ErrQuotaExceeded, profile.StorageUsed, profile.StorageLimit)
	}

	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}
	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, profile.ID); err != nil {
			return nil, fmt.Errorf("folder: %w", err)
		}
	}

	if err := s.verifyTagOwnership(ctx, profile.ID, req.TagIDs); err != nil {
		return nil, err
	}

	doc := &models.Document{
		ProfileID:     profile.ID,
		Title:         req.Title,
		Category:      req.Category,
		SubCategory:   req.SubCategory,
		Description:   req.Description,
		FileURL:       req.FileURL,
		FileName:      req.FileName,
		FileSize:      req.FileSize,
		FileType:      req.FileType,
		MimeType:      req.MimeType,
		FolderID:      req.FolderID,
		IsFavorite:    req.IsFavorite,
		ExtractedText: req.ExtractedText,
		ShareToken:    uuid.NewString(),
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.docRepo.Create(ctx, doc); err != nil {
			return err
		}
		if len(req.TagIDs) > 0 {
			if err := s.docRepo.SetTags(ctx, doc.ID, req.TagIDs); err != nil {
				return err
			}
		}
		if err := s.profileRepo.AddStorageUsed(ctx, profile.ID, req.FileSize); err != nil {
			return err
		}
		return s.auditRepo.Append(ctx, &models.AuditLog{
			UserID:     userID,
			Action:     "create",
			EntityType: "document",
			EntityID:   doc.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	// Reload to surface attached tags
	created, err := s.docRepo.GetByID(ctx, doc.ID, profile.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", created.ID,
		"title", created.Title,
		"category", created.Category,
		"file_size", created.FileSize,
	)

	return created, nil
}

// GetDocument retrieves a document and counts a view event
func (s *documentService) GetDocument(ctx context.Context, id, userID string) (*models.Document, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc, err := s.docRepo.GetByID(ctx, id, profile.ID)
	if err != nil {
		return nil, err
	}

	// View tracking is best-effort; a counter failure never blocks reads
	if err := s.analyticsRepo.Increment(ctx, profile.ID, time.Now(), models.EventDocumentViewed); err != nil {
		s.logger.Warn("failed to record document view", "document_id", id, "error", err)
	}

	return doc, nil
}

// ListDocuments returns a filtered page of documents
func (s *documentService) ListDocuments(ctx context.Context, userID string, filter *models.DocumentFilter) ([]models.Document, *models.Pagination, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if filter == nil {
		filter = &models.DocumentFilter{}
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	docs, total, err := s.docRepo.List(ctx, profile.ID, filter)
	if err != nil {
		return nil, nil, err
	}

	pagination := &models.Pagination{
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: (total + filter.Limit - 1) / filter.Limit,
	}

	return docs, pagination, nil
}

// UpdateDocument applies a partial metadata update
func (s *documentService) UpdateDocument(ctx context.Context, id, userID string, req *services.UpdateDocumentRequest) (*models.Document, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc, err := s.docRepo.GetByID(ctx, id, profile.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		doc.Title = *req.Title
	}
	if req.Category != nil {
		doc.Category = *req.Category
	}
	if req.SubCategory != nil {
		doc.SubCategory = req.SubCategory
	}
	if req.Description != nil {
		doc.Description = req.Description
	}
	if req.IsFavorite != nil {
		doc.IsFavorite = *req.IsFavorite
	}
	if req.FolderID != nil {
		// Empty string moves the document back to root level
		if *req.FolderID == "" {
			doc.FolderID = nil
		} else {
			if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, profile.ID); err != nil {
				return nil, fmt.Errorf("folder: %w", err)
			}
			doc.FolderID = req.FolderID
		}
	}

	if req.TagIDs != nil {
		if err := s.verifyTagOwnership(ctx, profile.ID, req.TagIDs); err != nil {
			return nil, err
		}
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.docRepo.Update(ctx, doc); err != nil {
			return err
		}
		if req.TagIDs != nil {
			return s.docRepo.SetTags(ctx, doc.ID, req.TagIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.docRepo.GetByID(ctx, doc.ID, profile.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("document updated", "id", updated.ID)

	return updated, nil
}

// DeleteDocuments soft-deletes documents in bulk. The storage counter
// is intentionally left alone so quota reflects lifetime uploads.
func (s *documentService) DeleteDocuments(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no document ids given", domain.ErrValidation)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.docRepo.SoftDelete(ctx, ids, profile.ID, time.Now()); err != nil {
			return err
		}
		return s.auditRepo.Append(ctx, &models.AuditLog{
			UserID:     userID,
			Action:     "delete",
			EntityType: "document",
			EntityID:   strings.Join(ids, ","),
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info("documents deleted", "count", len(ids))

	return nil
}

// verifyTagOwnership checks every tag id against the profile's tag set
func (s *documentService) verifyTagOwnership(ctx context.Context, profileID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	owned, err := s.tagRepo.List(ctx, profileID)
	if err != nil {
		return err
	}

	ownedSet := make(map[string]bool, len(owned))
	for _, tag := range owned {
		ownedSet[tag.ID] = true
	}

	for _, id := range tagIDs {
		if !ownedSet[id] {
			return fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
		}
	}

	return nil
}

func (s *documentService) validateCreateRequest(req *services.CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&req.Category,
			validation.Required,
			validation.By(s.knownCategory),
		),
		validation.Field(&req.FileName, validation.Required),
		validation.Field(&req.FileURL, validation.Required),
		validation.Field(&req.FileSize, validation.Min(int64(0))),
	)
}

func (s *documentService) validateUpdateRequest(req *services.UpdateDocumentRequest) error {
	rules := []*validation.FieldRules{}

	if req.Title != nil {
		rules = append(rules, validation.Field(&req.Title, validation.Length(1, 300)))
	}
	if req.Category != nil {
		rules = append(rules, validation.Field(&req.Category, validation.By(func(value interface{}) error {
			return s.knownCategory(*req.Category)
		})))
	}

	return validation.ValidateStruct(req, rules...)
}

func (s *documentService) knownCategory(value interface{}) error {
	id, _ := value.(string)
	if id == "" {
		return nil
	}
	if !s.registry.Valid(id) {
		return fmt.Errorf("unknown category %q", id)
	}
	return nil
}
