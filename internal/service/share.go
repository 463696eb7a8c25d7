package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"

	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

// qrSize is the pixel edge of generated share QR codes.
const qrSize = 256

type shareService struct {
	profiles      services.ProfileService
	docRepo       repositories.DocumentRepository
	linkRepo      repositories.SharedLinkRepository
	auditRepo     repositories.AuditLogRepository
	analyticsRepo repositories.AnalyticsRepository
	baseURL       string
	logger        *slog.Logger
}

// NewShareService creates a new share service. baseURL is the public
// origin that share URLs are built on.
func NewShareService(
	profiles services.ProfileService,
	docRepo repositories.DocumentRepository,
	linkRepo repositories.SharedLinkRepository,
	auditRepo repositories.AuditLogRepository,
	analyticsRepo repositories.AnalyticsRepository,
	baseURL string,
	logger *slog.Logger,
) services.ShareService {
	return &shareService{
		profiles:      profiles,
		docRepo:       docRepo,
		linkRepo:      linkRepo,
		auditRepo:     auditRepo,
		analyticsRepo: analyticsRepo,
		baseURL:       baseURL,
		logger:        logger,
	}
}

// GetShareInfo returns the document's share URL, a QR code for it and
// any constrained links minted so far.
func (s *shareService) GetShareInfo(ctx context.Context, documentID, userID string) (*services.ShareInfo, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc, err := s.docRepo.GetByID(ctx, documentID, profile.ID)
	if err != nil {
		return nil, err
	}

	shareURL := s.shareURL(doc.ShareToken)

	png, err := qrcode.Encode(shareURL, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}

	links, err := s.linkRepo.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	if err := s.analyticsRepo.Increment(ctx, profile.ID, time.Now(), models.EventDocumentShared); err != nil {
		s.logger.Warn("failed to record share event", "document_id", documentID, "error", err)
	}

	return &services.ShareInfo{
		DocumentID:  doc.ID,
		ShareURL:    shareURL,
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		SharedLinks: links,
	}, nil
}

// CreateLink resolves the share token for a document. By default the
// document's intrinsic token is reused and nothing is persisted; with
// CreateNewLink a fresh token and a SharedLink row carrying the
// requested constraints are minted.
func (s *shareService) CreateLink(ctx context.Context, documentID, userID string, req *services.CreateLinkRequest) (*services.CreatedLink, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc, err := s.docRepo.GetByID(ctx, documentID, profile.ID)
	if err != nil {
		return nil, err
	}

	if !req.CreateNewLink {
		return &services.CreatedLink{
			ShareURL: s.shareURL(doc.ShareToken),
			Token:    doc.ShareToken,
		}, nil
	}

	link := &models.SharedLink{
		Token:        uuid.NewString(),
		DocumentID:   doc.ID,
		Email:        req.Email,
		MaxDownloads: req.MaxDownloads,
		ExpiresAt:    req.ExpiresAt,
	}

	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash link password: %w", err)
		}
		hashStr := string(hash)
		link.PasswordHash = &hashStr
	}

	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, err
	}

	if err := s.auditRepo.Append(ctx, &models.AuditLog{
		UserID:     userID,
		Action:     "share",
		EntityType: "document",
		EntityID:   doc.ID,
	}); err != nil {
		s.logger.Warn("failed to append audit entry", "document_id", doc.ID, "error", err)
	}

	s.logger.Info("share link created",
		"document_id", doc.ID,
		"link_id", link.ID,
		"has_password", link.HasPassword(),
	)

	return &services.CreatedLink{
		ShareURL:   s.shareURL(link.Token),
		Token:      link.Token,
		SharedLink: link,
	}, nil
}

// RevokeLink deletes a share link; scoping through the owning document
// makes revocation by anyone else a not-found.
func (s *shareService) RevokeLink(ctx context.Context, linkID, userID string) error {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.linkRepo.Delete(ctx, linkID, profile.ID); err != nil {
		return err
	}

	s.logger.Info("share link revoked", "link_id", linkID)

	return nil
}

func (s *shareService) shareURL(token string) string {
	return fmt.Sprintf("%s/share/%s", s.baseURL, token)
}
