package services

import (
	"context"
	"time"

	"docvault/internal/domain/models"
)

// ShareService handles document sharing
type ShareService interface {
	// GetShareInfo returns the document's share URL and QR code along
	// with any constrained links, and counts a share event.
	GetShareInfo(ctx context.Context, documentID, userID string) (*ShareInfo, error)

	// CreateLink resolves a share link for a document: the intrinsic
	// token by default, or a freshly minted constrained link when the
	// request asks for one.
	CreateLink(ctx context.Context, documentID, userID string, req *CreateLinkRequest) (*CreatedLink, error)

	// RevokeLink deletes a share link; only the document owner may revoke.
	RevokeLink(ctx context.Context, linkID, userID string) error
}

// ShareInfo is the share surface for one document
type ShareInfo struct {
	DocumentID  string              `json:"documentId"`
	ShareURL    string              `json:"shareUrl"`
	QRCode      string              `json:"qrCode"` // PNG data URL
	SharedLinks []models.SharedLink `json:"sharedLinks"`
}

// CreateLinkRequest represents a share link request. Without
// CreateNewLink the document's intrinsic token is reused and the
// constraint fields are ignored.
type CreateLinkRequest struct {
	CreateNewLink bool       `json:"createNewLink,omitempty"`
	Email         *string    `json:"email,omitempty"`
	Password      *string    `json:"password,omitempty"`
	MaxDownloads  *int       `json:"maxDownloads,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// CreatedLink is the response to a link request. SharedLink is nil
// when the intrinsic token was reused.
type CreatedLink struct {
	ShareURL   string             `json:"shareUrl"`
	Token      string             `json:"token"`
	SharedLink *models.SharedLink `json:"sharedLink,omitempty"`
}
