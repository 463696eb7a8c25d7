package models

import "time"

// SharedLink is a constrained access token for one document. The
// constraints (email, password hash, download cap, expiry) are stored
// here; their enforcement lives on the public retrieval path, outside
// this service.
type SharedLink struct {
	ID           string     `json:"id" db:"id"`
	Token        string     `json:"token" db:"token"`
	DocumentID   string     `json:"documentId" db:"document_id"`
	Email        *string    `json:"email,omitempty" db:"email"`
	PasswordHash *string    `json:"-" db:"password_hash"`
	MaxDownloads *int       `json:"maxDownloads,omitempty" db:"max_downloads"`
	Downloads    int        `json:"downloads" db:"downloads"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

// HasPassword reports whether the link is password protected without
// exposing the hash.
func (l *SharedLink) HasPassword() bool {
	return l.PasswordHash != nil && *l.PasswordHash != ""
}
