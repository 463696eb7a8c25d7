package models

import "time"

// Folder is one node of the per-profile folder tree. ParentID nil means
// root level; IsRoot is kept in sync with ParentID on every write.
type Folder struct {
	ID          string    `json:"id" db:"id"`
	ProfileID   string    `json:"-" db:"profile_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Color       string    `json:"color" db:"color"`
	Icon        *string   `json:"icon,omitempty" db:"icon"`
	ParentID    *string   `json:"parentId,omitempty" db:"parent_id"`
	IsRoot      bool      `json:"isRoot" db:"is_root"`
	// DocumentCount is computed at query time, not stored.
	DocumentCount int       `json:"documentCount"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// Tag labels documents; many-to-many through document_tags.
type Tag struct {
	ID        string    `json:"id" db:"id"`
	ProfileID string    `json:"-" db:"profile_id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
