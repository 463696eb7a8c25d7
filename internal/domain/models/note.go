package models

import "time"

// Note is a free-form text note, optionally linked to one document.
type Note struct {
	ID         string  `json:"id" db:"id"`
	ProfileID  string  `json:"-" db:"profile_id"`
	Title      string  `json:"title" db:"title"`
	Content    string  `json:"content" db:"content"`
	IsPinned   bool    `json:"isPinned" db:"is_pinned"`
	DocumentID *string `json:"documentId,omitempty" db:"document_id"`
	// Document carries the linked document's id and title for display,
	// populated on reads when DocumentID is set.
	Document  *NoteDocumentRef `json:"document,omitempty"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`
}

// NoteDocumentRef is the slim document projection embedded in notes.
type NoteDocumentRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NoteFilter narrows note listings.
type NoteFilter struct {
	DocumentID string
	PinnedOnly bool
	Search     string
}
