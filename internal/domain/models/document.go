package models

import "time"

// Document is the metadata record for one uploaded file. File bytes live
// behind FileURL in external storage; this service never touches them.
type Document struct {
	ID            string     `json:"id" db:"id"`
	ProfileID     string     `json:"-" db:"profile_id"`
	Title         string     `json:"title" db:"title"`
	Category      string     `json:"category" db:"category"`
	SubCategory   *string    `json:"subCategory,omitempty" db:"sub_category"`
	Description   *string    `json:"description,omitempty" db:"description"`
	FileURL       string     `json:"fileUrl" db:"file_url"`
	FileName      string     `json:"fileName" db:"file_name"`
	FileSize      int64      `json:"fileSize" db:"file_size"`
	FileType      string     `json:"fileType" db:"file_type"`
	MimeType      string     `json:"mimeType" db:"mime_type"`
	FolderID      *string    `json:"folderId,omitempty" db:"folder_id"`
	IsFavorite    bool       `json:"isFavorite" db:"is_favorite"`
	ExtractedText *string    `json:"extractedText,omitempty" db:"extracted_text"`
	// ShareToken is the document's intrinsic share token, minted at
	// upload time. One per document; additional constrained links get
	// their own tokens in SharedLink rows.
	ShareToken string     `json:"shareToken" db:"share_token"`
	Tags       []Tag      `json:"tags"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}

// DocumentFilter narrows document listings. Zero values mean "no filter".
type DocumentFilter struct {
	Category string
	Search   string
	TagIDs   []string
	Favorite bool
	Page     int
	Limit    int
}

// Pagination is the envelope returned alongside paginated listings.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
