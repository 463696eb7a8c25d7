package models

import "time"

// DefaultStorageLimit is the storage quota assigned at onboarding (500 MB).
const DefaultStorageLimit int64 = 500 * 1024 * 1024

// Profile represents one student's account-level record. It owns every
// other entity by foreign reference and carries the advisory storage
// quota counters.
type Profile struct {
	ID         string  `json:"id" db:"id"`
	UserID     string  `json:"userId" db:"user_id"`
	Name       string  `json:"name" db:"name"`
	Email      string  `json:"email" db:"email"`
	Phone      *string `json:"phone,omitempty" db:"phone"`
	College    *string `json:"college,omitempty" db:"college"`
	University *string `json:"university,omitempty" db:"university"`
	Department *string `json:"department,omitempty" db:"department"`
	Semester   *string `json:"semester,omitempty" db:"semester"`
	RollNumber *string `json:"rollNumber,omitempty" db:"roll_number"`
	Language   string  `json:"language" db:"language"`
	Theme      string  `json:"theme" db:"theme"`

	// StorageUsed is advisory: incremented on upload, never decremented
	// on soft delete (pending product decision).
	StorageUsed  int64 `json:"storageUsed" db:"storage_used"`
	StorageLimit int64 `json:"storageLimit" db:"storage_limit"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
