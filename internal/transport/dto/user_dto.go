package dto

import (
	"time"

	"referral-network-api/internal/models"
)

// CreateProfileRequest defines the structure for creating the caller's profile at signup.
type CreateProfileRequest struct {
	FullName        string      `json:"full_name" validate:"required,max=200"`
	Role            models.Role `json:"role" validate:"required,oneof=client candidate"`
	Company         *string     `json:"company,omitempty" validate:"omitempty,max=200"`
	Headline        *string     `json:"headline,omitempty" validate:"omitempty,max=300"`
	Skills          []string    `json:"skills,omitempty" validate:"omitempty,max=50,dive,max=50"`
	YearsExperience *int        `json:"years_experience,omitempty" validate:"omitempty,min=0,max=70"`
}

// UpdateProfileRequest defines the editable display fields. Role is not among them.
type UpdateProfileRequest struct {
	FullName        *string  `json:"full_name,omitempty" validate:"omitempty,min=1,max=200"`
	Company         *string  `json:"company,omitempty" validate:"omitempty,max=200"`
	Headline        *string  `json:"headline,omitempty" validate:"omitempty,max=300"`
	Skills          []string `json:"skills,omitempty" validate:"omitempty,max=50,dive,max=50"`
	YearsExperience *int     `json:"years_experience,omitempty" validate:"omitempty,min=0,max=70"`
}

// SwitchRoleRequest is the body of the dev-only role switch.
type SwitchRoleRequest struct {
	Role models.Role `json:"role" validate:"required,oneof=client founding_circle select_circle candidate"`
}

// SeedUsersResponse lists the profiles created by the dev seeder.
type SeedUsersResponse struct {
	Profiles []models.Profile `json:"profiles"`
}

// CreateUploadRequest asks for a signed resume upload URL.
type CreateUploadRequest struct {
	FileName    string `json:"file_name" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required"`
	SizeBytes   int64  `json:"size_bytes" validate:"required,gt=0"`
}

// CreateUploadResponse carries the signed URL and where the file will live.
type CreateUploadResponse struct {
	UploadURL   string    `json:"upload_url"`
	StoragePath string    `json:"storage_path"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// UploadCompleteResponse is returned once the blob is stored.
type UploadCompleteResponse struct {
	StoragePath string `json:"storage_path"`
	SizeBytes   int64  `json:"size_bytes"`
}
