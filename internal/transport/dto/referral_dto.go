package dto

import (
	"time"

	"referral-network-api/internal/models"

	"github.com/google/uuid"
)

// TimestampLayout renders instants as ISO-8601 UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// CreateReferralRequest is the body of POST /api/referrals. Referrer and
// consent time are assigned by the server, so the body cannot set them.
type CreateReferralRequest struct {
	JobID             uuid.UUID            `json:"job_id" validate:"required"`
	CandidateName     string               `json:"candidate_name" validate:"required,max=200"`
	CandidateEmail    string               `json:"candidate_email" validate:"required,max=320"`
	CandidatePhone    *string              `json:"candidate_phone,omitempty" validate:"omitempty,max=50"`
	CandidateLinkedIn *string              `json:"candidate_linkedin,omitempty" validate:"omitempty,url"`
	ReferrerNotes     *string              `json:"referrer_notes,omitempty" validate:"omitempty,max=5000"`
	ExpectedSalary    *int64               `json:"expected_salary,omitempty" validate:"omitempty,gte=0"`
	Availability      *models.Availability `json:"availability,omitempty" validate:"omitempty,oneof=immediate two_weeks one_month negotiable"`
	ResumeStoragePath *string              `json:"resume_storage_path,omitempty" validate:"omitempty,max=500"`
	ConsentGiven      bool                 `json:"consent_given"`
	ReferrerID        uuid.UUID            `json:"-"` // Set internally by handler
}

// ListReferralsRequest defines parameters for listing referrals.
type ListReferralsRequest struct {
	PageQuery
	JobID string `form:"job_id" validate:"omitempty,uuid"`
}

// ReferralResponse is a referral as rendered on the wire.
type ReferralResponse struct {
	ID                uuid.UUID            `json:"id"`
	JobID             uuid.UUID            `json:"job_id"`
	ReferrerID        uuid.UUID            `json:"referrer_id"`
	CandidateName     string               `json:"candidate_name"`
	CandidateEmail    string               `json:"candidate_email"`
	CandidatePhone    *string              `json:"candidate_phone,omitempty"`
	CandidateLinkedIn *string              `json:"candidate_linkedin,omitempty"`
	ResumeStoragePath *string              `json:"resume_storage_path,omitempty"`
	ReferrerNotes     *string              `json:"referrer_notes,omitempty"`
	ExpectedSalary    *int64               `json:"expected_salary,omitempty"`
	Availability      *models.Availability `json:"availability,omitempty"`
	ConsentGiven      bool                 `json:"consent_given"`
	ConsentTimestamp  string               `json:"consent_timestamp"`
	CreatedAt         string               `json:"created_at"`
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// NewReferralResponse maps a stored referral to its wire form.
func NewReferralResponse(r *models.Referral) ReferralResponse {
	return ReferralResponse{
		ID:                r.ID,
		JobID:             r.JobID,
		ReferrerID:        r.ReferrerID,
		CandidateName:     r.CandidateName,
		CandidateEmail:    r.CandidateEmail,
		CandidatePhone:    r.CandidatePhone,
		CandidateLinkedIn: r.CandidateLinkedIn,
		ResumeStoragePath: r.ResumeStoragePath,
		ReferrerNotes:     r.ReferrerNotes,
		ExpectedSalary:    r.ExpectedSalary,
		Availability:      r.Availability,
		ConsentGiven:      r.ConsentGiven,
		ConsentTimestamp:  FormatTimestamp(r.ConsentTimestamp),
		CreatedAt:         FormatTimestamp(r.CreatedAt),
	}
}

// ReferralListResponse is the paginated referral envelope.
type ReferralListResponse struct {
	Referrals []ReferralResponse `json:"referrals"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
	Total     int                `json:"total"`
}
