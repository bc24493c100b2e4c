package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// scanText normalizes the driver value of a text column.
func scanText(value interface{}, typeName string) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("failed to scan %s: value is not string or []byte", typeName)
	}
}

// --- Role Enum ---
type Role string

const (
	RoleClient         Role = "client"
	RoleFoundingCircle Role = "founding_circle"
	RoleSelectCircle   Role = "select_circle"
	RoleCandidate      Role = "candidate"
)

// AllRoles lists every role in display order.
var AllRoles = []Role{RoleClient, RoleFoundingCircle, RoleSelectCircle, RoleCandidate}

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleFoundingCircle, RoleSelectCircle, RoleCandidate:
		return true
	}
	return false
}

// IsNetworkMember reports whether the role belongs to one of the referral circles.
func (r Role) IsNetworkMember() bool {
	return r == RoleFoundingCircle || r == RoleSelectCircle
}

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	s, err := scanText(value, "Role")
	if err != nil {
		return err
	}
	v := Role(s)
	if !v.Valid() {
		return fmt.Errorf("invalid Role value: %s", s)
	}
	*r = v
	return nil
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// --- Job Enums ---
type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusActive JobStatus = "active"
	JobStatusPaused JobStatus = "paused"
	JobStatusFilled JobStatus = "filled"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusDraft, JobStatusActive, JobStatusPaused, JobStatusFilled:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface for JobStatus
func (s *JobStatus) Scan(value interface{}) error {
	str, err := scanText(value, "JobStatus")
	if err != nil {
		return err
	}
	v := JobStatus(str)
	if !v.Valid() {
		return fmt.Errorf("invalid JobStatus value: %s", str)
	}
	*s = v
	return nil
}

// Value implements the driver.Valuer interface for JobStatus
func (s JobStatus) Value() (driver.Value, error) {
	return string(s), nil
}

type LocationType string

const (
	LocationRemote LocationType = "remote"
	LocationHybrid LocationType = "hybrid"
	LocationOnsite LocationType = "onsite"
)

func (l LocationType) Valid() bool {
	return l == LocationRemote || l == LocationHybrid || l == LocationOnsite
}

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceLead      ExperienceLevel = "lead"
	ExperienceExecutive ExperienceLevel = "executive"
)

func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceLead, ExperienceExecutive:
		return true
	}
	return false
}

type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

func (j JobType) Valid() bool {
	switch j {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

type SubscriptionTier string

const (
	TierConnect   SubscriptionTier = "connect"
	TierPriority  SubscriptionTier = "priority"
	TierExclusive SubscriptionTier = "exclusive"
)

func (t SubscriptionTier) Valid() bool {
	return t == TierConnect || t == TierPriority || t == TierExclusive
}

// Requirement is a single line of a job's requirement list.
type Requirement struct {
	Text     string `json:"text"`
	Required bool   `json:"required"`
}

// --- Referral Enums ---
type Availability string

const (
	AvailabilityImmediate  Availability = "immediate"
	AvailabilityTwoWeeks   Availability = "two_weeks"
	AvailabilityOneMonth   Availability = "one_month"
	AvailabilityNegotiable Availability = "negotiable"
)

type SuggestionStatus string

const (
	SuggestionSuggested SuggestionStatus = "suggested"
	SuggestionContacted SuggestionStatus = "contacted"
	SuggestionDismissed SuggestionStatus = "dismissed"
	SuggestionReferred  SuggestionStatus = "referred"
)

// Scan implements the sql.Scanner interface for SuggestionStatus
func (s *SuggestionStatus) Scan(value interface{}) error {
	str, err := scanText(value, "SuggestionStatus")
	if err != nil {
		return err
	}
	switch v := SuggestionStatus(str); v {
	case SuggestionSuggested, SuggestionContacted, SuggestionDismissed, SuggestionReferred:
		*s = v
		return nil
	default:
		return fmt.Errorf("invalid SuggestionStatus value: %s", str)
	}
}

// Value implements the driver.Valuer interface for SuggestionStatus
func (s SuggestionStatus) Value() (driver.Value, error) {
	return string(s), nil
}

type UploadStatus string

const (
	UploadPending  UploadStatus = "pending"
	UploadComplete UploadStatus = "uploaded"
)

// Profile is the application-side record of an identity-provider user.
type Profile struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Email           string     `json:"email" db:"email"`
	Role            Role       `json:"role" db:"role"`
	FullName        string     `json:"full_name" db:"full_name"`
	Company         *string    `json:"company,omitempty" db:"company"`
	Headline        *string    `json:"headline,omitempty" db:"headline"`
	Skills          []string   `json:"skills" db:"skills"`
	YearsExperience *int       `json:"years_experience,omitempty" db:"years_experience"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt       *time.Time `json:"-" db:"deleted_at"`
}

// Job is a position posted by a client.
type Job struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	ClientID         uuid.UUID        `json:"client_id" db:"client_id"`
	Title            string           `json:"title" db:"title"`
	Description      string           `json:"description" db:"description"`
	Requirements     []Requirement    `json:"requirements" db:"requirements"`
	Skills           []string         `json:"skills" db:"skills"`
	SalaryMin        *int64           `json:"salary_min,omitempty" db:"salary_min"`
	SalaryMax        *int64           `json:"salary_max,omitempty" db:"salary_max"`
	LocationType     LocationType     `json:"location_type" db:"location_type"`
	LocationCity     *string          `json:"location_city,omitempty" db:"location_city"`
	ExperienceLevel  ExperienceLevel  `json:"experience_level" db:"experience_level"`
	JobType          JobType          `json:"job_type" db:"job_type"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier" db:"subscription_tier"`
	Status           JobStatus        `json:"status" db:"status"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

// FieldChange records one field's value before and after a patch.
type FieldChange struct {
	From interface{} `json:"from"`
	To   interface{} `json:"to"`
}

// JobChange is an append-only log entry written for every job patch.
type JobChange struct {
	ID        uuid.UUID              `json:"id" db:"id"`
	JobID     uuid.UUID              `json:"job_id" db:"job_id"`
	ChangedBy uuid.UUID              `json:"changed_by" db:"changed_by"`
	Changes   map[string]FieldChange `json:"changes" db:"changes"`
	CreatedAt time.Time              `json:"created_at" db:"created_at"`
}

// Referral is a candidate submitted by a network member for a job.
type Referral struct {
	ID                uuid.UUID     `json:"id" db:"id"`
	JobID             uuid.UUID     `json:"job_id" db:"job_id"`
	ReferrerID        uuid.UUID     `json:"referrer_id" db:"referrer_id"`
	CandidateName     string        `json:"candidate_name" db:"candidate_name"`
	CandidateEmail    string        `json:"candidate_email" db:"candidate_email"`
	CandidatePhone    *string       `json:"candidate_phone,omitempty" db:"candidate_phone"`
	CandidateLinkedIn *string       `json:"candidate_linkedin,omitempty" db:"candidate_linkedin"`
	ResumeStoragePath *string       `json:"resume_storage_path,omitempty" db:"resume_storage_path"`
	ReferrerNotes     *string       `json:"referrer_notes,omitempty" db:"referrer_notes"`
	ExpectedSalary    *int64        `json:"expected_salary,omitempty" db:"expected_salary"`
	Availability      *Availability `json:"availability,omitempty" db:"availability"`
	ConsentGiven      bool          `json:"consent_given" db:"consent_given"`
	ConsentTimestamp  time.Time     `json:"consent_timestamp" db:"consent_timestamp"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
}

// MatchAnalysis is an immutable scoring of one resume against one job.
type MatchAnalysis struct {
	ID                uuid.UUID `json:"id" db:"id"`
	JobID             uuid.UUID `json:"job_id" db:"job_id"`
	CandidateEmail    *string   `json:"candidate_email,omitempty" db:"candidate_email"`
	OverallScore      int       `json:"overall_score" db:"overall_score"`
	SkillsMatch       int       `json:"skills_match" db:"skills_match"`
	ExperienceMatch   int       `json:"experience_match" db:"experience_match"`
	EducationMatch    int       `json:"education_match" db:"education_match"`
	KeyStrengths      []string  `json:"key_strengths" db:"key_strengths"`
	PotentialConcerns []string  `json:"potential_concerns" db:"potential_concerns"`
	Reasoning         string    `json:"reasoning" db:"reasoning"`
	AnalyzedBy        uuid.UUID `json:"analyzed_by" db:"analyzed_by"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// CandidateSuggestion is one stored entry of a model-ranked candidate list.
type CandidateSuggestion struct {
	ID                uuid.UUID        `json:"id" db:"id"`
	JobID             uuid.UUID        `json:"job_id" db:"job_id"`
	CandidateID       uuid.UUID        `json:"candidate_id" db:"candidate_id"`
	MatchScore        int              `json:"match_score" db:"match_score"`
	Reasoning         string           `json:"reasoning" db:"reasoning"`
	KeyMatchPoints    []string         `json:"key_match_points" db:"key_match_points"`
	SuggestedApproach string           `json:"suggested_approach" db:"suggested_approach"`
	Rank              int              `json:"rank" db:"rank"`
	Status            SuggestionStatus `json:"status" db:"status"`
	SuggestedBy       uuid.UUID        `json:"suggested_by" db:"suggested_by"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
}

// SuggestionWithCandidate joins a stored suggestion with the candidate's profile fields.
type SuggestionWithCandidate struct {
	CandidateSuggestion
	CandidateName     string   `json:"candidate_name" db:"candidate_name"`
	CandidateEmail    string   `json:"candidate_email" db:"candidate_email"`
	CandidateHeadline *string  `json:"candidate_headline,omitempty" db:"candidate_headline"`
	CandidateSkills   []string `json:"candidate_skills" db:"candidate_skills"`
}

// ResumeUpload tracks a signed resume upload from request to completion.
type ResumeUpload struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	OwnerID     uuid.UUID    `json:"owner_id" db:"owner_id"`
	StoragePath string       `json:"storage_path" db:"storage_path"`
	FileName    string       `json:"file_name" db:"file_name"`
	ContentType string       `json:"content_type" db:"content_type"`
	SizeBytes   int64        `json:"size_bytes" db:"size_bytes"`
	Status      UploadStatus `json:"status" db:"status"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UploadedAt  *time.Time   `json:"uploaded_at,omitempty" db:"uploaded_at"`
}

// NormalizeEmail lowercases and trims an email address for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
