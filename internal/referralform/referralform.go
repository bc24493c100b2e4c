// Package referralform holds the referral submission rules that both the API
// and the resume upload endpoint apply.
package referralform

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// allowedResumeTypes maps accepted extensions to their MIME types.
var allowedResumeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Form is the user-entered part of a referral.
type Form struct {
	CandidateName  string
	CandidateEmail string
	ConsentGiven   bool
}

// ResumeFile describes a resume before upload.
type ResumeFile struct {
	Name        string
	ContentType string
	Size        int64
}

// Validate returns one message per failing field; an empty map means valid.
func Validate(f Form) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.CandidateName) == "" {
		errs["candidate_name"] = "Candidate name is required"
	}
	email := strings.TrimSpace(f.CandidateEmail)
	if email == "" {
		errs["candidate_email"] = "Candidate email is required"
	} else if !IsEmail(email) {
		errs["candidate_email"] = "Candidate email is invalid"
	}
	if !f.ConsentGiven {
		errs["consent_given"] = "Consent is required"
	}
	return errs
}

// IsEmail applies the loose address check used across the forms.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateResume checks type and size against maxBytes.
func ValidateResume(f ResumeFile, maxBytes int64) error {
	ext := strings.ToLower(filepath.Ext(f.Name))
	mime, ok := allowedResumeTypes[ext]
	if !ok {
		return fmt.Errorf("resume must be a PDF, DOC or DOCX file")
	}
	if ct := strings.ToLower(strings.TrimSpace(f.ContentType)); ct != "" && ct != mime {
		return fmt.Errorf("content type %q does not match %s", f.ContentType, ext)
	}
	if f.Size <= 0 {
		return fmt.Errorf("resume is empty")
	}
	if f.Size > maxBytes {
		return fmt.Errorf("resume exceeds the %d MB limit", maxBytes/(1024*1024))
	}
	return nil
}

// ContentTypeFor returns the canonical MIME type for an accepted file name.
func ContentTypeFor(name string) (string, bool) {
	mime, ok := allowedResumeTypes[strings.ToLower(filepath.Ext(name))]
	return mime, ok
}
