package referralform_test

import (
	"testing"

	"referral-network-api/config"
	"referral-network-api/internal/referralform"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	errs := referralform.Validate(referralform.Form{
		CandidateName:  "Ada Lovelace",
		CandidateEmail: "ada@example.com",
		ConsentGiven:   true,
	})
	assert.Empty(t, errs)

	errs = referralform.Validate(referralform.Form{CandidateEmail: "not-an-email"})
	assert.Equal(t, "Candidate name is required", errs["candidate_name"])
	assert.Equal(t, "Candidate email is invalid", errs["candidate_email"])
	assert.Equal(t, "Consent is required", errs["consent_given"])
}

func TestValidateResume(t *testing.T) {
	max := config.DefaultMaxResumeBytes

	tests := []struct {
		name    string
		file    referralform.ResumeFile
		wantErr string
	}{
		{"pdf ok", referralform.ResumeFile{Name: "cv.pdf", ContentType: "application/pdf", Size: 1024}, ""},
		{"docx without declared type", referralform.ResumeFile{Name: "CV.DOCX", Size: 2048}, ""},
		{"png rejected", referralform.ResumeFile{Name: "cv.png", ContentType: "image/png", Size: 10}, "PDF, DOC or DOCX"},
		{"type mismatch", referralform.ResumeFile{Name: "cv.pdf", ContentType: "application/msword", Size: 10}, "does not match"},
		{"too large", referralform.ResumeFile{Name: "cv.doc", Size: max + 1}, "limit"},
		{"exactly at limit", referralform.ResumeFile{Name: "cv.doc", Size: max}, ""},
		{"empty", referralform.ResumeFile{Name: "cv.pdf"}, "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := referralform.ValidateResume(tt.file, max)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
