// Package jobform holds the job posting rules shared by the create and patch
// paths. Every function is pure so the same checks can run per keystroke on a
// single field or over the whole form before publishing.
package jobform

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"referral-network-api/internal/models"
)

const (
	TitleMinLen       = 5
	TitleMaxLen       = 100
	DescriptionMinLen = 50
	DescriptionMaxLen = 5000
	RequirementMaxLen = 500
	MaxSkills         = 20
	SkillMaxLen       = 50
	MaxSalary         = 10_000_000
)

// Field keys used in Result.Errors and accepted by ValidateField.
const (
	FieldTitle            = "title"
	FieldDescription      = "description"
	FieldRequirements     = "requirements"
	FieldSkills           = "skills"
	FieldSalary           = "salary"
	FieldSalaryMin        = "salary_min"
	FieldSalaryMax        = "salary_max"
	FieldLocationType     = "location_type"
	FieldLocationCity     = "location_city"
	FieldExperienceLevel  = "experience_level"
	FieldJobType          = "job_type"
	FieldSubscriptionTier = "subscription_tier"
)

// JobForm is the editable content of a job posting.
type JobForm struct {
	Title            string
	Description      string
	Requirements     []models.Requirement
	Skills           []string
	SalaryMin        *int64
	SalaryMax        *int64
	LocationType     models.LocationType
	LocationCity     string
	ExperienceLevel  models.ExperienceLevel
	JobType          models.JobType
	SubscriptionTier models.SubscriptionTier
}

// Result is the outcome of validating a whole form.
type Result struct {
	IsValid bool
	Errors  map[string]string
}

type rule func(JobForm) string

var rules = []struct {
	key   string
	check rule
}{
	{FieldTitle, checkTitle},
	{FieldDescription, checkDescription},
	{FieldRequirements, checkRequirements},
	{FieldSkills, checkSkills},
	{FieldSalary, checkSalary},
	{FieldLocationType, checkLocationType},
	{FieldLocationCity, checkLocationCity},
	{FieldExperienceLevel, checkExperienceLevel},
	{FieldJobType, checkJobType},
	{FieldSubscriptionTier, checkSubscriptionTier},
}

// ValidateJobForm runs every rule and collects one message per failing field.
func ValidateJobForm(data JobForm) Result {
	errs := make(map[string]string)
	for _, r := range rules {
		if msg := r.check(data); msg != "" {
			errs[r.key] = msg
		}
	}
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateField checks a single field as if value had been entered into data.
// Cross-field rules (salary range, city vs. remote) see the rest of data.
// The empty string means the field is valid.
func ValidateField(field string, value interface{}, data JobForm) string {
	if err := setField(&data, field, value); err != nil {
		return err.Error()
	}
	key := field
	if field == FieldSalaryMin || field == FieldSalaryMax {
		key = FieldSalary
	}
	for _, r := range rules {
		if r.key == key {
			msg := r.check(data)
			if msg == "" && field == FieldLocationType {
				// Switching away from remote can invalidate the city.
				msg = checkLocationCity(data)
			}
			return msg
		}
	}
	return fmt.Sprintf("unknown field %q", field)
}

// CanSaveAsDraft requires only a non-blank title and description.
func CanSaveAsDraft(data JobForm) bool {
	return strings.TrimSpace(data.Title) != "" && strings.TrimSpace(data.Description) != ""
}

// CanPublish requires the full rule set to pass.
func CanPublish(data JobForm) bool {
	return ValidateJobForm(data).IsValid
}

// DedupeSkills trims skills and drops blanks and case-insensitive repeats,
// keeping the first spelling seen.
func DedupeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}

func checkTitle(d JobForm) string {
	title := strings.TrimSpace(d.Title)
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		return "Title is required"
	case n < TitleMinLen:
		return fmt.Sprintf("Title must be at least %d characters", TitleMinLen)
	case n > TitleMaxLen:
		return fmt.Sprintf("Title must be at most %d characters", TitleMaxLen)
	}
	return ""
}

func checkDescription(d JobForm) string {
	desc := strings.TrimSpace(d.Description)
	switch n := utf8.RuneCountInString(desc); {
	case n == 0:
		return "Description is required"
	case n < DescriptionMinLen:
		return fmt.Sprintf("Description must be at least %d characters", DescriptionMinLen)
	case n > DescriptionMaxLen:
		return fmt.Sprintf("Description must be at most %d characters", DescriptionMaxLen)
	}
	return ""
}

func checkRequirements(d JobForm) string {
	if len(d.Requirements) == 0 {
		return "At least one requirement is required"
	}
	for i, r := range d.Requirements {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			return fmt.Sprintf("Requirement %d cannot be empty", i+1)
		}
		if utf8.RuneCountInString(text) > RequirementMaxLen {
			return fmt.Sprintf("Requirement %d must be at most %d characters", i+1, RequirementMaxLen)
		}
	}
	return ""
}

func checkSkills(d JobForm) string {
	if len(d.Skills) == 0 {
		return "At least one skill is required"
	}
	if len(d.Skills) > MaxSkills {
		return fmt.Sprintf("At most %d skills are allowed", MaxSkills)
	}
	seen := make(map[string]bool, len(d.Skills))
	for _, s := range d.Skills {
		s = strings.TrimSpace(s)
		if s == "" {
			return "Skills cannot be empty"
		}
		if utf8.RuneCountInString(s) > SkillMaxLen {
			return fmt.Sprintf("Skill %q must be at most %d characters", s, SkillMaxLen)
		}
		k := strings.ToLower(s)
		if seen[k] {
			return fmt.Sprintf("Duplicate skill: %s", s)
		}
		seen[k] = true
	}
	return ""
}

func checkSalary(d JobForm) string {
	for _, v := range []*int64{d.SalaryMin, d.SalaryMax} {
		if v == nil {
			continue
		}
		if *v < 0 {
			return "Salary cannot be negative"
		}
		if *v >= MaxSalary {
			return "Salary must be less than 10,000,000"
		}
	}
	if d.SalaryMin != nil && d.SalaryMax != nil && *d.SalaryMin > *d.SalaryMax {
		return "Minimum salary cannot exceed maximum salary"
	}
	return ""
}

func checkLocationType(d JobForm) string {
	if !d.LocationType.Valid() {
		return "Location type must be remote, hybrid or onsite"
	}
	return ""
}

func checkLocationCity(d JobForm) string {
	if d.LocationType != models.LocationRemote && strings.TrimSpace(d.LocationCity) == "" {
		return "City is required for hybrid and onsite roles"
	}
	return ""
}

func checkExperienceLevel(d JobForm) string {
	if !d.ExperienceLevel.Valid() {
		return "Experience level is required"
	}
	return ""
}

func checkJobType(d JobForm) string {
	if !d.JobType.Valid() {
		return "Job type is required"
	}
	return ""
}

func checkSubscriptionTier(d JobForm) string {
	if d.SubscriptionTier != "" && !d.SubscriptionTier.Valid() {
		return "Subscription tier must be connect, priority or exclusive"
	}
	return ""
}
