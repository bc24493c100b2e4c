package ai

import (
	"fmt"
	"strings"

	"referral-network-api/internal/models"
)

// Call parameters for the two model operations.
const (
	MatchTemperature      = 0.3
	MatchMaxTokens        = 1500
	SuggestionTemperature = 0.3
	SuggestionMaxTokens   = 3000
)

// SystemJSONOnly instructs the model to answer with a bare JSON document.
const SystemJSONOnly = "You are an expert technical recruiter. Respond with valid JSON only. " +
	"Do not wrap the output in markdown code blocks and do not add commentary."

const matchPromptTemplate = `Evaluate how well the candidate fits the job.

### JOB
Title: %s
Description:
%s
Requirements:
%s
Skills: %s

### CANDIDATE RESUME
%s

### OUTPUT SCHEMA
{
  "overall_score": integer 0-100,
  "skills_match": integer 0-100,
  "experience_match": integer 0-100,
  "education_match": integer 0-100,
  "key_strengths": ["short phrases"],
  "potential_concerns": ["short phrases"],
  "reasoning": "two or three sentences"
}`

const suggestionPromptTemplate = `Rank the candidates from our network that best fit the job.
Return at most %d entries, best first, using only candidate ids listed below.

### JOB
Title: %s
Description:
%s
Requirements:
%s
Skills: %s

### CANDIDATES
%s

### OUTPUT SCHEMA
[
  {
    "candidate_id": "uuid from the list",
    "match_score": integer 0-100,
    "reasoning": "why this person fits",
    "key_match_points": ["short phrases"],
    "suggested_approach": "how to open the conversation"
  }
]`

// BuildMatchPrompt embeds the job and resume into the scoring prompt.
func BuildMatchPrompt(job *models.Job, resume string) string {
	return fmt.Sprintf(matchPromptTemplate,
		job.Title,
		job.Description,
		formatRequirements(job.Requirements),
		strings.Join(job.Skills, ", "),
		strings.TrimSpace(resume),
	)
}

// BuildSuggestionPrompt embeds the job and the candidate pool into the ranking prompt.
func BuildSuggestionPrompt(job *models.Job, pool []models.Profile, max int) string {
	var b strings.Builder
	for _, p := range pool {
		fmt.Fprintf(&b, "- id: %s | name: %s | role: %s", p.ID, p.FullName, p.Role)
		if p.Headline != nil && *p.Headline != "" {
			fmt.Fprintf(&b, " | headline: %s", *p.Headline)
		}
		if p.YearsExperience != nil {
			fmt.Fprintf(&b, " | years: %d", *p.YearsExperience)
		}
		if len(p.Skills) > 0 {
			fmt.Fprintf(&b, " | skills: %s", strings.Join(p.Skills, ", "))
		}
		b.WriteByte('\n')
	}
	return fmt.Sprintf(suggestionPromptTemplate,
		max,
		job.Title,
		job.Description,
		formatRequirements(job.Requirements),
		strings.Join(job.Skills, ", "),
		b.String(),
	)
}

func formatRequirements(reqs []models.Requirement) string {
	if len(reqs) == 0 {
		return "(none listed)"
	}
	lines := make([]string, 0, len(reqs))
	for _, r := range reqs {
		tag := "nice to have"
		if r.Required {
			tag = "required"
		}
		lines = append(lines, fmt.Sprintf("- %s (%s)", r.Text, tag))
	}
	return strings.Join(lines, "\n")
}
