package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrMalformedOutput is returned when a model reply does not satisfy the expected schema.
var ErrMalformedOutput = errors.New("malformed model output")

var schema = validator.New()

// MatchResult is the validated scoring of a resume against a job.
type MatchResult struct {
	OverallScore      int      `json:"overall_score"`
	SkillsMatch       int      `json:"skills_match"`
	ExperienceMatch   int      `json:"experience_match"`
	EducationMatch    int      `json:"education_match"`
	KeyStrengths      []string `json:"key_strengths"`
	PotentialConcerns []string `json:"potential_concerns"`
	Reasoning         string   `json:"reasoning"`
}

type rawMatch struct {
	OverallScore      *float64 `json:"overall_score" validate:"required,min=0,max=100"`
	SkillsMatch       *float64 `json:"skills_match" validate:"required,min=0,max=100"`
	ExperienceMatch   *float64 `json:"experience_match" validate:"required,min=0,max=100"`
	EducationMatch    *float64 `json:"education_match" validate:"required,min=0,max=100"`
	KeyStrengths      []string `json:"key_strengths"`
	PotentialConcerns []string `json:"potential_concerns"`
	Reasoning         string   `json:"reasoning" validate:"required"`
}

// Suggestion is one validated entry of a ranked candidate list.
// CandidateID is uuid.Nil when the model returned something that is not a uuid.
type Suggestion struct {
	CandidateID       uuid.UUID `json:"candidate_id"`
	MatchScore        int       `json:"match_score"`
	Reasoning         string    `json:"reasoning"`
	KeyMatchPoints    []string  `json:"key_match_points"`
	SuggestedApproach string    `json:"suggested_approach"`
}

type rawSuggestion struct {
	CandidateID       string   `json:"candidate_id" validate:"required"`
	MatchScore        *float64 `json:"match_score" validate:"required,min=0,max=100"`
	Reasoning         string   `json:"reasoning" validate:"required"`
	KeyMatchPoints    []string `json:"key_match_points"`
	SuggestedApproach string   `json:"suggested_approach"`
}

// ParseMatchResult extracts and validates a match scoring from a model reply.
func ParseMatchResult(text string) (*MatchResult, error) {
	body, ok := extractJSON(text, '{', '}')
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedOutput)
	}
	var raw rawMatch
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if err := schema.Struct(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	scores := make([]int, 4)
	for i, f := range []*float64{raw.OverallScore, raw.SkillsMatch, raw.ExperienceMatch, raw.EducationMatch} {
		n, err := wholeScore(*f)
		if err != nil {
			return nil, err
		}
		scores[i] = n
	}

	return &MatchResult{
		OverallScore:      scores[0],
		SkillsMatch:       scores[1],
		ExperienceMatch:   scores[2],
		EducationMatch:    scores[3],
		KeyStrengths:      nonNil(raw.KeyStrengths),
		PotentialConcerns: nonNil(raw.PotentialConcerns),
		Reasoning:         strings.TrimSpace(raw.Reasoning),
	}, nil
}

// ParseSuggestions extracts and validates a ranked candidate list. A bare
// array and an object with a "suggestions" array are both accepted.
func ParseSuggestions(text string) ([]Suggestion, error) {
	var raws []rawSuggestion

	if body, ok := extractJSON(text, '[', ']'); ok && startsBefore(text, '[', '{') {
		if err := json.Unmarshal([]byte(body), &raws); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
		}
	} else if body, ok := extractJSON(text, '{', '}'); ok {
		var wrapped struct {
			Suggestions *[]rawSuggestion `json:"suggestions"`
		}
		if err := json.Unmarshal([]byte(body), &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
		}
		if wrapped.Suggestions == nil {
			return nil, fmt.Errorf("%w: missing suggestions array", ErrMalformedOutput)
		}
		raws = *wrapped.Suggestions
	} else {
		return nil, fmt.Errorf("%w: no JSON array found", ErrMalformedOutput)
	}

	out := make([]Suggestion, 0, len(raws))
	for i, r := range raws {
		if err := schema.Struct(r); err != nil {
			return nil, fmt.Errorf("%w: suggestion %d: %v", ErrMalformedOutput, i, err)
		}
		score, err := wholeScore(*r.MatchScore)
		if err != nil {
			return nil, err
		}
		// Case and braces vary between models; the caller drops unknown ids.
		id, err := uuid.Parse(strings.TrimSpace(r.CandidateID))
		if err != nil {
			id = uuid.Nil
		}
		out = append(out, Suggestion{
			CandidateID:       id,
			MatchScore:        score,
			Reasoning:         strings.TrimSpace(r.Reasoning),
			KeyMatchPoints:    nonNil(r.KeyMatchPoints),
			SuggestedApproach: strings.TrimSpace(r.SuggestedApproach),
		})
	}
	return out, nil
}

// extractJSON strips markdown fences and returns the span between the first
// open and the last close delimiter.
func extractJSON(text string, open, close byte) (string, bool) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.IndexByte(text, open)
	if start == -1 {
		return "", false
	}
	end := strings.LastIndexByte(text, close)
	if end == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// startsBefore reports whether a appears in text and before any b.
func startsBefore(text string, a, b byte) bool {
	ia := strings.IndexByte(text, a)
	ib := strings.IndexByte(text, b)
	return ia != -1 && (ib == -1 || ia < ib)
}

func wholeScore(f float64) (int, error) {
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: score %v is not an integer", ErrMalformedOutput, f)
	}
	return int(f), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
