package ai

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validMatch = `{
  "overall_score": 82,
  "skills_match": 90,
  "experience_match": 75,
  "education_match": 0,
  "key_strengths": ["Go", "distributed systems"],
  "potential_concerns": ["no fintech background"],
  "reasoning": "Strong backend profile."
}`

func TestParseMatchResult(t *testing.T) {
	t.Run("Plain JSON", func(t *testing.T) {
		res, err := ParseMatchResult(validMatch)
		require.NoError(t, err)
		assert.Equal(t, 82, res.OverallScore)
		assert.Equal(t, 0, res.EducationMatch)
		assert.Equal(t, []string{"Go", "distributed systems"}, res.KeyStrengths)
		assert.Equal(t, "Strong backend profile.", res.Reasoning)
	})

	t.Run("Fenced with chatter", func(t *testing.T) {
		res, err := ParseMatchResult("Here you go:\n```json\n" + validMatch + "\n```")
		require.NoError(t, err)
		assert.Equal(t, 75, res.ExperienceMatch)
	})

	t.Run("Missing lists become empty", func(t *testing.T) {
		res, err := ParseMatchResult(`{"overall_score":50,"skills_match":50,"experience_match":50,"education_match":50,"reasoning":"ok"}`)
		require.NoError(t, err)
		assert.NotNil(t, res.KeyStrengths)
		assert.Empty(t, res.PotentialConcerns)
	})

	failures := map[string]string{
		"Not JSON":         "I cannot evaluate this candidate.",
		"Broken JSON":      `{"overall_score": 80,`,
		"Missing score":    `{"skills_match":50,"experience_match":50,"education_match":50,"reasoning":"x"}`,
		"Score over 100":   `{"overall_score":101,"skills_match":50,"experience_match":50,"education_match":50,"reasoning":"x"}`,
		"Negative score":   `{"overall_score":-5,"skills_match":50,"experience_match":50,"education_match":50,"reasoning":"x"}`,
		"Fractional score": `{"overall_score":80.5,"skills_match":50,"experience_match":50,"education_match":50,"reasoning":"x"}`,
		"String score":     `{"overall_score":"80","skills_match":50,"experience_match":50,"education_match":50,"reasoning":"x"}`,
		"Missing reason":   `{"overall_score":80,"skills_match":50,"experience_match":50,"education_match":50}`,
	}
	for name, text := range failures {
		t.Run(name, func(t *testing.T) {
			res, err := ParseMatchResult(text)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, ErrMalformedOutput), "got %v", err)
		})
	}
}

func TestParseSuggestions(t *testing.T) {
	id1, id2 := uuid.New(), uuid.New()

	t.Run("Bare array", func(t *testing.T) {
		text := `[{"candidate_id":"` + id1.String() + `","match_score":88,"reasoning":"fit","key_match_points":["Go"],"suggested_approach":"intro"},
		{"candidate_id":"` + id2.String() + `","match_score":61,"reasoning":"maybe"}]`
		got, err := ParseSuggestions(text)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, id1, got[0].CandidateID)
		assert.Equal(t, 88, got[0].MatchScore)
		assert.Equal(t, []string{}, got[1].KeyMatchPoints)
	})

	t.Run("Wrapped object", func(t *testing.T) {
		text := `{"suggestions":[{"candidate_id":"` + id1.String() + `","match_score":70,"reasoning":"ok"}]}`
		got, err := ParseSuggestions(text)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("Empty array", func(t *testing.T) {
		got, err := ParseSuggestions("[]")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Uppercase candidate id", func(t *testing.T) {
		text := `[{"candidate_id":"` + strings.ToUpper(id1.String()) + `","match_score":70,"reasoning":"ok"}]`
		got, err := ParseSuggestions(text)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, id1, got[0].CandidateID)
	})

	t.Run("Unparseable candidate id kept as nil", func(t *testing.T) {
		text := `[{"candidate_id":"bob","match_score":70,"reasoning":"ok"},
		{"candidate_id":"` + id2.String() + `","match_score":60,"reasoning":"ok"}]`
		got, err := ParseSuggestions(text)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, uuid.Nil, got[0].CandidateID)
		assert.Equal(t, id2, got[1].CandidateID)
	})

	t.Run("Missing candidate id", func(t *testing.T) {
		_, err := ParseSuggestions(`[{"match_score":70,"reasoning":"ok"}]`)
		assert.ErrorIs(t, err, ErrMalformedOutput)
	})

	t.Run("Object without suggestions", func(t *testing.T) {
		_, err := ParseSuggestions(`{"candidates": []}`)
		assert.ErrorIs(t, err, ErrMalformedOutput)
	})

	t.Run("Prose", func(t *testing.T) {
		_, err := ParseSuggestions("No good matches found.")
		assert.ErrorIs(t, err, ErrMalformedOutput)
	})
}
