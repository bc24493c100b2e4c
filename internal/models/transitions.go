package models

import "fmt"

// Job status graph:
//
//	draft ──► active ◄──► paused
//	            │            │
//	            └──► filled ◄┘
//
// filled is terminal.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusDraft:  {JobStatusActive},
	JobStatusActive: {JobStatusPaused, JobStatusFilled},
	JobStatusPaused: {JobStatusActive, JobStatusFilled},
}

// Suggestion status graph: suggested → contacted → referred, with dismissal
// allowed until the candidate is referred.
var suggestionTransitions = map[SuggestionStatus][]SuggestionStatus{
	SuggestionSuggested: {SuggestionContacted, SuggestionDismissed, SuggestionReferred},
	SuggestionContacted: {SuggestionReferred, SuggestionDismissed},
}

// ParseJobStatus converts a raw string to a JobStatus.
func ParseJobStatus(s string) (JobStatus, error) {
	st := JobStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown job status %q", s)
	}
	return st, nil
}

// CanTransitionJob reports whether a job may move from one status to another.
// Staying in the same status is always allowed.
func CanTransitionJob(from, to JobStatus) bool {
	if from == to {
		return true
	}
	for _, s := range jobTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanTransitionSuggestion reports whether a stored suggestion may move between statuses.
func CanTransitionSuggestion(from, to SuggestionStatus) bool {
	for _, s := range suggestionTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
