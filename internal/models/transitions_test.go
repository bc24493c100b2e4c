package models

import "testing"

func TestCanTransitionJob(t *testing.T) {
	cases := []struct {
		from, to JobStatus
		want     bool
	}{
		{JobStatusDraft, JobStatusActive, true},
		{JobStatusDraft, JobStatusFilled, false},
		{JobStatusDraft, JobStatusPaused, false},
		{JobStatusActive, JobStatusPaused, true},
		{JobStatusActive, JobStatusFilled, true},
		{JobStatusActive, JobStatusDraft, false},
		{JobStatusPaused, JobStatusActive, true},
		{JobStatusPaused, JobStatusFilled, true},
		{JobStatusFilled, JobStatusActive, false},
		{JobStatusFilled, JobStatusDraft, false},
		{JobStatusActive, JobStatusActive, true},
	}
	for _, c := range cases {
		if got := CanTransitionJob(c.from, c.to); got != c.want {
			t.Errorf("CanTransitionJob(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestParseJobStatus(t *testing.T) {
	if _, err := ParseJobStatus("archived"); err == nil {
		t.Error("expected error for unknown status")
	}
	st, err := ParseJobStatus("paused")
	if err != nil || st != JobStatusPaused {
		t.Errorf("ParseJobStatus(paused) = %q, %v", st, err)
	}
}

func TestCanTransitionSuggestion(t *testing.T) {
	if !CanTransitionSuggestion(SuggestionSuggested, SuggestionContacted) {
		t.Error("suggested -> contacted should be allowed")
	}
	if CanTransitionSuggestion(SuggestionReferred, SuggestionDismissed) {
		t.Error("referred is terminal")
	}
	if CanTransitionSuggestion(SuggestionDismissed, SuggestionSuggested) {
		t.Error("dismissed is terminal")
	}
}

func TestRoleCapabilities(t *testing.T) {
	if !RoleClient.Can(CapPostJobs) {
		t.Error("clients post jobs")
	}
	if RoleClient.Can(CapSubmitReferrals) {
		t.Error("clients do not submit referrals")
	}
	if !RoleSelectCircle.Can(CapSubmitReferrals) {
		t.Error("select circle submits referrals")
	}
	if RoleSelectCircle.Can(CapRunMatching) {
		t.Error("select circle does not run matching")
	}
	if RoleCandidate.Can(CapPostJobs) || RoleCandidate.Can(CapSubmitReferrals) {
		t.Error("candidates can only browse and view their dashboard")
	}
	if Role("admin").Can(CapViewDashboard) {
		t.Error("unknown roles have no capabilities")
	}

	got := RolesWith(CapSubmitReferrals)
	if len(got) != 2 || got[0] != RoleFoundingCircle || got[1] != RoleSelectCircle {
		t.Errorf("RolesWith(submit_referrals) = %v", got)
	}
}
