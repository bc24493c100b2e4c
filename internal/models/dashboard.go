package models

// ClientDashboard aggregates a client's jobs and the activity on them.
type ClientDashboard struct {
	JobsByStatus       map[JobStatus]int `json:"jobs_by_status"`
	TotalReferrals     int               `json:"total_referrals"`
	ReferralsLast7Days int               `json:"referrals_last_7_days"`
	MatchAnalyses      int               `json:"match_analyses"`
	OpenSuggestions    int               `json:"open_suggestions"`
}

// ReferrerDashboard aggregates a network member's referral activity.
type ReferrerDashboard struct {
	ReferralsSubmitted  int `json:"referrals_submitted"`
	ReferralsLast30Days int `json:"referrals_last_30_days"`
	JobsReferredTo      int `json:"jobs_referred_to"`
	ActiveJobs          int `json:"active_jobs"`
}

// CandidateDashboard aggregates how often a candidate surfaced in suggestions.
type CandidateDashboard struct {
	TimesSuggested int `json:"times_suggested"`
	ActiveJobs     int `json:"active_jobs"`
}

// Dashboard is the role-specific payload; exactly one section is set.
type Dashboard struct {
	Role      Role                `json:"role"`
	Client    *ClientDashboard    `json:"client,omitempty"`
	Referrer  *ReferrerDashboard  `json:"referrer,omitempty"`
	Candidate *CandidateDashboard `json:"candidate,omitempty"`
}
