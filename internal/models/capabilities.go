package models

// Capability names an action a route boundary can require.
type Capability string

const (
	CapPostJobs           Capability = "post_jobs"
	CapBrowseJobs         Capability = "browse_jobs"
	CapSubmitReferrals    Capability = "submit_referrals"
	CapViewOwnReferrals   Capability = "view_own_referrals"
	CapRunMatching        Capability = "run_matching"
	CapRequestSuggestions Capability = "request_suggestions"
	CapViewDashboard      Capability = "view_dashboard"
)

// roleCapabilities is the single source of truth for what each role may do.
var roleCapabilities = map[Role][]Capability{
	RoleClient: {
		CapPostJobs, CapViewOwnReferrals, CapRunMatching, CapRequestSuggestions, CapViewDashboard,
	},
	RoleFoundingCircle: {
		CapBrowseJobs, CapSubmitReferrals, CapRunMatching, CapRequestSuggestions, CapViewDashboard,
	},
	RoleSelectCircle: {
		CapBrowseJobs, CapSubmitReferrals, CapViewDashboard,
	},
	RoleCandidate: {
		CapBrowseJobs, CapViewDashboard,
	},
}

// Can reports whether the role has been granted the capability.
func (r Role) Can(c Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == c {
			return true
		}
	}
	return false
}

// RolesWith returns every role holding the capability.
func RolesWith(c Capability) []Role {
	var roles []Role
	for _, r := range AllRoles {
		if r.Can(c) {
			roles = append(roles, r)
		}
	}
	return roles
}
