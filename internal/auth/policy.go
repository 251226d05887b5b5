package auth

import "strings"

// Policy is the authorization policy built from configuration at startup.
// Admin identities are injected here; there are no source-level exemptions in
// authentication logic.
type Policy struct {
	bootstrapAdmins map[string]struct{}
}

// NewPolicy builds a policy from the configured bootstrap admin emails.
func NewPolicy(bootstrapEmails []string) *Policy {
	admins := make(map[string]struct{}, len(bootstrapEmails))
	for _, email := range bootstrapEmails {
		admins[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}
	return &Policy{bootstrapAdmins: admins}
}

// IsBootstrapAdmin reports whether a newly registered account should be
// granted the admin role.
func (p *Policy) IsBootstrapAdmin(email string) bool {
	if p == nil {
		return false
	}
	_, ok := p.bootstrapAdmins[strings.ToLower(strings.TrimSpace(email))]
	return ok
}
