package principal

// Principal is the authenticated subject as resolved from the user
// directory: a role plus the organizations the subject may reach.
type Principal struct {
	SubjectID           string
	Role                Role
	PrimaryOrganization string
	Organizations       []string
}

// CanAccessOrganization reports whether the principal may reach the given
// organization's records. Admins are unrestricted irrespective of their
// memberships.
func (p Principal) CanAccessOrganization(org string) bool {
	switch p.Role {
	case RoleAdmin:
		return true
	case RoleUser, RoleEditor:
		if p.PrimaryOrganization != "" && p.PrimaryOrganization == org {
			return true
		}
		for _, member := range p.Organizations {
			if member == org {
				return true
			}
		}
		return false
	}
	return false
}

// Memberships returns the distinct organizations the principal belongs to,
// primary included.
func (p Principal) Memberships() []string {
	seen := make(map[string]struct{}, len(p.Organizations)+1)
	members := make([]string, 0, len(p.Organizations)+1)
	if p.PrimaryOrganization != "" {
		seen[p.PrimaryOrganization] = struct{}{}
		members = append(members, p.PrimaryOrganization)
	}
	for _, org := range p.Organizations {
		if _, ok := seen[org]; ok {
			continue
		}
		seen[org] = struct{}{}
		members = append(members, org)
	}
	return members
}

// HasOrganizations reports whether the principal belongs anywhere at all. A
// principal without any organization reaches nothing except admin-only views.
func (p Principal) HasOrganizations() bool {
	return p.PrimaryOrganization != "" || len(p.Organizations) > 0
}
