package domain

import "sort"

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleModerator  Role = "MODERATOR"
	RoleMentor     Role = "MENTOR"
	RoleGuide      Role = "GUIDE"
	RoleEnthusiast Role = "ENTHUSIAST"
	RoleLearner    Role = "LEARNER"
	RoleInfluencer Role = "INFLUENCER"
)

// DefaultRole is assigned to accounts provisioned on first sight.
const DefaultRole = RoleLearner

// RoleSet is a membership check, not a hierarchy. Gating is always
// "is the actor's role in this set".
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// Members returns the set's roles in a stable order, for call sites that
// need a slice (query parameters, logging).
func (s RoleSet) Members() []Role {
	roles := make([]Role, 0, len(s))
	for r := range s {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// Canonical gating sets. Declared once; call sites must not build their
// own ad-hoc groupings.
var (
	AdminOnly = NewRoleSet(RoleAdmin)
	Reviewers = NewRoleSet(RoleAdmin, RoleModerator)
	AllRoles  = NewRoleSet(RoleAdmin, RoleModerator, RoleMentor, RoleGuide, RoleEnthusiast, RoleLearner, RoleInfluencer)
)

// ValidRole reports whether r is one of the closed role enumeration.
func ValidRole(r Role) bool {
	return AllRoles.Contains(r)
}
