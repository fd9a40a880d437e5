package authz

import (
	"sort"
	"strings"

	"github.com/sheikhgalib/academix/internal/app/models"
)

// Decision is the outcome of a policy evaluation.
type Decision int

const (
	// Allow lets the request through to the handler.
	Allow Decision = iota
	// DenyForbidden rejects an authenticated principal lacking a required role.
	DenyForbidden
	// DenyRedirectLogin sends an unauthenticated request to the login page.
	DenyRedirectLogin
)

// String returns a readable form for logging.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyForbidden:
		return "forbidden"
	case DenyRedirectLogin:
		return "redirect-login"
	default:
		return "unknown"
	}
}

// Rule maps a URL-path pattern to an access requirement. A pattern either
// matches a path exactly or, with a trailing "/*", matches everything under
// the prefix. An empty Roles slice with Public false means any authenticated
// principal may pass.
type Rule struct {
	Pattern string
	Methods []string // nil matches every method
	Public  bool
	Roles   []models.Role
}

func (r Rule) matches(path, method string) bool {
	if len(r.Methods) > 0 {
		found := false
		for _, m := range r.Methods {
			if strings.EqualFold(m, method) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if prefix, ok := strings.CutSuffix(r.Pattern, "/*"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == r.Pattern
}

// Policy is an immutable, ordered rule table evaluated for every request.
// Rules are matched most-specific-path-first; the first match governs.
// Paths matching no rule require an authenticated principal.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy from the given rules, ordered so that longer
// (more specific) patterns are consulted first.
func NewPolicy(rules []Rule) *Policy {
	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Pattern) > len(ordered[j].Pattern)
	})
	return &Policy{rules: ordered}
}

// DefaultPolicy returns the access rule table for the application.
func DefaultPolicy() *Policy {
	teacherOrAdmin := []models.Role{models.RoleTeacher, models.RoleAdmin}
	adminOnly := []models.Role{models.RoleAdmin}

	return NewPolicy([]Rule{
		{Pattern: "/ping", Public: true},
		{Pattern: "/login", Public: true},
		{Pattern: "/login/*", Public: true},
		{Pattern: "/register", Public: true},
		{Pattern: "/register/*", Public: true},

		// Student records: everyone signed in may read, staff may write.
		{Pattern: "/student/list"},
		{Pattern: "/student/view/*"},
		{Pattern: "/student/create", Roles: teacherOrAdmin},
		{Pattern: "/student/edit/*", Roles: teacherOrAdmin},
		{Pattern: "/student/delete/*", Roles: teacherOrAdmin},

		// Teacher records: staff may read, only admins may write.
		{Pattern: "/teacher/create", Roles: adminOnly},
		{Pattern: "/teacher/edit/*", Roles: adminOnly},
		{Pattern: "/teacher/delete/*", Roles: adminOnly},
		{Pattern: "/teacher/*", Roles: teacherOrAdmin},

		// Departments mirror teacher records.
		{Pattern: "/department/create", Roles: adminOnly},
		{Pattern: "/department/edit/*", Roles: adminOnly},
		{Pattern: "/department/delete/*", Roles: adminOnly},
		{Pattern: "/department/*", Roles: teacherOrAdmin},

		// Courses are staff-only in their entirety.
		{Pattern: "/course/*", Roles: teacherOrAdmin},
	})
}

// Authorize decides whether the principal (nil for anonymous) may perform
// the operation on the resource path. The check is a hard gate: handlers run
// only on Allow.
func (p *Policy) Authorize(principal *Principal, path, method string) Decision {
	for _, rule := range p.rules {
		if !rule.matches(path, method) {
			continue
		}
		return evaluate(rule, principal)
	}

	// Default rule: authenticated, no specific role.
	if principal == nil {
		return DenyRedirectLogin
	}
	return Allow
}

func evaluate(rule Rule, principal *Principal) Decision {
	if rule.Public {
		return Allow
	}
	if principal == nil {
		return DenyRedirectLogin
	}
	if len(rule.Roles) == 0 {
		return Allow
	}

	// ANY-of match over the required role set.
	for _, role := range rule.Roles {
		if principal.HasAuthority(role.Tag()) {
			return Allow
		}
	}
	return DenyForbidden
}
