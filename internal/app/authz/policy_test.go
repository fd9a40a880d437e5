package authz

import (
	"testing"

	"github.com/sheikhgalib/academix/internal/app/models"
)

func principalWith(roles ...models.Role) *Principal {
	tags := make([]string, len(roles))
	for i, r := range roles {
		tags[i] = r.Tag()
	}
	return &Principal{
		AccountID:   1,
		Username:    "someone",
		Enabled:     true,
		Authorities: tags,
	}
}

func TestDefaultPolicyAnonymous(t *testing.T) {
	policy := DefaultPolicy()

	cases := []struct {
		path string
		want Decision
	}{
		{"/login", Allow},
		{"/register", Allow},
		{"/ping", Allow},
		{"/student/list", DenyRedirectLogin},
		{"/teacher/list", DenyRedirectLogin},
		{"/dashboard", DenyRedirectLogin},
		{"/some/unknown/path", DenyRedirectLogin},
	}

	for _, tc := range cases {
		if got := policy.Authorize(nil, tc.path, "GET"); got != tc.want {
			t.Errorf("anonymous %s: expected %v, got %v", tc.path, tc.want, got)
		}
	}
}

func TestDefaultPolicyStudent(t *testing.T) {
	policy := DefaultPolicy()
	student := principalWith(models.RoleStudent)

	allowed := []struct {
		path, method string
	}{
		{"/student/list", "GET"},
		{"/student/view/7", "GET"},
		{"/dashboard", "GET"},
		{"/logout", "POST"},
	}
	for _, tc := range allowed {
		if got := policy.Authorize(student, tc.path, tc.method); got != Allow {
			t.Errorf("student %s %s: expected Allow, got %v", tc.method, tc.path, got)
		}
	}

	forbidden := []struct {
		path, method string
	}{
		{"/student/create", "POST"},
		{"/student/edit/7", "POST"},
		{"/student/delete/7", "POST"},
		{"/teacher/list", "GET"},
		{"/teacher/create", "POST"},
		{"/department/list", "GET"},
		{"/department/delete/2", "POST"},
		{"/course/list", "GET"},
		{"/course/create", "POST"},
	}
	for _, tc := range forbidden {
		if got := policy.Authorize(student, tc.path, tc.method); got != DenyForbidden {
			t.Errorf("student %s %s: expected DenyForbidden, got %v", tc.method, tc.path, got)
		}
	}
}

func TestDefaultPolicyTeacher(t *testing.T) {
	policy := DefaultPolicy()
	teacher := principalWith(models.RoleTeacher)

	allowed := []struct {
		path, method string
	}{
		{"/student/create", "POST"},
		{"/student/edit/7", "POST"},
		{"/student/delete/7", "POST"},
		{"/teacher/list", "GET"},
		{"/teacher/view/3", "GET"},
		{"/department/list", "GET"},
		{"/course/create", "POST"},
		{"/course/delete/9", "POST"},
	}
	for _, tc := range allowed {
		if got := policy.Authorize(teacher, tc.path, tc.method); got != Allow {
			t.Errorf("teacher %s %s: expected Allow, got %v", tc.method, tc.path, got)
		}
	}

	forbidden := []struct {
		path, method string
	}{
		{"/teacher/create", "POST"},
		{"/teacher/edit/3", "POST"},
		{"/teacher/delete/3", "POST"},
		{"/department/create", "POST"},
		{"/department/edit/2", "POST"},
		{"/department/delete/2", "POST"},
	}
	for _, tc := range forbidden {
		if got := policy.Authorize(teacher, tc.path, tc.method); got != DenyForbidden {
			t.Errorf("teacher %s %s: expected DenyForbidden, got %v", tc.method, tc.path, got)
		}
	}
}

func TestDefaultPolicyAdmin(t *testing.T) {
	policy := DefaultPolicy()
	admin := principalWith(models.RoleAdmin)

	paths := []struct {
		path, method string
	}{
		{"/student/list", "GET"},
		{"/student/create", "POST"},
		{"/teacher/create", "POST"},
		{"/teacher/delete/3", "POST"},
		{"/department/create", "POST"},
		{"/department/delete/2", "POST"},
		{"/course/edit/9", "POST"},
		{"/dashboard", "GET"},
	}
	for _, tc := range paths {
		if got := policy.Authorize(admin, tc.path, tc.method); got != Allow {
			t.Errorf("admin %s %s: expected Allow, got %v", tc.method, tc.path, got)
		}
	}
}

func TestPolicyPrefersMoreSpecificPattern(t *testing.T) {
	policy := NewPolicy([]Rule{
		{Pattern: "/area/*", Roles: []models.Role{models.RoleAdmin}},
		{Pattern: "/area/open", Public: true},
	})

	if got := policy.Authorize(nil, "/area/open", "GET"); got != Allow {
		t.Errorf("expected the longer /area/open rule to win, got %v", got)
	}
	if got := policy.Authorize(nil, "/area/closed", "GET"); got != DenyRedirectLogin {
		t.Errorf("expected the /area/* rule for anonymous, got %v", got)
	}
}

func TestRuleMethodFilter(t *testing.T) {
	policy := NewPolicy([]Rule{
		{Pattern: "/thing", Methods: []string{"GET"}, Public: true},
	})

	if got := policy.Authorize(nil, "/thing", "GET"); got != Allow {
		t.Errorf("GET /thing: expected Allow, got %v", got)
	}
	// POST falls through to the default authenticated rule.
	if got := policy.Authorize(nil, "/thing", "POST"); got != DenyRedirectLogin {
		t.Errorf("POST /thing: expected DenyRedirectLogin, got %v", got)
	}
}

func TestDisabledPrincipalStillMatchesRoles(t *testing.T) {
	// The middleware never sets a disabled principal; the policy itself
	// only looks at authorities.
	policy := DefaultPolicy()
	p := principalWith(models.RoleAdmin)
	p.Enabled = false

	if got := policy.Authorize(p, "/teacher/create", "POST"); got != Allow {
		t.Errorf("expected Allow from the policy layer, got %v", got)
	}
}
