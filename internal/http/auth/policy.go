package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/karouieya6/enrollmentservice/internal/domain/enrollments"
	"github.com/karouieya6/enrollmentservice/internal/http/common"
)

// Rule binds a method and path pattern to the roles allowed through. Patterns
// match whole path segments; a trailing "**" matches any remainder and "*"
// matches exactly one segment. An empty Method matches every method. Public
// rules skip authentication entirely; an empty role list admits any
// authenticated principal.
type Rule struct {
	Method  string
	Pattern string
	Roles   []string
	Public  bool
}

// Policy is an ordered rule table evaluated first-match against the request
// method and path. Requests matching no rule fall through to the default:
// any authenticated principal.
type Policy struct {
	rules []Rule
}

func NewPolicy(rules []Rule) *Policy {
	return &Policy{rules: rules}
}

// DefaultPolicy is the route table for the enrollment API.
func DefaultPolicy() *Policy {
	return NewPolicy([]Rule{
		{Method: http.MethodGet, Pattern: "/enrollments", Roles: []string{enrollments.RoleAdmin}},
		{Method: http.MethodGet, Pattern: "/enrollments/user/**", Roles: []string{enrollments.RoleStudent, enrollments.RoleInstructor}},
		{Method: http.MethodGet, Pattern: "/enrollments/check", Roles: []string{enrollments.RoleStudent, enrollments.RoleInstructor}},
		{Method: http.MethodPost, Pattern: "/enrollments", Roles: []string{enrollments.RoleStudent, enrollments.RoleInstructor}},
		{Method: http.MethodDelete, Pattern: "/enrollments", Roles: []string{enrollments.RoleStudent, enrollments.RoleInstructor}},
		{Pattern: "/healthz", Public: true},
		{Pattern: "/docs/**", Public: true},
	})
}

// Authorize decides whether the request may proceed. Role comparison is a
// case-sensitive exact match against the principal's primary role. A failed
// role check is ErrForbidden; a missing principal is ErrUnauthorized.
func (p *Policy) Authorize(principal enrollments.Principal, authenticated bool, method, path string) error {
	for _, rule := range p.rules {
		if rule.Method != "" && rule.Method != method {
			continue
		}
		if !matchPath(rule.Pattern, path) {
			continue
		}
		if rule.Public {
			return nil
		}
		if !authenticated {
			return enrollments.ErrUnauthorized
		}
		if len(rule.Roles) == 0 {
			return nil
		}
		primary := principal.PrimaryRole()
		for _, role := range rule.Roles {
			if role == primary {
				return nil
			}
		}
		return enrollments.ErrForbidden
	}
	// Default rule: any authenticated principal.
	if !authenticated {
		return enrollments.ErrUnauthorized
	}
	return nil
}

func (p *Policy) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, authenticated := PrincipalFromContext(c)
		err := p.Authorize(principal, authenticated, c.Request.Method, c.Request.URL.Path)
		switch err {
		case nil:
			c.Next()
		case enrollments.ErrForbidden:
			c.AbortWithStatusJSON(http.StatusForbidden, common.ErrorResponse{Code: "FORBIDDEN", Message: "insufficient role"})
		default:
			abortUnauthorized(c, "authentication required")
		}
	}
}

func matchPath(pattern, path string) bool {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")
	for i, part := range patternParts {
		if part == "**" {
			return true
		}
		if i >= len(pathParts) {
			return false
		}
		if part != "*" && part != pathParts[i] {
			return false
		}
	}
	return len(patternParts) == len(pathParts)
}
