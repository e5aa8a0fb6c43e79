// Package auth implements the per-request authentication gate and the
// route-level role policy for the HTTP surface.
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/karouieya6/enrollmentservice/internal/domain/enrollments"
	"github.com/karouieya6/enrollmentservice/internal/http/common"
	"github.com/karouieya6/enrollmentservice/internal/infra/revocation"
)

const (
	principalKey  = "principal"
	credentialKey = "credential"

	bearerPrefix = "Bearer "
)

// TokenValidator verifies a bearer token and extracts its principal.
type TokenValidator interface {
	Validate(token string) (enrollments.Principal, error)
}

// BearerAuthenticator is the authentication gate. For each request it checks
// the revocation registry first, then the validator, and on success attaches
// the principal and the raw credential to the request context. A request
// without a bearer credential passes through anonymous; whether that is
// acceptable is the policy's call, not the gate's.
type BearerAuthenticator struct {
	Validator TokenValidator
	Registry  revocation.Registry
	Log       *logrus.Logger
}

func NewBearerAuthenticator(validator TokenValidator, registry revocation.Registry, log *logrus.Logger) *BearerAuthenticator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BearerAuthenticator{Validator: validator, Registry: registry, Log: log}
}

func (a *BearerAuthenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			c.Next()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))

		revoked, err := a.Registry.IsRevoked(c.Request.Context(), token)
		if err != nil {
			// Fail closed: an unreachable registry must not let a
			// possibly-revoked token through.
			a.Log.WithError(err).Error("revocation check failed")
			abortUnauthorized(c, "authentication failed")
			return
		}
		if revoked {
			a.Log.WithField("reason", "revoked").Debug("rejected bearer token")
			abortUnauthorized(c, "token is revoked")
			return
		}

		principal, err := a.Validator.Validate(token)
		if err != nil {
			a.Log.WithField("reason", "invalid").Debug("rejected bearer token")
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(principalKey, principal)
		c.Set(credentialKey, token)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, common.ErrorResponse{Code: "UNAUTHORIZED", Message: message})
}

// PrincipalFromContext returns the authenticated principal, if the gate
// attached one. Each request carries its own copy; there is no cross-request
// state.
func PrincipalFromContext(c *gin.Context) (enrollments.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return enrollments.Principal{}, false
	}
	principal, ok := value.(enrollments.Principal)
	return principal, ok
}

// CredentialFromContext returns the raw bearer token of the authenticated
// request, for forwarding to the identity authority.
func CredentialFromContext(c *gin.Context) string {
	if value, ok := c.Get(credentialKey); ok {
		if token, ok := value.(string); ok {
			return token
		}
	}
	return ""
}
