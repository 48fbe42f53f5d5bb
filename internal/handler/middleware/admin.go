package middleware

import (
	"github.com/gin-gonic/gin"

	"tripinvite/portal/internal/config"
	"tripinvite/portal/pkg/crypto"
	"tripinvite/portal/pkg/response"
)

// AdminHeader carries the admin secret on API calls.
const AdminHeader = "X-Admin-Token"

// AdminAuth matches the shared admin secret, taken from the configured query
// parameter (or form field) or from AdminHeader.
type AdminAuth struct {
	param   string
	token   string
	hash    string
	enabled bool
}

func NewAdminAuth(cfg config.AdminConfig) *AdminAuth {
	return &AdminAuth{
		param:   cfg.LinkParam,
		token:   cfg.LinkToken,
		hash:    cfg.LinkTokenHash,
		enabled: cfg.Enabled(),
	}
}

// Param is the query parameter name that switches the portal to the dashboard.
func (a *AdminAuth) Param() string { return a.param }

func (a *AdminAuth) Enabled() bool { return a.enabled }

// Match compares secret against the plain token in constant time, then the bcrypt hash.
func (a *AdminAuth) Match(secret string) bool {
	if secret == "" || !a.Enabled() {
		return false
	}
	if a.token != "" && crypto.EqualSecret(secret, a.token) {
		return true
	}
	return a.hash != "" && crypto.CheckSecretHash(secret, a.hash)
}

// Secret returns the candidate secret presented with the request.
func (a *AdminAuth) Secret(c *gin.Context) string {
	if v := c.GetHeader(AdminHeader); v != "" {
		return v
	}
	if v := c.Query(a.param); v != "" {
		return v
	}
	return c.PostForm(a.param)
}

// IsAdmin reports whether the request presents a valid admin secret.
func (a *AdminAuth) IsAdmin(c *gin.Context) bool {
	return a.Match(a.Secret(c))
}

// RequireAdmin rejects requests without a valid admin secret.
func RequireAdmin(auth *AdminAuth) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Enabled() {
			response.Forbidden(c, "admin access is disabled")
			c.Abort()
			return
		}
		if !auth.IsAdmin(c) {
			response.Unauthorized(c, "admin secret required")
			c.Abort()
			return
		}
		c.Next()
	}
}
