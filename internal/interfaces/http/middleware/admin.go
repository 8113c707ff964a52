// internal/interfaces/http/middleware/admin.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshmeals/web/internal/pkg/auth"
)

// AdminSessionCookie is the cookie carrying the opaque admin session token
const AdminSessionCookie = "admin_session"

// AdminSession gates admin views and actions on a valid server-side
// session token; anything else is sent back to the login page.
func AdminSession(sessions *auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AdminSessionCookie)
		if err != nil || !sessions.Valid(token) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}

		c.Next()
	}
}
