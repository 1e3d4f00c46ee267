package middleware

import (
	"eod-reports/internal/authz"
	"eod-reports/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// CurrentIdentity rebuilds the identity snapshot that Login stored in the
// session. It never touches the database: the snapshot is frozen at login
// time, so role changes only apply after re-login.
func CurrentIdentity(c *gin.Context) (authz.Identity, bool) {
	sess := sessions.Default(c)

	uid, ok := sess.Get("user_id").(uint)
	if !ok || uid == 0 {
		return authz.Identity{}, false
	}

	ident := authz.Identity{UserID: uid}
	ident.Username, _ = sess.Get("username").(string)
	if roleStr, ok := sess.Get("role").(string); ok {
		ident.Role = models.UserRole(roleStr)
	}
	if eid, ok := sess.Get("employee_id").(uint); ok {
		ident.EmployeeID = eid
	}
	return ident, true
}
