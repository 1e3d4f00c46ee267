package handlers

import (
	"errors"
	"net/http"

	"eod-reports/internal/authz"

	"github.com/gin-gonic/gin"
)

// machine-readable error codes; the SPA branches on these
const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeViewerExpired      = "VIEWER_EXPIRED"
	CodeValidation         = "VALIDATION"
	CodeDuplicateUsername  = "DUPLICATE_USERNAME"
	CodeNotFound           = "NOT_FOUND"
	CodeCannotDeleteSelf   = "CANNOT_DELETE_SELF"
)

func respondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, gin.H{"error": msg, "code": code})
}

// guardError translates an authz rejection into the HTTP taxonomy. The
// message distinguishes role, ownership and time-lock failures because the
// client renders different states for each.
func guardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		respondError(c, http.StatusUnauthorized, CodeUnauthenticated, "authentication required")
	case errors.Is(err, authz.ErrViewerReadOnly):
		respondError(c, http.StatusForbidden, CodeForbidden, "viewers cannot edit")
	case errors.Is(err, authz.ErrNotOwner):
		respondError(c, http.StatusForbidden, CodeForbidden, "not your report")
	case errors.Is(err, authz.ErrWindowClosed):
		respondError(c, http.StatusForbidden, CodeForbidden, "report locked")
	default:
		respondError(c, http.StatusForbidden, CodeForbidden, "access denied")
	}
}
