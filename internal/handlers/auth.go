package handlers

import (
	"net/http"
	"strings"
	"time"

	"eod-reports/internal/authz"
	"eod-reports/internal/database"
	"eod-reports/internal/middleware"
	"eod-reports/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "username and password are required")
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	var user models.User
	err := database.DB.Preload("Employee").
		Where("username = ? AND is_active = ?", req.Username, true).
		First(&user).Error
	if err != nil {
		// same message whether the user exists or not
		respondError(c, http.StatusUnauthorized, CodeInvalidCredentials, "invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, CodeInvalidCredentials, "invalid username or password")
		return
	}

	// viewers need a live grant; only the most recent one counts
	if user.Role == models.RoleViewer {
		var grants []models.ViewerAccess
		if err := database.DB.Where("user_id = ?", user.ID).Find(&grants).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to check viewer access")
			return
		}
		latest := authz.LatestGrant(grants)
		if latest == nil || !latest.ValidAt(time.Now()) {
			respondError(c, http.StatusForbidden, CodeViewerExpired, "viewer access has expired or been revoked")
			return
		}
	}

	// identity snapshot lives in the session until logout or expiry;
	// later role changes only apply on re-login
	sess := sessions.Default(c)
	sess.Set("user_id", user.ID)
	sess.Set("username", user.Username)
	sess.Set("role", string(user.Role))
	if user.EmployeeID != nil {
		sess.Set("employee_id", *user.EmployeeID)
	}
	if user.Employee != nil {
		sess.Set("employee_name", user.Employee.Name)
		sess.Set("employee_email", user.Employee.Email)
	}
	if err := sess.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to create session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": sessionUserView(c)})
}

// Logout destroys the session; calling it without one is fine.
func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func Me(c *gin.Context) {
	if _, ok := middleware.CurrentIdentity(c); !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthenticated, "authentication required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sessionUserView(c)})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func ChangePassword(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthenticated, "authentication required")
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "currentPassword and newPassword are required")
		return
	}
	if len(req.NewPassword) < 6 {
		respondError(c, http.StatusBadRequest, CodeValidation, "new password must be at least 6 characters")
		return
	}

	var user models.User
	if err := database.DB.First(&user, ident.UserID).Error; err != nil {
		respondError(c, http.StatusUnauthorized, CodeUnauthenticated, "account no longer exists")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		respondError(c, http.StatusUnauthorized, CodeInvalidCredentials, "current password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to hash password")
		return
	}

	if err := database.DB.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to update password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// sessionUserView renders the snapshot the way the SPA expects it.
func sessionUserView(c *gin.Context) gin.H {
	sess := sessions.Default(c)

	view := gin.H{}
	if uid, ok := sess.Get("user_id").(uint); ok {
		view["id"] = uid
	}
	view["username"], _ = sess.Get("username").(string)
	view["role"], _ = sess.Get("role").(string)
	if eid, ok := sess.Get("employee_id").(uint); ok {
		view["employee_id"] = eid
		view["employee_name"], _ = sess.Get("employee_name").(string)
		view["employee_email"], _ = sess.Get("employee_email").(string)
	}
	return view
}
