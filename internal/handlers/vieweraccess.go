package handlers

import (
	"net/http"
	"strings"
	"time"

	"eod-reports/internal/authz"
	"eod-reports/internal/database"
	"eod-reports/internal/middleware"
	"eod-reports/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//
// ADMIN: TEMPORARY VIEWER ACCESS
//

type createViewerAccessRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Notes    string `json:"notes"`
}

// CreateViewerAccess creates the viewer account and its first grant in one
// transaction. An account without a grant must never be observable.
func CreateViewerAccess(c *gin.Context) {
	var req createViewerAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if len(req.Username) < 3 {
		respondError(c, http.StatusBadRequest, CodeValidation, "username must be at least 3 characters")
		return
	}
	if len(req.Password) < 6 {
		respondError(c, http.StatusBadRequest, CodeValidation, "password must be at least 6 characters")
		return
	}

	var count int64
	if err := database.DB.Model(&models.User{}).
		Where("username = ?", req.Username).
		Count(&count).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to check username")
		return
	}
	if count > 0 {
		respondError(c, http.StatusBadRequest, CodeDuplicateUsername, "username already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to hash password")
		return
	}

	ident, _ := middleware.CurrentIdentity(c)
	expiresAt := time.Now().Add(authz.GrantTTL)

	var user models.User
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		user = models.User{
			Username:     req.Username,
			PasswordHash: string(hash),
			Role:         models.RoleViewer,
			IsActive:     true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		grant := models.ViewerAccess{
			UserID:    user.ID,
			ExpiresAt: expiresAt,
			CreatedBy: ident.UserID,
			Notes:     req.Notes,
		}
		return tx.Create(&grant).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to create viewer access")
		return
	}

	database.CreateAuditLog(ident.UserID, "viewer_access", user.ID, "create",
		"created viewer access for "+user.Username)

	c.JSON(http.StatusCreated, gin.H{
		"username":   user.Username,
		"expires_at": expiresAt,
	})
}

func ListViewerAccess(c *gin.Context) {
	var grants []models.ViewerAccess
	if err := database.DB.Preload("User").Order("created_at desc").Find(&grants).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to load viewer access")
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(grants))
	for i := range grants {
		g := &grants[i]
		item := gin.H{
			"id":         g.ID,
			"created_at": g.CreatedAt,
			"expires_at": g.ExpiresAt,
			"revoked_at": g.RevokedAt,
			"created_by": g.CreatedBy,
			"notes":      g.Notes,
			"status":     g.Status(now),
		}
		if g.User != nil {
			item["username"] = g.User.Username
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, gin.H{"grants": out})
}

// RevokeViewerAccess stamps revoked_at. The account stays in listings; it
// just cannot log in anymore.
func RevokeViewerAccess(c *gin.Context) {
	id := paramUint(c, "id")
	if id == 0 {
		respondError(c, http.StatusBadRequest, CodeValidation, "invalid grant id")
		return
	}

	var grant models.ViewerAccess
	if err := database.DB.Preload("User").First(&grant, id).Error; err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "grant not found")
		return
	}

	now := time.Now()
	if grant.RevokedAt == nil {
		if err := database.DB.Model(&grant).Update("revoked_at", &now).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to revoke grant")
			return
		}
		grant.RevokedAt = &now

		if ident, ok := middleware.CurrentIdentity(c); ok {
			database.CreateAuditLog(ident.UserID, "viewer_access", grant.ID, "revoke",
				"revoked viewer access grant")
		}
	}

	resp := gin.H{
		"id":         grant.ID,
		"created_at": grant.CreatedAt,
		"expires_at": grant.ExpiresAt,
		"revoked_at": grant.RevokedAt,
		"notes":      grant.Notes,
		"status":     grant.Status(now),
	}
	if grant.User != nil {
		resp["username"] = grant.User.Username
	}
	c.JSON(http.StatusOK, resp)
}
