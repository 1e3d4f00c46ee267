package handlers

import (
	"net/http"
	"strings"

	"eod-reports/internal/database"
	"eod-reports/internal/middleware"
	"eod-reports/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//
// ADMIN: ACCOUNT MANAGEMENT
//

type createUserRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	EmployeeID *uint  `json:"employee_id"`
}

func CreateUser(c *gin.Context) {
	var req createUserRequest
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

	role := models.UserRole(req.Role)
	if !role.Valid() {
		respondError(c, http.StatusBadRequest, CodeValidation, "role must be admin, employee or viewer")
		return
	}

	if role == models.RoleEmployee {
		if req.EmployeeID == nil || *req.EmployeeID == 0 {
			respondError(c, http.StatusBadRequest, CodeValidation, "employee_id is required for employee accounts")
			return
		}
		var employee models.Employee
		if err := database.DB.First(&employee, *req.EmployeeID).Error; err != nil {
			respondError(c, http.StatusBadRequest, CodeValidation, "employee not found")
			return
		}
	} else {
		// linkage is meaningless for admin/viewer accounts
		req.EmployeeID = nil
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

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		EmployeeID:   req.EmployeeID,
		IsActive:     true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to create user")
		return
	}

	if ident, ok := middleware.CurrentIdentity(c); ok {
		database.CreateAuditLog(ident.UserID, "user", user.ID, "create", "created user "+user.Username)
	}

	database.DB.Preload("Employee").First(&user, user.ID)
	c.JSON(http.StatusCreated, user)
}

func ListUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Preload("Employee").Order("username asc").Find(&users).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to load users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type updateUserRequest struct {
	Username   *string `json:"username"`
	Password   *string `json:"password"`
	Role       *string `json:"role"`
	EmployeeID *uint   `json:"employee_id"`
	IsActive   *bool   `json:"is_active"`
}

func UpdateUser(c *gin.Context) {
	id := paramUint(c, "id")
	if id == 0 {
		respondError(c, http.StatusBadRequest, CodeValidation, "invalid user id")
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "user not found")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	if req.Username != nil {
		name := strings.TrimSpace(*req.Username)
		if len(name) < 3 {
			respondError(c, http.StatusBadRequest, CodeValidation, "username must be at least 3 characters")
			return
		}
		var count int64
		if err := database.DB.Model(&models.User{}).
			Where("username = ? AND id <> ?", name, user.ID).
			Count(&count).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to check username")
			return
		}
		if count > 0 {
			respondError(c, http.StatusBadRequest, CodeDuplicateUsername, "username already taken")
			return
		}
		user.Username = name
	}

	if req.Role != nil {
		role := models.UserRole(*req.Role)
		if !role.Valid() {
			respondError(c, http.StatusBadRequest, CodeValidation, "role must be admin, employee or viewer")
			return
		}
		user.Role = role
	}

	if req.EmployeeID != nil {
		if *req.EmployeeID == 0 {
			user.EmployeeID = nil
		} else {
			var employee models.Employee
			if err := database.DB.First(&employee, *req.EmployeeID).Error; err != nil {
				respondError(c, http.StatusBadRequest, CodeValidation, "employee not found")
				return
			}
			user.EmployeeID = req.EmployeeID
		}
	}

	if user.Role == models.RoleEmployee {
		if user.EmployeeID == nil || *user.EmployeeID == 0 {
			respondError(c, http.StatusBadRequest, CodeValidation, "employee accounts must be linked to an employee")
			return
		}
	} else {
		user.EmployeeID = nil
	}

	// password omitted = unchanged
	if req.Password != nil {
		if len(*req.Password) < 6 {
			respondError(c, http.StatusBadRequest, CodeValidation, "password must be at least 6 characters")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to hash password")
			return
		}
		user.PasswordHash = string(hash)
	}

	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to update user")
		return
	}

	if ident, ok := middleware.CurrentIdentity(c); ok {
		database.CreateAuditLog(ident.UserID, "user", user.ID, "update", "updated user "+user.Username)
	}

	database.DB.Preload("Employee").First(&user, user.ID)
	c.JSON(http.StatusOK, user)
}

func DeleteUser(c *gin.Context) {
	id := paramUint(c, "id")
	if id == 0 {
		respondError(c, http.StatusBadRequest, CodeValidation, "invalid user id")
		return
	}

	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthenticated, "authentication required")
		return
	}
	if ident.UserID == id {
		respondError(c, http.StatusBadRequest, CodeCannotDeleteSelf, "cannot delete your own account")
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "user not found")
		return
	}

	// grants go with the account; both or neither
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.ViewerAccess{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to delete user")
		return
	}

	database.CreateAuditLog(ident.UserID, "user", user.ID, "delete", "deleted user "+user.Username)
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
