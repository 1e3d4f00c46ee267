package handlers

import (
	"net/http"
	"strings"

	"eod-reports/internal/database"
	"eod-reports/internal/middleware"
	"eod-reports/internal/models"

	"github.com/gin-gonic/gin"
)

//
// EMPLOYEES
//

// ListEmployees is readable by every role; employees only see themselves.
func ListEmployees(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthenticated, "authentication required")
		return
	}

	q := database.DB.Order("name asc")
	if ident.Role == models.RoleEmployee {
		q = q.Where("id = ?", ident.EmployeeID)
	}

	var employees []models.Employee
	if err := q.Find(&employees).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to load employees")
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

type createEmployeeRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Position   string  `json:"position"`
	HourlyRate float64 `json:"hourly_rate"`
}

func CreateEmployee(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(c, http.StatusBadRequest, CodeValidation, "name is required")
		return
	}
	if req.HourlyRate < 0 {
		respondError(c, http.StatusBadRequest, CodeValidation, "hourly_rate cannot be negative")
		return
	}

	employee := models.Employee{
		Name:       req.Name,
		Email:      strings.TrimSpace(req.Email),
		Position:   strings.TrimSpace(req.Position),
		HourlyRate: req.HourlyRate,
		IsActive:   true,
	}
	if err := database.DB.Create(&employee).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to create employee")
		return
	}

	if ident, ok := middleware.CurrentIdentity(c); ok {
		database.CreateAuditLog(ident.UserID, "employee", employee.ID, "create",
			"created employee "+employee.Name)
	}
	c.JSON(http.StatusCreated, employee)
}

type updateEmployeeRequest struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Position   *string  `json:"position"`
	HourlyRate *float64 `json:"hourly_rate"`
	IsActive   *bool    `json:"is_active"`
}

func UpdateEmployee(c *gin.Context) {
	id := paramUint(c, "id")
	if id == 0 {
		respondError(c, http.StatusBadRequest, CodeValidation, "invalid employee id")
		return
	}

	var employee models.Employee
	if err := database.DB.First(&employee, id).Error; err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "employee not found")
		return
	}

	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			respondError(c, http.StatusBadRequest, CodeValidation, "name cannot be empty")
			return
		}
		employee.Name = name
	}
	if req.Email != nil {
		employee.Email = strings.TrimSpace(*req.Email)
	}
	if req.Position != nil {
		employee.Position = strings.TrimSpace(*req.Position)
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			respondError(c, http.StatusBadRequest, CodeValidation, "hourly_rate cannot be negative")
			return
		}
		employee.HourlyRate = *req.HourlyRate
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&employee).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to update employee")
		return
	}

	if ident, ok := middleware.CurrentIdentity(c); ok {
		database.CreateAuditLog(ident.UserID, "employee", employee.ID, "update",
			"updated employee "+employee.Name)
	}
	c.JSON(http.StatusOK, employee)
}
