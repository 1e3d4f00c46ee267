package handlers

import (
	"net/http"

	"eod-reports/internal/authz"
	"eod-reports/internal/database"
	"eod-reports/internal/middleware"
	"eod-reports/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

//
// DASHBOARD AGGREGATES
//

type projectStat struct {
	ProjectName string  `json:"project_name"`
	Hours       float64 `json:"hours"`
	Reports     int64   `json:"reports"`
}

func Stats(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthenticated, "authentication required")
		return
	}

	scope := authz.ScopeFor(ident, queryUint(c, "employee_id"))

	base := func() *gorm.DB {
		q := scope.Apply(database.DB.Model(&models.Report{}), "employee_id")
		return dateRange(c, q, "report_date")
	}

	var reportCount int64
	if err := base().Count(&reportCount).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to load stats")
		return
	}

	var totalHours float64
	if err := base().Select("COALESCE(SUM(hours), 0)").Scan(&totalHours).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to load stats")
		return
	}

	var perProject []projectStat
	if err := base().
		Select("project_name, COALESCE(SUM(hours), 0) AS hours, COUNT(*) AS reports").
		Group("project_name").
		Order("hours desc").
		Scan(&perProject).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to load stats")
		return
	}

	resp := gin.H{
		"report_count": reportCount,
		"total_hours":  totalHours,
		"per_project":  perProject,
	}

	if scope.AllEmployees {
		var employeeCount int64
		if err := database.DB.Model(&models.Employee{}).
			Where("is_active = ?", true).
			Count(&employeeCount).Error; err == nil {
			resp["active_employees"] = employeeCount
		}
	}

	c.JSON(http.StatusOK, resp)
}

type costRow struct {
	EmployeeID   uint    `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Hours        float64 `json:"hours"`
	Cost         float64 `json:"cost"`
}

// Costs aggregates hours times the employee hourly rate.
func Costs(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthenticated, "authentication required")
		return
	}

	scope := authz.ScopeFor(ident, queryUint(c, "employee_id"))

	q := database.DB.Model(&models.Report{}).
		Joins("JOIN employees ON employees.id = reports.employee_id")
	q = scope.Apply(q, "reports.employee_id")
	q = dateRange(c, q, "reports.report_date")

	var rows []costRow
	err := q.Select(
		"employees.id AS employee_id, " +
			"employees.name AS employee_name, " +
			"COALESCE(SUM(reports.hours), 0) AS hours, " +
			"COALESCE(SUM(reports.hours * employees.hourly_rate), 0) AS cost").
		Group("employees.id, employees.name").
		Order("cost desc").
		Scan(&rows).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to load costs")
		return
	}

	var total float64
	for _, r := range rows {
		total += r.Cost
	}

	c.JSON(http.StatusOK, gin.H{"items": rows, "total_cost": total})
}
