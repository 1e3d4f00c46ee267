package handlers

import (
	"net/http"
	"time"

	"eod-reports/internal/authz"
	"eod-reports/internal/database"
	"eod-reports/internal/middleware"
	"eod-reports/internal/models"

	"github.com/gin-gonic/gin"
)

type galleryItem struct {
	ID          uint      `json:"id"`
	URL         string    `json:"url"`
	Caption     string    `json:"caption"`
	ReportID    uint      `json:"report_id"`
	EmployeeID  uint      `json:"employee_id"`
	ProjectName string    `json:"project_name"`
	ReportDate  time.Time `json:"report_date"`
}

// Gallery lists screenshots across reports, newest first.
func Gallery(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthenticated, "authentication required")
		return
	}

	scope := authz.ScopeFor(ident, queryUint(c, "employee_id"))

	q := database.DB.Model(&models.Screenshot{}).
		Joins("JOIN reports ON reports.id = screenshots.report_id")
	q = scope.Apply(q, "reports.employee_id")
	q = dateRange(c, q, "reports.report_date")
	if p := c.Query("project"); p != "" {
		q = q.Where("reports.project_name = ?", p)
	}

	var items []galleryItem
	err := q.Select(
		"screenshots.id, screenshots.url, screenshots.caption, " +
			"reports.id AS report_id, reports.employee_id, " +
			"reports.project_name, reports.report_date").
		Order("reports.report_date desc, screenshots.position asc").
		Scan(&items).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to load gallery")
		return
	}

	c.JSON(http.StatusOK, gin.H{"screenshots": items})
}
