package handlers

import (
	"net/http"

	"eod-reports/internal/authz"
	"eod-reports/internal/database"
	"eod-reports/internal/middleware"
	"eod-reports/internal/models"

	"github.com/gin-gonic/gin"
)

// ListProjects returns the distinct project names visible to the caller.
func ListProjects(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthenticated, "authentication required")
		return
	}

	scope := authz.ScopeFor(ident, queryUint(c, "employee_id"))
	q := scope.Apply(database.DB.Model(&models.Report{}), "employee_id")
	q = dateRange(c, q, "report_date")

	var names []string
	if err := q.Distinct("project_name").Order("project_name asc").
		Pluck("project_name", &names).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to load projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": names})
}
