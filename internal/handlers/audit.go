package handlers

import (
	"net/http"
	"strconv"

	"eod-reports/internal/database"
	"eod-reports/internal/models"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs returns recent admin and report activity, newest first.
func ListAuditLogs(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	var logs []models.AuditLog
	if err := database.DB.Preload("User").
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to load audit log")
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
