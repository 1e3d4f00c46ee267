package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"eod-reports/internal/authz"
	"eod-reports/internal/database"
	"eod-reports/internal/middleware"
	"eod-reports/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

//
// REPORTS
//

func ListReports(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthenticated, "authentication required")
		return
	}

	scope := authz.ScopeFor(ident, queryUint(c, "employee_id"))

	q := scope.Apply(database.DB.Preload("Employee").Preload("Screenshots"), "employee_id")
	q = dateRange(c, q, "report_date")
	if p := c.Query("project"); p != "" {
		q = q.Where("project_name = ?", p)
	}

	var reports []models.Report
	if err := q.Order("report_date desc").Find(&reports).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to load reports")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

type screenshotInput struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

type createReportRequest struct {
	EmployeeID  uint              `json:"employee_id"`
	ReportDate  string            `json:"report_date"` // YYYY-MM-DD
	ProjectName string            `json:"project_name"`
	Hours       float64           `json:"hours"`
	Notes       string            `json:"notes"`
	Screenshots []screenshotInput `json:"screenshots"`
}

func CreateReport(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthenticated, "authentication required")
		return
	}

	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	// employees may omit the owner field; it can only ever be themselves
	if req.EmployeeID == 0 && ident.Role == models.RoleEmployee {
		req.EmployeeID = ident.EmployeeID
	}

	if err := authz.CanCreateReport(ident, req.EmployeeID); err != nil {
		guardError(c, err)
		return
	}

	if req.EmployeeID == 0 {
		respondError(c, http.StatusBadRequest, CodeValidation, "employee_id is required")
		return
	}
	reportDate, err := time.Parse("2006-01-02", req.ReportDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "report_date must be YYYY-MM-DD")
		return
	}
	req.ProjectName = strings.TrimSpace(req.ProjectName)
	if req.ProjectName == "" {
		respondError(c, http.StatusBadRequest, CodeValidation, "project_name is required")
		return
	}
	if req.Hours <= 0 || req.Hours > 24 {
		respondError(c, http.StatusBadRequest, CodeValidation, "hours must be between 0 and 24")
		return
	}

	var employee models.Employee
	if err := database.DB.First(&employee, req.EmployeeID).Error; err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "employee not found")
		return
	}

	var report models.Report
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		report = models.Report{
			EmployeeID:  req.EmployeeID,
			ReportDate:  reportDate,
			ProjectName: req.ProjectName,
			Hours:       req.Hours,
			Notes:       req.Notes,
		}
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		for i, s := range req.Screenshots {
			shot := models.Screenshot{
				ReportID: report.ID,
				URL:      s.URL,
				Caption:  s.Caption,
				Position: i,
			}
			if err := tx.Create(&shot).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to create report")
		return
	}

	database.CreateAuditLog(ident.UserID, "report", report.ID, "create",
		"created report for "+req.ProjectName)

	database.DB.Preload("Employee").Preload("Screenshots").First(&report, report.ID)
	c.JSON(http.StatusCreated, report)
}

type updateReportRequest struct {
	ReportDate  *string            `json:"report_date"`
	ProjectName *string            `json:"project_name"`
	Hours       *float64           `json:"hours"`
	Notes       *string            `json:"notes"`
	Screenshots *[]screenshotInput `json:"screenshots"`
}

func UpdateReport(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthenticated, "authentication required")
		return
	}
	// viewers are rejected before we even look at the report
	if ident.Role == models.RoleViewer {
		guardError(c, authz.ErrViewerReadOnly)
		return
	}

	id := paramUint(c, "id")
	if id == 0 {
		respondError(c, http.StatusBadRequest, CodeValidation, "invalid report id")
		return
	}

	var report models.Report
	if err := database.DB.Preload("Screenshots").First(&report, id).Error; err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "report not found")
		return
	}

	if err := authz.CanMutateReport(ident, &report, time.Now()); err != nil {
		guardError(c, err)
		return
	}

	var req updateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	if req.ReportDate != nil {
		t, err := time.Parse("2006-01-02", *req.ReportDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, CodeValidation, "report_date must be YYYY-MM-DD")
			return
		}
		report.ReportDate = t
	}
	if req.ProjectName != nil {
		name := strings.TrimSpace(*req.ProjectName)
		if name == "" {
			respondError(c, http.StatusBadRequest, CodeValidation, "project_name cannot be empty")
			return
		}
		report.ProjectName = name
	}
	if req.Hours != nil {
		if *req.Hours <= 0 || *req.Hours > 24 {
			respondError(c, http.StatusBadRequest, CodeValidation, "hours must be between 0 and 24")
			return
		}
		report.Hours = *req.Hours
	}
	if req.Notes != nil {
		report.Notes = *req.Notes
	}

	// URLs dropped by the new screenshot set; cleaned up after commit
	var removedURLs []string
	if req.Screenshots != nil {
		keep := map[string]struct{}{}
		for _, s := range *req.Screenshots {
			keep[s.URL] = struct{}{}
		}
		for _, old := range report.Screenshots {
			if _, ok := keep[old.URL]; !ok {
				removedURLs = append(removedURLs, old.URL)
			}
		}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&report).Error; err != nil {
			return err
		}
		if req.Screenshots == nil {
			return nil
		}
		if err := tx.Where("report_id = ?", report.ID).Delete(&models.Screenshot{}).Error; err != nil {
			return err
		}
		for i, s := range *req.Screenshots {
			shot := models.Screenshot{
				ReportID: report.ID,
				URL:      s.URL,
				Caption:  s.Caption,
				Position: i,
			}
			if err := tx.Create(&shot).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to update report")
		return
	}

	deleteBlobs(c, removedURLs)

	database.CreateAuditLog(ident.UserID, "report", report.ID, "update",
		"updated report for "+report.ProjectName)

	database.DB.Preload("Employee").Preload("Screenshots").First(&report, report.ID)
	c.JSON(http.StatusOK, report)
}

func DeleteReport(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthenticated, "authentication required")
		return
	}
	if ident.Role == models.RoleViewer {
		guardError(c, authz.ErrViewerReadOnly)
		return
	}

	id := paramUint(c, "id")
	if id == 0 {
		respondError(c, http.StatusBadRequest, CodeValidation, "invalid report id")
		return
	}

	var report models.Report
	if err := database.DB.Preload("Screenshots").First(&report, id).Error; err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "report not found")
		return
	}

	if err := authz.CanMutateReport(ident, &report, time.Now()); err != nil {
		guardError(c, err)
		return
	}

	var removedURLs []string
	for _, s := range report.Screenshots {
		removedURLs = append(removedURLs, s.URL)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", report.ID).Delete(&models.Screenshot{}).Error; err != nil {
			return err
		}
		return tx.Delete(&report).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to delete report")
		return
	}

	deleteBlobs(c, removedURLs)

	database.CreateAuditLog(ident.UserID, "report", report.ID, "delete",
		"deleted report for "+report.ProjectName)

	c.JSON(http.StatusOK, gin.H{"message": "report deleted"})
}

// deleteBlobs removes detached screenshots from the image host. Best effort:
// the report mutation already committed, an orphaned image is only waste.
func deleteBlobs(c *gin.Context, urls []string) {
	for _, u := range urls {
		if err := blobStore.Delete(c.Request.Context(), u); err != nil {
			log.Printf("failed to delete screenshot %s: %v", u, err)
		}
	}
}
