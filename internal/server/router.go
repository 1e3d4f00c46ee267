package server

import (
	"net/http"
	"time"

	"eod-reports/internal/config"
	"eod-reports/internal/database"
	"eod-reports/internal/handlers"
	"eod-reports/internal/middleware"
	"eod-reports/internal/models"

	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const sessionMaxAge = 30 * 24 * time.Hour

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.Metrics())

	// sessions live in the DB so a restart keeps everyone logged in
	store := gormsessions.NewStore(database.DB, true, []byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.Production(),
	})
	r.Use(sessions.Sessions("eod_session", store))

	// AUTH
	auth := r.Group("/api/auth")
	auth.POST("/login", middleware.LoginRateLimit(), handlers.Login)
	auth.POST("/logout", handlers.Logout)
	auth.GET("/me", handlers.Me)
	auth.POST("/change-password", middleware.RequireAuth(), handlers.ChangePassword)

	// ROLE-SCOPED DATA
	api := r.Group("/api")
	api.Use(middleware.RequireAuth())

	api.GET("/reports", handlers.ListReports)
	api.POST("/reports", handlers.CreateReport)
	api.PUT("/reports/:id", handlers.UpdateReport)
	api.DELETE("/reports/:id", handlers.DeleteReport)

	api.GET("/projects", handlers.ListProjects)
	api.GET("/stats", handlers.Stats)
	api.GET("/gallery", handlers.Gallery)
	api.GET("/costs", handlers.Costs)
	api.GET("/employees", handlers.ListEmployees)
	api.POST("/uploads", handlers.UploadScreenshot)

	// ADMIN
	admin := r.Group("/api/admin")
	admin.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin))

	admin.POST("/users", handlers.CreateUser)
	admin.GET("/users", handlers.ListUsers)
	admin.PUT("/users/:id", handlers.UpdateUser)
	admin.DELETE("/users/:id", handlers.DeleteUser)

	admin.POST("/viewer-access", handlers.CreateViewerAccess)
	admin.GET("/viewer-access", handlers.ListViewerAccess)
	admin.PUT("/viewer-access/:id/revoke", handlers.RevokeViewerAccess)

	admin.POST("/employees", handlers.CreateEmployee)
	admin.PUT("/employees/:id", handlers.UpdateEmployee)

	admin.GET("/audit", handlers.ListAuditLogs)

	// HEALTHCHECK + METRICS
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
