package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eod-reports/internal/authz"
	"eod-reports/internal/database"
	"eod-reports/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newMockDB points the global DB at a sqlmock connection for one test.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	database.DB = gdb
	t.Cleanup(func() {
		database.DB = nil
		db.Close()
	})
	return mock
}

// newTestRouter builds a router with session support and a seed route that
// plants an identity snapshot the way Login does.
func newTestRouter(register func(r *gin.Engine)) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("test_session", memstore.NewStore([]byte("test-secret"))))

	r.POST("/seed", func(c *gin.Context) {
		var ident authz.Identity
		if err := c.ShouldBindJSON(&ident); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		sess := sessions.Default(c)
		sess.Set("user_id", ident.UserID)
		sess.Set("username", ident.Username)
		sess.Set("role", string(ident.Role))
		if ident.EmployeeID > 0 {
			sess.Set("employee_id", ident.EmployeeID)
		}
		_ = sess.Save()
		c.Status(http.StatusNoContent)
	})

	register(r)
	return r
}

func seedIdentity(t *testing.T, r *gin.Engine, ident authz.Identity) []*http.Cookie {
	t.Helper()
	body, err := json.Marshal(ident)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/seed", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func doJSON(r *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	r.ServeHTTP(w, req)
	return w
}

func adminIdentity() authz.Identity {
	return authz.Identity{UserID: 1, Username: "admin", Role: models.RoleAdmin}
}

func employeeIdentity() authz.Identity {
	return authz.Identity{UserID: 3, Username: "emp1", Role: models.RoleEmployee, EmployeeID: 7}
}

func viewerIdentity() authz.Identity {
	return authz.Identity{UserID: 5, Username: "temp_client", Role: models.RoleViewer}
}
