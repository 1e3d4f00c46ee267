package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func authRouter() *gin.Engine {
	return newTestRouter(func(r *gin.Engine) {
		r.POST("/api/auth/login", Login)
		r.POST("/api/auth/logout", Logout)
		r.GET("/api/auth/me", Me)
	})
}

func userRow(id uint, username, hash, role string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "employee_id", "is_active"}).
		AddRow(id, username, hash, role, nil, true)
}

func TestLoginSuccess(t *testing.T) {
	mock := newMockDB(t)
	r := authRouter()

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs("admin", true).
		WillReturnRows(userRow(1, "admin", hashFor(t, "secret123"), "admin"))

	w := doJSON(r, http.MethodPost, "/api/auth/login",
		gin.H{"username": "admin", "password": "secret123"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)
	assert.NotEmpty(t, w.Result().Cookies())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginFailuresDoNotRevealUsernames(t *testing.T) {
	mock := newMockDB(t)
	r := authRouter()

	// unknown user
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs("ghost", true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	unknown := doJSON(r, http.MethodPost, "/api/auth/login",
		gin.H{"username": "ghost", "password": "whatever"}, nil)
	require.Equal(t, http.StatusUnauthorized, unknown.Code)

	// known user, wrong password
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs("admin", true).
		WillReturnRows(userRow(1, "admin", hashFor(t, "secret123"), "admin"))

	wrong := doJSON(r, http.MethodPost, "/api/auth/login",
		gin.H{"username": "admin", "password": "nope"}, nil)
	require.Equal(t, http.StatusUnauthorized, wrong.Code)

	// identical bodies, no way to probe for valid usernames
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func grantRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at", "user_id", "expires_at", "revoked_at", "created_by", "notes"})
}

func TestLoginViewerRevokedGrant(t *testing.T) {
	mock := newMockDB(t)
	r := authRouter()

	now := time.Now()
	revoked := now.Add(-time.Hour)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs("temp_client", true).
		WillReturnRows(userRow(5, "temp_client", hashFor(t, "abc123"), "viewer"))
	mock.ExpectQuery(`SELECT .* FROM "viewer_accesses"`).
		WithArgs(5).
		WillReturnRows(grantRows().
			AddRow(11, now.Add(-2*time.Hour), 5, now.Add(70*time.Hour), revoked, 1, ""))

	w := doJSON(r, http.MethodPost, "/api/auth/login",
		gin.H{"username": "temp_client", "password": "abc123"}, nil)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "VIEWER_EXPIRED")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginViewerExpiredGrant(t *testing.T) {
	mock := newMockDB(t)
	r := authRouter()

	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs("temp_client", true).
		WillReturnRows(userRow(5, "temp_client", hashFor(t, "abc123"), "viewer"))
	mock.ExpectQuery(`SELECT .* FROM "viewer_accesses"`).
		WithArgs(5).
		WillReturnRows(grantRows().
			AddRow(11, now.Add(-80*time.Hour), 5, now.Add(-8*time.Hour), nil, 1, ""))

	w := doJSON(r, http.MethodPost, "/api/auth/login",
		gin.H{"username": "temp_client", "password": "abc123"}, nil)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "VIEWER_EXPIRED")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginViewerOnlyLatestGrantCounts(t *testing.T) {
	mock := newMockDB(t)
	r := authRouter()

	now := time.Now()
	revoked := now.Add(-time.Minute)

	// the older grant is still valid, but the newer revoked one wins
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs("temp_client", true).
		WillReturnRows(userRow(5, "temp_client", hashFor(t, "abc123"), "viewer"))
	mock.ExpectQuery(`SELECT .* FROM "viewer_accesses"`).
		WithArgs(5).
		WillReturnRows(grantRows().
			AddRow(11, now.Add(-48*time.Hour), 5, now.Add(24*time.Hour), nil, 1, "").
			AddRow(12, now.Add(-time.Hour), 5, now.Add(71*time.Hour), revoked, 1, ""))

	w := doJSON(r, http.MethodPost, "/api/auth/login",
		gin.H{"username": "temp_client", "password": "abc123"}, nil)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "VIEWER_EXPIRED")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginViewerValidGrant(t *testing.T) {
	mock := newMockDB(t)
	r := authRouter()

	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs("temp_client", true).
		WillReturnRows(userRow(5, "temp_client", hashFor(t, "abc123"), "viewer"))
	mock.ExpectQuery(`SELECT .* FROM "viewer_accesses"`).
		WithArgs(5).
		WillReturnRows(grantRows().
			AddRow(11, now.Add(-time.Hour), 5, now.Add(71*time.Hour), nil, 1, "client demo"))

	w := doJSON(r, http.MethodPost, "/api/auth/login",
		gin.H{"username": "temp_client", "password": "abc123"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"viewer"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutIsIdempotent(t *testing.T) {
	newMockDB(t)
	r := authRouter()

	first := doJSON(r, http.MethodPost, "/api/auth/logout", nil, nil)
	second := doJSON(r, http.MethodPost, "/api/auth/logout", nil, nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestMeRequiresSession(t *testing.T) {
	newMockDB(t)
	r := authRouter()

	w := doJSON(r, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHENTICATED")
}

func TestMeReturnsSnapshot(t *testing.T) {
	newMockDB(t)
	r := authRouter()
	cookies := seedIdentity(t, r, employeeIdentity())

	w := doJSON(r, http.MethodGet, "/api/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"employee_id":7`)
	assert.Contains(t, w.Body.String(), `"username":"emp1"`)
}
