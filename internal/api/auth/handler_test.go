package auth

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"coursehub/config"
	"coursehub/database"
	"coursehub/internal/domain/users"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JWT_SECRET = "test-secret"

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}, &users.Role{}, &users.VerificationToken{}))

	database.DB = db
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, password string, verified bool, roleNames ...string) users.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashed := string(hash)

	u := users.User{Name: "Alice", Email: email, Password: &hashed, AuthProvider: "local", IsVerified: verified, IsActive: true}
	for _, name := range roleNames {
		role := users.Role{Name: name}
		require.NoError(t, db.Where("name = ?", name).FirstOrCreate(&role).Error)
		u.Roles = append(u.Roles, role)
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func postJSON(handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.POST("/x", handler)
	req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIsPasswordStrong(t *testing.T) {
	assert.True(t, isPasswordStrong("abcdef12"))
	assert.False(t, isPasswordStrong("short1"))
	assert.False(t, isPasswordStrong("onlyletters"))
	assert.False(t, isPasswordStrong("12345678"))
}

func TestLogin(t *testing.T) {
	db := setupDB(t)
	u := seedUser(t, db, "alice@example.com", "secret12", true, users.RoleModerator)

	w := postJSON(Login, `{"email":"alice@example.com","password":"secret12"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	// A successful login stamps the inactivity clock.
	var stored users.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	assert.NotNil(t, stored.LastLogin)

	// Wrong password and unknown account must be indistinguishable.
	w = postJSON(Login, `{"email":"alice@example.com","password":"wrongpass1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = postJSON(Login, `{"email":"nobody@example.com","password":"secret12"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginDeactivated(t *testing.T) {
	db := setupDB(t)
	u := seedUser(t, db, "alice@example.com", "secret12", true)
	require.NoError(t, db.Model(&users.User{}).Where("id = ?", u.ID).Update("is_active", false).Error)

	w := postJSON(Login, `{"email":"alice@example.com","password":"secret12"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "deactivated")
}

func TestLoginUnverified(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "alice@example.com", "secret12", false)

	w := postJSON(Login, `{"email":"alice@example.com","password":"secret12"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestIssueAppJWTClaims(t *testing.T) {
	setupDB(t)
	user := users.User{ID: 7, Email: "alice@example.com", Roles: []users.Role{{Name: users.RoleModerator}}}

	tokenString, err := issueAppJWT(user)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte(config.JWT_SECRET), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)

	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, []interface{}{users.RoleModerator}, claims["roles"])
	assert.NotNil(t, claims["exp"])
}
