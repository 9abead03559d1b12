package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"devjobs/board-api/internal/auth"
	"devjobs/board-api/internal/model"
	"devjobs/board-api/internal/service"
	"devjobs/board-api/pkg/middleware"
	"devjobs/board-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type nopMailer struct {
	sent []*service.Mail
}

func (n *nopMailer) Send(m *service.Mail) error {
	n.sent = append(n.sent, m)
	return nil
}

func newTestAPI(t *testing.T) (*API, *gin.Engine) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	viper.Set("jwt.secret", "test-secret")
	viper.Set("host.ssl.enabled", false)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.User{}, model.Vacancy{}, model.Candidate{}))

	a := &API{
		DB:    db,
		Auth:  auth.NewService(db, security.New(bcrypt.MinCost), &nopMailer{}, "http://localhost"),
		Files: &service.LocalStore{Dir: t.TempDir()},
	}

	r := gin.New()
	r.Use(middleware.NewRequestIDMiddleware())

	guard := middleware.NewSessionGuard(db)

	r.POST("/api/users", a.UserRegister)
	r.POST("/api/users/login", a.UserLogin)
	r.GET("/api/users", guard, a.UserFetch)
	r.HEAD("/api/validate", guard, a.Validate)
	r.POST("/api/reestablecer-password", a.ResetRequest)
	r.GET("/api/reestablecer-password/:token", a.ResetValidate)
	r.POST("/api/reestablecer-password/:token", a.ResetConsume)

	a.Router = r

	return a, r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == "auth_token" && c.Value != "" {
			return c
		}
	}

	t.Fatal("no auth_token cookie set")
	return nil
}

func TestLoginFlow(t *testing.T) {
	_, r := newTestAPI(t)

	w := doJSON(t, r, http.MethodPost, "/api/users", gin.H{
		"name":     "Dev",
		"email":    "dev@test.com",
		"password": "secret123",
		"confirm":  "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Wrong password and unknown account answer identically
	w = doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{"email": "dev@test.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w2 := doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{"email": "ghost@test.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w2.Code)

	var b1, b2 map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b1))
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &b2))
	assert.Equal(t, b1["error"], b2["error"])

	w = doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{"email": "dev@test.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)

	w = doJSON(t, r, http.MethodGet, "/api/users", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuardDeniesWithRedirect(t *testing.T) {
	_, r := newTestAPI(t)

	w := doJSON(t, r, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, middleware.LoginRedirect, body["redirect"])
}

func TestGuardDeniesDeletedUser(t *testing.T) {
	a, r := newTestAPI(t)

	w := doJSON(t, r, http.MethodPost, "/api/users", gin.H{
		"name":     "Dev",
		"email":    "dev@test.com",
		"password": "secret123",
		"confirm":  "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{"email": "dev@test.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)

	// The id inside the session no longer resolves, so the session
	// is just unauthenticated, not an error
	require.NoError(t, a.DB.Where("email = ?", "dev@test.com").Delete(&model.User{}).Error)

	w = doJSON(t, r, http.MethodGet, "/api/users", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, r := newTestAPI(t)

	body := gin.H{
		"name":     "Dev",
		"email":    "dev@test.com",
		"password": "secret123",
		"confirm":  "secret123",
	}

	w := doJSON(t, r, http.MethodPost, "/api/users", body)
	require.Equal(t, http.StatusOK, w.Code)

	body["email"] = "DEV@test.com"
	w = doJSON(t, r, http.MethodPost, "/api/users", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestResetEndpoints(t *testing.T) {
	a, r := newTestAPI(t)

	w := doJSON(t, r, http.MethodPost, "/api/users", gin.H{
		"name":     "Dev",
		"email":    "dev@test.com",
		"password": "secret123",
		"confirm":  "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/reestablecer-password", gin.H{"email": "ghost@test.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/reestablecer-password", gin.H{"email": "dev@test.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var user model.User
	require.NoError(t, a.DB.Where("email = ?", "dev@test.com").First(&user).Error)
	require.NotNil(t, user.ResetToken)
	token := *user.ResetToken

	w = doJSON(t, r, http.MethodGet, "/api/reestablecer-password/"+token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/reestablecer-password/bogus", nil)
	assert.Equal(t, http.StatusGone, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/reestablecer-password/"+token, gin.H{
		"password": "newpass99",
		"confirm":  "newpass99",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Burned token can't be consumed again
	w = doJSON(t, r, http.MethodPost, "/api/reestablecer-password/"+token, gin.H{
		"password": "otherpass1",
		"confirm":  "otherpass1",
	})
	assert.Equal(t, http.StatusGone, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{"email": "dev@test.com", "password": "newpass99"})
	assert.Equal(t, http.StatusOK, w.Code)
}
