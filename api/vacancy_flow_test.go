package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"devjobs/board-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vacancyRoutes(a *API, r *gin.Engine) {
	guard := middleware.NewSessionGuard(a.DB)

	r.GET("/api/vacantes", a.VacancyList)
	r.GET("/api/vacantes/:url", a.VacancyFetch)
	r.POST("/api/vacantes/buscador", a.VacancySearch)
	r.POST("/api/vacantes", guard, a.VacancyCreate)
	r.PUT("/api/vacantes/:url", guard, a.VacancyEdit)
	r.DELETE("/api/vacantes/:id", guard, a.VacancyDelete)
	r.POST("/api/vacantes/:url/candidatos", a.CandidateApply)
	r.GET("/api/vacantes/:url/candidatos", guard, a.CandidateList)
}

func registerAndLogin(t *testing.T, r *gin.Engine, email string) *http.Cookie {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/users", gin.H{
		"name":     "Dev",
		"email":    email,
		"password": "secret123",
		"confirm":  "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)

	return sessionCookie(t, w)
}

func createVacancy(t *testing.T, r *gin.Engine, cookie *http.Cookie, title string) (id, url string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/vacantes", gin.H{
		"title":       title,
		"company":     "ACME",
		"location":    "Remote",
		"salary":      "50k",
		"contract":    "full-time",
		"description": "Build things",
		"skills":      []string{"go", "sql"},
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Vacancy struct {
			ID  string `json:"id"`
			URL string `json:"url"`
		} `json:"vacancy"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body.Vacancy.ID, body.Vacancy.URL
}

func TestVacancyLifecycle(t *testing.T) {
	a, r := newTestAPI(t)
	vacancyRoutes(a, r)

	cookie := registerAndLogin(t, r, "owner@test.com")

	_, url := createVacancy(t, r, cookie, "Senior Go Developer")
	assert.Contains(t, url, "senior-go-developer-")

	w := doJSON(t, r, http.MethodGet, "/api/vacantes/"+url, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/vacantes", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/vacantes/buscador", gin.H{"q": "Go"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Senior Go Developer")

	w = doJSON(t, r, http.MethodPut, "/api/vacantes/"+url, gin.H{
		"title":       "Staff Go Developer",
		"company":     "ACME",
		"location":    "Remote",
		"contract":    "full-time",
		"description": "Build bigger things",
	}, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVacancyOwnershipEnforced(t *testing.T) {
	a, r := newTestAPI(t)
	vacancyRoutes(a, r)

	owner := registerAndLogin(t, r, "owner@test.com")
	intruder := registerAndLogin(t, r, "intruder@test.com")

	id, url := createVacancy(t, r, owner, "Senior Go Developer")

	// Someone else's vacancy doesn't resolve for edits or deletes
	w := doJSON(t, r, http.MethodPut, "/api/vacantes/"+url, gin.H{
		"title":       "Hijacked",
		"company":     "Evil",
		"location":    "Nowhere",
		"contract":    "none",
		"description": "Hijacked",
	}, intruder)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/vacantes/"+id, nil, intruder)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/vacantes/"+id, nil, owner)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCandidateApplyAndList(t *testing.T) {
	a, r := newTestAPI(t)
	vacancyRoutes(a, r)

	viper.Set("upload.cv_max_size", int64(2<<20))

	owner := registerAndLogin(t, r, "owner@test.com")
	_, url := createVacancy(t, r, owner, "Senior Go Developer")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Applicant"))
	require.NoError(t, mw.WriteField("email", "applicant@test.com"))

	fw, err := mw.CreateFormFile("cv", "cv.pdf")
	require.NoError(t, err)
	fw.Write([]byte("%PDF-1.4\n% fake but sniffable\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/vacantes/"+url+"/candidatos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := doJSON(t, r, http.MethodGet, "/api/vacantes/"+url+"/candidatos", nil, owner)
	require.Equal(t, http.StatusOK, got.Code)
	assert.Contains(t, got.Body.String(), "applicant@test.com")

	// Applications are private to the owner
	intruder := registerAndLogin(t, r, "intruder@test.com")
	got = doJSON(t, r, http.MethodGet, "/api/vacantes/"+url+"/candidatos", nil, intruder)
	assert.Equal(t, http.StatusNotFound, got.Code)
}

func TestCandidateApplyRejectsNonPDF(t *testing.T) {
	a, r := newTestAPI(t)
	vacancyRoutes(a, r)

	viper.Set("upload.cv_max_size", int64(2<<20))

	owner := registerAndLogin(t, r, "owner@test.com")
	_, url := createVacancy(t, r, owner, "Senior Go Developer")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Applicant"))
	require.NoError(t, mw.WriteField("email", "applicant@test.com"))

	fw, err := mw.CreateFormFile("cv", "cv.exe")
	require.NoError(t, err)
	fw.Write([]byte("MZ\x90\x00 definitely not a pdf"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/vacantes/"+url+"/candidatos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
