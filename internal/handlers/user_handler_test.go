package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"warung-pos/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRouter(t *testing.T, adminID int64) (*gin.Engine, *UserHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(newTestStore(t))
	r := gin.New()
	r.Use(asUser(adminID, "admin"))
	r.GET("/api/users", h.List)
	r.POST("/api/users", h.Create)
	r.PUT("/api/users/:id", h.Update)
	r.DELETE("/api/users/:id", h.Delete)
	r.PUT("/api/users/:id/reset-password", h.ResetPassword)
	r.POST("/api/users/check-username", h.CheckUsername)
	return r, h
}

func postJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateUserAndListSanitizes(t *testing.T) {
	r, _ := newUserRouter(t, 1)

	rec := postJSON(r, "POST", "/api/users", `{"username":"siti","name":"Siti","password":"rahasia1","role":"cashier"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Empty(t, created.Password, "hash must never leave the API")
	assert.Equal(t, "active", created.Status, "status defaults to active")

	// Duplicate username, different case.
	rec = postJSON(r, "POST", "/api/users", `{"username":"SITI","name":"x","password":"apaaja","role":"cashier"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/users", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Password)
}

func TestUpdateUser(t *testing.T) {
	r, _ := newUserRouter(t, 1)

	rec := postJSON(r, "POST", "/api/users", `{"username":"siti","name":"Siti","password":"rahasia1","role":"cashier"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var created models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	rec = postJSON(r, "PUT", fmt.Sprintf("/api/users/%d", created.ID),
		`{"username":"siti","name":"Siti Aminah","role":"admin","status":"inactive"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, "Siti Aminah", updated.Name)
	assert.Equal(t, "admin", updated.Role)
	assert.Equal(t, "inactive", updated.Status)
	assert.False(t, updated.UpdatedAt.IsZero())

	rec = postJSON(r, "PUT", "/api/users/999999", `{"username":"ghost","name":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUserRefusesSelf(t *testing.T) {
	r, h := newUserRouter(t, 1)

	rec := postJSON(r, "POST", "/api/users", `{"username":"siti","name":"Siti","password":"rahasia1","role":"cashier"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var created models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	// A request authenticated as the same user may not delete it.
	self := gin.New()
	self.Use(asUser(created.ID, "admin"))
	self.DELETE("/api/users/:id", h.Delete)
	rec = httptest.NewRecorder()
	self.ServeHTTP(rec, httptest.NewRequest("DELETE", fmt.Sprintf("/api/users/%d", created.ID), nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("DELETE", fmt.Sprintf("/api/users/%d", created.ID), nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("DELETE", fmt.Sprintf("/api/users/%d", created.ID), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResetPassword(t *testing.T) {
	r, _ := newUserRouter(t, 1)

	rec := postJSON(r, "POST", "/api/users", `{"username":"siti","name":"Siti","password":"rahasia1","role":"cashier"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var created models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	rec = postJSON(r, "PUT", fmt.Sprintf("/api/users/%d/reset-password", created.ID), `{"newPassword":"12345"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "minimum six characters")

	rec = postJSON(r, "PUT", fmt.Sprintf("/api/users/%d/reset-password", created.ID), `{"newPassword":"123456"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckUsername(t *testing.T) {
	r, _ := newUserRouter(t, 1)

	rec := postJSON(r, "POST", "/api/users", `{"username":"siti","name":"Siti","password":"rahasia1","role":"cashier"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(r, "POST", "/api/users/check-username", `{"username":"SITI"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]bool
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp["exists"])

	rec = postJSON(r, "POST", "/api/users/check-username", `{"username":"baru"}`)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp["exists"])
}
