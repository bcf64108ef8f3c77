package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"warung-pos/internal/models"
	"warung-pos/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedUser(t *testing.T, s *store.Store, username, password, role, status string) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		ID:       store.NextID(),
		Username: username,
		Name:     strings.ToUpper(username),
		Password: string(hashed),
		Role:     role,
		Status:   status,
	}
	users, err := s.Users()
	require.NoError(t, err)
	require.NoError(t, s.SaveUsers(append(users, user)))
	return user
}

func TestLogin(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		expectedStatus int
		checkResponse  func(t *testing.T, resp map[string]any)
	}{
		{
			name:           "valid credentials",
			body:           `{"username":"budi","password":"rahasia1"}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, true, resp["success"])
				assert.Equal(t, "cashier", resp["role"])
				assert.NotEmpty(t, resp["token"])
			},
		},
		{
			name:           "username is trimmed and case-insensitive",
			body:           `{"username":"  BUDI ","password":"rahasia1"}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "budi", resp["username"])
			},
		},
		{
			name:           "wrong password",
			body:           `{"username":"budi","password":"salah"}`,
			expectedStatus: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "Invalid credentials", resp["message"])
			},
		},
		{
			name:           "unknown user",
			body:           `{"username":"siapa","password":"apa"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "inactive account",
			body:           `{"username":"tono","password":"rahasia2"}`,
			expectedStatus: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "Account is inactive", resp["message"])
			},
		},
		{
			name:           "missing fields",
			body:           `{"username":"budi"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	gin.SetMode(gin.TestMode)
	s := newTestStore(t)
	seedUser(t, s, "budi", "rahasia1", "cashier", "active")
	seedUser(t, s, "tono", "rahasia2", "cashier", "inactive")

	r := gin.New()
	h := NewAuthHandler(s)
	r.POST("/api/login", h.Login)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/login", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.checkResponse != nil {
				var resp map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				tc.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := newTestStore(t)
	seedUser(t, s, "admin", "rahasia1", "admin", "active")

	h := NewAuthHandler(s)
	r := gin.New()
	r.POST("/api/login", h.Login)
	r.GET("/api/auth/status", h.Status)

	// No token: unauthenticated, still 200.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/auth/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, false, resp["authenticated"])

	// Log in, then ask again with the bearer token.
	req := httptest.NewRequest("POST", "/api/login", strings.NewReader(`{"username":"admin","password":"rahasia1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var login map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&login))

	req = httptest.NewRequest("GET", "/api/auth/status", nil)
	req.Header.Set("Authorization", "Bearer "+login["token"].(string))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, true, resp["authenticated"])
	user := resp["user"].(map[string]any)
	assert.Equal(t, "admin", user["role"])
}

func TestValidatePassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := newTestStore(t)
	user := seedUser(t, s, "kasir", "pintu123", "cashier", "active")

	h := NewAuthHandler(s)
	r := gin.New()
	r.Use(asUser(user.ID, user.Role))
	r.POST("/api/validate-current-user-password", h.ValidatePassword)

	req := httptest.NewRequest("POST", "/api/validate-current-user-password", strings.NewReader(`{"password":"pintu123"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest("POST", "/api/validate-current-user-password", strings.NewReader(`{"password":"bukan"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
