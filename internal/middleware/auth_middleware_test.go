package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"warung-pos/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", AuthMiddleware())
	api.GET("/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("role")})
	})
	admin := api.Group("/", RequireRole("admin"))
	admin.GET("/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	adminToken, err := auth.GenerateToken(1, "admin", "Admin", "admin")
	require.NoError(t, err)
	cashierToken, err := auth.GenerateToken(2, "kasir", "Kasir", "cashier")
	require.NoError(t, err)

	testCases := []struct {
		name           string
		path           string
		header         string
		expectedStatus int
	}{
		{"missing header", "/api/products", "", http.StatusUnauthorized},
		{"not a bearer token", "/api/products", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "/api/products", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"valid token passes", "/api/products", "Bearer " + cashierToken, http.StatusOK},
		{"cashier blocked from admin route", "/api/users", "Bearer " + cashierToken, http.StatusForbidden},
		{"admin allowed on admin route", "/api/users", "Bearer " + adminToken, http.StatusOK},
	}

	r := protectedRouter()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tc.expectedStatus, rec.Code)
		})
	}
}
