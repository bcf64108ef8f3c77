package handlers

import (
	"net/http"
	"strings"
	"time"

	"warung-pos/internal/auth"
	"warung-pos/internal/models"
	"warung-pos/internal/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	store *store.Store
}

func NewAuthHandler(s *store.Store) *AuthHandler {
	return &AuthHandler{store: s}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and hands out a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Username and password are required.")
		return
	}

	users, err := h.store.Users()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	username := strings.TrimSpace(input.Username)
	var user *models.User
	for i := range users {
		if strings.EqualFold(users[i].Username, username) {
			user = &users[i]
			break
		}
	}
	if user == nil {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if user.Status == "inactive" {
		fail(c, http.StatusUnauthorized, "Account is inactive")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Name, user.Role)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"token":    token,
		"role":     user.Role,
		"username": user.Username,
		"name":     user.Name,
	})
}

// Logout exists for the frontend's benefit; tokens are stateless and
// simply expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully."})
}

// Status reports whether the caller's bearer token (if any) is valid.
func (h *AuthHandler) Status(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if authHeader == "" || tokenString == authHeader {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	claims, err := auth.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user": gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
			"name":     claims.Name,
			"role":     claims.Role,
		},
	})
}

// Register creates an admin account. Only wired up when the
// ALLOW_REGISTRATION flag is set in the environment.
func (h *AuthHandler) Register(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Username and password are required.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	username := strings.TrimSpace(input.Username)
	err = h.store.Mutate(func() error {
		users, err := h.store.Users()
		if err != nil {
			return err
		}
		for _, u := range users {
			if strings.EqualFold(u.Username, username) {
				return errUsernameTaken
			}
		}
		users = append(users, models.User{
			ID:        store.NextID(),
			Username:  username,
			Name:      username,
			Password:  string(hashed),
			Role:      "admin",
			Status:    "active",
			CreatedAt: time.Now(),
		})
		return h.store.SaveUsers(users)
	})
	if err == errUsernameTaken {
		fail(c, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User created successfully!"})
}

// ValidatePassword re-checks the logged-in user's password before
// dangerous admin actions.
func (h *AuthHandler) ValidatePassword(c *gin.Context) {
	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Password is required.")
		return
	}

	userID := c.GetInt64("userID")
	users, err := h.store.Users()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error.")
		return
	}
	for _, u := range users {
		if u.ID == userID {
			if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(input.Password)) == nil {
				c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password validated."})
			} else {
				fail(c, http.StatusUnauthorized, "Invalid password.")
			}
			return
		}
	}
	fail(c, http.StatusNotFound, "User not found.")
}
