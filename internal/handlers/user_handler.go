package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"warung-pos/internal/models"
	"warung-pos/internal/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var (
	errUsernameTaken = errors.New("username already exists")
	errUserNotFound  = errors.New("user not found")
)

type UserHandler struct {
	store *store.Store
}

func NewUserHandler(s *store.Store) *UserHandler {
	return &UserHandler{store: s}
}

// List returns all users with their password hashes stripped.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.store.Users()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load users")
		return
	}
	sanitized := make([]models.User, len(users))
	for i, u := range users {
		sanitized[i] = u.Sanitized()
	}
	c.JSON(http.StatusOK, sanitized)
}

type userRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var input userRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		fail(c, http.StatusBadRequest, "Username and password are required.")
		return
	}
	if input.Status == "" {
		input.Status = "active"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	var created models.User
	err = h.store.Mutate(func() error {
		users, err := h.store.Users()
		if err != nil {
			return err
		}
		if usernameTaken(users, input.Username, 0) {
			return errUsernameTaken
		}
		created = models.User{
			ID:        store.NextID(),
			Username:  input.Username,
			Name:      strings.TrimSpace(input.Name),
			Password:  string(hashed),
			Role:      input.Role,
			Status:    input.Status,
			CreatedAt: time.Now(),
		}
		return h.store.SaveUsers(append(users, created))
	})
	if errors.Is(err, errUsernameTaken) {
		fail(c, http.StatusBadRequest, "Username \""+input.Username+"\" already exists. Please use another username.")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create user")
		return
	}
	c.JSON(http.StatusOK, created.Sanitized())
}

func (h *UserHandler) Update(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid user ID")
		return
	}
	var input userRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" {
		fail(c, http.StatusBadRequest, "Username is required.")
		return
	}

	var updated models.User
	err = h.store.Mutate(func() error {
		users, err := h.store.Users()
		if err != nil {
			return err
		}
		if usernameTaken(users, input.Username, userID) {
			return errUsernameTaken
		}
		for i := range users {
			if users[i].ID != userID {
				continue
			}
			users[i].Username = input.Username
			users[i].Name = strings.TrimSpace(input.Name)
			if input.Role != "" {
				users[i].Role = input.Role
			}
			if input.Status != "" {
				users[i].Status = input.Status
			}
			if input.Password != "" {
				hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
				if err != nil {
					return err
				}
				users[i].Password = string(hashed)
			}
			users[i].UpdatedAt = time.Now()
			updated = users[i]
			return h.store.SaveUsers(users)
		}
		return errUserNotFound
	})
	if errors.Is(err, errUsernameTaken) {
		fail(c, http.StatusBadRequest, "Username \""+input.Username+"\" already exists. Please use another username.")
		return
	}
	if errors.Is(err, errUserNotFound) {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, updated.Sanitized())
}

// Delete removes a user. Deleting yourself is refused so an admin can
// never lock the shop out mid-session.
func (h *UserHandler) Delete(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if c.GetInt64("userID") == userID {
		fail(c, http.StatusBadRequest, "Cannot delete the currently logged-in user")
		return
	}

	err = h.store.Mutate(func() error {
		users, err := h.store.Users()
		if err != nil {
			return err
		}
		kept := users[:0]
		for _, u := range users {
			if u.ID != userID {
				kept = append(kept, u)
			}
		}
		if len(kept) == len(users) {
			return errUserNotFound
		}
		return h.store.SaveUsers(kept)
	})
	if errors.Is(err, errUserNotFound) {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid user ID")
		return
	}
	var input struct {
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || len(input.NewPassword) < 6 {
		fail(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	err = h.store.Mutate(func() error {
		users, err := h.store.Users()
		if err != nil {
			return err
		}
		for i := range users {
			if users[i].ID == userID {
				users[i].Password = string(hashed)
				users[i].UpdatedAt = time.Now()
				return h.store.SaveUsers(users)
			}
		}
		return errUserNotFound
	})
	if errors.Is(err, errUserNotFound) {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to reset password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successfully"})
}

// CheckUsername powers the admin form's live availability hint.
func (h *UserHandler) CheckUsername(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	excludeID, _ := strconv.ParseInt(c.Query("excludeId"), 10, 64)

	users, err := h.store.Users()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": usernameTaken(users, strings.TrimSpace(input.Username), excludeID)})
}

func usernameTaken(users []models.User, username string, excludeID int64) bool {
	for _, u := range users {
		if u.ID != excludeID && strings.EqualFold(u.Username, username) {
			return true
		}
	}
	return false
}
