package handlers

import (
	"net/http"

	"foodshare-api/config"
	"foodshare-api/middleware"
	"foodshare-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name             string          `json:"name" binding:"required,min=2,max=100"`
	Email            string          `json:"email" binding:"required,email"`
	Password         string          `json:"password" binding:"required,min=6"`
	Role             models.UserRole `json:"role" binding:"required"`
	OrganizationName string          `json:"organization_name" binding:"max=150"`
	Phone            string          `json:"phone" binding:"max=20"`
	Address          string          `json:"address" binding:"max=300"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new restaurant or NGO account. Admin accounts are
// seeded out-of-band and can never be self-registered.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Role != models.RoleRestaurant && req.Role != models.RoleNGO {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: restaurant or ngo"})
		return
	}

	// Check email uniqueness
	var existing models.User
	if result := config.DB.Where("email = ?", req.Email).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:             req.Name,
		Email:            req.Email,
		PasswordHash:     string(hash),
		Role:             req.Role,
		OrganizationName: req.OrganizationName,
		Phone:            req.Phone,
		Address:          req.Address,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Login authenticates a user and returns a JWT
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// GetProfile returns the authenticated user's profile with derived
// donation counts. Given counts only mean something for restaurants,
// taken counts only for NGOs.
func GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var given, taken int64
	if user.Role == models.RoleRestaurant {
		config.DB.Model(&models.Donation{}).Where("restaurant_id = ?", user.ID).Count(&given)
	}
	if user.Role == models.RoleNGO {
		config.DB.Model(&models.Donation{}).Where("claimed_by_id = ?", user.ID).Count(&taken)
	}

	c.JSON(http.StatusOK, gin.H{
		"user":                  user,
		"total_donations_given": given,
		"total_donations_taken": taken,
	})
}
