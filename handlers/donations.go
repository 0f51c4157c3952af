package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"foodshare-api/config"
	"foodshare-api/middleware"
	"foodshare-api/models"
	"foodshare-api/notify"
	"foodshare-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateDonationRequest struct {
	Title       string `form:"title" binding:"required,min=5,max=200"`
	Description string `form:"description" binding:"required,min=10"`
	FoodType    string `form:"food_type" binding:"required,max=100"`
	Quantity    string `form:"quantity" binding:"required,max=100"`
	Address     string `form:"address" binding:"required,max=300"`
	PickupTime  string `form:"pickup_time" binding:"required"`
	ExpiryTime  string `form:"expiry_time" binding:"required"`
}

// parseDonationTime accepts RFC 3339 or the datetime-local form format
func parseDonationTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", value, time.Local)
}

// saveImage stores an uploaded donation image under a generated unique
// name and returns the stored filename.
func saveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// No image attached — that's fine
		return "", nil
	}
	ext := filepath.Ext(file.Filename)
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return "", fmt.Errorf("images only (jpg, jpeg, png)")
	}
	if err := os.MkdirAll(config.UploadDir, 0o755); err != nil {
		return "", err
	}
	unique := uuid.New().String() + "_" + filepath.Base(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(config.UploadDir, unique)); err != nil {
		return "", err
	}
	return unique, nil
}

// CreateDonation posts a new surplus-food listing (restaurant only)
func CreateDonation(c *gin.Context) {
	restaurantID := middleware.GetUserID(c)

	var req CreateDonationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pickupTime, err := parseDonationTime(req.PickupTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pickup_time"})
		return
	}
	expiryTime, err := parseDonationTime(req.ExpiryTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expiry_time"})
		return
	}
	if !expiryTime.After(pickupTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expiry time must be after pickup time"})
		return
	}
	if !expiryTime.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expiry time must be in the future"})
		return
	}

	imagePath, err := saveImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var creator models.User
	if err := config.DB.First(&creator, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	donation := models.Donation{
		RestaurantID: restaurantID,
		Title:        req.Title,
		Description:  req.Description,
		FoodType:     req.FoodType,
		Quantity:     req.Quantity,
		Address:      req.Address,
		PickupTime:   pickupTime,
		ExpiryTime:   expiryTime,
		ImagePath:    imagePath,
		Status:       models.StatusActive,
	}
	if err := config.DB.Create(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create donation"})
		return
	}

	// Notify every NGO about the new listing. Fire-and-forget.
	var ngos []models.User
	config.DB.Where("role = ?", models.RoleNGO).Find(&ngos)
	for _, ngo := range ngos {
		notify.Send(
			"New Food Donation Available: "+donation.Title,
			ngo.Email,
			fmt.Sprintf(
				"A new food donation is available from %s.\n\n"+
					"Details:\n"+
					"- Food Type: %s\n"+
					"- Quantity: %s\n"+
					"- Pickup Address: %s\n"+
					"- Available Until: %s\n\n"+
					"Visit the platform to claim this donation.",
				creator.Name, donation.FoodType, donation.Quantity,
				donation.Address, donation.ExpiryTime.Format(time.RFC3339),
			),
		)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Donation posted successfully",
		"donation": donation,
	})
}

// pageParams reads offset pagination params with a default page size
func pageParams(c *gin.Context, defaultSize int) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultSize
	}
	return page, pageSize
}

// ListDonations returns active donations, newest first, paginated.
// available=true keeps only not-yet-expired ones; location filters by
// substring match on the pickup address.
func ListDonations(c *gin.Context) {
	page, pageSize := pageParams(c, 10)

	query := config.DB.Model(&models.Donation{}).
		Preload("Restaurant").
		Where("status = ?", models.StatusActive)

	if c.Query("available") == "true" {
		query = query.Where("expiry_time > ?", time.Now())
	}
	if location := c.Query("location"); location != "" {
		// instr is case-sensitive where LIKE is not
		query = query.Where("instr(address, ?) > 0", location)
	}

	var total int64
	query.Count(&total)

	var donations []models.Donation
	query.Order("created_at desc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&donations)

	c.JSON(http.StatusOK, gin.H{
		"page":      page,
		"page_size": pageSize,
		"total":     total,
		"count":     len(donations),
		"donations": donations,
	})
}

// GetDonation returns a single donation's full detail
func GetDonation(c *gin.Context) {
	var donation models.Donation
	if err := config.DB.Preload("Restaurant").Preload("ClaimedBy").
		First(&donation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"donation":     donation,
		"is_available": donation.IsAvailable(),
		"time_left":    donation.TimeLeft(),
	})
}

// ClaimDonation reserves a donation for the calling NGO. The transition
// is a single conditional update guarded by status=active, so of two
// concurrent claims exactly one wins; the loser gets 409.
func ClaimDonation(c *gin.Context) {
	ngoID := middleware.GetUserID(c)

	var donation models.Donation
	if err := config.DB.Preload("Restaurant").First(&donation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	if err := statemachine.CanTransition(donation.Status, models.StatusClaimed, "ngo"); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":          "This donation is no longer available",
			"reason":         err.Error(),
			"current_status": donation.Status,
		})
		return
	}
	if !donation.IsAvailable() {
		c.JSON(http.StatusConflict, gin.H{"error": "This donation has expired"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.Donation{}).
		Where("id = ? AND status = ?", donation.ID, models.StatusActive).
		Updates(map[string]interface{}{
			"status":        models.StatusClaimed,
			"claimed_by_id": ngoID,
			"claimed_at":    now,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim donation"})
		return
	}
	if result.RowsAffected == 0 {
		// Another NGO got there first
		c.JSON(http.StatusConflict, gin.H{"error": "This donation has already been claimed"})
		return
	}

	var ngo models.User
	config.DB.First(&ngo, ngoID)
	notify.Send(
		"Your Donation Has Been Claimed: "+donation.Title,
		donation.Restaurant.Email,
		fmt.Sprintf(
			"Your food donation has been claimed by %s.\n\n"+
				"NGO Contact: %s\n"+
				"Claimed at: %s\n\n"+
				"Please coordinate the pickup with the NGO.",
			ngo.Name, ngo.Email, now.Format(time.RFC3339),
		),
	)

	config.DB.Preload("Restaurant").Preload("ClaimedBy").First(&donation, donation.ID)
	c.JSON(http.StatusOK, gin.H{
		"message":  "Donation claimed successfully! The restaurant will be notified.",
		"donation": donation,
	})
}

// APIDonations is the public JSON feed of active, non-expired donations
func APIDonations(c *gin.Context) {
	var donations []models.Donation
	config.DB.Preload("Restaurant").
		Where("status = ? AND expiry_time > ?", models.StatusActive, time.Now()).
		Order("created_at desc").
		Find(&donations)

	data := make([]gin.H, 0, len(donations))
	for _, d := range donations {
		data = append(data, gin.H{
			"id":              d.ID,
			"title":           d.Title,
			"description":     d.Description,
			"food_type":       d.FoodType,
			"quantity":        d.Quantity,
			"address":         d.Address,
			"pickup_time":     d.PickupTime.Format(time.RFC3339),
			"expiry_time":     d.ExpiryTime.Format(time.RFC3339),
			"restaurant_name": d.Restaurant.Name,
			"created_at":      d.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"donations": data,
		"total":     len(data),
	})
}

// MyDonations lists the calling restaurant's own donations
func MyDonations(c *gin.Context) {
	restaurantID := middleware.GetUserID(c)
	var donations []models.Donation
	config.DB.Preload("ClaimedBy").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at desc").
		Find(&donations)
	c.JSON(http.StatusOK, gin.H{"count": len(donations), "donations": donations})
}

// ClaimedDonations lists donations the calling NGO has claimed
func ClaimedDonations(c *gin.Context) {
	ngoID := middleware.GetUserID(c)
	var donations []models.Donation
	config.DB.Preload("Restaurant").
		Where("claimed_by_id = ?", ngoID).
		Order("claimed_at desc").
		Find(&donations)
	c.JSON(http.StatusOK, gin.H{"count": len(donations), "donations": donations})
}

// RecentDonations returns the six most recent active listings (public
// landing-page feed)
func RecentDonations(c *gin.Context) {
	var donations []models.Donation
	config.DB.Preload("Restaurant").
		Where("status = ?", models.StatusActive).
		Order("created_at desc").
		Limit(6).
		Find(&donations)
	c.JSON(http.StatusOK, gin.H{"count": len(donations), "donations": donations})
}

// Dashboard returns a role-shaped summary for the logged-in user
func Dashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	switch role {
	case models.RoleRestaurant:
		var donations []models.Donation
		config.DB.Preload("ClaimedBy").
			Where("restaurant_id = ?", userID).
			Order("created_at desc").
			Limit(10).
			Find(&donations)
		c.JSON(http.StatusOK, gin.H{"role": role, "donations": donations})

	case models.RoleNGO:
		var available, claimed []models.Donation
		config.DB.Preload("Restaurant").
			Where("status = ?", models.StatusActive).
			Order("created_at desc").
			Limit(10).
			Find(&available)
		config.DB.Preload("Restaurant").
			Where("claimed_by_id = ?", userID).
			Order("claimed_at desc").
			Limit(10).
			Find(&claimed)
		c.JSON(http.StatusOK, gin.H{
			"role":                role,
			"available_donations": available,
			"claimed_donations":   claimed,
		})

	case models.RoleAdmin:
		var totalUsers, totalDonations, active, claimed int64
		config.DB.Model(&models.User{}).Count(&totalUsers)
		config.DB.Model(&models.Donation{}).Count(&totalDonations)
		config.DB.Model(&models.Donation{}).Where("status = ?", models.StatusActive).Count(&active)
		config.DB.Model(&models.Donation{}).Where("status = ?", models.StatusClaimed).Count(&claimed)
		c.JSON(http.StatusOK, gin.H{
			"role":              role,
			"total_users":       totalUsers,
			"total_donations":   totalDonations,
			"active_donations":  active,
			"claimed_donations": claimed,
		})

	default:
		c.JSON(http.StatusOK, gin.H{"role": role})
	}
}
