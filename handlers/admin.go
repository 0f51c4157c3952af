package handlers

import (
	"net/http"

	"foodshare-api/config"
	"foodshare-api/models"
	"foodshare-api/statemachine"

	"github.com/gin-gonic/gin"
)

// AdminListUsers returns all users, newest first, paginated — admin only
func AdminListUsers(c *gin.Context) {
	page, pageSize := pageParams(c, 20)

	query := config.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	query.Order("created_at desc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&users)

	c.JSON(http.StatusOK, gin.H{
		"page":      page,
		"page_size": pageSize,
		"total":     total,
		"count":     len(users),
		"users":     users,
	})
}

// AdminListDonations returns all donations with optional status filter —
// admin only
func AdminListDonations(c *gin.Context) {
	page, pageSize := pageParams(c, 20)

	query := config.DB.Model(&models.Donation{}).
		Preload("Restaurant").Preload("ClaimedBy")
	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
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

// AdminUpdateDonationStatus overrides a donation's status unconditionally.
// Only the status column is written: claimed_by_id and claimed_at are
// left exactly as they are, even when that produces a claimed donation
// with no claimer on record.
func AdminUpdateDonationStatus(c *gin.Context) {
	var req struct {
		Status models.DonationStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !statemachine.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be: active, claimed, completed or removed"})
		return
	}

	var donation models.Donation
	if err := config.DB.First(&donation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	prevStatus := donation.Status
	if err := config.DB.Model(&donation).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Donation status updated to " + string(req.Status),
		"donation_id":     donation.ID,
		"previous_status": prevStatus,
		"new_status":      req.Status,
	})
}

// LeaderboardEntry is one row of a top-N donors/claimers list
type LeaderboardEntry struct {
	UserID           uint   `json:"user_id"`
	Name             string `json:"name"`
	OrganizationName string `json:"organization_name"`
	Count            int64  `json:"count"`
}

// AdminStats returns aggregate platform statistics — admin only.
// Leaderboards order by count descending; equal counts break ties by
// user id ascending so the ordering is deterministic.
func AdminStats(c *gin.Context) {
	var totalUsers, totalRestaurants, totalNgos, totalDonations int64
	config.DB.Model(&models.User{}).Count(&totalUsers)
	config.DB.Model(&models.User{}).Where("role = ?", models.RoleRestaurant).Count(&totalRestaurants)
	config.DB.Model(&models.User{}).Where("role = ?", models.RoleNGO).Count(&totalNgos)
	config.DB.Model(&models.Donation{}).Count(&totalDonations)

	countByStatus := map[string]int64{}
	for _, status := range []models.DonationStatus{
		models.StatusActive, models.StatusClaimed,
		models.StatusCompleted, models.StatusRemoved,
	} {
		var n int64
		config.DB.Model(&models.Donation{}).Where("status = ?", status).Count(&n)
		countByStatus[string(status)] = n
	}

	var topRestaurants []LeaderboardEntry
	config.DB.Table("donations").
		Select("users.id as user_id, users.name, users.organization_name, COUNT(donations.id) as count").
		Joins("JOIN users ON users.id = donations.restaurant_id").
		Where("users.role = ?", models.RoleRestaurant).
		Group("users.id").
		Order("count DESC, users.id ASC").
		Limit(5).
		Scan(&topRestaurants)

	var topNgos []LeaderboardEntry
	config.DB.Table("donations").
		Select("users.id as user_id, users.name, users.organization_name, COUNT(donations.id) as count").
		Joins("JOIN users ON users.id = donations.claimed_by_id").
		Where("users.role = ?", models.RoleNGO).
		Group("users.id").
		Order("count DESC, users.id ASC").
		Limit(5).
		Scan(&topNgos)

	c.JSON(http.StatusOK, gin.H{
		"total_users":                        totalUsers,
		"total_restaurants":                  totalRestaurants,
		"total_ngos":                         totalNgos,
		"total_donations":                    totalDonations,
		"count_by_status":                    countByStatus,
		"top_restaurants_by_donations_given": topRestaurants,
		"top_ngos_by_donations_claimed":      topNgos,
	})
}
