package models

import (
	"fmt"
	"time"
)

// DonationStatus represents the lifecycle state of a donation
type DonationStatus string

const (
	StatusActive    DonationStatus = "active"
	StatusClaimed   DonationStatus = "claimed"
	StatusCompleted DonationStatus = "completed"
	StatusRemoved   DonationStatus = "removed"
)

type Donation struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	RestaurantID uint           `json:"restaurant_id" gorm:"not null"`
	Restaurant   User           `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description" gorm:"not null"`
	FoodType     string         `json:"food_type" gorm:"not null"` // e.g. "Veg", "Non-veg", "Snacks"
	Quantity     string         `json:"quantity" gorm:"not null"`  // free text, e.g. "20 plates"
	Address      string         `json:"address" gorm:"not null"`
	PickupTime   time.Time      `json:"pickup_time" gorm:"not null"`
	ExpiryTime   time.Time      `json:"expiry_time" gorm:"not null"`
	ImagePath    string         `json:"image_path"`
	Status       DonationStatus `json:"status" gorm:"not null;default:'active'"`
	ClaimedByID  *uint          `json:"claimed_by_id"`
	ClaimedBy    *User          `json:"claimed_by,omitempty" gorm:"foreignKey:ClaimedByID"`
	ClaimedAt    *time.Time     `json:"claimed_at"`
	CreatedAt    time.Time      `json:"created_at"`
}

// IsAvailable reports whether the donation can still be claimed
func (d *Donation) IsAvailable() bool {
	return d.Status == StatusActive && time.Now().Before(d.ExpiryTime)
}

// TimeLeft returns a human-readable duration until expiry
func (d *Donation) TimeLeft() string {
	now := time.Now()
	if now.After(d.ExpiryTime) {
		return "Expired"
	}
	remaining := d.ExpiryTime.Sub(now)
	hours := int(remaining.Hours())
	switch {
	case hours > 24:
		return fmt.Sprintf("%d days left", hours/24)
	case hours >= 1:
		return fmt.Sprintf("%d hours left", hours)
	default:
		return fmt.Sprintf("%d minutes left", int(remaining.Minutes()))
	}
}
