package routes

import (
	"foodshare-api/handlers"
	"foodshare-api/middleware"
	"foodshare-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Landing-page feed and the machine-readable donation feed
		public.GET("/recent", handlers.RecentDonations)
		public.GET("/donations/api/donations", handlers.APIDonations)

		// Lifecycle info (great for docs/Postman)
		public.GET("/lifecycle", handlers.GetLifecycleInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.GET("/dashboard", handlers.Dashboard)
		auth.GET("/donations/list", handlers.ListDonations)
		auth.GET("/donations/:id", handlers.GetDonation)
	}

	// ── Restaurant routes ──────────────────────────────────────────
	restaurant := r.Group("/api/donations")
	restaurant.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleRestaurant))
	{
		restaurant.POST("/create", handlers.CreateDonation)
		restaurant.GET("/mine", handlers.MyDonations)
	}

	// ── NGO routes ─────────────────────────────────────────────────
	ngo := r.Group("/api/donations")
	ngo.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleNGO))
	{
		ngo.POST("/:id/claim", handlers.ClaimDonation)
		ngo.GET("/claimed", handlers.ClaimedDonations)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/users", handlers.AdminListUsers)
		admin.GET("/donations", handlers.AdminListDonations)
		admin.POST("/donation/:id/update_status", handlers.AdminUpdateDonationStatus)
		admin.GET("/stats", handlers.AdminStats)
	}
}
