package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"foodshare-api/config"
	"foodshare-api/middleware"
	"foodshare-api/models"
	"foodshare-api/notify"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB opens a fresh database in a per-test temp dir
func setupTestDB(t *testing.T) {
	t.Helper()
	if err := config.InitDB(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
}

// setupTestRouter registers the route surface under test with the real
// auth middleware
func setupTestRouter() *gin.Engine {
	r := gin.New()

	r.POST("/api/auth/register", Register)
	r.POST("/api/auth/login", Login)
	r.GET("/api/donations/api/donations", APIDonations)
	r.GET("/api/recent", RecentDonations)

	auth := r.Group("/api", middleware.AuthRequired())
	{
		auth.GET("/profile", GetProfile)
		auth.GET("/dashboard", Dashboard)
		auth.GET("/donations/list", ListDonations)
		auth.GET("/donations/:id", GetDonation)
	}

	restaurant := r.Group("/api/donations", middleware.AuthRequired(), middleware.RoleRequired(models.RoleRestaurant))
	{
		restaurant.POST("/create", CreateDonation)
		restaurant.GET("/mine", MyDonations)
	}

	ngo := r.Group("/api/donations", middleware.AuthRequired(), middleware.RoleRequired(models.RoleNGO))
	{
		ngo.POST("/:id/claim", ClaimDonation)
		ngo.GET("/claimed", ClaimedDonations)
	}

	admin := r.Group("/api/admin", middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/users", AdminListUsers)
		admin.GET("/donations", AdminListDonations)
		admin.POST("/donation/:id/update_status", AdminUpdateDonationStatus)
		admin.GET("/stats", AdminStats)
	}

	return r
}

// createTestUser inserts a user and returns it with a valid token
func createTestUser(t *testing.T, name, email string, role models.UserRole) (models.User, string) {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	token, err := middleware.GenerateToken(&user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, token
}

// createTestDonation inserts a donation directly into the store
func createTestDonation(t *testing.T, restaurantID uint, status models.DonationStatus, expiry time.Time) models.Donation {
	t.Helper()
	donation := models.Donation{
		RestaurantID: restaurantID,
		Title:        "Leftover veg meals",
		Description:  "Twenty boxed meals from lunch service",
		FoodType:     "Veg",
		Quantity:     "20 boxes",
		Address:      "12 Church Street",
		PickupTime:   expiry.Add(-time.Hour),
		ExpiryTime:   expiry,
		Status:       status,
	}
	if err := config.DB.Create(&donation).Error; err != nil {
		t.Fatalf("failed to create test donation: %v", err)
	}
	return donation
}

// futureTime returns a timestamp the given number of hours from now
func futureTime(hours int) time.Time {
	return time.Now().Add(time.Duration(hours) * time.Hour)
}

// doJSON performs a JSON request against the router
func doJSON(r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doForm performs a multipart form request (donation creation)
func doForm(r *gin.Engine, path, token string, fields map[string]string) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		_ = writer.WriteField(k, v)
	}
	_ = writer.Close()

	req, _ := http.NewRequest("POST", path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return out
}

// recordingNotifier captures notifications instead of printing them
type recordingNotifier struct {
	sent []sentNotification
}

type sentNotification struct {
	Subject   string
	Recipient string
	Body      string
}

func (n *recordingNotifier) Notify(subject, recipientEmail, body string) {
	n.sent = append(n.sent, sentNotification{subject, recipientEmail, body})
}

// captureNotifications swaps in a recording notifier for the test
func captureNotifications(t *testing.T) *recordingNotifier {
	t.Helper()
	rec := &recordingNotifier{}
	prev := notify.Default
	notify.Default = rec
	t.Cleanup(func() { notify.Default = prev })
	return rec
}
