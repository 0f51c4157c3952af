package handlers

import (
	"net/http"
	"testing"

	"foodshare-api/models"

	"github.com/stretchr/testify/assert"
)

func TestRegisterThenLogin(t *testing.T) {
	setupTestDB(t)
	router := setupTestRouter()

	w := doJSON(router, "POST", "/api/auth/register", "", map[string]string{
		"name":              "Green Bowl Kitchen",
		"email":             "green@bowl.test",
		"password":          "secret123",
		"role":              "restaurant",
		"organization_name": "Green Bowl",
		"phone":             "555-0101",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	body := parseBody(t, w)
	assert.NotEmpty(t, body["token"])

	w = doJSON(router, "POST", "/api/auth/login", "", map[string]string{
		"email":    "green@bowl.test",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	body = parseBody(t, w)
	assert.NotEmpty(t, body["token"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupTestDB(t)
	router := setupTestRouter()

	payload := map[string]string{
		"name":     "Hope Kitchen",
		"email":    "hope@ngo.test",
		"password": "secret123",
		"role":     "ngo",
	}
	w := doJSON(router, "POST", "/api/auth/register", "", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/api/auth/register", "", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	setupTestDB(t)
	router := setupTestRouter()

	w := doJSON(router, "POST", "/api/auth/register", "", map[string]string{
		"name":     "Sneaky",
		"email":    "sneaky@test.test",
		"password": "secret123",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	setupTestDB(t)
	router := setupTestRouter()
	createTestUser(t, "Green Bowl", "green@bowl.test", models.RoleRestaurant)

	w := doJSON(router, "POST", "/api/auth/login", "", map[string]string{
		"email":    "green@bowl.test",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, "POST", "/api/auth/login", "", map[string]string{
		"email":    "nobody@bowl.test",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileShowsDerivedCounts(t *testing.T) {
	setupTestDB(t)
	router := setupTestRouter()

	restaurant, token := createTestUser(t, "Green Bowl", "green@bowl.test", models.RoleRestaurant)
	for i := 0; i < 3; i++ {
		createTestDonation(t, restaurant.ID, models.StatusActive, futureTime(2))
	}

	w := doJSON(router, "GET", "/api/profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	assert.EqualValues(t, 3, body["total_donations_given"])
	assert.EqualValues(t, 0, body["total_donations_taken"])
}

func TestProfileRequiresAuth(t *testing.T) {
	setupTestDB(t)
	router := setupTestRouter()

	w := doJSON(router, "GET", "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
