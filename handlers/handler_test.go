package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anjiri1684/duty_roster/database"
	"github.com/anjiri1684/duty_roster/models"
	"github.com/anjiri1684/duty_roster/routes"
	"github.com/anjiri1684/duty_roster/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "handler-test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&models.User{},
		&models.Place{},
		&models.TimeRange{},
		&models.Timeslot{},
		&models.Duty{},
		&models.Availability{},
		&models.Announcement{},
		&models.ProblemReport{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db

	app := fiber.New()
	routes.AuthRoutes(app)
	routes.DutyRoutes(app)
	routes.AvailabilityRoutes(app)
	routes.AnnouncementRoutes(app)
	routes.AdminRoutes(app)
	return app
}

func seedUser(t *testing.T, username, role string, mc bool) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		Role:     role,
		Cell:     "technical",
		MC:       mc,
		IsActive: true,
	}
	if err := database.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"mc":      user.MC,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var payload map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			payload = map[string]interface{}{"_raw": string(raw)}
		}
	}
	return resp.StatusCode, payload
}

func seedFreeDuty(t *testing.T, date time.Time) *models.Duty {
	t.Helper()
	place := &models.Place{Name: "YIH"}
	if err := database.DB.Create(place).Error; err != nil {
		t.Fatalf("failed to create place: %v", err)
	}
	tr := &models.TimeRange{StartTime: "09:00", EndTime: "10:00"}
	if err := database.DB.Create(tr).Error; err != nil {
		t.Fatalf("failed to create time range: %v", err)
	}
	ts := &models.Timeslot{PlaceID: place.ID, Weekday: date.Weekday(), TimeRangeID: tr.ID}
	if err := database.DB.Create(ts).Error; err != nil {
		t.Fatalf("failed to create timeslot: %v", err)
	}
	duty := &models.Duty{TimeslotID: ts.ID, Date: date, Free: true}
	if err := database.DB.Create(duty).Error; err != nil {
		t.Fatalf("failed to create duty: %v", err)
	}
	return duty
}

func TestLoginAndMe(t *testing.T) {
	app := newTestApp(t)
	user := seedUser(t, "alice", "member", false)

	status, body := doJSON(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email":    user.Email,
		"password": "secret",
	})
	if status != fiber.StatusOK {
		t.Fatalf("login status = %d, body %v", status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("login response missing token")
	}

	status, body = doJSON(t, app, "GET", "/api/v1/auth/me", token, nil)
	if status != fiber.StatusOK {
		t.Fatalf("me status = %d, body %v", status, body)
	}
	if body["username"] != "alice" {
		t.Errorf("me username = %v", body["username"])
	}

	status, _ = doJSON(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email":    user.Email,
		"password": "wrong",
	})
	if status != fiber.StatusUnauthorized {
		t.Errorf("bad password status = %d", status)
	}
}

func TestDutiesRequireAuth(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, "GET", "/api/v1/duties/grabable", "", nil)
	if status != fiber.StatusBadRequest {
		t.Errorf("missing JWT status = %d", status)
	}
}

func TestGrabOverHTTP(t *testing.T) {
	app := newTestApp(t)
	user := seedUser(t, "alice", "member", false)
	token := tokenFor(t, user)

	tomorrow := utils.DateOf(time.Now().UTC().AddDate(0, 0, 2))
	duty := seedFreeDuty(t, tomorrow)

	status, body := doJSON(t, app, "POST", "/api/v1/duties/grab", token, fiber.Map{
		"duty_ids": []string{duty.ID.String()},
	})
	if status != fiber.StatusOK {
		t.Fatalf("grab status = %d, body %v", status, body)
	}
	if body["message"] != "Duty successfully grabbed!" {
		t.Errorf("grab message = %v", body["message"])
	}

	var reloaded models.Duty
	if err := database.DB.First(&reloaded, "id = ?", duty.ID).Error; err != nil {
		t.Fatalf("failed to reload duty: %v", err)
	}
	if reloaded.UserID == nil || *reloaded.UserID != user.ID || reloaded.Free {
		t.Errorf("duty not owned after grab: %+v", reloaded)
	}

	// Second grab of the same duty is no longer eligible.
	status, _ = doJSON(t, app, "POST", "/api/v1/duties/grab", token, fiber.Map{
		"duty_ids": []string{duty.ID.String()},
	})
	if status != fiber.StatusForbidden {
		t.Errorf("regrab status = %d", status)
	}

	status, _ = doJSON(t, app, "POST", "/api/v1/duties/grab", token, fiber.Map{
		"duty_ids": []string{uuid.NewString()},
	})
	if status != fiber.StatusNotFound {
		t.Errorf("unknown duty status = %d", status)
	}
}

func TestGenerateRequiresAdmin(t *testing.T) {
	app := newTestApp(t)
	member := seedUser(t, "alice", "member", false)
	admin := seedUser(t, "boss", "admin", true)

	req := fiber.Map{"num_weeks": 1, "start_date": "2024-01-01"}

	status, _ := doJSON(t, app, "POST", "/api/v1/duties/generate", tokenFor(t, member), req)
	if status != fiber.StatusForbidden {
		t.Errorf("member generate status = %d", status)
	}

	status, body := doJSON(t, app, "POST", "/api/v1/duties/generate", tokenFor(t, admin), req)
	if status != fiber.StatusOK {
		t.Fatalf("admin generate status = %d, body %v", status, body)
	}
	if body["message"] != "Duties successfully generated!" {
		t.Errorf("generate message = %v", body["message"])
	}
}

func TestAdminRoutesGated(t *testing.T) {
	app := newTestApp(t)
	member := seedUser(t, "alice", "member", false)
	admin := seedUser(t, "boss", "admin", true)

	status, _ := doJSON(t, app, "POST", "/api/v1/admin/places", tokenFor(t, member), fiber.Map{"name": "YIH"})
	if status != fiber.StatusForbidden {
		t.Errorf("member create place status = %d", status)
	}

	status, body := doJSON(t, app, "POST", "/api/v1/admin/places", tokenFor(t, admin), fiber.Map{"name": "YIH"})
	if status != fiber.StatusCreated {
		t.Fatalf("admin create place status = %d, body %v", status, body)
	}
}
