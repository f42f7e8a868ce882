package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/anjiri1684/duty_roster/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, mc bool) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret",
		Cell:     "technical",
		MC:       mc,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createPlace(t *testing.T, db *gorm.DB, name string) *models.Place {
	t.Helper()
	place := &models.Place{Name: name}
	if err := db.Create(place).Error; err != nil {
		t.Fatalf("failed to create place %s: %v", name, err)
	}
	return place
}

func createTimeRange(t *testing.T, db *gorm.DB, start, end string) *models.TimeRange {
	t.Helper()
	tr := &models.TimeRange{StartTime: start, EndTime: end}
	if err := db.Create(tr).Error; err != nil {
		t.Fatalf("failed to create time range %s-%s: %v", start, end, err)
	}
	return tr
}

func createTimeslot(t *testing.T, db *gorm.DB, place *models.Place, weekday time.Weekday, tr *models.TimeRange, defaultUser *models.User, mcOnly bool) *models.Timeslot {
	t.Helper()
	ts := &models.Timeslot{
		PlaceID:     place.ID,
		Weekday:     weekday,
		TimeRangeID: tr.ID,
		MCOnly:      mcOnly,
	}
	if defaultUser != nil {
		ts.DefaultUserID = &defaultUser.ID
	}
	if err := db.Create(ts).Error; err != nil {
		t.Fatalf("failed to create timeslot: %v", err)
	}
	return ts
}

func createDuty(t *testing.T, db *gorm.DB, ts *models.Timeslot, date time.Time, owner *models.User, free bool) *models.Duty {
	t.Helper()
	duty := &models.Duty{
		TimeslotID: ts.ID,
		Date:       date,
		Free:       free,
	}
	if owner != nil {
		duty.UserID = &owner.ID
	}
	if err := db.Create(duty).Error; err != nil {
		t.Fatalf("failed to create duty: %v", err)
	}
	return duty
}

func reloadDuty(t *testing.T, db *gorm.DB, id uuid.UUID) *models.Duty {
	t.Helper()
	var duty models.Duty
	if err := db.First(&duty, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to reload duty %s: %v", id, err)
	}
	return &duty
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
