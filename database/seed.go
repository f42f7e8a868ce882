package database

import (
	"fmt"
	"log"

	"github.com/anjiri1684/duty_roster/models"
)

// SeedReferenceData populates the shared time-range catalog and the two
// default places on a fresh database. Existing rows are left alone.
func SeedReferenceData() {
	var count int64
	if err := DB.Model(&models.TimeRange{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check time ranges: %v", err)
	}
	if count == 0 {
		// Half-hour slots in the early morning, hourly for the rest of the day.
		for _, c := range [][2]string{{"08:00", "08:30"}, {"08:30", "09:00"}, {"09:00", "09:30"}, {"09:30", "10:00"}} {
			DB.Create(&models.TimeRange{StartTime: c[0], EndTime: c[1]})
		}
		for h := 10; h < 21; h++ {
			DB.Create(&models.TimeRange{
				StartTime: fmt.Sprintf("%02d:00", h),
				EndTime:   fmt.Sprintf("%02d:00", h+1),
			})
		}
		log.Println("✅ Time range catalog seeded")
	}

	if err := DB.Model(&models.Place{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check places: %v", err)
	}
	if count == 0 {
		DB.Create(&models.Place{Name: "YIH"})
		DB.Create(&models.Place{Name: "AS8"})
		log.Println("✅ Places seeded")
	}
}
