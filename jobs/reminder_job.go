package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/duty_roster/database"
	"github.com/anjiri1684/duty_roster/models"
	"github.com/anjiri1684/duty_roster/notifications"
	"github.com/anjiri1684/duty_roster/utils"
)

// SendDutyReminders emails the owner of any duty starting in roughly an
// hour. The window is five minutes wide to match the cron cadence, so a
// duty is reminded exactly once.
func SendDutyReminders() {
	log.Println("Running job: SendDutyReminders...")

	now := time.Now().UTC()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	// The window may straddle midnight, so scan both candidate dates.
	dates := []time.Time{utils.DateOf(lowerBound), utils.DateOf(upperBound)}

	var candidates []models.Duty
	err := database.DB.
		Preload("Timeslot.TimeRange").
		Preload("Timeslot.Place").
		Preload("User").
		Where("date IN ? AND user_id IS NOT NULL AND free = ?", dates, false).
		Find(&candidates).Error
	if err != nil {
		log.Printf("Error checking for upcoming duties: %v", err)
		return
	}

	for _, duty := range candidates {
		start := duty.StartAt()
		if start.Before(lowerBound) || !start.Before(upperBound) {
			continue
		}
		if duty.User == nil || !duty.User.ReceiveEmail {
			continue
		}

		emailSubject := "Reminder: Your Duty Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Duty Reminder</h1><p>Hi %s,</p><p>Your duty at %s runs %s-%s today. See you there!</p>",
			duty.User.Username,
			duty.Timeslot.Place.Name,
			duty.Timeslot.TimeRange.StartTime,
			duty.Timeslot.TimeRange.EndTime,
		)
		go notifications.SendEmail(duty.User.Username, duty.User.Email, emailSubject, emailBody)
	}
}
