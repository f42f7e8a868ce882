package notifications

import (
	"fmt"
	"log"
	"strings"

	"github.com/anjiri1684/duty_roster/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DroppedDutiesSubject spans the whole dropped batch: first duty's start
// to last duty's end, on the first duty's date and place. Duties must
// arrive sorted by start time with Timeslot.TimeRange and Timeslot.Place
// preloaded.
func DroppedDutiesSubject(duties []models.Duty) string {
	if len(duties) == 0 {
		return "DUTY DUTY DUTY"
	}
	first := duties[0]
	last := duties[len(duties)-1]
	return fmt.Sprintf("DUTY DUTY DUTY %s-%s on %s at %s",
		clockDigits(first.Timeslot.TimeRange.StartTime),
		clockDigits(last.Timeslot.TimeRange.EndTime),
		first.Date.Format("Mon, 02 Jan 2006"),
		first.Timeslot.Place.Name,
	)
}

// NotifyDutiesDropped emails every recipient that the duties are up for
// grabs. Fire-and-forget: failures are logged, never reported back to
// the request that triggered the drop.
func NotifyDutiesDropped(db *gorm.DB, duties []models.Duty, recipientIDs []uuid.UUID) {
	if len(duties) == 0 || len(recipientIDs) == 0 {
		return
	}

	var recipients []models.User
	err := db.Where("id IN ? AND receive_email = ?", recipientIDs, true).Find(&recipients).Error
	if err != nil {
		log.Printf("🔥 Failed to load drop notification recipients: %v", err)
		return
	}

	subject := DroppedDutiesSubject(duties)
	body := droppedDutiesBody(duties)
	for _, user := range recipients {
		go SendEmail(user.Username, user.Email, subject, body)
	}
}

func droppedDutiesBody(duties []models.Duty) string {
	var b strings.Builder
	b.WriteString("<h1>Duty up for grabs!</h1><ul>")
	for _, d := range duties {
		tr := d.Timeslot.TimeRange
		fmt.Fprintf(&b, "<li>%s %s-%s at %s</li>",
			d.Date.Format("Mon, 02 Jan 2006"), tr.StartTime, tr.EndTime, d.Timeslot.Place.Name)
	}
	b.WriteString("</ul><p>Log in to grab it before someone else does.</p>")
	return b.String()
}

func clockDigits(clock string) string {
	return strings.ReplaceAll(clock, ":", "")
}
