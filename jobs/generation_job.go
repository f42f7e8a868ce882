package jobs

import (
	"log"
	"time"

	config "github.com/anjiri1684/duty_roster/configs"
	"github.com/anjiri1684/duty_roster/database"
	"github.com/anjiri1684/duty_roster/services"
	"github.com/anjiri1684/duty_roster/utils"
)

// GenerateUpcomingDuties keeps the next few weeks of the roster
// materialized. Generation is find-or-create, so overlapping runs and
// manual admin generation never collide.
func GenerateUpcomingDuties() {
	log.Println("Running job: GenerateUpcomingDuties...")

	weeks := config.GenerateWeeksAhead()
	startDate := utils.BeginningOfWeek(time.Now())
	endDate := startDate.AddDate(0, 0, weeks*7-1)

	created, err := services.GenerateDuties(database.DB, startDate, endDate)
	if err != nil {
		log.Printf("Error generating upcoming duties: %v", err)
		return
	}
	if created > 0 {
		log.Printf("Generated %d duties through %s", created, endDate.Format("2006-01-02"))
	}
}
