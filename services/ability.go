package services

import "github.com/anjiri1684/duty_roster/models"

// Can is the single capability check: admins manage everything, everyone
// else (including guests, passed as nil) may only read.
func Can(user *models.User, action, resource string) bool {
	if user != nil && user.Role == "admin" {
		return true
	}
	return action == "read"
}
