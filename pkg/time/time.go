package time

import "time"

// AddMinutes returns the UTC time minute minutes from now.
func AddMinutes(minute uint) time.Time {
	return time.Now().UTC().Add(time.Minute * time.Duration(minute))
}
