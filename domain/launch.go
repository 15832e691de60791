package domain

import "time"

// Launch is a single launch record decoded from the /v4/launches resource.
// Only Name, DateUTC and Success drive filtering; the remaining fields are carried for display.
type Launch struct {
	ID           string     `json:"id"`            // API identifier of the launch.
	Name         string     `json:"name"`          // Mission name.
	DateUTC      *time.Time `json:"date_utc"`      // Launch date, nil when the API omits it.
	Success      *bool      `json:"success"`       // Outcome, nil when unknown (upcoming or not reported).
	FlightNumber int        `json:"flight_number"` // Sequential flight number.
	Details      *string    `json:"details"`       // Free text description, often null.
	Upcoming     bool       `json:"upcoming"`      // Whether the launch is still scheduled.
	Rocket       string     `json:"rocket"`        // Rocket identifier.
}

// Succeeded reports whether the launch is known to have succeeded.
func (l Launch) Succeeded() bool {
	return l.Success != nil && *l.Success
}

// Failed reports whether the launch is known to have failed.
// Launches with an unknown outcome are neither succeeded nor failed.
func (l Launch) Failed() bool {
	return l.Success != nil && !*l.Success
}

// DateOr returns the launch date, or fallback when the date is missing.
func (l Launch) DateOr(fallback time.Time) time.Time {
	if l.DateUTC == nil {
		return fallback
	}
	return *l.DateUTC
}
