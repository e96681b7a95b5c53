package donor

import (
	"github.com/google/uuid"
)

// Availability is the donor's self-declared availability. It is shown on
// dashboards and counted in summary statistics, but it does not gate
// responding to a blood request: any registered donor may express interest.
type Availability string

const (
	Available   Availability = "AVAILABLE"
	Unavailable Availability = "UNAVAILABLE"
)

// ParseAvailability validates the wire form of an availability value.
func ParseAvailability(s string) (Availability, bool) {
	switch Availability(s) {
	case Available, Unavailable:
		return Availability(s), true
	default:
		return "", false
	}
}

// bloodGroups is the closed set of canonical blood group codes.
var bloodGroups = map[string]bool{
	"A+": true, "A-": true,
	"B+": true, "B-": true,
	"AB+": true, "AB-": true,
	"O+": true, "O-": true,
}

// ValidBloodGroup reports whether s is one of the 8 canonical codes. The
// same set gates donor profiles and the blood group on a request.
func ValidBloodGroup(s string) bool {
	return bloodGroups[s]
}

// Donor maps to the donors table. The id doubles as the user id: presence of
// a row is what makes a user eligible to respond to blood requests.
type Donor struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	BloodGroup   *string      `db:"blood_group" json:"blood_group,omitempty"`
	Availability Availability `db:"availability" json:"availability"`
}
