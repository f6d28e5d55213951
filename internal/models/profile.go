package models

// Profile carries the read-only user attributes the responder may use for
// personalization. Any field may be empty; an absent profile is represented
// as a nil *Profile.
type Profile struct {
	UserID        int64  `json:"user_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Region        string `json:"region,omitempty"`
	HouseholdSize int    `json:"household_size,omitempty"`
}
