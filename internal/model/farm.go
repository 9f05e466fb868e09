package model

import "time"

// Farm is the origin record a product points back to.
type Farm struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Owner       string    `json:"owner"`
	ContactInfo string    `json:"contactInfo,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
