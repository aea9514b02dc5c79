package domain

import "time"

type User struct {
	ID              int32     `json:"id"`
	FullName        string    `json:"full_name"`
	AvatarURL       *string   `json:"avatar_url"`
	Bio             *string   `json:"bio"`
	PhoneNumber     *string   `json:"phone_number"`
	DateOfBirth     *string   `json:"date_of_birth"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	TotalHours      float64   `json:"total_hours"`
	TotalShifts     int32     `json:"total_shifts"`
	Location        *string   `json:"location"`
	PreferredCauses []string  `json:"preferred_causes"`
}
