package domain

import "time"

type RegistrationStatus string

const (
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
)

type ShiftRegistration struct {
	ID          int32              `json:"id"`
	ShiftID     *int32             `json:"shift_id"`
	UserID      *int32             `json:"user_id"`
	Status      RegistrationStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	HoursLogged *float64           `json:"hours_logged"`
	Feedback    *string            `json:"feedback"`
	Rating      *int32             `json:"rating"`
}
