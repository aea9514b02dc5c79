package domain

import "time"

const ShiftStatusOpen = "open"

type Shift struct {
	ID                int32     `json:"id"`
	OrganizationID    *int32    `json:"organization_id"`
	Title             string    `json:"title"`
	Description       *string   `json:"description"`
	Date              string    `json:"date"`       // YYYY-MM-DD
	StartTime         string    `json:"start_time"` // HH:MM:SS
	EndTime           string    `json:"end_time"`
	Location          *string   `json:"location"`
	MinimumAge        *int32    `json:"minimum_age"`
	Requirements      *string   `json:"requirements"`
	MaxVolunteers     *int32    `json:"max_volunteers"` // nil means unlimited
	CurrentVolunteers int32     `json:"current_volunteers"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	Status            string    `json:"status"`
}

// IsFull reports whether the shift has reached max_volunteers. The limit is
// informational only; registration does not consult it.
func (s *Shift) IsFull() bool {
	return s.MaxVolunteers != nil && s.CurrentVolunteers >= *s.MaxVolunteers
}

type ShiftWithOrganization struct {
	Shift
	Organizations *OrganizationSummary `json:"organizations"`
}
