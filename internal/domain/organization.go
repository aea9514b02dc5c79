package domain

import "time"

type Organization struct {
	ID              int32     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	LogoURL         *string   `json:"logo_url"`
	WebsiteURL      *string   `json:"website_url"`
	ContactEmail    *string   `json:"contact_email"`
	ContactPhone    *string   `json:"contact_phone"`
	Address         *string   `json:"address"`
	City            *string   `json:"city"`
	State           *string   `json:"state"`
	ZipCode         *string   `json:"zip_code"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Rating          *float64  `json:"rating"` // 0-5
	TotalVolunteers int32     `json:"total_volunteers"`
}

// OrganizationSummary is the narrow projection embedded in shift listings.
type OrganizationSummary struct {
	ID           int32   `json:"id"`
	Name         string  `json:"name"`
	LogoURL      *string `json:"logo_url"`
	WebsiteURL   *string `json:"website_url"`
	ContactPhone *string `json:"contact_phone"`
}

type OrganizationReview struct {
	ID             int32     `json:"id"`
	OrganizationID *int32    `json:"organization_id"`
	UserID         *int32    `json:"user_id"`
	Rating         *int32    `json:"rating"`
	Review         *string   `json:"review"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ReviewerName struct {
	FullName string `json:"full_name"`
}

type OrganizationReviewWithUser struct {
	OrganizationReview
	Users *ReviewerName `json:"users"`
}

// OrganizationDetail is an organization with its reviews and shifts,
// fetched in a single query.
type OrganizationDetail struct {
	Organization
	OrganizationReviews []OrganizationReviewWithUser `json:"organization_reviews"`
	Shifts              []Shift                      `json:"shifts"`
}
