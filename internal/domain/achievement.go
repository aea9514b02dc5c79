package domain

type RequirementType string

const (
	RequirementHours   RequirementType = "hours"
	RequirementShifts  RequirementType = "shifts"
	RequirementStreak  RequirementType = "streak"
	RequirementSpecial RequirementType = "special"
)

type Achievement struct {
	ID               string          `json:"id" yaml:"id"`
	Title            string          `json:"title" yaml:"title"`
	Description      string          `json:"description" yaml:"description"`
	Icon             string          `json:"icon" yaml:"icon"`
	RequirementType  RequirementType `json:"requirement_type" yaml:"requirement_type"`
	RequirementValue float64         `json:"requirement_value" yaml:"requirement_value"`
}

type AchievementProgress struct {
	Achievement
	Earned   bool    `json:"earned"`
	Progress float64 `json:"progress"`
}

// Achievements is the fixed catalog shown on the profile screen.
var Achievements = []Achievement{
	{
		ID:               "achieve-1",
		Title:            "First Steps",
		Description:      "Complete your first volunteer shift",
		Icon:             "walking",
		RequirementType:  RequirementShifts,
		RequirementValue: 1,
	},
	{
		ID:               "achieve-2",
		Title:            "Helping Hand",
		Description:      "Volunteer for 10 total hours",
		Icon:             "hands-helping",
		RequirementType:  RequirementHours,
		RequirementValue: 10,
	},
	{
		ID:               "achieve-3",
		Title:            "Dedicated Volunteer",
		Description:      "Complete 5 volunteer shifts.",
		Icon:             "star",
		RequirementType:  RequirementShifts,
		RequirementValue: 5,
	},
	{
		ID:               "achieve-4",
		Title:            "Community Champion",
		Description:      "Volunteer for 50 total hours.",
		Icon:             "trophy",
		RequirementType:  RequirementHours,
		RequirementValue: 50,
	},
	{
		ID:               "achieve-5",
		Title:            "Consistent Contributor",
		Description:      "Volunteer for 3 consecutive weeks.",
		Icon:             "calendar-check",
		RequirementType:  RequirementStreak,
		RequirementValue: 3,
	},
}
