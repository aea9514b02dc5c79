package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/repository"
)

type achievementService struct {
	userRepo repository.UserRepository
	regRepo  repository.RegistrationRepository
	catalog  []domain.Achievement
}

func NewAchievementService(userRepo repository.UserRepository, regRepo repository.RegistrationRepository) AchievementService {
	return &achievementService{
		userRepo: userRepo,
		regRepo:  regRepo,
		catalog:  domain.Achievements,
	}
}

func (s *achievementService) ListProgress(ctx context.Context, userID int32) ([]domain.AchievementProgress, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.NewStorageError("get user", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}

	dates, err := s.regRepo.ListShiftDatesByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewStorageError("list shift dates", err)
	}

	return EvaluateAchievements(s.catalog, user.TotalHours, user.TotalShifts, WeekStreak(dates)), nil
}

// EvaluateAchievements scores each catalog entry against the user's totals.
// Special achievements are awarded by hand and never earned here.
func EvaluateAchievements(catalog []domain.Achievement, totalHours float64, totalShifts int32, streak int) []domain.AchievementProgress {
	out := make([]domain.AchievementProgress, 0, len(catalog))
	for _, a := range catalog {
		var value float64
		switch a.RequirementType {
		case domain.RequirementHours:
			value = totalHours
		case domain.RequirementShifts:
			value = float64(totalShifts)
		case domain.RequirementStreak:
			value = float64(streak)
		default:
			out = append(out, domain.AchievementProgress{Achievement: a})
			continue
		}

		progress := 1.0
		if a.RequirementValue > 0 {
			progress = min(1, value/a.RequirementValue)
		}
		out = append(out, domain.AchievementProgress{
			Achievement: a,
			Earned:      value >= a.RequirementValue,
			Progress:    progress,
		})
	}
	return out
}

// WeekStreak counts consecutive Monday-based weeks containing at least one
// of dates, ending at the most recent such week.
func WeekStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	seen := make(map[time.Time]bool)
	var weeks []time.Time
	for _, d := range dates {
		w := weekStart(d)
		if !seen[w] {
			seen[w] = true
			weeks = append(weeks, w)
		}
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].After(weeks[j]) })

	streak := 1
	for i := 1; i < len(weeks); i++ {
		if weeks[i-1].Sub(weeks[i]) != 7*24*time.Hour {
			break
		}
		streak++
	}
	return streak
}

func weekStart(d time.Time) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
