package localstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteer-backend/internal/domain"
)

func validProfile() domain.OnboardingProfile {
	return domain.OnboardingProfile{
		FullName:         "Jamie Rivera",
		Age:              "29",
		AddressLine1:     "12 Harbor Street",
		ZipCode:          "94110",
		Email:            "jamie@example.org",
		Phone:            "(415) 555-0100",
		EmergencyContact: "Sam Rivera",
		EmergencyPhone:   "+1 415 555 0101",
		Skills:           []string{"cooking"},
		Interests:        []string{"hunger"},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_OnboardingLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	done, profile, err := s.Status(ctx)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Nil(t, profile)

	require.NoError(t, s.CompleteOnboarding(ctx, validProfile()))

	done, profile, err = s.Status(ctx)
	require.NoError(t, err)
	assert.True(t, done)
	require.NotNil(t, profile)
	if diff := cmp.Diff(validProfile(), *profile); diff != "" {
		t.Errorf("stored profile mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, s.ResetOnboarding(ctx))
	done, profile, err = s.Status(ctx)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Nil(t, profile)
}

func TestStore_CompleteOnboardingRejectsInvalidProfile(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := validProfile()
	p.ZipCode = "9411"
	err := s.CompleteOnboarding(ctx, p)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "zipCode", ve.Field)
	assert.Equal(t, "Please enter a valid 5-digit zip code", ve.Message)

	done, _, err := s.Status(ctx)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestStore_UpdateProfile(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.UpdateProfile(ctx, domain.ProfilePatch{})
	assert.ErrorIs(t, err, domain.ErrNoProfile)

	require.NoError(t, s.CompleteOnboarding(ctx, validProfile()))

	phone := "415-555-0199"
	updated, err := s.UpdateProfile(ctx, domain.ProfilePatch{Phone: &phone, Skills: []string{"driving", "tutoring"}})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Jamie Rivera", updated.FullName)

	loaded, err := s.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"driving", "tutoring"}, loaded.Skills)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.CompleteOnboarding(ctx, validProfile()))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	value, ok, err := s.Get(ctx, OnboardingKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *domain.OnboardingProfile)
		field   string
		message string
	}{
		{"ShortName", func(p *domain.OnboardingProfile) { p.FullName = "J" }, "fullName", "Name must be at least 2 characters"},
		{"NameWithDigits", func(p *domain.OnboardingProfile) { p.FullName = "R2 D2" }, "fullName", "Name can only contain letters and spaces"},
		{"MissingAge", func(p *domain.OnboardingProfile) { p.Age = "" }, "age", "Age is required"},
		{"AgeNotNumber", func(p *domain.OnboardingProfile) { p.Age = "twelve" }, "age", "Age must be a number"},
		{"TooYoung", func(p *domain.OnboardingProfile) { p.Age = "12" }, "age", "You must be at least 13 years old"},
		{"TooOld", func(p *domain.OnboardingProfile) { p.Age = "121" }, "age", "Please enter a valid age"},
		{"ShortAddress", func(p *domain.OnboardingProfile) { p.AddressLine1 = "1 A" }, "addressLine1", "Address must be at least 5 characters"},
		{"BadEmail", func(p *domain.OnboardingProfile) { p.Email = "jamie@" }, "email", "Please enter a valid email address"},
		{"ShortPhone", func(p *domain.OnboardingProfile) { p.Phone = "555-0100" }, "phone", "Phone number must be at least 10 digits"},
		{"PhoneLetters", func(p *domain.OnboardingProfile) { p.Phone = "call me maybe" }, "phone", "Please enter a valid phone number"},
		{"NoSkills", func(p *domain.OnboardingProfile) { p.Skills = nil }, "skills", "Please select at least one skill"},
		{"NoInterests", func(p *domain.OnboardingProfile) { p.Interests = []string{} }, "interests", "Please select at least one area of interest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)

			var ve *domain.ValidationError
			require.ErrorAs(t, ValidateProfile(p), &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.message, ve.Message)
		})
	}

	assert.NoError(t, ValidateProfile(validProfile()))

	p := validProfile()
	p.ZipCode = "94110-1234"
	assert.NoError(t, ValidateProfile(p))
}
