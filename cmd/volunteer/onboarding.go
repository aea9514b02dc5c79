package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"volunteer-backend/internal/domain"
)

func onboardingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboarding",
		Short: "Manage the locally stored onboarding profile",
	}
	cmd.AddCommand(onboardingStatusCmd(a))
	cmd.AddCommand(onboardingCompleteCmd(a))
	cmd.AddCommand(onboardingUpdateCmd(a))
	cmd.AddCommand(onboardingResetCmd(a))
	return cmd
}

type onboardingStatus struct {
	HasOnboarded bool                      `json:"hasOnboarded"`
	Profile      *domain.OnboardingProfile `json:"userProfile"`
}

func onboardingStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether onboarding is complete and the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.localStore(cmd.Context())
			if err != nil {
				return err
			}
			done, profile, err := s.Status(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(onboardingStatus{HasOnboarded: done, Profile: profile})
		},
	}
}

func onboardingCompleteCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Validate and store a profile read from a JSON file (- for stdin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			var profile domain.OnboardingProfile
			if err := json.NewDecoder(r).Decode(&profile); err != nil {
				return fmt.Errorf("invalid profile JSON: %w", err)
			}

			s, err := a.localStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.CompleteOnboarding(cmd.Context(), profile); err != nil {
				return err
			}
			return a.print(onboardingStatus{HasOnboarded: true, Profile: &profile})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "Profile JSON file")
	return cmd
}

func onboardingUpdateCmd(a *app) *cobra.Command {
	var (
		patch  domain.ProfilePatch
		fields = map[string]**string{
			"full-name":         &patch.FullName,
			"age":               &patch.Age,
			"address-line1":     &patch.AddressLine1,
			"address-line2":     &patch.AddressLine2,
			"zip-code":          &patch.ZipCode,
			"email":             &patch.Email,
			"phone":             &patch.Phone,
			"emergency-contact": &patch.EmergencyContact,
			"emergency-phone":   &patch.EmergencyPhone,
		}
		values = map[string]*string{}
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Merge the given fields into the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for name, dst := range fields {
				if cmd.Flags().Changed(name) {
					*dst = values[name]
				}
			}
			if !cmd.Flags().Changed("skills") {
				patch.Skills = nil
			}
			if !cmd.Flags().Changed("interests") {
				patch.Interests = nil
			}

			s, err := a.localStore(cmd.Context())
			if err != nil {
				return err
			}
			profile, err := s.UpdateProfile(cmd.Context(), patch)
			if err != nil {
				return err
			}
			return a.print(profile)
		},
	}
	for name := range fields {
		values[name] = cmd.Flags().String(name, "", "New "+name)
	}
	cmd.Flags().StringSliceVar(&patch.Skills, "skills", nil, "Replace skills")
	cmd.Flags().StringSliceVar(&patch.Interests, "interests", nil, "Replace interests")
	return cmd
}

func onboardingResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the onboarding flag and stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.localStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.ResetOnboarding(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Onboarding reset")
			return nil
		},
	}
}
