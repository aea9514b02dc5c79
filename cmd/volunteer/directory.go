package main

import (
	"github.com/spf13/cobra"

	"volunteer-backend/internal/domain"
)

func orgsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "orgs",
		Short: "List organizations by rating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api()
			if err != nil {
				return err
			}
			orgs, err := c.ListOrganizations(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(orgs)
		},
	}
}

func orgCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "org [id]",
		Short: "Show an organization with its reviews and shifts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := a.api()
			if err != nil {
				return err
			}
			org, err := c.GetOrganization(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.print(org)
		},
	}
}

func shiftsCmd(a *app) *cobra.Command {
	var available bool
	cmd := &cobra.Command{
		Use:   "shifts",
		Short: "List shifts by date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api()
			if err != nil {
				return err
			}
			shifts, err := c.ListShifts(cmd.Context())
			if err != nil {
				return err
			}
			if !available {
				return a.print(shifts)
			}
			// Cached slices are shared; filter into a new one.
			open := make([]domain.ShiftWithOrganization, 0, len(shifts))
			for _, s := range shifts {
				if !s.IsFull() {
					open = append(open, s)
				}
			}
			return a.print(open)
		},
	}
	cmd.Flags().BoolVar(&available, "available", false, "Only list shifts below max_volunteers")
	return cmd
}

func shiftCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shift [id]",
		Short: "Show a shift with its organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := a.api()
			if err != nil {
				return err
			}
			shift, err := c.GetShift(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.print(shift)
		},
	}
}

func registerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register [shift-id] [user-id]",
		Short: "Register a user for a shift (repeating returns the same registration)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shiftID, err := parseID(args[0])
			if err != nil {
				return err
			}
			userID, err := parseID(args[1])
			if err != nil {
				return err
			}
			c, err := a.api()
			if err != nil {
				return err
			}
			reg, err := c.RegisterForShift(cmd.Context(), shiftID, userID)
			if err != nil {
				return err
			}
			return a.print(reg)
		},
	}
}

func profileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile [user-id]",
		Short: "Show a user's volunteer profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := a.api()
			if err != nil {
				return err
			}
			user, err := c.GetUserProfile(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.print(user)
		},
	}
}

func notificationsCmd(a *app) *cobra.Command {
	var markRead int32
	cmd := &cobra.Command{
		Use:   "notifications [user-id]",
		Short: "List a user's notifications, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := a.api()
			if err != nil {
				return err
			}
			if markRead != 0 {
				if err := c.MarkNotificationRead(cmd.Context(), userID, markRead); err != nil {
					return err
				}
			}
			notes, err := c.GetNotifications(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return a.print(notes)
		},
	}
	cmd.Flags().Int32Var(&markRead, "mark-read", 0, "Mark this notification as read first")
	return cmd
}

func achievementsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements [user-id]",
		Short: "Show achievement progress for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := a.api()
			if err != nil {
				return err
			}
			progress, err := c.ListAchievements(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return a.print(progress)
		},
	}
}
