package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tripinvite/portal/internal/service"
)

// NewNotifyCommand creates the notify command group, meant to be run from cron.
func NewNotifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send email updates to opted-in guests",
	}
	cmd.AddCommand(newNotifyCommand(rootOpts, "tomorrow", "Email the events happening tomorrow",
		func(ctx context.Context, s service.NotificationService) (service.DispatchResult, error) {
			return s.SendEventsTomorrow(ctx)
		}))
	cmd.AddCommand(newNotifyCommand(rootOpts, "passport", "Email the passport processing reminder",
		func(ctx context.Context, s service.NotificationService) (service.DispatchResult, error) {
			return s.SendPassportReminder(ctx)
		}))
	return cmd
}

type sendFunc func(ctx context.Context, s service.NotificationService) (service.DispatchResult, error)

func newNotifyCommand(rootOpts *RootOptions, use, short string, send sendFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := send(cmd.Context(), a.notifications)
			if err != nil {
				return err
			}
			switch result.Outcome {
			case service.DispatchFailed:
				return fmt.Errorf("mail error for %s after %d sent: %s", result.FailedAddress, result.Sent, result.Reason)
			case service.DispatchNotConfigured:
				return fmt.Errorf("mail provider is not configured")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d sent\n", result.Outcome, result.Sent)
			return nil
		},
	}
}
