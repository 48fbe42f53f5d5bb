package cli

import (
	"fmt"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tripinvite/portal/internal/service"
)

// NewInviteCommand creates the invite command group.
func NewInviteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Manage guest invites",
	}
	cmd.AddCommand(newInviteCreateCommand(rootOpts))
	cmd.AddCommand(newInviteListCommand(rootOpts))
	return cmd
}

type inviteCreateOptions struct {
	token         string
	name          string
	videoURL      string
	homeCity      string
	needsPassport string
	baseURL       string
}

func newInviteCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &inviteCreateOptions{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an invite and print its link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := service.CreateInviteInput{
				Token:     opts.token,
				GuestName: opts.name,
				VideoURL:  opts.videoURL,
				HomeCity:  opts.homeCity,
			}
			switch opts.needsPassport {
			case "":
			case "yes":
				input.NeedsPassport = boolPtr(true)
			case "no":
				input.NeedsPassport = boolPtr(false)
			default:
				return fmt.Errorf("invalid --needs-passport %q: must be yes or no", opts.needsPassport)
			}

			a, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			defer a.close()

			invite, err := a.invites.CreateInvite(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), inviteLink(opts.baseURL, invite.Token))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.token, "token", "", "invite code (random when empty)")
	cmd.Flags().StringVar(&opts.name, "name", "", "guest name")
	cmd.Flags().StringVar(&opts.videoURL, "video-url", "", "personal video shown at the video gate")
	cmd.Flags().StringVar(&opts.homeCity, "home-city", "", "guest home city, used as the default flight origin")
	cmd.Flags().StringVar(&opts.needsPassport, "needs-passport", "", "yes or no")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "public portal URL to prefix the link with")
	return cmd
}

func newInviteListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List invites and their progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			defer a.close()

			invites, err := a.invites.ListInvites(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TOKEN\tGUEST\tRSVP\tSURVEY")
			for _, inv := range invites {
				rsvp := "-"
				if inv.RSVPDone {
					rsvp = string(inv.RSVPChoice)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", inv.Token, inv.GuestName, rsvp, inv.SurveyDone)
			}
			return w.Flush()
		},
	}
}

// inviteLink prints the guest-facing URL, or the bare path when no base is known.
func inviteLink(base, token string) string {
	return strings.TrimRight(base, "/") + "/?" + url.Values{"t": {token}}.Encode()
}

func boolPtr(b bool) *bool { return &b }
