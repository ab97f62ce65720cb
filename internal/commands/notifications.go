package commands

import (
	"github.com/spf13/cobra"
)

func (a *app) notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Read the acting user's notifications",
	}
	cmd.AddCommand(a.notificationsListCmd(), a.notificationsReadAllCmd())
	return cmd
}

func (a *app) notificationsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			who, err := actor(cmd.Context(), cmd, svc)
			if err != nil {
				return err
			}

			notes, err := svc.Notifications.ForRecipient(cmd.Context(), who)
			if err != nil {
				return err
			}
			unread, err := svc.Notifications.UnreadCount(cmd.Context(), who)
			if err != nil {
				return err
			}

			printf(cmd, "%d notifications, %d unread\n", len(notes), unread)
			for _, n := range notes {
				mark := " "
				if !n.IsRead {
					mark = "*"
				}
				printf(cmd, "%s %-6d  %-8s  %s: %s\n", mark, n.ID, n.Type, n.Title, n.Message)
			}
			return nil
		},
	}
}

func (a *app) notificationsReadAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			who, err := actor(cmd.Context(), cmd, svc)
			if err != nil {
				return err
			}

			changed, err := svc.Notifications.MarkAllRead(cmd.Context(), who)
			if err != nil {
				return err
			}
			printf(cmd, "Marked %d notifications as read\n", changed)
			return nil
		},
	}
}
