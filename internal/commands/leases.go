package commands

import (
	"github.com/spf13/cobra"
)

func (a *app) leasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leases",
		Short: "Inspect leases",
	}
	cmd.AddCommand(a.leasesExpiringCmd())
	return cmd
}

func (a *app) leasesExpiringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expiring",
		Short: "List active leases ending within the given number of days",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")

			svc, err := a.service()
			if err != nil {
				return err
			}

			leases, err := svc.Leases.ExpiringWithin(cmd.Context(), days)
			if err != nil {
				return err
			}
			if len(leases) == 0 {
				printf(cmd, "No leases expiring within %d days\n", days)
				return nil
			}

			printf(cmd, "%-6s  %-8s  %-6s  %-10s  %s\n", "ID", "Property", "Tenant", "Ends", "Rent")
			for _, l := range leases {
				printf(cmd, "%-6d  %-8d  %-6d  %-10s  %s\n", l.ID, l.PropertyID, l.TenantID, day(l.EndDate), l.RentAmount.StringFixed(2))
			}
			return nil
		},
	}
	cmd.Flags().Int("days", 30, "Look-ahead window in days")
	return cmd
}
