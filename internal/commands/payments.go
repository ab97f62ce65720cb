package commands

import (
	"github.com/spf13/cobra"
)

func (a *app) paymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Track rent payments",
	}
	cmd.AddCommand(a.paymentsOverdueCmd(), a.paymentsMarkPaidCmd())
	return cmd
}

func (a *app) paymentsOverdueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List pending payments past their due date",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			payments, err := svc.Payments.Overdue(cmd.Context())
			if err != nil {
				return err
			}
			if len(payments) == 0 {
				printf(cmd, "No overdue payments\n")
				return nil
			}

			printf(cmd, "%-6s  %-6s  %10s  %s\n", "ID", "Lease", "Amount", "Due")
			for _, p := range payments {
				printf(cmd, "%-6d  %-6d  %10s  %s\n", p.ID, p.LeaseID, p.Amount.StringFixed(2), day(p.DueDate))
			}
			return nil
		},
	}
}

func (a *app) paymentsMarkPaidCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mark-paid [payment id]",
		Short: "Record a payment as paid today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			method, _ := cmd.Flags().GetString("method")

			svc, err := a.service()
			if err != nil {
				return err
			}

			p, err := svc.Payments.MarkAsPaid(cmd.Context(), id, method)
			if err != nil {
				return err
			}
			printf(cmd, "Payment %d marked paid on %s\n", p.ID, day(*p.PaidDate))
			return nil
		},
	}
	cmd.Flags().String("method", "", "Payment method, e.g. CARD or CASH")
	return cmd
}
