package commands

import (
	"github.com/spf13/cobra"
)

func (a *app) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(a.upCmd(), a.downCmd(), a.statusCmd(), a.historyCmd())
	return cmd
}

func (a *app) upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}

			applied, err := st.Migrator().Up()
			for _, m := range applied {
				printf(cmd, "Applied migration: %s_%s\n", m.Version, m.Name)
			}
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				printf(cmd, "No pending migrations\n")
			}
			return nil
		},
	}
}

func (a *app) downCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Revert the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}

			reverted, err := st.Migrator().Down()
			if err != nil {
				return err
			}
			if reverted == nil {
				printf(cmd, "No migrations to revert\n")
				return nil
			}
			printf(cmd, "Reverted migration: %s_%s\n", reverted.Version, reverted.Name)
			return nil
		},
	}
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show status of all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}

			statuses, err := st.Migrator().Status()
			if err != nil {
				return err
			}

			printf(cmd, "%-16s  %-32s  %-8s\n", "Version", "Name", "Status")
			for _, s := range statuses {
				status := "Pending"
				if s.Applied {
					status = "Applied"
				}
				printf(cmd, "%-16s  %-32s  %-8s\n", s.Version, s.Name, status)
			}
			return nil
		},
	}
}

func (a *app) historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show applied migrations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}

			records, err := st.Migrator().History()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printf(cmd, "No migrations applied\n")
				return nil
			}

			printf(cmd, "%-16s  %-32s  %s\n", "Version", "Name", "Applied At")
			for _, r := range records {
				printf(cmd, "%-16s  %-32s  %s\n", r.Version, r.Name, r.AppliedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}
