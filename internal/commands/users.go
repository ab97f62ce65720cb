package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/tenancy/internal/models"
	"github.com/beesaferoot/tenancy/internal/tenancy"
)

func (a *app) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(a.usersAddCmd(), a.usersListCmd())
	return cmd
}

func (a *app) usersAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			phone, _ := cmd.Flags().GetString("phone")
			roles, _ := cmd.Flags().GetStringSlice("role")

			u, err := svc.Accounts.Register(cmd.Context(), tenancy.UserInput{
				Name:  name,
				Email: email,
				Phone: phone,
				Roles: roles,
			})
			if err != nil {
				return err
			}
			printf(cmd, "Created user %d: %s <%s> %s\n", u.ID, u.Name, u.Email, roleList(u.Roles))
			return nil
		},
	}
	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().String("email", "", "Unique email address")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().StringSlice("role", nil, "Role to grant (landlord, tenant, admin); repeatable")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) usersListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			var users []models.User
			if role, _ := cmd.Flags().GetString("role"); role != "" {
				users, err = svc.Accounts.ByRole(cmd.Context(), role)
			} else {
				users, err = svc.Accounts.List(cmd.Context())
			}
			if err != nil {
				return err
			}

			printf(cmd, "%-6s  %-24s  %-32s  %s\n", "ID", "Name", "Email", "Roles")
			for _, u := range users {
				printf(cmd, "%-6d  %-24s  %-32s  %s\n", u.ID, u.Name, u.Email, roleList(u.Roles))
			}
			return nil
		},
	}
	cmd.Flags().String("role", "", "Only list users holding this role")
	return cmd
}

func roleList(roles models.RoleSet) string {
	tags := make([]string, len(roles))
	for i, r := range roles {
		tags[i] = string(r)
	}
	return strings.Join(tags, ",")
}
