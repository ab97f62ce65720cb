package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/tenancy/internal/models"
	"github.com/beesaferoot/tenancy/internal/tenancy"
)

// actor resolves the --as flag into a stored user.
func actor(ctx context.Context, cmd *cobra.Command, svc *tenancy.Service) (models.Actor, error) {
	id, _ := cmd.Flags().GetUint("as")
	if id == 0 {
		return models.Actor{}, fmt.Errorf("--as <user id> is required for %s", cmd.CommandPath())
	}
	return svc.Accounts.Actor(ctx, id)
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func day(t time.Time) string {
	return t.Format(time.DateOnly)
}
