package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/tenancy/internal/tenancy"
)

func (a *app) propertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Inspect properties",
	}
	cmd.AddCommand(a.propertiesAvailableCmd(), a.propertiesUploadCmd())
	return cmd
}

func (a *app) propertiesAvailableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "available",
		Short: "List properties open for a new lease",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			props, err := svc.Properties.Available(cmd.Context())
			if err != nil {
				return err
			}
			if len(props) == 0 {
				printf(cmd, "No available properties\n")
				return nil
			}

			printf(cmd, "%-6s  %-24s  %-20s  %10s  %s\n", "ID", "Title", "City", "Rent", "Landlord")
			for _, p := range props {
				printf(cmd, "%-6d  %-24s  %-20s  %10s  %d\n", p.ID, p.Title, p.City, p.Rent.StringFixed(2), p.LandlordID)
			}
			return nil
		},
	}
}

func (a *app) propertiesUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload [property id] [files...]",
		Short: "Attach image files to a property",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			who, err := actor(cmd.Context(), cmd, svc)
			if err != nil {
				return err
			}

			uploads := make([]tenancy.ImageUpload, 0, len(args)-1)
			for _, path := range args[1:] {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				uploads = append(uploads, tenancy.ImageUpload{Name: filepath.Base(path), Body: f})
			}

			urls, err := svc.Properties.UploadImages(cmd.Context(), who, id, uploads)
			if err != nil {
				return err
			}
			for _, url := range urls {
				printf(cmd, "Stored %s\n", url)
			}
			return nil
		},
	}
}
