package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/healthdesk/healthdesk/internal/domain/admin"
	"github.com/healthdesk/healthdesk/internal/platform/rest"
	"github.com/healthdesk/healthdesk/internal/view"
)

func adminsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admins",
		Short: "Manage admin accounts (super admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireArea(cmd.Context(), view.AreaAdmins); err != nil {
				return err
			}
			svc := admin.NewService(a.api)
			rows, err := svc.List(cmd.Context())
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to load admin accounts."))
				return err
			}
			view.RenderAdmins(os.Stdout, rows)
			return nil
		},
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Provision an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireArea(cmd.Context(), view.AreaAdmins); err != nil {
				return err
			}
			ac := admin.AccountCreate{}
			ac.Email, _ = cmd.Flags().GetString("email")
			ac.Name, _ = cmd.Flags().GetString("name")
			ac.Phone, _ = cmd.Flags().GetString("phone")
			ac.Password, _ = cmd.Flags().GetString("password")

			svc := admin.NewService(a.api)
			created, err := svc.Create(cmd.Context(), ac)
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to create admin account."))
				return err
			}
			a.notify.Successf("Created admin %s (%s).", created.Email, created.ID)
			return nil
		},
	}
	createCmd.Flags().String("email", "", "Account email")
	createCmd.Flags().String("name", "", "Full name")
	createCmd.Flags().String("phone", "", "Phone number")
	createCmd.Flags().String("password", "", "Initial password")
	cmd.AddCommand(createCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an admin account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireArea(cmd.Context(), view.AreaAdmins); err != nil {
				return err
			}
			svc := admin.NewService(a.api)
			if err := svc.Delete(cmd.Context(), args[0]); err != nil {
				a.notify.Error(rest.Detail(err, "Failed to delete admin account."))
				return err
			}
			a.notify.Success("Admin account deleted.")
			return nil
		},
	})
	return cmd
}
