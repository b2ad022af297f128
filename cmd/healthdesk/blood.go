package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/healthdesk/healthdesk/internal/domain/bloodbank"
	"github.com/healthdesk/healthdesk/internal/platform/rest"
	"github.com/healthdesk/healthdesk/internal/view"
)

func bloodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blood",
		Short: "Blood bank inventory and requests",
	}
	cmd.AddCommand(bloodRecordsCmd())
	cmd.AddCommand(bloodRequestsCmd())
	return cmd
}

func bloodRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List blood bank inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireArea(cmd.Context(), view.AreaBloodBank); err != nil {
				return err
			}
			query, _ := cmd.Flags().GetString("search")

			svc := bloodbank.NewService(a.api)
			records, err := svc.ListRecords(cmd.Context())
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to load blood bank records."))
				return err
			}
			view.RenderBloodRecords(os.Stdout, bloodbank.FilterRecords(records, query))
			return nil
		},
	}
	cmd.Flags().String("search", "", "Filter by blood type or hospital")

	setUnitsCmd := &cobra.Command{
		Use:   "set-units <id> <units>",
		Short: "Update available units (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			units, err := parseIntArg(args[1], "units")
			if err != nil {
				return err
			}
			svc := bloodbank.NewService(a.api)
			updated, err := svc.UpdateRecord(cmd.Context(), args[0], bloodbank.RecordUpdate{UnitsAvailable: &units})
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to update record."))
				return err
			}
			a.notify.Successf("%s at %s now has %d units.", updated.BloodType, updated.HospitalName, updated.UnitsAvailable)
			return nil
		},
	}
	cmd.AddCommand(setUnitsCmd)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add an inventory record (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			r := bloodbank.RecordCreate{}
			r.BloodType, _ = cmd.Flags().GetString("type")
			r.UnitsAvailable, _ = cmd.Flags().GetInt("units")
			r.HospitalName, _ = cmd.Flags().GetString("hospital")
			r.Contact, _ = cmd.Flags().GetString("contact")
			r.Address, _ = cmd.Flags().GetString("address")

			svc := bloodbank.NewService(a.api)
			created, err := svc.CreateRecord(cmd.Context(), r)
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to add record."))
				return err
			}
			a.notify.Successf("Added %s at %s (%s).", created.BloodType, created.HospitalName, created.ID)
			return nil
		},
	}
	addCmd.Flags().String("type", "", "Blood type, e.g. O+")
	addCmd.Flags().Int("units", 0, "Units available")
	addCmd.Flags().String("hospital", "", "Hospital name")
	addCmd.Flags().String("contact", "", "Contact number")
	addCmd.Flags().String("address", "", "Hospital address")
	cmd.AddCommand(addCmd)

	return cmd
}

func bloodRequestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "List blood requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireArea(cmd.Context(), view.AreaBloodBank); err != nil {
				return err
			}
			svc := bloodbank.NewService(a.api)
			rows, err := svc.ListRequests(cmd.Context())
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to load blood requests."))
				return err
			}
			view.RenderBloodRequests(os.Stdout, rows)
			return nil
		},
	}

	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Request blood units",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireArea(cmd.Context(), view.AreaBloodBank); err != nil {
				return err
			}
			r := bloodbank.RequestCreate{}
			r.BloodType, _ = cmd.Flags().GetString("type")
			r.UnitsRequested, _ = cmd.Flags().GetInt("units")
			r.HospitalName, _ = cmd.Flags().GetString("hospital")
			r.PatientName, _ = cmd.Flags().GetString("patient")
			r.Urgency, _ = cmd.Flags().GetString("urgency")
			r.Notes, _ = cmd.Flags().GetString("notes")

			svc := bloodbank.NewService(a.api)
			created, err := svc.CreateRequest(cmd.Context(), r)
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to submit blood request."))
				return err
			}
			a.notify.Successf("Request %s submitted (%s, %d units).", created.ID, created.BloodType, created.UnitsRequested)
			return nil
		},
	}
	newCmd.Flags().String("type", "", "Blood type, e.g. AB-")
	newCmd.Flags().Int("units", 1, "Units requested")
	newCmd.Flags().String("hospital", "", "Hospital name")
	newCmd.Flags().String("patient", "", "Patient name")
	newCmd.Flags().String("urgency", "normal", "normal, urgent, or emergency")
	newCmd.Flags().String("notes", "", "Additional notes")
	cmd.AddCommand(newCmd)

	reviewCmd := &cobra.Command{
		Use:   "review <id> <approved|rejected|completed>",
		Short: "Review a blood request (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			notes, _ := cmd.Flags().GetString("notes")

			svc := bloodbank.NewService(a.api)
			// The transition check needs the current status.
			requests, err := svc.ListRequests(cmd.Context())
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to load blood requests."))
				return err
			}
			var target *bloodbank.Request
			for i := range requests {
				if requests[i].ID == args[0] {
					target = &requests[i]
					break
				}
			}
			if target == nil {
				a.notify.Errorf("No blood request with id %s.", args[0])
				return nil
			}
			updated, err := svc.ReviewRequest(cmd.Context(), *target, args[1], notes)
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to review request."))
				return err
			}
			a.notify.Successf("Request %s is now %s.", updated.ID, updated.Status)
			return nil
		},
	}
	reviewCmd.Flags().String("notes", "", "Admin notes")
	cmd.AddCommand(reviewCmd)

	return cmd
}
