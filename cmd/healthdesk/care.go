package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/healthdesk/healthdesk/internal/domain/booking"
	"github.com/healthdesk/healthdesk/internal/domain/directory"
	"github.com/healthdesk/healthdesk/internal/platform/rest"
	"github.com/healthdesk/healthdesk/internal/view"
)

func doctorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Browse the doctor directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireArea(cmd.Context(), view.AreaDoctors); err != nil {
				return err
			}
			spec, _ := cmd.Flags().GetString("specialization")

			svc := directory.NewService(a.api)
			doctors, err := svc.List(cmd.Context())
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to load doctors."))
				return err
			}
			if spec != "" {
				doctors = directory.FilterBySpecialization(doctors, spec)
			}
			view.RenderDoctors(os.Stdout, doctors)
			return nil
		},
	}
	cmd.Flags().String("specialization", "", "Only show doctors in this specialization")

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a doctor (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			d := directory.DoctorCreate{}
			d.Name, _ = cmd.Flags().GetString("name")
			d.Specialization, _ = cmd.Flags().GetString("specialization")
			d.Experience, _ = cmd.Flags().GetString("experience")
			d.Contact, _ = cmd.Flags().GetString("contact")
			d.Availability, _ = cmd.Flags().GetString("availability")
			d.Fees, _ = cmd.Flags().GetFloat64("fees")

			svc := directory.NewService(a.api)
			created, err := svc.Create(cmd.Context(), d)
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to add doctor."))
				return err
			}
			a.notify.Successf("Added %s (%s)", created.Name, created.ID)
			return nil
		},
	}
	addCmd.Flags().String("name", "", "Doctor name")
	addCmd.Flags().String("specialization", "", "Specialization")
	addCmd.Flags().String("experience", "", "Years of experience")
	addCmd.Flags().String("contact", "", "Contact number")
	addCmd.Flags().String("availability", "", "Availability, e.g. Mon-Fri 9-5")
	addCmd.Flags().Float64("fees", 0, "Consultation fee")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a doctor (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			svc := directory.NewService(a.api)
			if err := svc.Delete(cmd.Context(), args[0]); err != nil {
				a.notify.Error(rest.Detail(err, "Failed to remove doctor."))
				return err
			}
			a.notify.Success("Doctor removed.")
			return nil
		},
	})
	return cmd
}

func appointmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "List your appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireArea(cmd.Context(), view.AreaAppointments); err != nil {
				return err
			}
			svc := booking.NewService(a.api)
			rows, err := svc.List(cmd.Context())
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to load appointments."))
				return err
			}
			view.RenderAppointments(os.Stdout, rows)
			return nil
		},
	}

	cmd.AddCommand(bookCmd())
	cmd.AddCommand(slotsCmd())

	setStatusCmd := &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Move an appointment to a new status (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			svc := booking.NewService(a.api)
			updated, err := svc.UpdateStatus(cmd.Context(), args[0], args[1])
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to update appointment."))
				return err
			}
			a.notify.Successf("Appointment %s is now %s.", updated.ID, updated.Status)
			return nil
		},
	}
	cmd.AddCommand(setStatusCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an appointment (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			svc := booking.NewService(a.api)
			if err := svc.Delete(cmd.Context(), args[0]); err != nil {
				a.notify.Error(rest.Detail(err, "Failed to delete appointment."))
				return err
			}
			a.notify.Success("Appointment deleted.")
			return nil
		},
	})
	return cmd
}

func slotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Show booked times for a doctor on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireArea(cmd.Context(), view.AreaAppointments); err != nil {
				return err
			}
			doctor, _ := cmd.Flags().GetString("doctor")
			date, _ := cmd.Flags().GetString("date")
			if doctor == "" || date == "" {
				return fmt.Errorf("--doctor and --date are required")
			}

			svc := booking.NewService(a.api)
			slots, err := svc.BookedSlots(cmd.Context(), doctor, date)
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to load booked slots."))
				return err
			}
			if len(slots.BookedTimes) == 0 {
				fmt.Println("No booked times; the whole day is open.")
				return nil
			}
			fmt.Printf("Booked (%d-minute slots): %s\n",
				slots.DurationMinutes, strings.Join(slots.BookedTimes, ", "))
			return nil
		},
	}
	cmd.Flags().String("doctor", "", "Doctor name")
	cmd.Flags().String("date", "", "Date (YYYY-MM-DD)")
	return cmd
}

// bookCmd walks the guided flow: specialization, doctor, date, time, reason.
func bookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "book",
		Short: "Book an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			user, err := a.requireArea(cmd.Context(), view.AreaAppointments)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			dirSvc := directory.NewService(a.api)
			doctors, err := dirSvc.List(ctx)
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to load doctors."))
				return err
			}
			if len(doctors) == 0 {
				return fmt.Errorf("no doctors available")
			}

			specs := directory.Specializations(doctors)
			fmt.Println("Specializations:", strings.Join(specs, ", "))
			spec := prompt("Specialization: ")

			w := booking.NewWorkflow(booking.NewService(a.api), *user, a.logger)
			w.ChooseSpecialization(spec)

			matching := directory.FilterBySpecialization(doctors, spec)
			if len(matching) == 0 {
				return fmt.Errorf("no doctors in %q", spec)
			}
			view.RenderDoctors(os.Stdout, matching)
			name := prompt("Doctor name: ")
			var chosen *directory.Doctor
			for i := range matching {
				if matching[i].Name == name {
					chosen = &matching[i]
					break
				}
			}
			if chosen == nil {
				return fmt.Errorf("unknown doctor %q", name)
			}
			if err := w.ChooseDoctor(*chosen); err != nil {
				return err
			}

			if err := w.ChooseDate(prompt("Date (YYYY-MM-DD): ")); err != nil {
				return err
			}

			sc, err := w.LoadSlots(ctx)
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to load booked slots."))
				return err
			}
			if len(sc.Slots.BookedTimes) > 0 {
				fmt.Println("Already booked:", strings.Join(sc.Slots.BookedTimes, ", "))
			}

			t := prompt("Time (HH:MM): ")
			if w.Conflicts(t) {
				fmt.Println("Heads up: that time looks taken; the server will reject true conflicts.")
			}
			if err := w.SetTime(t); err != nil {
				return err
			}
			if err := w.SetReason(prompt("Reason for visit: ")); err != nil {
				return err
			}

			created, err := w.Submit(ctx)
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to book appointment."))
				return err
			}
			a.notify.Successf("Booked %s with %s on %s at %s.",
				created.ID, created.DoctorName, created.AppointmentDate, created.AppointmentTime)
			return nil
		},
	}
}
