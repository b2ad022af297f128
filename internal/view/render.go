package view

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/healthdesk/healthdesk/internal/domain/admin"
	"github.com/healthdesk/healthdesk/internal/domain/bloodbank"
	"github.com/healthdesk/healthdesk/internal/domain/booking"
	"github.com/healthdesk/healthdesk/internal/domain/directory"
	"github.com/healthdesk/healthdesk/internal/domain/pharmacy"
)

func newTab(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// RenderAppointments writes the appointment table, or an explicit empty-state
// line when there is nothing to show.
func RenderAppointments(w io.Writer, rows []booking.Appointment) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No appointments yet.")
		return
	}
	tw := newTab(w)
	fmt.Fprintln(tw, "ID\tDOCTOR\tDATE\tTIME\tPATIENT\tSTATUS")
	for _, a := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.DoctorName, a.AppointmentDate, a.AppointmentTime, a.PatientName, a.Status)
	}
	tw.Flush()
}

func RenderDoctors(w io.Writer, rows []directory.Doctor) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No doctors found.")
		return
	}
	tw := newTab(w)
	fmt.Fprintln(tw, "ID\tNAME\tSPECIALIZATION\tEXPERIENCE\tFEES\tAVAILABILITY")
	for _, d := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
			d.ID, d.Name, d.Specialization, d.Experience, d.Fees, d.Availability)
	}
	tw.Flush()
}

func RenderBloodRecords(w io.Writer, rows []bloodbank.Record) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No blood bank records.")
		return
	}
	tw := newTab(w)
	fmt.Fprintln(tw, "ID\tTYPE\tUNITS\tHOSPITAL\tCONTACT")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			r.ID, r.BloodType, r.UnitsAvailable, r.HospitalName, r.Contact)
	}
	tw.Flush()
}

func RenderBloodRequests(w io.Writer, rows []bloodbank.Request) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No blood requests.")
		return
	}
	tw := newTab(w)
	fmt.Fprintln(tw, "ID\tTYPE\tUNITS\tPATIENT\tURGENCY\tSTATUS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			r.ID, r.BloodType, r.UnitsRequested, r.PatientName, r.Urgency, r.Status)
	}
	tw.Flush()
}

func RenderPharmacies(w io.Writer, rows []pharmacy.Pharmacy) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No pharmacies found.")
		return
	}
	tw := newTab(w)
	fmt.Fprintln(tw, "ID\tNAME\tADDRESS\tCONTACT\tHOURS")
	for _, p := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Address, p.Contact, p.OperatingHours)
	}
	tw.Flush()
}

func RenderMedicines(w io.Writer, rows []pharmacy.Medicine) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No medicines in the catalogue.")
		return
	}
	tw := newTab(w)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, m := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%d\n",
			m.ID, m.Name, m.Category, m.Price, m.Stock)
	}
	tw.Flush()
}

func RenderOrders(w io.Writer, rows []pharmacy.Order) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No orders yet.")
		return
	}
	tw := newTab(w)
	fmt.Fprintln(tw, "ID\tITEMS\tTOTAL\tSTATUS\tPLACED")
	for _, o := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%s\t%s\n",
			o.ID, len(o.Items), o.TotalAmount, o.Status, o.CreatedAt.Format("2006-01-02 15:04"))
	}
	tw.Flush()
}

// RenderCart writes the cart lines with a running total.
func RenderCart(w io.Writer, cart *pharmacy.Cart) {
	items := cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}
	tw := newTab(w)
	fmt.Fprintln(tw, "MEDICINE\tQTY\tPRICE\tLINE TOTAL")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\n",
			it.MedicineName, it.Quantity, it.Price, it.Price*float64(it.Quantity))
	}
	tw.Flush()
	fmt.Fprintf(w, "Total: %.2f\n", cart.Total())
}

func RenderAdmins(w io.Writer, rows []admin.Account) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No admin accounts.")
		return
	}
	tw := newTab(w)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tROLE\tCREATED")
	for _, a := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Email, a.Name, a.Role, a.CreatedAt.Format("2006-01-02"))
	}
	tw.Flush()
}
