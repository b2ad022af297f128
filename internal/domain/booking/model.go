package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Appointment is the backend-owned appointment record. Users create them,
// admins move them through statuses or delete them.
type Appointment struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	PatientName     string    `json:"patient_name"`
	PatientEmail    string    `json:"patient_email"`
	PatientPhone    string    `json:"patient_phone"`
	DoctorName      string    `json:"doctor_name"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// AppointmentCreate is the booking submission payload.
type AppointmentCreate struct {
	PatientName     string `json:"patient_name"`
	PatientEmail    string `json:"patient_email"`
	PatientPhone    string `json:"patient_phone"`
	DoctorName      string `json:"doctor_name"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Reason          string `json:"reason"`
}

// AppointmentUpdate is the admin-side patch payload.
type AppointmentUpdate struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// BookedSlots is the advisory conflict data for one (doctor, date) pair:
// times already taken and the per-appointment window the backend enforces.
type BookedSlots struct {
	BookedTimes     []string `json:"booked_times"`
	DurationMinutes int      `json:"duration_minutes"`
}

// Overlaps reports whether t (HH:MM) falls within the booked window of any
// taken slot. Advisory only; the backend remains the authority on conflicts.
func (b BookedSlots) Overlaps(t string) bool {
	start, err := parseClock(t)
	if err != nil {
		return false
	}
	duration := b.DurationMinutes
	if duration <= 0 {
		duration = 20
	}
	for _, booked := range b.BookedTimes {
		bs, err := parseClock(booked)
		if err != nil {
			continue
		}
		// Two appointments of equal duration overlap iff their starts are
		// closer than one window.
		diff := start - bs
		if diff < 0 {
			diff = -diff
		}
		if diff < duration {
			return true
		}
	}
	return false
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// ValidDate checks the YYYY-MM-DD wire format used for appointment dates.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
