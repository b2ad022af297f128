// Package booking covers appointments: listing, the guided booking workflow
// with advisory booked-slot context, and admin status management.
package booking

import (
	"context"
	"fmt"
	"net/url"

	"github.com/healthdesk/healthdesk/internal/platform/rest"
)

var validStatuses = map[string]bool{
	"pending": true, "confirmed": true, "completed": true, "cancelled": true,
}

type Service struct {
	api *rest.Client
}

func NewService(api *rest.Client) *Service {
	return &Service{api: api}
}

// List returns the caller's appointments; the backend widens this to all
// appointments for admins.
func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	if err := s.api.Get(ctx, "/appointments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, a AppointmentCreate) (*Appointment, error) {
	var created Appointment
	if err := s.api.Post(ctx, "/appointments", a, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// BookedSlots fetches the advisory conflict data for one (doctor, date) pair.
func (s *Service) BookedSlots(ctx context.Context, doctorName, date string) (*BookedSlots, error) {
	q := url.Values{}
	q.Set("doctor_name", doctorName)
	q.Set("appointment_date", date)
	var slots BookedSlots
	if err := s.api.Get(ctx, "/appointments/booked-slots", q, &slots); err != nil {
		return nil, err
	}
	return &slots, nil
}

// UpdateStatus moves an appointment to a new status (admin only).
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*Appointment, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid appointment status: %s", status)
	}
	var updated Appointment
	patch := AppointmentUpdate{Status: &status}
	if err := s.api.Patch(ctx, "/appointments/"+id, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/appointments/"+id)
}
