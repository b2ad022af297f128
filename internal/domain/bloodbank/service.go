// Package bloodbank covers the blood-bank inventory and the request/review
// workflow around it.
package bloodbank

import (
	"context"
	"fmt"

	"github.com/healthdesk/healthdesk/internal/platform/rest"
)

type Service struct {
	api *rest.Client
}

func NewService(api *rest.Client) *Service {
	return &Service{api: api}
}

// ---- inventory ----

func (s *Service) ListRecords(ctx context.Context) ([]Record, error) {
	var out []Record
	if err := s.api.Get(ctx, "/blood-bank", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) CreateRecord(ctx context.Context, r RecordCreate) (*Record, error) {
	if r.BloodType == "" || r.HospitalName == "" {
		return nil, fmt.Errorf("blood type and hospital name are required")
	}
	if r.UnitsAvailable < 0 {
		return nil, fmt.Errorf("units available cannot be negative")
	}
	var created Record
	if err := s.api.Post(ctx, "/blood-bank", r, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) UpdateRecord(ctx context.Context, id string, patch RecordUpdate) (*Record, error) {
	if patch.UnitsAvailable != nil && *patch.UnitsAvailable < 0 {
		return nil, fmt.Errorf("units available cannot be negative")
	}
	var updated Record
	if err := s.api.Patch(ctx, "/blood-bank/"+id, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteRecord(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/blood-bank/"+id)
}

// ---- requests ----

// ListRequests returns the caller's requests; admins see all of them.
func (s *Service) ListRequests(ctx context.Context) ([]Request, error) {
	var out []Request
	if err := s.api.Get(ctx, "/blood-requests", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) CreateRequest(ctx context.Context, r RequestCreate) (*Request, error) {
	if r.BloodType == "" || r.PatientName == "" {
		return nil, fmt.Errorf("blood type and patient name are required")
	}
	if r.UnitsRequested < 1 {
		return nil, fmt.Errorf("at least one unit must be requested")
	}
	if r.Urgency == "" {
		r.Urgency = "normal"
	}
	if !validUrgencies[r.Urgency] {
		return nil, fmt.Errorf("invalid urgency: %s", r.Urgency)
	}
	var created Request
	if err := s.api.Post(ctx, "/blood-requests", r, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ReviewRequest moves a request to a new status. The transition is validated
// against the current status before the backend is called.
func (s *Service) ReviewRequest(ctx context.Context, req Request, status string, adminNotes string) (*Request, error) {
	if !CanTransition(req.Status, status) {
		return nil, fmt.Errorf("cannot move request from %s to %s", req.Status, status)
	}
	patch := RequestUpdate{Status: &status}
	if adminNotes != "" {
		patch.AdminNotes = &adminNotes
	}
	var updated Request
	if err := s.api.Patch(ctx, "/blood-requests/"+req.ID, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteRequest(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/blood-requests/"+id)
}
