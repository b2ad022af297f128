// Package directory is the doctor directory: read by users when booking,
// managed by admins.
package directory

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

func (s *Service) List(ctx context.Context) ([]Doctor, error) {
	var doctors []Doctor
	if err := s.api.Get(ctx, "/doctors", nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// Create registers a new doctor (admin only). The caller re-fetches the
// list afterwards; no local insert happens here.
func (s *Service) Create(ctx context.Context, d DoctorCreate) (*Doctor, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if d.Specialization == "" {
		return nil, fmt.Errorf("specialization is required")
	}
	var created Doctor
	if err := s.api.Post(ctx, "/doctors", d, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/doctors/"+id)
}
