// Package admin manages administrator accounts. Every operation here is
// super-admin only; the backend enforces that, the CLI gates it up front.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/healthdesk/healthdesk/internal/platform/rest"
	"github.com/healthdesk/healthdesk/internal/session"
)

// Account is an administrator as listed by the backend.
type Account struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Name      string       `json:"name"`
	Phone     string       `json:"phone"`
	Role      session.Role `json:"role"`
	CreatedAt time.Time    `json:"created_at"`
}

// AccountCreate provisions a new admin account.
type AccountCreate struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type Service struct {
	api *rest.Client
}

func NewService(api *rest.Client) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context) ([]Account, error) {
	var out []Account
	if err := s.api.Get(ctx, "/admin/list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, a AccountCreate) (*Account, error) {
	if a.Email == "" || a.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	var created Account
	if err := s.api.Post(ctx, "/admin/create", a, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/admin/"+id)
}
