// Package pharmacy covers the pharmacy directory, the medicine catalogue, and
// the cart-to-order checkout flow.
package pharmacy

import (
	"context"
	"errors"
	"fmt"

	"github.com/healthdesk/healthdesk/internal/platform/rest"
)

// ErrEmptyCart is returned when checkout is attempted with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

type Service struct {
	api *rest.Client
}

func NewService(api *rest.Client) *Service {
	return &Service{api: api}
}

// ---- pharmacies ----

func (s *Service) ListPharmacies(ctx context.Context) ([]Pharmacy, error) {
	var out []Pharmacy
	if err := s.api.Get(ctx, "/pharmacies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) CreatePharmacy(ctx context.Context, p PharmacyCreate) (*Pharmacy, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("pharmacy name is required")
	}
	var created Pharmacy
	if err := s.api.Post(ctx, "/pharmacies", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) UpdatePharmacy(ctx context.Context, id string, patch PharmacyUpdate) (*Pharmacy, error) {
	var updated Pharmacy
	if err := s.api.Patch(ctx, "/pharmacies/"+id, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeletePharmacy(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/pharmacies/"+id)
}

// ---- medicines ----

func (s *Service) ListMedicines(ctx context.Context) ([]Medicine, error) {
	var out []Medicine
	if err := s.api.Get(ctx, "/medicines", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) CreateMedicine(ctx context.Context, m MedicineCreate) (*Medicine, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("medicine name is required")
	}
	if m.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	var created Medicine
	if err := s.api.Post(ctx, "/medicines", m, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) DeleteMedicine(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/medicines/"+id)
}

// ---- orders ----

// ListOrders returns the caller's orders; admins see all of them.
func (s *Service) ListOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := s.api.Get(ctx, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PlaceOrder checks out the cart. The total is recomputed from the cart at the
// moment of submission. On success the cart is cleared; on failure it is left
// untouched so the user can retry.
func (s *Service) PlaceOrder(ctx context.Context, cart *Cart) (*Order, error) {
	items := cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	payload := OrderCreate{Items: items, TotalAmount: cart.Total()}
	var created Order
	if err := s.api.Post(ctx, "/orders", payload, &created); err != nil {
		return nil, err
	}
	cart.Clear()
	return &created, nil
}

// UpdateOrderStatus moves an order to a new status (admin only).
func (s *Service) UpdateOrderStatus(ctx context.Context, id, status string) (*Order, error) {
	if !validOrderStatuses[status] {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}
	var updated Order
	body := map[string]string{"status": status}
	if err := s.api.Patch(ctx, "/orders/"+id, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
