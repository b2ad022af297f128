package pharmacy

import "time"

// Pharmacy is a partner pharmacy listing.
type Pharmacy struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Contact        string    `json:"contact"`
	OperatingHours string    `json:"operating_hours"`
	Services       string    `json:"services"`
	CreatedAt      time.Time `json:"created_at"`
}

type PharmacyCreate struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	Contact        string `json:"contact"`
	OperatingHours string `json:"operating_hours"`
	Services       string `json:"services"`
}

type PharmacyUpdate struct {
	Contact        *string `json:"contact,omitempty"`
	OperatingHours *string `json:"operating_hours,omitempty"`
	Services       *string `json:"services,omitempty"`
}

// Medicine is a catalogue entry orderable through the cart.
type Medicine struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

type MedicineCreate struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
}

// OrderItem is one cart line as it goes over the wire.
type OrderItem struct {
	MedicineID   string  `json:"medicine_id"`
	MedicineName string  `json:"medicine_name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

type OrderCreate struct {
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
}

type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	UserName    string      `json:"user_name"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

var validOrderStatuses = map[string]bool{
	"pending": true, "processing": true, "shipped": true,
	"delivered": true, "completed": true, "cancelled": true,
}
