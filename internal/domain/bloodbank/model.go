package bloodbank

import (
	"strings"
	"time"
)

// Record is one blood-type inventory row at a hospital.
type Record struct {
	ID             string    `json:"id"`
	BloodType      string    `json:"blood_type"`
	UnitsAvailable int       `json:"units_available"`
	HospitalName   string    `json:"hospital_name"`
	Contact        string    `json:"contact"`
	Address        string    `json:"address"`
	LastUpdated    time.Time `json:"last_updated"`
}

type RecordCreate struct {
	BloodType      string `json:"blood_type"`
	UnitsAvailable int    `json:"units_available"`
	HospitalName   string `json:"hospital_name"`
	Contact        string `json:"contact"`
	Address        string `json:"address"`
}

// RecordUpdate patches an inventory row; nil fields are left untouched.
type RecordUpdate struct {
	UnitsAvailable *int    `json:"units_available,omitempty"`
	Contact        *string `json:"contact,omitempty"`
	Address        *string `json:"address,omitempty"`
}

// Request is a patient-side ask for blood units, reviewed by admins.
type Request struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name"`
	UserEmail      string    `json:"user_email"`
	UserPhone      string    `json:"user_phone"`
	BloodType      string    `json:"blood_type"`
	UnitsRequested int       `json:"units_requested"`
	HospitalName   string    `json:"hospital_name"`
	PatientName    string    `json:"patient_name"`
	Urgency        string    `json:"urgency"`
	Notes          string    `json:"notes"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type RequestCreate struct {
	BloodType      string `json:"blood_type"`
	UnitsRequested int    `json:"units_requested"`
	HospitalName   string `json:"hospital_name"`
	PatientName    string `json:"patient_name"`
	Urgency        string `json:"urgency"`
	Notes          string `json:"notes"`
}

type RequestUpdate struct {
	Status     *string `json:"status,omitempty"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}

var validUrgencies = map[string]bool{
	"normal": true, "urgent": true, "emergency": true,
}

// requestTransitions is the closed set of allowed review moves. A request is
// only ever acted on from pending; approved, rejected, and completed are
// terminal except for the approved -> completed fulfilment step.
var requestTransitions = map[string][]string{
	"pending":  {"approved", "rejected"},
	"approved": {"completed"},
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range requestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// FilterRecords returns the records whose blood type or hospital name contains
// the query, case-insensitively. An empty query returns everything.
func FilterRecords(records []Record, query string) []Record {
	if query == "" {
		return records
	}
	q := strings.ToLower(query)
	var out []Record
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.BloodType), q) ||
			strings.Contains(strings.ToLower(r.HospitalName), q) {
			out = append(out, r)
		}
	}
	return out
}
