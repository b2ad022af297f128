package directory

import (
	"sort"
	"time"
)

// Doctor is the backend-owned directory record.
type Doctor struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Experience     string    `json:"experience"`
	Contact        string    `json:"contact"`
	Availability   string    `json:"availability"`
	Gender         string    `json:"gender"`
	Fees           float64   `json:"fees"`
	CreatedAt      time.Time `json:"created_at"`
}

// DoctorCreate is the admin-side creation payload.
type DoctorCreate struct {
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Experience     string  `json:"experience"`
	Contact        string  `json:"contact"`
	Availability   string  `json:"availability"`
	Gender         string  `json:"gender"`
	Fees           float64 `json:"fees"`
}

// Specializations derives the distinct specializations present in the
// directory, sorted. Recomputed from the fetched list on demand.
func Specializations(doctors []Doctor) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range doctors {
		if d.Specialization == "" || seen[d.Specialization] {
			continue
		}
		seen[d.Specialization] = true
		out = append(out, d.Specialization)
	}
	sort.Strings(out)
	return out
}

// FilterBySpecialization returns the doctors matching the given
// specialization; an empty specialization matches nothing.
func FilterBySpecialization(doctors []Doctor, specialization string) []Doctor {
	if specialization == "" {
		return nil
	}
	var out []Doctor
	for _, d := range doctors {
		if d.Specialization == specialization {
			out = append(out, d)
		}
	}
	return out
}
