package view

import "github.com/healthdesk/healthdesk/internal/session"

// Area is a navigable section of the client.
type Area string

const (
	AreaAppointments Area = "appointments"
	AreaDoctors      Area = "doctors"
	AreaBloodBank    Area = "blood-bank"
	AreaPharmacies   Area = "pharmacies"
	AreaMedicines    Area = "medicines"
	AreaOrders       Area = "orders"
	AreaShop         Area = "shop"
	AreaChat         Area = "chat"
	AreaAdmins       Area = "admins"
)

// userAreas is what a plain user can reach. Admins get the same surface in
// management mode; only super admins see admin-account management.
var userAreas = []Area{
	AreaAppointments, AreaDoctors, AreaBloodBank, AreaPharmacies,
	AreaMedicines, AreaOrders, AreaShop, AreaChat,
}

// AccessFor returns the areas a role may enter. The mapping is closed over
// the three known roles; anything else gets nothing.
func AccessFor(role session.Role) []Area {
	switch role {
	case session.RoleUser, session.RoleAdmin:
		return userAreas
	case session.RoleSuperAdmin:
		return append(append([]Area{}, userAreas...), AreaAdmins)
	}
	return nil
}

// CanEnter reports whether the role may enter the area.
func CanEnter(role session.Role, area Area) bool {
	for _, a := range AccessFor(role) {
		if a == area {
			return true
		}
	}
	return false
}
