// Package auth implements the dashboard's cookie based access model:
// a handful of fixed staff accounts plus one database verified admin.
package auth

import "time"

// Cookie names form the contract with the front end and must not change.
const (
	RoleCookie  = "sc_role"
	AdminCookie = "sc_admin"
)

// Role names double as route prefixes on the front end.
const (
	RoleIcham     = "icham"
	RoleIbrahim   = "ibrahim"
	RoleVendeur   = "vendeur"
	RoleDataEntry = "data_entry"
	RoleDirection = "direction"
	RoleAdmin     = "admin"
)

// Session is the authenticated state carried by the role cookies.
type Session struct {
	Role    string `json:"role"`
	Admin   bool   `json:"admin"`
	Landing string `json:"redirect"`
}

// Admin is the single database verified account.
type Admin struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}

// Landing returns the front end page a role is sent to after login and
// when hitting the root path.
func Landing(role string) string {
	switch role {
	case RoleIcham:
		return "/icham"
	case RoleIbrahim:
		return "/ibrahim"
	case RoleVendeur:
		return "/vendeur"
	case RoleDataEntry:
		return "/data-entry"
	case RoleDirection, RoleAdmin:
		return "/kpi"
	default:
		return "/login"
	}
}

// KnownRole reports whether a role cookie value is one this service issues.
func KnownRole(role string) bool {
	switch role {
	case RoleIcham, RoleIbrahim, RoleVendeur, RoleDataEntry, RoleDirection, RoleAdmin:
		return true
	}
	return false
}
