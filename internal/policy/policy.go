// Package policy maps actor roles to the tracking stages they may append.
package policy

import "strings"

// Role names as supplied by the auth collaborator.
const (
	RoleAdmin            = "admin"
	RoleFarmer           = "farmer"
	RoleProcessor        = "processor"
	RoleWarehouseManager = "warehouse-manager"
	RoleDistributor      = "distributor"
	RoleRetailer         = "retailer"
)

// stagesByRole is the fixed authorization table. Stage names are stored
// lowercase; lookups are case-insensitive on both role and stage.
var stagesByRole = map[string][]string{
	RoleFarmer:           {"farm"},
	RoleProcessor:        {"processing", "quality check"},
	RoleWarehouseManager: {"warehouse"},
	RoleDistributor:      {"distribution"},
	RoleRetailer:         {"retail"},
}

// Allows reports whether the given role may append the named stage.
// The admin role is allowed every stage. Unknown roles and stages outside
// the role's permitted set are denied. Pure; no side effects.
func Allows(role, stage string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == RoleAdmin {
		return true
	}
	stage = strings.ToLower(strings.TrimSpace(stage))
	for _, s := range stagesByRole[role] {
		if s == stage {
			return true
		}
	}
	return false
}
