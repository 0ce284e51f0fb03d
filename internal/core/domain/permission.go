package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Permission codes gate individual operations and admin screens.
const (
	PermCollectionsRecord = "collections.record"
	PermCollectionsManage = "collections.manage"
	PermSalesRecord       = "sales.record"
	PermSalesManage       = "sales.manage"
	PermSuppliersManage   = "suppliers.manage"
	PermWalletsView       = "wallets.view"
	PermWalletsManage     = "wallets.manage"
	PermAccountingView    = "accounting.view"
	PermAccountingManage  = "accounting.manage"
	PermPayrollGenerate   = "payroll.generate"
	PermReportsView       = "reports.view"
)

// rolePermissions is the static role -> permission allow-list. Owner and
// admin are handled implicitly (all permissions); supplier and customer roles
// carry none and only see account/profile screens.
var rolePermissions = map[AccountRole][]string{
	RoleManager: {
		PermCollectionsRecord, PermCollectionsManage,
		PermSalesRecord, PermSalesManage,
		PermSuppliersManage,
		PermWalletsView, PermWalletsManage,
		PermAccountingView,
		PermPayrollGenerate,
		PermReportsView,
	},
	RoleCollector: {
		PermCollectionsRecord,
		PermSalesRecord,
	},
	RoleAgent: {
		PermCollectionsRecord,
		PermSalesRecord,
		PermReportsView,
	},
	RoleViewer: {
		PermWalletsView,
		PermAccountingView,
		PermReportsView,
	},
}

// PermissionSet is the normalized internal representation of a permission
// override. Historical data stores overrides either as a JSON array of codes
// or as a {"code": true} object; normalization happens once at the boundary
// so call sites never branch on shape.
type PermissionSet map[string]struct{}

// NormalizePermissions parses a raw permissions blob into a PermissionSet.
// A nil or empty blob yields a nil set (no override).
func NormalizePermissions(raw []byte) (PermissionSet, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var codes []string
	if err := json.Unmarshal(raw, &codes); err == nil {
		set := make(PermissionSet, len(codes))
		for _, c := range codes {
			set[c] = struct{}{}
		}
		return set, nil
	}
	var obj map[string]bool
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("permissions blob is neither array nor object: %w", err)
	}
	set := make(PermissionSet, len(obj))
	for c, allowed := range obj {
		if allowed {
			set[c] = struct{}{}
		}
	}
	return set, nil
}

// Contains reports whether the set grants the given permission code.
func (p PermissionSet) Contains(code string) bool {
	_, ok := p[code]
	return ok
}

// Codes returns the sorted permission codes in the set.
func (p PermissionSet) Codes() []string {
	codes := make([]string, 0, len(p))
	for c := range p {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// MarshalJSON writes the set as a sorted JSON array of codes.
func (p PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Codes())
}

// UnmarshalJSON accepts either blob shape, mirroring NormalizePermissions.
func (p *PermissionSet) UnmarshalJSON(raw []byte) error {
	set, err := NormalizePermissions(raw)
	if err != nil {
		return err
	}
	*p = set
	return nil
}

// HasPermission resolves whether a user-account assignment grants the given
// permission. Owner and admin roles grant everything unconditionally. Other
// roles consult the per-assignment override when present; with no override
// the static role table applies, and an unknown role fails closed.
func HasPermission(role AccountRole, override PermissionSet, code string) bool {
	if role == RoleOwner || role == RoleAdmin {
		return true
	}
	if override != nil {
		return override.Contains(code)
	}
	for _, c := range rolePermissions[role] {
		if c == code {
			return true
		}
	}
	return false
}

// PermissionsForRole returns the effective permission codes for an
// assignment, resolving the override-or-static-table precedence.
func PermissionsForRole(role AccountRole, override PermissionSet) []string {
	if role == RoleOwner || role == RoleAdmin {
		all := make([]string, 0)
		seen := make(map[string]struct{})
		for _, codes := range rolePermissions {
			for _, c := range codes {
				if _, ok := seen[c]; !ok {
					seen[c] = struct{}{}
					all = append(all, c)
				}
			}
		}
		sort.Strings(all)
		return all
	}
	if override != nil {
		return override.Codes()
	}
	codes := make([]string, len(rolePermissions[role]))
	copy(codes, rolePermissions[role])
	sort.Strings(codes)
	return codes
}
