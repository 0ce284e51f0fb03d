package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemura/gemura-backend/internal/core/domain"
)

func TestNormalizePermissions_ArrayShape(t *testing.T) {
	set, err := domain.NormalizePermissions([]byte(`["sales.record","wallets.view"]`))
	require.NoError(t, err)
	assert.True(t, set.Contains(domain.PermSalesRecord))
	assert.True(t, set.Contains(domain.PermWalletsView))
	assert.False(t, set.Contains(domain.PermPayrollGenerate))
}

func TestNormalizePermissions_ObjectShape(t *testing.T) {
	set, err := domain.NormalizePermissions([]byte(`{"sales.record":true,"wallets.view":false}`))
	require.NoError(t, err)
	assert.True(t, set.Contains(domain.PermSalesRecord))
	assert.False(t, set.Contains(domain.PermWalletsView), "false entries do not grant")
}

func TestNormalizePermissions_EmptyBlobMeansNoOverride(t *testing.T) {
	set, err := domain.NormalizePermissions(nil)
	require.NoError(t, err)
	assert.Nil(t, set)
}

func TestNormalizePermissions_MalformedBlob(t *testing.T) {
	_, err := domain.NormalizePermissions([]byte(`"sales.record"`))
	assert.Error(t, err)
}

func TestPermissionSet_JSONRoundTrip(t *testing.T) {
	var set domain.PermissionSet
	require.NoError(t, json.Unmarshal([]byte(`{"sales.record":true}`), &set))

	out, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `["sales.record"]`, string(out))
}

func TestHasPermission_OwnerAndAdminGrantAll(t *testing.T) {
	assert.True(t, domain.HasPermission(domain.RoleOwner, nil, domain.PermPayrollGenerate))
	assert.True(t, domain.HasPermission(domain.RoleAdmin, nil, domain.PermAccountingManage))

	// Even an explicit empty override never restricts owner/admin.
	assert.True(t, domain.HasPermission(domain.RoleAdmin, domain.PermissionSet{}, domain.PermSalesRecord))
}

func TestHasPermission_RoleTableApplies(t *testing.T) {
	assert.True(t, domain.HasPermission(domain.RoleCollector, nil, domain.PermCollectionsRecord))
	assert.False(t, domain.HasPermission(domain.RoleCollector, nil, domain.PermPayrollGenerate))
	assert.True(t, domain.HasPermission(domain.RoleViewer, nil, domain.PermAccountingView))
	assert.False(t, domain.HasPermission(domain.RoleViewer, nil, domain.PermSalesRecord))
}

func TestHasPermission_OverrideReplacesRoleTable(t *testing.T) {
	override, err := domain.NormalizePermissions([]byte(`["payroll.generate"]`))
	require.NoError(t, err)

	assert.True(t, domain.HasPermission(domain.RoleCollector, override, domain.PermPayrollGenerate))
	// The role table's own grants no longer apply once an override exists.
	assert.False(t, domain.HasPermission(domain.RoleCollector, override, domain.PermCollectionsRecord))
}

func TestHasPermission_SupplierAndCustomerFailClosed(t *testing.T) {
	assert.False(t, domain.HasPermission(domain.RoleSupplier, nil, domain.PermCollectionsRecord))
	assert.False(t, domain.HasPermission(domain.RoleCustomer, nil, domain.PermWalletsView))
}

func TestHasPermission_UnknownRoleFailsClosed(t *testing.T) {
	assert.False(t, domain.HasPermission(domain.AccountRole("INTERN"), nil, domain.PermReportsView))
}

func TestPermissionsForRole_AdminGetsEveryCode(t *testing.T) {
	codes := domain.PermissionsForRole(domain.RoleAdmin, nil)
	assert.Contains(t, codes, domain.PermCollectionsRecord)
	assert.Contains(t, codes, domain.PermPayrollGenerate)
	assert.Contains(t, codes, domain.PermAccountingView)
	assert.IsIncreasing(t, codes)
}

func TestPermissionsForRole_OverrideWins(t *testing.T) {
	override, err := domain.NormalizePermissions([]byte(`{"reports.view":true}`))
	require.NoError(t, err)

	codes := domain.PermissionsForRole(domain.RoleManager, override)
	assert.Equal(t, []string{domain.PermReportsView}, codes)
}
