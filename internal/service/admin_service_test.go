package service

import (
	"context"
	"strings"
	"testing"

	"marketplace-service/internal/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapKeepsExistingValues(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.admin.Bootstrap(ctx, BootstrapConfig{AdminPassword: "first-pass", SupportPhone: "5350000001"}))
	require.NoError(t, f.admin.Bootstrap(ctx, BootstrapConfig{AdminPassword: "second-pass", SupportPhone: "5350000002"}))

	settings, err := f.mem.Settings().Load(ctx)
	require.NoError(t, err)
	assert.True(t, CheckPassword("first-pass", settings.SuperAdminHash))
	assert.Equal(t, "5350000001", settings.SupportWhatsApp)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.admin.Bootstrap(ctx, BootstrapConfig{AdminPassword: "changeme2026"}))
	before, err := f.mem.Settings().Load(ctx)
	require.NoError(t, err)

	err = f.admin.ChangePassword(ctx, "12345")
	assertKind(t, apperror.KindValidation, err)
	after, err := f.mem.Settings().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.SuperAdminHash, after.SuperAdminHash)

	require.NoError(t, f.admin.ChangePassword(ctx, "123456"))
	_, err = f.auth.AdminLogin(ctx, "123456")
	assert.NoError(t, err)
	_, err = f.auth.AdminLogin(ctx, "changeme2026")
	assertKind(t, apperror.KindUnauthorized, err)
}

func TestIssueAndRevokeCodes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	generated, err := f.admin.IssueCode(ctx, "")
	require.NoError(t, err)
	assert.Regexp(t, `^PRO-[0-9A-Z]{6}$`, generated.Code)

	explicit, err := f.admin.IssueCode(ctx, " VIP-2026 ")
	require.NoError(t, err)
	assert.Equal(t, "VIP-2026", explicit.Code)

	_, err = f.admin.IssueCode(ctx, "VIP-2026")
	assertKind(t, apperror.KindValidation, err)
	assert.Equal(t, 2, f.mem.CodeCount())

	require.NoError(t, f.admin.RevokeCode(ctx, explicit.ID))
	assertKind(t, apperror.KindNotFound, f.admin.RevokeCode(ctx, explicit.ID))
	assert.Equal(t, 1, f.mem.CodeCount())
}

func TestGenerateCodeShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, `^PRO-[0-9A-Z]{6}$`, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestSetSuspension(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	store := f.addVendor(t, "Tienda", "5355500001", "x")

	state, err := f.admin.SetSuspension(ctx, store.ID, nil)
	require.NoError(t, err)
	assert.True(t, state)

	state, err = f.admin.SetSuspension(ctx, store.ID, nil)
	require.NoError(t, err)
	assert.False(t, state)

	state, err = f.admin.SetSuspension(ctx, store.ID, ptr(true))
	require.NoError(t, err)
	assert.True(t, state)
	state, err = f.admin.SetSuspension(ctx, store.ID, ptr(true))
	require.NoError(t, err)
	assert.True(t, state, "explicit value is idempotent")

	_, err = f.admin.SetSuspension(ctx, uuid.New(), nil)
	assertKind(t, apperror.KindNotFound, err)
}

func TestDeleteStoreCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	store := f.addVendor(t, "Tienda", "5355500001", "x")
	other := f.addVendor(t, "Otra", "5355500002", "x")
	p := f.addProduct(t, store.ID, "uno", true)
	kept := f.addProduct(t, other.ID, "dos", true)

	require.NoError(t, f.admin.DeleteStore(ctx, store.ID))
	_, ok := f.mem.Product(p.ID)
	assert.False(t, ok)
	_, ok = f.mem.Product(kept.ID)
	assert.True(t, ok)

	assertKind(t, apperror.KindNotFound, f.admin.DeleteStore(ctx, store.ID))
}

func TestStoreOverrides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	store := f.addVendor(t, "Tienda", "5355500001", "old-pass")
	f.addVendor(t, "Otra", "5355500002", "x")

	err := f.admin.SetStoreContact(ctx, store.ID, "5355500002")
	assertKind(t, apperror.KindValidation, err)
	assert.Equal(t, "number in use", apperror.Message(err))

	require.NoError(t, f.admin.SetStoreContact(ctx, store.ID, "5355500003"))
	assertKind(t, apperror.KindValidation, f.admin.SetStoreContact(ctx, store.ID, ""))

	assertKind(t, apperror.KindValidation, f.admin.SetStorePassword(ctx, store.ID, ""))
	require.NoError(t, f.admin.SetStorePassword(ctx, store.ID, "new-pass"))

	_, err = f.auth.VendorLogin(ctx, "5355500003", "old-pass")
	assertKind(t, apperror.KindUnauthorized, err)
	_, err = f.auth.VendorLogin(ctx, "5355500003", "new-pass")
	assert.NoError(t, err)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.addVendor(t, "A", "5355500001", "x")
	f.addVendor(t, "B", "5355500002", "x")
	f.addProduct(t, a.ID, "uno", true)
	f.addProduct(t, a.ID, "dos", false)
	f.mem.AddCode("PRO-000001")

	d, err := f.admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{TotalStores: 2, TotalProducts: 2, AvailableLicenses: 1}, d.Stats)
	assert.Len(t, d.Stores, 2)
	assert.Len(t, d.Codes, 1)
	assert.Equal(t, "B", d.Stores[0].Name, "newest first")
}

func TestSupportContactRequired(t *testing.T) {
	f := newFixture(t)
	assertKind(t, apperror.KindValidation, f.admin.SetSupportContact(context.Background(), "  "))
}

func TestOverlongPasswordsAreBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.admin.Bootstrap(ctx, BootstrapConfig{AdminPassword: "changeme2026"}))
	store := f.addVendor(t, "Tienda", "5355500001", "old-pass")
	long := strings.Repeat("x", 80)

	err := f.admin.ChangePassword(ctx, long)
	assertKind(t, apperror.KindValidation, err)
	assert.Equal(t, "password too long", apperror.Message(err))
	_, err = f.auth.AdminLogin(ctx, "changeme2026")
	assert.NoError(t, err)

	err = f.admin.SetStorePassword(ctx, store.ID, long)
	assertKind(t, apperror.KindValidation, err)
	_, err = f.auth.VendorLogin(ctx, "5355500001", "old-pass")
	assert.NoError(t, err)
}
