package service

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"marketplace-service/internal/apperror"
	"marketplace-service/pkg/jwtutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest(name, whatsapp, code string) RegisterRequest {
	return RegisterRequest{Name: name, WhatsApp: whatsapp, OwnerName: "Ana", Code: code, Password: "clave123"}
}

func TestRegisterConsumesCodeAndIssuesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mem.AddCode("PRO-AB12CD")
	f.mem.AddCode("PRO-ZZ99ZZ")

	reg, err := f.auth.Register(ctx, registerRequest("Modas Habana", "5355511111", "PRO-AB12CD"))
	require.NoError(t, err)

	assert.Equal(t, "modas-habana", reg.Store.Slug)
	assert.Equal(t, 1, f.mem.StoreCount())
	assert.Equal(t, 1, f.mem.CodeCount())
	assert.True(t, CheckPassword("clave123", reg.Store.PasswordHash))

	claims, err := f.jwt.ValidateToken(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, jwtutil.RoleVendor, claims.Role)
	assert.Equal(t, reg.Store.ID.String(), claims.StoreID)
	assert.Nil(t, claims.ExpiresAt, "registration tokens carry no expiry")
}

func TestRegisterSameNameGetsSuffixedSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mem.AddCode("PRO-AAAAAA")
	f.mem.AddCode("PRO-BBBBBB")

	first, err := f.auth.Register(ctx, registerRequest("Modas Habana", "5355511111", "PRO-AAAAAA"))
	require.NoError(t, err)
	second, err := f.auth.Register(ctx, registerRequest("Modas Habana", "5355522222", "PRO-BBBBBB"))
	require.NoError(t, err)

	assert.Equal(t, "modas-habana", first.Store.Slug)
	assert.Regexp(t, regexp.MustCompile(`^modas-habana-\d{1,3}$`), second.Store.Slug)
}

func TestRegisterRejectsUnknownOrUsedCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mem.AddCode("PRO-ONCE00")

	_, err := f.auth.Register(ctx, registerRequest("Tienda Uno", "5355500001", "PRO-NOPE00"))
	assertKind(t, apperror.KindValidation, err)
	assert.Equal(t, 0, f.mem.StoreCount())

	_, err = f.auth.Register(ctx, registerRequest("Tienda Uno", "5355500001", "PRO-ONCE00"))
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, registerRequest("Tienda Dos", "5355500002", "PRO-ONCE00"))
	assertKind(t, apperror.KindValidation, err)
	assert.Equal(t, 1, f.mem.StoreCount())
}

func TestRegisterDuplicateWhatsAppKeepsCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addVendor(t, "Existente", "5355500001", "x")
	f.mem.AddCode("PRO-KEEP00")

	_, err := f.auth.Register(ctx, registerRequest("Nueva", "5355500001", "PRO-KEEP00"))
	assertKind(t, apperror.KindValidation, err)
	assert.Equal(t, "whatsapp number already in use", apperror.Message(err))
	assert.Equal(t, 1, f.mem.CodeCount())
	assert.Equal(t, 1, f.mem.StoreCount())
}

func TestRegisterValidatesInput(t *testing.T) {
	f := newFixture(t)
	req := registerRequest("  ", "5355500001", "PRO-X")
	_, err := f.auth.Register(context.Background(), req)
	assertKind(t, apperror.KindValidation, err)

	req = registerRequest("Tienda", "5355500001", "PRO-X")
	req.Password = ""
	_, err = f.auth.Register(context.Background(), req)
	assertKind(t, apperror.KindValidation, err)
}

func TestVendorLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	store := f.addVendor(t, "Tienda", "5355500001", "secreto")
	f.addProduct(t, store.ID, "visible", true)
	f.addProduct(t, store.ID, "oculto", false)

	t.Run("unknown number", func(t *testing.T) {
		_, err := f.auth.VendorLogin(ctx, "5399999999", "secreto")
		assertKind(t, apperror.KindNotFound, err)
	})

	t.Run("bad password", func(t *testing.T) {
		_, err := f.auth.VendorLogin(ctx, "5355500001", "wrong")
		assertKind(t, apperror.KindUnauthorized, err)
	})

	t.Run("success returns every product", func(t *testing.T) {
		session, err := f.auth.VendorLogin(ctx, "5355500001", "secreto")
		require.NoError(t, err)
		assert.Equal(t, store.ID, session.Store.ID)
		assert.Len(t, session.Products, 2)

		claims, err := f.jwt.ValidateToken(session.Token)
		require.NoError(t, err)
		assert.Equal(t, store.ID.String(), claims.StoreID)
		assert.Equal(t, store.OwnerName, claims.Name)
		require.NotNil(t, claims.ExpiresAt)
	})

	t.Run("suspended", func(t *testing.T) {
		require.NoError(t, f.mem.Stores().SetSuspended(ctx, store.ID, true))
		_, err := f.auth.VendorLogin(ctx, "5355500001", "secreto")
		assertKind(t, apperror.KindForbidden, err)
	})
}

func TestAdminLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.AdminLogin(ctx, "anything")
	assertKind(t, apperror.KindInternal, err)

	require.NoError(t, f.admin.Bootstrap(ctx, BootstrapConfig{AdminPassword: "changeme2026", SupportPhone: "5350000000"}))

	_, err = f.auth.AdminLogin(ctx, "nope")
	assertKind(t, apperror.KindUnauthorized, err)

	token, err := f.auth.AdminLogin(ctx, "changeme2026")
	require.NoError(t, err)
	claims, err := f.jwt.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, jwtutil.RoleSuperAdmin, claims.Role)
	assert.Empty(t, claims.StoreID)
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mem.AddCode("PRO-LONG01")

	req := registerRequest("Tienda Larga", "5355500009", "PRO-LONG01")
	req.Password = strings.Repeat("a", 73)
	_, err := f.auth.Register(ctx, req)
	assertKind(t, apperror.KindValidation, err)
	assert.Equal(t, "password too long", apperror.Message(err))
	assert.Equal(t, 0, f.mem.StoreCount())
	assert.Equal(t, 1, f.mem.CodeCount())

	req.Password = strings.Repeat("a", 72)
	_, err = f.auth.Register(ctx, req)
	assert.NoError(t, err)
}
