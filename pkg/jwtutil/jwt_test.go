package jwtutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUtil(now time.Time) *JWTUtil {
	j := NewJWTUtil(&JWTConfig{SigningKey: "test-key"})
	j.now = func() time.Time { return now }
	return j
}

func TestVendorTokenRoundTrip(t *testing.T) {
	j := newTestUtil(time.Now())

	token, err := j.GenerateVendorToken("9f0c2a52-0d7b-4b55-a4a4-0d1a2f3b4c5d", "Ana", 7*24*time.Hour)
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleVendor, claims.Role)
	assert.Equal(t, "9f0c2a52-0d7b-4b55-a4a4-0d1a2f3b4c5d", claims.StoreID)
	assert.Equal(t, "Ana", claims.Name)
	require.NotNil(t, claims.ExpiresAt)
}

func TestZeroTTLHasNoExpiry(t *testing.T) {
	j := newTestUtil(time.Now())

	token, err := j.GenerateVendorToken("store-1", "", 0)
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestExpiredTokenRejected(t *testing.T) {
	issued := time.Now().Add(-5 * time.Hour)
	j := newTestUtil(issued)

	token, err := j.GenerateSuperAdminToken(4 * time.Hour)
	require.NoError(t, err)

	j.now = time.Now
	_, err = j.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestWrongKeyRejected(t *testing.T) {
	token, err := newTestUtil(time.Now()).GenerateSuperAdminToken(time.Hour)
	require.NoError(t, err)

	other := NewJWTUtil(&JWTConfig{SigningKey: "another-key"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestUnknownRoleRejected(t *testing.T) {
	j := newTestUtil(time.Now())

	token, err := j.GenerateToken(Claims{Role: "buyer"}, time.Hour)
	require.NoError(t, err)

	_, err = j.ValidateToken(token)
	assert.Error(t, err)
}

func TestVendorTokenRequiresStore(t *testing.T) {
	j := newTestUtil(time.Now())

	_, err := j.GenerateVendorToken("", "Ana", time.Hour)
	assert.Error(t, err)

	token, err := j.GenerateToken(Claims{Role: RoleVendor}, time.Hour)
	require.NoError(t, err)
	_, err = j.ValidateToken(token)
	assert.Error(t, err)
}

func TestMissingConfig(t *testing.T) {
	j := NewJWTUtil(nil)

	_, err := j.GenerateSuperAdminToken(time.Hour)
	assert.Error(t, err)
	_, err = j.ValidateToken("anything")
	assert.Error(t, err)
}
