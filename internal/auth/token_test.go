package auth

import (
	"strings"
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pizza-service/internal/domain"
)

func franchiseeIdentity() domain.Identity {
	franchiseID := int64(7)
	return domain.Identity{
		ID:    3,
		Name:  "pizza franchisee",
		Email: "f@jwt.com",
		Roles: []domain.RoleAssignment{
			{Role: domain.RoleDiner},
			{Role: domain.RoleFranchisee, ObjectID: &franchiseID},
		},
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")

	cases := []domain.Identity{
		franchiseeIdentity(),
		{ID: 1, Name: "Test", Email: "test@test.com", Roles: []domain.RoleAssignment{{Role: domain.RoleDiner}}},
		{ID: 2, Name: "常用名字", Email: "a@jwt.com", Roles: []domain.RoleAssignment{{Role: domain.RoleAdmin}}},
		{ID: 4, Name: "no roles", Email: "n@jwt.com"},
	}
	for _, identity := range cases {
		token, err := tm.Sign(identity)
		require.NoError(t, err)

		got, err := tm.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, identity, got)
	}
}

func TestTokenManager_SignaturesDiffer(t *testing.T) {
	tm := NewTokenManager("test-secret")

	first, err := tm.Sign(franchiseeIdentity())
	require.NoError(t, err)
	second, err := tm.Sign(franchiseeIdentity())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, Fingerprint(first), Fingerprint(second))
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("other-secret").Sign(franchiseeIdentity())
	require.NoError(t, err)

	_, err = NewTokenManager("test-secret").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsMalformed(t *testing.T) {
	tm := NewTokenManager("test-secret")

	for _, token := range []string{"", "invalid-token", "a.b.c", "Bearer"} {
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestTokenManager_RejectsTamperedPayload(t *testing.T) {
	tm := NewTokenManager("test-secret")
	token, err := tm.Sign(franchiseeIdentity())
	require.NoError(t, err)

	forged, err := NewTokenManager("attacker").Sign(domain.Identity{ID: 3, Roles: []domain.RoleAssignment{{Role: domain.RoleAdmin}}})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	spliced := strings.Join([]string{parts[0], forgedParts[1], parts[2]}, ".")

	_, err = tm.Verify(spliced)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{UserID: 1, Name: "none"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("test-secret").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
