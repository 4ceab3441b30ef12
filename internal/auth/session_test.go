package auth_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridiancrm/salescycle/internal/auth"
	"github.com/meridiancrm/salescycle/internal/domain"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestNewSession_ExtractsIdentityAndRoles(t *testing.T) {
	oid := uuid.New()
	token := signedToken(t, jwt.MapClaims{
		"oid":   oid.String(),
		"name":  "Dana Reeve",
		"email": "dana@meridian.example",
		"roles": []string{"SalesManager", "Viewer"},
	})

	session, err := auth.NewSession(token)
	require.NoError(t, err)

	assert.Equal(t, oid, session.UserID)
	assert.Equal(t, "Dana Reeve", session.DisplayName)
	assert.Equal(t, "dana@meridian.example", session.Email)
	assert.ElementsMatch(t, []domain.UserRole{domain.RoleSalesManager, domain.RoleViewer}, session.Roles)
	assert.True(t, session.HasManagerRole())
}

func TestNewSession_StripsBearerPrefix(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"name": "Dana Reeve"})

	session, err := auth.NewSession("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, token, session.Token)
}

func TestNewSession_UnknownRolesAreDropped(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"roles": []string{"SalesRep", "SuperUser", "SalesRep"},
	})

	session, err := auth.NewSession(token)
	require.NoError(t, err)
	assert.Equal(t, []domain.UserRole{domain.RoleSalesRep}, session.Roles)
	assert.False(t, session.HasManagerRole())
}

func TestNewSession_SingleRoleClaimString(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"role": "Admin"})

	session, err := auth.NewSession(token)
	require.NoError(t, err)
	assert.Equal(t, []domain.UserRole{domain.RoleAdmin}, session.Roles)
	assert.True(t, session.HasManagerRole())
}

func TestNewSession_UserIDDerivedFromEmail(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"email": "dana@meridian.example"})

	session, err := auth.NewSession(token)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, session.UserID)

	again, err := auth.NewSession(token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, again.UserID, "derived id must be stable")
}

func TestNewSession_RejectsGarbage(t *testing.T) {
	_, err := auth.NewSession("")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = auth.NewSession("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
