package user

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithClaims(t *testing.T, claims map[string]interface{}) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	_, tokenString, err := ja.Encode(claims)
	require.NoError(t, err)
	token, err := ja.Decode(tokenString)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestPrincipalFromContext(t *testing.T) {
	ctx := contextWithClaims(t, map[string]interface{}{
		"user_id":     "u-1",
		"employee_id": "e-1",
		"company_id":  "c-1",
		"role":        "manager",
	})

	p, err := PrincipalFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, Principal{UserID: "u-1", EmployeeID: "e-1", CompanyID: "c-1", Role: RoleManager}, p)
	assert.True(t, p.IsManager())
	assert.False(t, p.IsAdmin())
}

func TestPrincipalFromContext_MissingClaim(t *testing.T) {
	ctx := contextWithClaims(t, map[string]interface{}{
		"user_id":    "u-1",
		"company_id": "c-1",
		"role":       "employee",
	})

	_, err := PrincipalFromContext(ctx)
	assert.ErrorIs(t, err, ErrMissingClaim)
}

func TestPrincipalFromContext_NoToken(t *testing.T) {
	_, err := PrincipalFromContext(context.Background())
	assert.Error(t, err)
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleEmployee, PermissionPunchCreate))
	assert.False(t, HasPermission(RoleEmployee, PermissionAdjustmentApprove))
	assert.True(t, HasPermission(RoleManager, PermissionAdjustmentApprove))
	assert.True(t, HasPermission(RoleAdmin, PermissionReportsView))
	assert.False(t, HasPermission(Role("pending"), PermissionPunchCreate))
}
