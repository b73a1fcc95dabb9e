package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTripsPrincipal(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 30*time.Second)
	p := user.Principal{UserID: "u-1", EmployeeID: "e-1", CompanyID: "c-1", Role: user.RoleEmployee}

	tokenString, expiresAt, err := svc.GenerateAccessToken(p)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)
	tokenType, ok := token.Get("type")
	require.True(t, ok)
	assert.Equal(t, "access", tokenType)

	ctx, err := svc.AuthenticatedContext(context.Background(), p)
	require.NoError(t, err)
	got, err := user.PrincipalFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestDecode_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour, 0)
	verifier := NewJWTService("secret-b", time.Hour, 0)

	tokenString, _, err := issuer.GenerateAccessToken(user.Principal{UserID: "u", EmployeeID: "e", CompanyID: "c", Role: user.RoleAdmin})
	require.NoError(t, err)

	_, err = verifier.JWTAuth().Decode(tokenString)
	assert.Error(t, err)
}
