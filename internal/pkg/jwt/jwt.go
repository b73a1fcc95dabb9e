package jwt

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	// GenerateAccessToken signs an access token for p. Login flows live
	// outside this service; this is used by tooling and tests.
	GenerateAccessToken(p user.Principal) (token string, expiresAt int64, err error)
	// AuthenticatedContext returns ctx carrying a verified token for p, as
	// jwtauth.Verifier would have left it.
	AuthenticatedContext(ctx context.Context, p user.Principal) (context.Context, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpiration, allowedSkew time.Duration) Service {
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(allowedSkew)),
	}
}

func (j *JWTService) GenerateAccessToken(p user.Principal) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id":     p.UserID,
		"employee_id": p.EmployeeID,
		"company_id":  p.CompanyID,
		"role":        string(p.Role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) AuthenticatedContext(ctx context.Context, p user.Principal) (context.Context, error) {
	tokenString, _, err := j.GenerateAccessToken(p)
	if err != nil {
		return nil, err
	}

	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return nil, err
	}

	return jwtauth.NewContext(ctx, token, nil), nil
}
