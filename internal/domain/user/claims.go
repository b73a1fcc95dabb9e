package user

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// PrincipalFromContext reads the verified token claims placed in ctx by
// jwtauth.Verifier.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Principal{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	var p Principal
	for claim, dst := range map[string]*string{
		"user_id":     &p.UserID,
		"employee_id": &p.EmployeeID,
		"company_id":  &p.CompanyID,
	} {
		value, ok := claims[claim].(string)
		if !ok || value == "" {
			return Principal{}, fmt.Errorf("%w: %s", ErrMissingClaim, claim)
		}
		*dst = value
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return Principal{}, fmt.Errorf("%w: role", ErrMissingClaim)
	}
	p.Role = Role(role)

	return p, nil
}
