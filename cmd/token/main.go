// Command token prints a signed access token carrying the claims the API
// reads, for local testing.
package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(loadSigner).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadSigner() (jwt.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.AllowedSkew), nil
}

func newRootCmd(signer func() (jwt.Service, error)) *cobra.Command {
	var (
		p    user.Principal
		role string
	)

	cmd := &cobra.Command{
		Use:           "token",
		Short:         "Print a signed access token for local API calls",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(user.RoleValues, role) {
				return fmt.Errorf("unknown role %q, want one of %v", role, user.RoleValues)
			}
			p.Role = user.Role(role)
			if p.UserID == "" {
				p.UserID = p.EmployeeID
			}

			svc, err := signer()
			if err != nil {
				return err
			}

			token, _, err := svc.GenerateAccessToken(p)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&p.EmployeeID, "employee", "", "employee id claim")
	cmd.Flags().StringVar(&p.CompanyID, "company", "", "company id claim")
	cmd.Flags().StringVar(&role, "role", string(user.RoleEmployee), "admin, manager or employee")
	// Defaults to the employee id.
	cmd.Flags().StringVar(&p.UserID, "user", "", "user id claim")

	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}
