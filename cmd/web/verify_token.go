package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/config"
	"github.com/spec-kit/job-portal/internal/domain"
)

type tokenReport struct {
	Identity  *domain.Identity `json:"identity"`
	Role      string           `json:"role"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

func newVerifyTokenCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "verify-token TOKEN",
		Short: "Verify a session token with JWT_SECRET and print its identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, expiresAt, err := auth.NewTokenCodec(cfg().Auth.JWTSecret).Verify(args[0])
			if err != nil {
				return fmt.Errorf("verify token: %w", err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(tokenReport{Identity: identity, Role: identity.Role.String(), ExpiresAt: expiresAt})
		},
	}
}
