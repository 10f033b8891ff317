package main

import (
	"fmt"

	"github.com/spf13/cobra"

	jwttoken "govos/internal/jwt_token"
	"govos/internal/platform/config"
	"govos/pkg/domain"
)

// newTokenCmd signs a bearer token for an existing session with the key the
// server is configured with. Useful for poking the API with curl.
func newTokenCmd() *cobra.Command {
	var sessionID string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a session bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := domain.ParseSessionID(sessionID)
			if err != nil {
				return fmt.Errorf("invalid session id %q: %w", sessionID, err)
			}
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			svc := jwttoken.NewJWTService(cfg.JWTSigningKey, "govos", cfg.TokenTTL)
			svc.SetEnv(cfg.Environment)
			token, err := svc.GenerateSessionToken(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionID, "session-id", "", "session to grant")
	_ = cmd.MarkFlagRequired("session-id")
	return cmd
}
