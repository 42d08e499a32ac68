package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ishant3366/minealert/internal/auth"
)

// newTokenCmd generates an API token and prints the bcrypt hash to put in
// the config file.
func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Generate an API bearer token and its config hash",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := make([]byte, 24)
			if _, err := rand.Read(raw); err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}
			token := base64.RawURLEncoding.EncodeToString(raw)

			hash, err := auth.HashToken(token)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "token: %s\n", token)
			fmt.Fprintf(cmd.OutOrStdout(), "add to config:\n\nserver:\n  token_hash: %q\n", hash)
			return nil
		},
	}
}
