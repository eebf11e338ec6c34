// devtoken mints a signed access token for calling the API locally.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yanqian/hairmatch/internal/domain/auth"
	"github.com/yanqian/hairmatch/internal/infra/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:          "devtoken",
		Short:        "Mint a bearer token for local API calls",
		Long:         "Signs an access token with the configured auth secret and audience. Configuration is read the same way as the server.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return mint(cmd.Context(), cmd.OutOrStdout(), cfg, userID, ttl)
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "demo-user", "user id placed in the token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to auth.tokenTtl)")
	return cmd
}

func mint(ctx context.Context, out io.Writer, cfg *config.Config, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cfg.Auth.TokenTTL
	}
	svc := auth.NewService(auth.Config{
		Secret:   cfg.Auth.JWTSecret,
		Audience: cfg.Auth.Audience,
		TokenTTL: ttl,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	token, err := svc.IssueToken(ctx, userID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
