package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/hairmatch/internal/domain/auth"
	"github.com/yanqian/hairmatch/internal/infra/config"
)

func TestMintProducesVerifiableToken(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "s3cret", Audience: "authenticated", TokenTTL: time.Hour}}
	var out bytes.Buffer
	require.NoError(t, mint(context.Background(), &out, cfg, "user-9", 0))

	svc := auth.NewService(auth.Config{Secret: "s3cret", Audience: "authenticated"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	claims, err := svc.ValidateToken(context.Background(), strings.TrimSpace(out.String()))
	require.NoError(t, err)
	require.Equal(t, "user-9", claims.UserID)
}

func TestMintRejectsBlankUser(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "s3cret", TokenTTL: time.Hour}}
	require.Error(t, mint(context.Background(), io.Discard, cfg, "  ", time.Minute))
}
