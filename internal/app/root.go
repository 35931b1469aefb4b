package app

import (
	"context"

	"github.com/yfe404/actor-adopte-get-auth-token/internal/client/adopte"
	"github.com/yfe404/actor-adopte-get-auth-token/internal/config"
	"github.com/yfe404/actor-adopte-get-auth-token/internal/logger"
	"github.com/yfe404/actor-adopte-get-auth-token/internal/output"
	"github.com/yfe404/actor-adopte-get-auth-token/internal/service/auth"
)

// ExecuteRootCommand is the entry point for the application.
// It initializes the Adopte client and the configured login strategy,
// runs the authentication flow, and writes the run result record.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config) {
	adopteClient, err := adopte.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize Adopte client: %v", err)
	}

	defer adopteClient.Close()

	tokenSource, err := auth.NewTokenSource(cfg, adopteClient)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize login strategy: %v", err)
	}

	s := auth.NewService(cfg, adopteClient, tokenSource)

	result, err := s.Run(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Authentication run failed: %v", err)
	}

	if err = output.NewRecordWriter(cfg).Write(result); err != nil {
		logger.Fatalf(ctx, "Failed to write run result: %v", err)
	}

	logger.Info(ctx, "Authentication run completed successfully")
}
