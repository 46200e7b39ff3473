package datastore

import (
	"context"
	"fmt"
	"os"

	gds "cloud.google.com/go/datastore"
	"go.uber.org/zap"

	"github.com/fastygo/tasknotify/internal/config"
)

// NewClient creates a Cloud Datastore client for the configured project.
// DATASTORE_EMULATOR_HOST is honoured by the client library itself.
func NewClient(ctx context.Context, cfg config.DatastoreConfig, logger *zap.Logger) (*gds.Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("datastore project id is required")
	}
	if host := os.Getenv("DATASTORE_EMULATOR_HOST"); host != "" {
		logger.Info("using datastore emulator", zap.String("host", host))
	}

	client, err := gds.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create datastore client: %w", err)
	}

	logger.Info("connected to datastore", zap.String("project", cfg.ProjectID), zap.String("namespace", cfg.Namespace))
	return client, nil
}
