package db

import (
	"context"
	"testing"
)

type stubDatabaseConfig struct{}

func (stubDatabaseConfig) GetDatabaseURL() string { return "postgres://localhost/none" }

func TestRunMigrationsEmptyDirNoOp(t *testing.T) {
	if err := RunMigrations(context.Background(), stubDatabaseConfig{}, ""); err != nil {
		t.Fatalf("empty migrations dir must be a no-op, got %v", err)
	}
	if err := RunMigrations(context.Background(), stubDatabaseConfig{}, "   "); err != nil {
		t.Fatalf("blank migrations dir must be a no-op, got %v", err)
	}
}
