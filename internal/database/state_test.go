package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"banglapay-wallet-go/internal/models"
	"banglapay-wallet-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDb(t *testing.T) (*Service, func()) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A single connection keeps the in-memory database alive across queries.
	db.SetMaxOpenConns(1)

	service := newService(db)
	if err := service.initSchema(context.Background()); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return service, cleanup
}

func TestCredential_NotFound(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	_, err := service.GetCredential(context.Background())
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestCredential_SaveOverwriteDelete(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	if err := service.SaveCredential(ctx, "first"); err != nil {
		t.Fatalf("SaveCredential failed: %v", err)
	}
	if err := service.SaveCredential(ctx, "second"); err != nil {
		t.Fatalf("SaveCredential overwrite failed: %v", err)
	}

	token, err := service.GetCredential(ctx)
	if err != nil {
		t.Fatalf("GetCredential failed: %v", err)
	}
	if token != "second" {
		t.Errorf("Expected token second, got %s", token)
	}

	if err := service.DeleteCredential(ctx); err != nil {
		t.Fatalf("DeleteCredential failed: %v", err)
	}
	if _, err := service.GetCredential(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	// Deleting twice is not an error
	if err := service.DeleteCredential(ctx); err != nil {
		t.Errorf("Second delete failed: %v", err)
	}
}

func TestCredential_RejectsEmpty(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	if err := service.SaveCredential(context.Background(), ""); err == nil {
		t.Fatal("Expected error persisting empty credential")
	}
}

func TestTourCompleted(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	done, err := service.TourCompleted(ctx)
	if err != nil {
		t.Fatalf("TourCompleted failed: %v", err)
	}
	if done {
		t.Error("Expected tour not completed on fresh store")
	}

	if err := service.SetTourCompleted(ctx, true); err != nil {
		t.Fatalf("SetTourCompleted failed: %v", err)
	}
	if done, _ := service.TourCompleted(ctx); !done {
		t.Error("Expected tour completed")
	}

	// The onboarding flag is independent of the credential
	if err := service.DeleteCredential(ctx); err != nil {
		t.Fatalf("DeleteCredential failed: %v", err)
	}
	if done, _ := service.TourCompleted(ctx); !done {
		t.Error("Expected tour flag to survive credential removal")
	}

	if err := service.SetTourCompleted(ctx, false); err != nil {
		t.Fatalf("SetTourCompleted(false) failed: %v", err)
	}
	if done, _ := service.TourCompleted(ctx); done {
		t.Error("Expected tour flag cleared")
	}
}

func TestNewService_PersistsAcrossReopen(t *testing.T) {
	cfg := models.DatabaseConfig{
		Path:            filepath.Join(t.TempDir(), "client.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
		PingTimeout:     time.Second,
	}
	ctx := context.Background()

	first, err := NewService(ctx, cfg)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if err := first.SaveCredential(ctx, "persisted"); err != nil {
		t.Fatalf("SaveCredential failed: %v", err)
	}
	first.Close()

	second, err := NewService(ctx, cfg)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer second.Close()

	token, err := second.GetCredential(ctx)
	if err != nil || token != "persisted" {
		t.Fatalf("Expected persisted token, got %q (%v)", token, err)
	}
}

func TestNewService_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.DatabaseConfig
	}{
		{"empty path", models.DatabaseConfig{MaxOpenConns: 1, PingTimeout: time.Second}},
		{"no connections", models.DatabaseConfig{Path: "x.db", PingTimeout: time.Second}},
		{"negative idle", models.DatabaseConfig{Path: "x.db", MaxOpenConns: 1, MaxIdleConns: -1, PingTimeout: time.Second}},
		{"no ping timeout", models.DatabaseConfig{Path: "x.db", MaxOpenConns: 1}},
	}
	for _, tt := range tests {
		if _, err := NewService(context.Background(), tt.cfg); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}
