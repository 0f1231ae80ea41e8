package store

import (
	"context"
	"errors"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrNotFound = errors.New("not found")
	ErrClosed   = errors.New("store closed")
)

// Well-known keys for durable client state.
const (
	KeyCredential    = "token"
	KeyTourCompleted = "tour-completed"
)

// LocalStore defines the contract for durable client-side state. Only the
// bearer credential and the onboarding flag live here.
type LocalStore interface {
	// --- Credential ---
	GetCredential(ctx context.Context) (string, error)
	SaveCredential(ctx context.Context, token string) error
	DeleteCredential(ctx context.Context) error

	// --- Onboarding ---
	TourCompleted(ctx context.Context) (bool, error)
	SetTourCompleted(ctx context.Context, completed bool) error

	// --- Lifecycle ---
	Close()
}
