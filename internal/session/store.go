/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package session

import (
	"context"
	"errors"
	"sync"

	"banglapay-wallet-go/internal/models"
	"banglapay-wallet-go/internal/store"

	"go.uber.org/zap"
)

// Snapshot is a consistent read of the session. User is nil exactly when Token is empty.
type Snapshot struct {
	User       *models.Principal
	Token      string
	Generation uint64
}

func (s Snapshot) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// Role returns the principal's role, or "" when anonymous.
func (s Snapshot) Role() models.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// Store owns the current principal and credential. Every write bumps the
// generation so that late responses can detect they are stale.
type Store struct {
	mu    sync.RWMutex
	user  *models.Principal
	token string
	gen   uint64
	local store.LocalStore
}

func NewStore(local store.LocalStore) *Store {
	return &Store{local: local}
}

// SetCredentials replaces the session and persists the credential. An empty
// token is ignored so the session never holds a user without a credential.
func (s *Store) SetCredentials(ctx context.Context, user models.Principal, token string) {
	if token == "" {
		zap.L().Warn("Ignoring credentials without token", zap.String("user_id", user.Id))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(ctx, user, token)
}

func (s *Store) setLocked(ctx context.Context, user models.Principal, token string) {
	s.user = &user
	s.token = token
	s.gen++

	if err := s.local.SaveCredential(ctx, token); err != nil {
		zap.L().Warn("Failed to persist credential", zap.Error(err))
	}

	zap.L().Info("Session established",
		zap.String("user_id", user.Id),
		zap.String("role", string(user.Role)))
}

// Logout clears the session and the persisted credential. Callers are
// responsible for leaving protected views.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked(ctx)
}

func (s *Store) clearLocked(ctx context.Context) {
	s.user = nil
	s.token = ""
	s.gen++

	if err := s.local.DeleteCredential(ctx); err != nil {
		zap.L().Warn("Failed to remove persisted credential", zap.Error(err))
	}

	zap.L().Info("Session cleared")
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{Token: s.token, Generation: s.gen}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Credential returns the token to attach to the next request along with the
// generation it belongs to.
func (s *Store) Credential() (string, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.gen
}

// Invalidate logs out if the session is still the one identified by
// generation. It reports whether anything was cleared.
func (s *Store) Invalidate(generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != generation || s.token == "" {
		return false
	}
	zap.L().Warn("Credential rejected by backend, forcing logout")
	s.clearLocked(context.Background())
	return true
}

// persisted returns the durable credential together with the current
// generation. A missing credential yields ErrNoToken.
func (s *Store) persisted(ctx context.Context) (string, uint64, error) {
	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	token, err := s.local.GetCredential(ctx)
	if errors.Is(err, store.ErrNotFound) || (err == nil && token == "") {
		return "", gen, ErrNoToken
	}
	if err != nil {
		return "", gen, err
	}
	return token, gen, nil
}

// commitIfCurrent applies a revalidation result unless the session changed
// since generation was read.
func (s *Store) commitIfCurrent(ctx context.Context, generation uint64, user *models.Principal, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != generation {
		zap.L().Debug("Discarding stale revalidation result",
			zap.Uint64("observed_generation", generation),
			zap.Uint64("current_generation", s.gen))
		return false
	}
	if user == nil {
		s.clearLocked(ctx)
		return true
	}
	s.setLocked(ctx, *user, token)
	return true
}
