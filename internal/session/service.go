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
	"fmt"
	"strings"
	"time"

	"banglapay-wallet-go/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrNoToken            = errors.New("no persisted credential")
	ErrMissingCredentials = errors.New("phone and password are required")
	ErrInvalidRole        = errors.New("role must be user or agent")
	ErrMissingToken       = errors.New("authentication response did not include a token")
)

// Authenticator is the slice of the API client the session needs.
type Authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context, token string) (*models.Principal, error)
}

// Service drives the session through login, registration, logout and
// start-up revalidation.
type Service struct {
	store *Store
	auth  Authenticator
	now   func() time.Time
}

func NewService(store *Store, auth Authenticator) *Service {
	return &Service{store: store, auth: auth, now: time.Now}
}

func (s *Service) Store() *Store {
	return s.store
}

func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.Principal, error) {
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Phone == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	result, err := s.auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, ErrMissingToken
	}

	s.store.SetCredentials(ctx, result.User, result.Token)
	return &result.User, nil
}

// Register creates an account. The session is only populated when the
// backend returns a token.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.Principal, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Phone == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Role != models.RoleUser && req.Role != models.RoleAgent {
		return nil, ErrInvalidRole
	}

	result, err := s.auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if result.Token != "" {
		s.store.SetCredentials(ctx, result.User, result.Token)
	} else {
		zap.L().Info("Registered without token, login required", zap.String("user_id", result.User.Id))
	}
	return &result.User, nil
}

// Logout tells the backend when there is a session to end, then clears local
// state regardless of the remote outcome.
func (s *Service) Logout(ctx context.Context) {
	if s.store.Snapshot().Authenticated() {
		if err := s.auth.Logout(ctx); err != nil {
			zap.L().Warn("Remote logout failed", zap.Error(err))
		}
	}
	s.store.Logout(ctx)
}

// Revalidate restores the session from the persisted credential. Failures
// degrade to an anonymous session; results that arrive after the session
// has changed are dropped.
func (s *Service) Revalidate(ctx context.Context) Snapshot {
	token, gen, err := s.store.persisted(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			zap.L().Warn("Unable to read persisted credential", zap.Error(err))
		}
		return s.store.Snapshot()
	}

	if tokenExpired(token, s.now()) {
		zap.L().Info("Persisted credential expired")
		s.store.commitIfCurrent(ctx, gen, nil, "")
		return s.store.Snapshot()
	}

	user, err := s.auth.WhoAmI(ctx, token)
	if err != nil {
		zap.L().Info("Persisted credential rejected", zap.Error(err))
		s.store.commitIfCurrent(ctx, gen, nil, "")
		return s.store.Snapshot()
	}

	s.store.commitIfCurrent(ctx, gen, user, token)
	return s.store.Snapshot()
}

// tokenExpired reads the exp claim without verifying the signature. Opaque
// or claim-less tokens are left for the backend to judge.
func tokenExpired(token string, now time.Time) bool {
	raw := strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

const MinPasswordLength = 6

var (
	ErrMissingCurrentPassword = errors.New("current password is required")
	ErrPasswordTooShort       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordMismatch       = errors.New("new passwords do not match")
)

// NewPasswordChange validates a password change for a caller of the given
// role. Admins never send a current password.
func NewPasswordChange(role models.Role, current, next, confirm string) (models.ChangePasswordRequest, error) {
	if next != confirm {
		return models.ChangePasswordRequest{}, ErrPasswordMismatch
	}
	if len(next) < MinPasswordLength {
		return models.ChangePasswordRequest{}, ErrPasswordTooShort
	}
	if role == models.RoleAdmin {
		return models.ChangePasswordRequest{NewPassword: next}, nil
	}
	if current == "" {
		return models.ChangePasswordRequest{}, ErrMissingCurrentPassword
	}
	return models.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}, nil
}
