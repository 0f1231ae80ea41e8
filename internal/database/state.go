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

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"banglapay-wallet-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *Service) getValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, queryGetValue, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", store.ErrNotFound
		}
		zap.L().Error("Failed to read local state", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("unable to read %s: %w", key, err)
	}
	return value, nil
}

func (s *Service) putValue(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, queryUpsertValue, uuid.New().String(), key, value); err != nil {
		zap.L().Error("Failed to write local state", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("unable to write %s: %w", key, err)
	}
	return nil
}

func (s *Service) deleteValue(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, queryDeleteValue, key); err != nil {
		zap.L().Error("Failed to delete local state", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("unable to delete %s: %w", key, err)
	}
	return nil
}

// GetCredential returns the persisted bearer token or store.ErrNotFound.
func (s *Service) GetCredential(ctx context.Context) (string, error) {
	return s.getValue(ctx, store.KeyCredential)
}

func (s *Service) SaveCredential(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("refusing to persist empty credential")
	}
	return s.putValue(ctx, store.KeyCredential, token)
}

func (s *Service) DeleteCredential(ctx context.Context) error {
	return s.deleteValue(ctx, store.KeyCredential)
}

func (s *Service) TourCompleted(ctx context.Context) (bool, error) {
	value, err := s.getValue(ctx, store.KeyTourCompleted)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

// SetTourCompleted records the onboarding flag; false removes it entirely.
func (s *Service) SetTourCompleted(ctx context.Context, completed bool) error {
	if !completed {
		return s.deleteValue(ctx, store.KeyTourCompleted)
	}
	return s.putValue(ctx, store.KeyTourCompleted, "true")
}
