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

package common

import (
	"context"
	"fmt"
	"log"
	"strings"

	"banglapay-wallet-go/internal/api"
	"banglapay-wallet-go/internal/config"
	"banglapay-wallet-go/internal/database"
	"banglapay-wallet-go/internal/models"
	"banglapay-wallet-go/internal/routing"
	"banglapay-wallet-go/internal/session"
	"banglapay-wallet-go/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Environment variables can also be set via shell export, docker, etc.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	}
}

type Services struct {
	Local   store.LocalStore
	Session *session.Service
	Client  *api.Client
}

func InitializeLogger() (*zap.Logger, func()) {
	var (
		logger *zap.Logger
		err    error
	)
	if config.LoadLogging().Development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// openLocalStore returns the SQLite store, or an in-memory one seeded with
// cfg.Api.Token when a token is supplied through the environment.
func openLocalStore(ctx context.Context, cfg *models.Config) (store.LocalStore, error) {
	if cfg.Api.Token == "" {
		dbService, err := database.NewService(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return dbService, nil
	}
	local := store.NewMemoryStore()
	if err := local.SaveCredential(ctx, cfg.Api.Token); err != nil {
		return nil, fmt.Errorf("unable to seed in-memory credential: %w", err)
	}
	zap.L().Info("Using in-memory session from API_TOKEN")
	return local, nil
}

// InitializeServices opens local storage, builds the API client around the
// session and restores any persisted login.
func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	local, err := openLocalStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sessionStore := session.NewStore(local)
	client, err := api.NewClient(cfg.Api, sessionStore)
	if err != nil {
		local.Close()
		return nil, fmt.Errorf("unable to create api client: %w", err)
	}
	sessionService := session.NewService(sessionStore, client)

	snapshot := sessionService.Revalidate(ctx)
	if snapshot.Authenticated() {
		zap.L().Info("Restored session",
			zap.String("user_id", snapshot.User.Id),
			zap.String("role", string(snapshot.Role())))
	} else {
		zap.L().Info("No active session")
	}

	return &Services{
		Local:   local,
		Session: sessionService,
		Client:  client,
	}, nil
}

// InitializeDatabaseOnly initializes just local storage without the API client.
// Useful for operations that only touch client state, like the tour flag.
func InitializeDatabaseOnly(ctx context.Context, cfg *models.Config) (*database.Service, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return dbService, nil
}

// Navigate runs the route guard for path against the current session.
func (cs *Services) Navigate(path string) routing.Decision {
	return routing.Resolve(cs.Session.Store().Snapshot(), path)
}

func (cs *Services) Close() {
	if cs.Local != nil {
		cs.Local.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
