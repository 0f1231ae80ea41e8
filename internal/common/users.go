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

	"banglapay-wallet-go/internal/models"

	"go.uber.org/zap"
)

// PrincipalLister is the slice of the admin API used to look up targets.
type PrincipalLister interface {
	Users(ctx context.Context) ([]models.Principal, error)
	Agents(ctx context.Context) ([]models.Principal, error)
}

// FindPrincipal looks up a user or agent by id or phone so admin actions can
// name their target. Only the agent list is searched when agentsOnly is set.
func FindPrincipal(ctx context.Context, lister PrincipalLister, idOrPhone string, agentsOnly bool, logger *zap.Logger) (*models.Principal, error) {
	logger.Info("Looking up principal", zap.String("query", idOrPhone), zap.Bool("agents_only", agentsOnly))

	fetch := lister.Users
	if agentsOnly {
		fetch = lister.Agents
	}
	principals, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list principals: %w", err)
	}

	for i := range principals {
		if principals[i].Id == idOrPhone || principals[i].Phone == idOrPhone {
			logger.Info("Found principal",
				zap.String("user_id", principals[i].Id),
				zap.String("role", string(principals[i].Role)))
			return &principals[i], nil
		}
	}
	return nil, fmt.Errorf("no principal matches %q", idOrPhone)
}
