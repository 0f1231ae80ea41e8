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

package main

import (
	"context"
	"fmt"
	"os"

	"banglapay-wallet-go/internal/common"
	"banglapay-wallet-go/internal/config"

	"go.uber.org/zap"
)

func main() {
	logger, loggerCleanup := common.InitializeLogger()
	code := run(logger)
	loggerCleanup()
	os.Exit(code)
}

func run(logger *zap.Logger) int {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		return 1
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize services", zap.Error(err))
		return 1
	}
	defer services.Close()

	services.Session.Logout(ctx)
	fmt.Println("Logged out successfully")
	return 0
}
