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
	"flag"
	"fmt"
	"os"

	"banglapay-wallet-go/internal/common"
	"banglapay-wallet-go/internal/config"
	"banglapay-wallet-go/internal/models"

	"go.uber.org/zap"
)

var steps = map[models.Role][]string{
	models.RoleUser: {
		"dashboard          shows your balance, recent activity and charts",
		"transfer -action send -amount 100 -phone 017...   sends money",
		"transfer -action add | withdraw -amount N          moves money in and out of your wallet",
		"profile            updates your name, phone or password",
	},
	models.RoleAgent: {
		"dashboard          shows your float, commissions and customer activity",
		"transfer -action cash-in -amount N -phone 017...  tops up a customer",
		"transfer -action cash-out -amount N -phone 017... withdraws for a customer",
		"profile            updates your name, phone or password",
	},
	models.RoleAdmin: {
		"dashboard -tab users | wallets | transactions     browses the system",
		"admin -action block | unblock -user PHONE         restricts a user",
		"admin -action suspend | activate -user PHONE      restricts an agent",
		"admin -action edit | reset-password -user PHONE   manages accounts",
	},
}

func main() {
	logger, loggerCleanup := common.InitializeLogger()
	code := run(logger)
	loggerCleanup()
	os.Exit(code)
}

func run(logger *zap.Logger) int {
	ctx := context.Background()

	roleFlag := flag.String("role", string(models.RoleUser), "Role to show the walkthrough for: user, agent or admin")
	resetFlag := flag.Bool("reset", false, "Forget that the walkthrough was completed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		return 1
	}

	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize database", zap.Error(err))
		return 1
	}
	defer dbService.Close()

	if *resetFlag {
		if err := dbService.SetTourCompleted(ctx, false); err != nil {
			logger.Error("Failed to reset walkthrough", zap.Error(err))
			return 1
		}
		fmt.Println("Walkthrough will be shown again")
		return 0
	}

	role := models.Role(*roleFlag)
	if !role.Valid() {
		logger.Error("Invalid role", zap.String("role", *roleFlag))
		return 1
	}

	common.PrintHeader(os.Stdout, fmt.Sprintf("WELCOME TO BANGLAPAY (%s)", role), common.DefaultWidth)
	list := steps[role]
	for i, step := range list {
		common.PrintBoxLine(os.Stdout, i == len(list)-1, "%d. %s", i+1, step)
	}
	common.PrintSeparator(os.Stdout, "=", common.DefaultWidth)

	if err := dbService.SetTourCompleted(ctx, true); err != nil {
		logger.Warn("Failed to record walkthrough", zap.Error(err))
	}
	return 0
}
