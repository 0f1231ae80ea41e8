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

	"banglapay-wallet-go/internal/api"
	"banglapay-wallet-go/internal/common"
	"banglapay-wallet-go/internal/config"
	"banglapay-wallet-go/internal/models"
	"banglapay-wallet-go/internal/routing"

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

	phoneFlag := flag.String("phone", "", "Phone number (required)")
	passwordFlag := flag.String("password", os.Getenv("BANGLAPAY_PASSWORD"), "Password (or BANGLAPAY_PASSWORD)")
	flag.Parse()

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

	if d := services.Navigate(routing.PathLogin); d.Kind == routing.Redirect {
		user := services.Session.Store().Snapshot().User
		fmt.Printf("Already logged in as %s (%s). Dashboard: %s\n", user.Name, user.Role, d.Target)
		return 0
	}

	user, err := services.Session.Login(ctx, models.LoginRequest{Phone: *phoneFlag, Password: *passwordFlag})
	if err != nil {
		common.PrintHeader(os.Stdout, "LOGIN FAILED", common.DefaultWidth)
		fmt.Println(api.MessageOf(err, err.Error()))
		common.PrintSeparator(os.Stdout, "=", common.DefaultWidth)
		logger.Error("Login failed", zap.String("phone", *phoneFlag), zap.Error(err))
		return 1
	}

	logger.Info("Login successful", zap.String("user_id", user.Id), zap.String("role", string(user.Role)))
	fmt.Printf("Logged in as %s (%s). Dashboard: %s\n", user.Name, user.Role, user.Role.Home())
	return 0
}
