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
	"banglapay-wallet-go/internal/pipeline"
	"banglapay-wallet-go/internal/routing"
	"banglapay-wallet-go/internal/session"

	"go.uber.org/zap"
)

func printProfile(p *models.Principal) {
	common.PrintHeader(os.Stdout, "PROFILE", common.DefaultWidth)
	fmt.Printf("Name:    %s\n", p.Name)
	fmt.Printf("Phone:   %s\n", p.Phone)
	fmt.Printf("Role:    %s\n", p.Role)
	if p.Wallet.HasBalance {
		fmt.Printf("Balance: %s\n", pipeline.FormatAmount(p.Wallet.Balance))
	}
	if !p.CreatedAt.IsZero() {
		fmt.Printf("Member since %s\n", p.CreatedAt.Local().Format("2006-01-02"))
	}
	common.PrintSeparator(os.Stdout, "=", common.DefaultWidth)
}

func main() {
	logger, loggerCleanup := common.InitializeLogger()
	code := run(logger)
	loggerCleanup()
	os.Exit(code)
}

func run(logger *zap.Logger) int {
	ctx := context.Background()

	nameFlag := flag.String("name", "", "New name")
	phoneFlag := flag.String("phone", "", "New phone")
	currentFlag := flag.String("current-password", "", "Current password (not needed for admins)")
	newFlag := flag.String("new-password", "", "New password")
	confirmFlag := flag.String("confirm-password", "", "Repeat the new password")
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

	snapshot := services.Session.Store().Snapshot()
	if d := services.Navigate(snapshot.Role().Home() + "/profile"); d.Kind == routing.Redirect {
		fmt.Println("Please log in first.")
		return 1
	}

	// set when the session copy of the principal must be refreshed from /auth/me
	stale := false
	if *nameFlag != "" || *phoneFlag != "" {
		updated, err := services.Client.UpdateProfile(ctx, models.UpdateProfileRequest{Name: *nameFlag, Phone: *phoneFlag})
		if err != nil {
			fmt.Println(api.MessageOf(err, "Failed to update profile"))
			return 1
		}
		if updated != nil {
			services.Session.Store().SetCredentials(ctx, *updated, snapshot.Token)
		} else {
			stale = true
		}
		fmt.Println("Profile updated successfully")
	}

	if *newFlag != "" {
		req, err := session.NewPasswordChange(snapshot.Role(), *currentFlag, *newFlag, *confirmFlag)
		if err != nil {
			fmt.Println(err)
			return 2
		}
		if err := services.Client.ChangePassword(ctx, req); err != nil {
			fmt.Println(api.MessageOf(err, "Failed to change password"))
			return 1
		}
		fmt.Println("Password changed successfully")
	}

	me, err := services.Client.Me(ctx)
	if err != nil {
		logger.Warn("Unable to load profile", zap.Error(err))
		me = services.Session.Store().Snapshot().User
	} else if stale {
		services.Session.Store().SetCredentials(ctx, *me, snapshot.Token)
	}
	if me != nil {
		printProfile(me)
	}
	return 0
}
