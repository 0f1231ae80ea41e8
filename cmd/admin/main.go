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
	"errors"
	"flag"
	"fmt"
	"os"

	"banglapay-wallet-go/internal/api"
	"banglapay-wallet-go/internal/common"
	"banglapay-wallet-go/internal/config"
	"banglapay-wallet-go/internal/confirm"
	"banglapay-wallet-go/internal/models"
	"banglapay-wallet-go/internal/routing"
	"banglapay-wallet-go/internal/session"

	"go.uber.org/zap"
)

const (
	actionEdit          = "edit"
	actionResetPassword = "reset-password"
)

type adminFlags struct {
	action     string
	user       string
	name       string
	phone      string
	role       string
	password   string
	skipPrompt bool
}

func runConfirmed(ctx context.Context, services *common.Services, action confirm.ActionType, target *models.Principal, skipPrompt bool) error {
	flow := confirm.NewFlow(confirm.NewClientSubmitter(services.Client), common.PrintNotifier{W: os.Stdout})
	if err := flow.Begin(action); err != nil {
		return err
	}
	if err := flow.Update(confirm.Draft{TargetId: target.Id, TargetName: target.Name}); err != nil {
		return err
	}
	payload, err := flow.Review()
	if err != nil {
		return err
	}
	if !skipPrompt && !common.AskConfirmation(os.Stdin, os.Stdout, confirm.Describe(payload)) {
		fmt.Println("Cancelled")
		return flow.Cancel()
	}
	return flow.Confirm(ctx)
}

func editUser(ctx context.Context, services *common.Services, f adminFlags, logger *zap.Logger) int {
	role := models.Role(f.role)
	if role != "" && !role.Valid() {
		logger.Error("Invalid role", zap.String("role", f.role))
		return 2
	}
	target, err := common.FindPrincipal(ctx, services.Client, f.user, false, logger)
	if err != nil {
		logger.Error("Target not found", zap.Error(err))
		return 1
	}
	updated, err := services.Client.AdminUpdateUser(ctx, target.Id, models.AdminUpdateUserRequest{
		Name:  f.name,
		Phone: f.phone,
		Role:  role,
	})
	if err != nil {
		fmt.Println(api.MessageOf(err, confirm.FallbackAction))
		return 1
	}
	name := target.Name
	if updated != nil && updated.Name != "" {
		name = updated.Name
	}
	fmt.Printf("User %s updated successfully\n", name)
	return 0
}

func resetPassword(ctx context.Context, services *common.Services, f adminFlags, logger *zap.Logger) int {
	if _, err := session.NewPasswordChange(models.RoleAdmin, "", f.password, f.password); err != nil {
		fmt.Println(err)
		return 2
	}
	target, err := common.FindPrincipal(ctx, services.Client, f.user, false, logger)
	if err != nil {
		logger.Error("Target not found", zap.Error(err))
		return 1
	}
	if err := services.Client.AdminChangeUserPassword(ctx, target.Id, f.password); err != nil {
		fmt.Println(api.MessageOf(err, confirm.FallbackAction))
		return 1
	}
	fmt.Printf("Password for %s reset successfully\n", target.Name)
	return 0
}

func restrictPrincipal(ctx context.Context, services *common.Services, f adminFlags, logger *zap.Logger) int {
	action, err := confirm.ParseAction(f.action)
	if err != nil || !action.NeedsTarget() {
		logger.Error("Invalid action", zap.String("action", f.action))
		return 2
	}
	agentsOnly := action == confirm.ActionSuspend || action == confirm.ActionActivate
	target, err := common.FindPrincipal(ctx, services.Client, f.user, agentsOnly, logger)
	if err != nil {
		logger.Error("Target not found", zap.Error(err))
		return 1
	}
	if err := runConfirmed(ctx, services, action, target, f.skipPrompt); err != nil {
		var verr *confirm.ValidationError
		if errors.As(err, &verr) {
			fmt.Println(verr.Message)
			return 2
		}
		return 1
	}
	return 0
}

func main() {
	logger, loggerCleanup := common.InitializeLogger()
	code := run(logger)
	loggerCleanup()
	os.Exit(code)
}

func run(logger *zap.Logger) int {
	ctx := context.Background()

	var f adminFlags
	flag.StringVar(&f.action, "action", "", "block, unblock, suspend, activate, edit or reset-password (required)")
	flag.StringVar(&f.user, "user", "", "Target id or phone (required)")
	flag.StringVar(&f.name, "name", "", "New name (edit)")
	flag.StringVar(&f.phone, "phone", "", "New phone (edit)")
	flag.StringVar(&f.role, "role", "", "New role (edit)")
	flag.StringVar(&f.password, "password", "", "New password (reset-password)")
	flag.BoolVar(&f.skipPrompt, "yes", false, "Confirm without prompting")
	flag.Parse()

	if f.action == "" || f.user == "" {
		logger.Error("Both flags are required: --action and --user")
		return 2
	}

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

	if d := services.Navigate(models.RoleAdmin.Home()); d.Kind == routing.Redirect {
		fmt.Println("Admin access required. Log in with an admin account.")
		return 1
	}

	switch f.action {
	case actionEdit:
		return editUser(ctx, services, f, logger)
	case actionResetPassword:
		return resetPassword(ctx, services, f, logger)
	default:
		return restrictPrincipal(ctx, services, f, logger)
	}
}
