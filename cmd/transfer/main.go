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

	"banglapay-wallet-go/internal/common"
	"banglapay-wallet-go/internal/config"
	"banglapay-wallet-go/internal/confirm"
	"banglapay-wallet-go/internal/pipeline"
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

	actionFlag := flag.String("action", "", "send, add, withdraw, cash-in or cash-out (required)")
	amountFlag := flag.String("amount", "", "Amount in taka (required)")
	phoneFlag := flag.String("phone", "", "Counterparty phone for send, cash-in and cash-out")
	yesFlag := flag.Bool("yes", false, "Confirm without prompting")
	flag.Parse()

	action, err := confirm.ParseAction(*actionFlag)
	if err != nil || !action.NeedsAmount() {
		logger.Error("Invalid action", zap.String("action", *actionFlag))
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

	snapshot := services.Session.Store().Snapshot()
	if d := services.Navigate(snapshot.Role().Home()); d.Kind == routing.Redirect || !action.AllowedFor(snapshot.Role()) {
		fmt.Printf("%s is not available here. Log in with an account that can use it.\n", action.Title())
		return 1
	}

	flow := confirm.NewFlow(confirm.NewClientSubmitter(services.Client), common.PrintNotifier{W: os.Stdout})
	if err := flow.Begin(action); err != nil {
		logger.Error("Unable to start action", zap.Error(err))
		return 1
	}
	if err := flow.Update(confirm.Draft{Amount: *amountFlag, Phone: *phoneFlag}); err != nil {
		logger.Error("Unable to update draft", zap.Error(err))
		return 1
	}

	payload, err := flow.Review()
	if err != nil {
		var verr *confirm.ValidationError
		if errors.As(err, &verr) {
			fmt.Println(verr.Message)
			return 2
		}
		logger.Error("Unable to review action", zap.Error(err))
		return 1
	}

	if balance, err := services.Client.Balance(ctx); err == nil {
		fmt.Printf("Current balance: %s\n", pipeline.FormatAmount(balance))
	}

	if !*yesFlag && !common.AskConfirmation(os.Stdin, os.Stdout, confirm.Describe(payload)) {
		_ = flow.Cancel()
		fmt.Println("Cancelled")
		return 0
	}

	if err := flow.Confirm(ctx); err != nil {
		return 1
	}

	if balance, err := services.Client.Balance(ctx); err == nil {
		fmt.Printf("New balance: %s\n", pipeline.FormatAmount(balance))
	}
	return 0
}
