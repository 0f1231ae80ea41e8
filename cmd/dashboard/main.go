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
	"time"

	"banglapay-wallet-go/internal/common"
	"banglapay-wallet-go/internal/config"
	"banglapay-wallet-go/internal/dashboard"
	"banglapay-wallet-go/internal/models"
	"banglapay-wallet-go/internal/pipeline"
	"banglapay-wallet-go/internal/routing"

	"go.uber.org/zap"
)

type listFlags struct {
	tab       string
	search    string
	category  string
	status    string
	dateRange string
	min       string
	max       string
	page      int
}

var publicPages = map[routing.View]string{
	routing.ViewHome:     "BanglaPay: send, receive and cash out from your phone.",
	routing.ViewAbout:    "BanglaPay is a mobile wallet for users, agents and administrators.",
	routing.ViewFeatures: "Send money, add money, withdraw, agent cash-in/cash-out and admin oversight.",
	routing.ViewContact:  "Reach the BanglaPay support team through the in-app contact form.",
	routing.ViewFAQ:      "Log in with your phone number. Agents earn commission on every cash-in and cash-out.",
	routing.ViewLogin:    "Run the login command with -phone and -password.",
	routing.ViewRegister: "Run the register command with -name, -phone, -password and -role.",
}

func (f listFlags) criteria(defaultRange pipeline.DateRange) (pipeline.Criteria, error) {
	dateRange := defaultRange
	if f.dateRange != "" {
		r, err := pipeline.ParseDateRange(f.dateRange)
		if err != nil {
			return pipeline.Criteria{}, err
		}
		dateRange = r
	}
	return pipeline.Criteria{
		Search:    f.search,
		Category:  f.category,
		Status:    f.status,
		DateRange: dateRange,
		MinAmount: f.min,
		MaxAmount: f.max,
	}, nil
}

func listOptions(f listFlags, settings common.ViewSettings, defaultRange pipeline.DateRange) (dashboard.Options, error) {
	criteria, err := f.criteria(defaultRange)
	if err != nil {
		return dashboard.Options{}, err
	}
	state := pipeline.NewListState(settings.PageSize)
	state.SetCriteria(criteria)
	state.SetPage(f.page)
	return dashboard.Options{
		Criteria: state.Criteria(),
		Page:     state.Page(),
		PageSize: state.PageSize(),
		Now:      time.Now(),
	}, nil
}

func adminOptions(f listFlags, settings common.ViewSettings) (dashboard.AdminOptions, error) {
	opts := dashboard.AdminOptions{
		Users:        dashboard.Options{Page: 1, PageSize: settings.PageSize},
		Wallets:      dashboard.Options{Page: 1, PageSize: settings.PageSize},
		Transactions: dashboard.Options{Page: 1, PageSize: settings.PageSize, Now: time.Now(), Criteria: pipeline.Criteria{DateRange: settings.DateRange}},
	}

	var err error
	switch f.tab {
	case "users":
		opts.Users, err = listOptions(f, settings, pipeline.RangeAll)
	case "wallets":
		opts.Wallets, err = listOptions(f, settings, pipeline.RangeAll)
	case "transactions", "":
		opts.Transactions, err = listOptions(f, settings, settings.DateRange)
	default:
		err = fmt.Errorf("unknown tab %q, expected users, transactions or wallets", f.tab)
	}
	return opts, err
}

func main() {
	logger, loggerCleanup := common.InitializeLogger()
	code := run(logger)
	loggerCleanup()
	os.Exit(code)
}

func run(logger *zap.Logger) int {
	ctx := context.Background()

	pathFlag := flag.String("path", "", "Route to open (defaults to your dashboard)")
	var f listFlags
	flag.StringVar(&f.tab, "tab", "", "Admin list to filter: users, transactions or wallets")
	flag.StringVar(&f.search, "search", "", "Free-text search")
	flag.StringVar(&f.category, "type", "", "Transaction type, or role on the users tab (all matches everything)")
	flag.StringVar(&f.status, "status", "", "Status filter (transactions: completed, pending...; users: active, blocked)")
	flag.StringVar(&f.dateRange, "range", "", "Date range: 1, 7, 30, 90, today, week, month or all")
	flag.StringVar(&f.min, "min", "", "Minimum amount")
	flag.StringVar(&f.max, "max", "", "Maximum amount")
	flag.IntVar(&f.page, "page", 1, "Page number")
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
	path := *pathFlag
	if path == "" {
		path = routing.PathHome
		if snapshot.Authenticated() {
			path = snapshot.Role().Home()
		}
	}

	decision := services.Navigate(path)
	if decision.Kind == routing.Redirect {
		logger.Info("Route redirected", zap.String("path", path), zap.String("target", decision.Target))
		fmt.Printf("%s -> %s\n", path, decision.Target)
		if page, ok := publicPages[routing.Resolve(snapshot, decision.Target).View]; ok {
			fmt.Println(page)
		}
		return 0
	}
	if page, ok := publicPages[decision.View]; ok {
		fmt.Println(page)
		return 0
	}

	role := snapshot.Role()
	settings, err := common.ResolveViewSettings(cfg.Dashboard, role)
	if err != nil {
		logger.Error("Invalid dashboard settings", zap.Error(err))
		return 1
	}

	principal := *snapshot.User
	if me, err := services.Client.Me(ctx); err == nil {
		principal = *me
	} else {
		logger.Warn("Unable to refresh profile", zap.Error(err))
	}

	switch role {
	case models.RoleUser:
		opts, err := listOptions(f, settings, settings.DateRange)
		if err != nil {
			logger.Error("Invalid filters", zap.Error(err))
			return 1
		}
		dashboard.RenderUser(os.Stdout, dashboard.LoadUserView(ctx, services.Client, principal, opts))
	case models.RoleAgent:
		opts, err := listOptions(f, settings, settings.DateRange)
		if err != nil {
			logger.Error("Invalid filters", zap.Error(err))
			return 1
		}
		dashboard.RenderAgent(os.Stdout, dashboard.LoadAgentView(ctx, services.Client, principal, opts))
	case models.RoleAdmin:
		opts, err := adminOptions(f, settings)
		if err != nil {
			logger.Error("Invalid filters", zap.Error(err))
			return 1
		}
		dashboard.RenderAdmin(os.Stdout, dashboard.LoadAdminView(ctx, services.Client, principal, opts))
	}

	if done, err := services.Local.TourCompleted(ctx); err == nil && !done {
		fmt.Println("New here? Run the tour command for a walkthrough of your dashboard.")
	}
	return 0
}
