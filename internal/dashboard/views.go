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

package dashboard

import (
	"context"
	"time"

	"banglapay-wallet-go/internal/api"
	"banglapay-wallet-go/internal/models"
	"banglapay-wallet-go/internal/pipeline"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const RecentLimit = 5

// Section is one independently loaded part of a view. A failed fetch leaves
// Err set and the rest of the view intact.
type Section[T any] struct {
	Value T
	Err   error
}

func (s Section[T]) Ok() bool {
	return s.Err == nil
}

type UserReader interface {
	Balance(ctx context.Context) (float64, error)
	Transactions(ctx context.Context, q models.TransactionQuery) ([]models.Transaction, error)
}

type AgentReader interface {
	Balance(ctx context.Context) (float64, error)
	AgentTransactions(ctx context.Context, q models.TransactionQuery) ([]models.Transaction, error)
	Commissions(ctx context.Context) ([]models.Transaction, error)
}

type AdminReader interface {
	Users(ctx context.Context) ([]models.Principal, error)
	Agents(ctx context.Context) ([]models.Principal, error)
	Wallets(ctx context.Context) ([]models.Wallet, error)
	AllTransactions(ctx context.Context) ([]models.Transaction, error)
}

var (
	_ UserReader  = (*api.Client)(nil)
	_ AgentReader = (*api.Client)(nil)
	_ AdminReader = (*api.Client)(nil)
)

// Options carries the list state of the list a view shows.
type Options struct {
	Criteria pipeline.Criteria
	Page     int
	PageSize int
	Now      time.Time
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// Charts are derived from the filtered transaction list.
type Charts struct {
	VolumeByType map[models.TransactionType]float64
	Series       []pipeline.DailyPoint
	Distribution pipeline.Distribution
}

func chartsFor(txs []models.Transaction, now time.Time) Charts {
	return Charts{
		VolumeByType: pipeline.VolumeByType(txs),
		Series:       pipeline.WeeklySeries(txs, now),
		Distribution: pipeline.Distribute(txs),
	}
}

// Activity is one entry of the recent-activity strip.
type Activity struct {
	Transaction models.Transaction
	Outgoing    bool
	Amount      string
}

func recentActivity(txs []models.Transaction) []Activity {
	n := min(len(txs), RecentLimit)
	out := make([]Activity, 0, n)
	for _, tx := range txs[:n] {
		out = append(out, Activity{
			Transaction: tx,
			Outgoing:    tx.Type.IsOutgoing(),
			Amount:      pipeline.SignedAmount(tx),
		})
	}
	return out
}

type TransactionList struct {
	Page   pipeline.Page[models.Transaction]
	Recent []Activity
	Charts Charts
	// Count is the unfiltered number of transactions.
	Count int
}

func buildTransactionList(txs []models.Transaction, opts Options) TransactionList {
	now := opts.now()
	filtered := pipeline.FilterTransactions(txs, opts.Criteria, now)
	return TransactionList{
		Page:   pipeline.Paginate(filtered, opts.Page, opts.PageSize),
		Recent: recentActivity(txs),
		Charts: chartsFor(filtered, now),
		Count:  len(txs),
	}
}

type UserView struct {
	Principal    models.Principal
	Balance      Section[float64]
	Transactions Section[TransactionList]
}

func LoadUserView(ctx context.Context, r UserReader, p models.Principal, opts Options) *UserView {
	view := &UserView{Principal: p}

	var g errgroup.Group
	g.Go(func() error {
		view.Balance = load(ctx, "balance", r.Balance)
		return nil
	})
	g.Go(func() error {
		txs := load(ctx, "transactions", func(ctx context.Context) ([]models.Transaction, error) {
			return r.Transactions(ctx, models.TransactionQuery{})
		})
		view.Transactions = Section[TransactionList]{Err: txs.Err}
		if txs.Ok() {
			view.Transactions.Value = buildTransactionList(txs.Value, opts)
		}
		return nil
	})
	_ = g.Wait()

	return view
}

type AgentView struct {
	Principal       models.Principal
	Balance         Section[float64]
	Transactions    Section[TransactionList]
	Commissions     Section[[]models.Transaction]
	TotalCommission float64
}

func LoadAgentView(ctx context.Context, r AgentReader, p models.Principal, opts Options) *AgentView {
	view := &AgentView{Principal: p}

	var g errgroup.Group
	g.Go(func() error {
		view.Balance = load(ctx, "balance", r.Balance)
		return nil
	})
	g.Go(func() error {
		txs := load(ctx, "agent transactions", func(ctx context.Context) ([]models.Transaction, error) {
			return r.AgentTransactions(ctx, models.TransactionQuery{})
		})
		view.Transactions = Section[TransactionList]{Err: txs.Err}
		if txs.Ok() {
			view.Transactions.Value = buildTransactionList(txs.Value, opts)
		}
		return nil
	})
	g.Go(func() error {
		view.Commissions = load(ctx, "commissions", r.Commissions)
		return nil
	})
	_ = g.Wait()

	if view.Commissions.Ok() {
		view.TotalCommission = pipeline.Total(view.Commissions.Value)
	}
	return view
}

// AdminStats summarize the unfiltered lists.
type AdminStats struct {
	TotalUsers        int
	TotalAgents       int
	TotalTransactions int
	TotalVolume       float64
	ActiveUsers       int
	ActiveAgents      int
}

// UserDistribution splits the user list into plain users and agents.
type UserDistribution struct {
	Users  int
	Agents int
}

// AdminOptions holds the list state of each admin tab.
type AdminOptions struct {
	Users        Options
	Transactions Options
	Wallets      Options
}

type AdminView struct {
	Principal        models.Principal
	Users            Section[pipeline.Page[models.Principal]]
	Agents           Section[[]models.Principal]
	Wallets          Section[pipeline.Page[models.Wallet]]
	Transactions     Section[TransactionList]
	Stats            AdminStats
	UserDistribution UserDistribution
}

func LoadAdminView(ctx context.Context, r AdminReader, p models.Principal, opts AdminOptions) *AdminView {
	view := &AdminView{Principal: p}

	var (
		g       errgroup.Group
		users   Section[[]models.Principal]
		wallets Section[[]models.Wallet]
		txs     Section[[]models.Transaction]
	)
	g.Go(func() error {
		users = load(ctx, "users", r.Users)
		return nil
	})
	g.Go(func() error {
		view.Agents = load(ctx, "agents", r.Agents)
		return nil
	})
	g.Go(func() error {
		wallets = load(ctx, "wallets", r.Wallets)
		return nil
	})
	g.Go(func() error {
		txs = load(ctx, "transactions", r.AllTransactions)
		return nil
	})
	_ = g.Wait()

	view.Users = Section[pipeline.Page[models.Principal]]{Err: users.Err}
	if users.Ok() {
		filtered := pipeline.FilterPrincipals(users.Value, opts.Users.Criteria)
		view.Users.Value = pipeline.Paginate(filtered, opts.Users.Page, opts.Users.PageSize)
	}

	view.Wallets = Section[pipeline.Page[models.Wallet]]{Err: wallets.Err}
	if wallets.Ok() {
		filtered := pipeline.FilterWallets(wallets.Value, opts.Wallets.Criteria)
		view.Wallets.Value = pipeline.Paginate(filtered, opts.Wallets.Page, opts.Wallets.PageSize)
	}

	view.Transactions = Section[TransactionList]{Err: txs.Err}
	if txs.Ok() {
		view.Transactions.Value = buildTransactionList(txs.Value, opts.Transactions)
	}

	view.Stats = computeStats(users.Value, view.Agents.Value, txs.Value)
	view.UserDistribution = UserDistribution{
		Users:  max(view.Stats.TotalUsers-view.Stats.TotalAgents, 0),
		Agents: view.Stats.TotalAgents,
	}
	return view
}

func computeStats(users, agents []models.Principal, txs []models.Transaction) AdminStats {
	stats := AdminStats{
		TotalUsers:        len(users),
		TotalAgents:       len(agents),
		TotalTransactions: len(txs),
		TotalVolume:       pipeline.Total(txs),
	}
	for _, u := range users {
		if !u.IsBlocked {
			stats.ActiveUsers++
		}
	}
	for _, a := range agents {
		if !a.IsBlocked {
			stats.ActiveAgents++
		}
	}
	return stats
}

func load[T any](ctx context.Context, name string, fetch func(context.Context) (T, error)) Section[T] {
	v, err := fetch(ctx)
	if err != nil {
		zap.L().Warn("Failed to load dashboard section",
			zap.String("section", name),
			zap.Error(err))
	}
	return Section[T]{Value: v, Err: err}
}
