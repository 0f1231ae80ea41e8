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
	"fmt"
	"io"
	"sort"
	"strings"

	"banglapay-wallet-go/internal/api"
	"banglapay-wallet-go/internal/common"
	"banglapay-wallet-go/internal/models"
	"banglapay-wallet-go/internal/pipeline"
)

const unavailable = "unavailable"

func sectionError(err error) string {
	return fmt.Sprintf("%s (%s)", unavailable, api.MessageOf(err, "failed to load"))
}

func formatTime(tx models.Transaction) string {
	if tx.CreatedAt.IsZero() {
		return "-"
	}
	return tx.CreatedAt.Local().Format("2006-01-02 15:04")
}

func counterparty(tx models.Transaction) string {
	party := tx.Receiver
	if !tx.Type.IsOutgoing() {
		party = tx.Sender
	}
	if party == nil {
		return "-"
	}
	if party.Name != "" && party.Phone != "" {
		return fmt.Sprintf("%s (%s)", party.Name, party.Phone)
	}
	if party.Phone != "" {
		return party.Phone
	}
	if party.Name != "" {
		return party.Name
	}
	return common.Truncate(party.Id, 8)
}

func renderBalance(w io.Writer, b Section[float64]) {
	if !b.Ok() {
		fmt.Fprintf(w, "Balance: %s\n", sectionError(b.Err))
		return
	}
	fmt.Fprintf(w, "Balance: %s\n", pipeline.FormatAmount(b.Value))
}

func renderRecent(w io.Writer, recent []Activity) {
	common.PrintSection(w, "Recent Activity", common.DefaultWidth)
	if len(recent) == 0 {
		common.PrintBoxLine(w, true, "no transactions yet")
		return
	}
	for i, a := range recent {
		common.PrintBoxLine(w, i == len(recent)-1, "%-18s %14s  %s",
			a.Transaction.Type, a.Amount, formatTime(a.Transaction))
	}
}

func renderTransactionPage(w io.Writer, title string, page pipeline.Page[models.Transaction]) {
	common.PrintSection(w, fmt.Sprintf("%s (page %d of %d, %d matching)",
		title, page.Page, max(page.TotalPages, 1), page.TotalItems), common.DefaultWidth)
	if len(page.Items) == 0 {
		common.PrintBoxLine(w, true, "no matching transactions")
		return
	}
	for i, tx := range page.Items {
		common.PrintBoxLine(w, i == len(page.Items)-1, "%-11s %-18s %12s  %-10s %s",
			common.Truncate(tx.Id, 8), tx.Type, pipeline.FormatAmount(tx.Amount), tx.Status, counterparty(tx))
	}
}

func renderCharts(w io.Writer, c Charts) {
	common.PrintSection(w, "Volume by Type", common.DefaultWidth)
	types := make([]string, 0, len(c.VolumeByType))
	for t := range c.VolumeByType {
		types = append(types, string(t))
	}
	sort.Strings(types)
	if len(types) == 0 {
		common.PrintBoxLine(w, true, "no activity")
	}
	for i, t := range types {
		common.PrintBoxLine(w, i == len(types)-1, "%-18s %14s",
			strings.ReplaceAll(t, "-", " "), pipeline.FormatAmount(c.VolumeByType[models.TransactionType(t)]))
	}

	common.PrintSection(w, "Last 7 Days", common.DefaultWidth)
	for i, p := range c.Series {
		common.PrintBoxLine(w, i == len(c.Series)-1, "%s  %3d txs  %14s", p.Date, p.Count, pipeline.FormatAmount(p.Volume))
	}

	fmt.Fprintf(w, "\nSent: %d  Received: %d\n", c.Distribution.Outgoing, c.Distribution.Incoming)
}

func renderTransactions(w io.Writer, title string, s Section[TransactionList]) {
	if !s.Ok() {
		common.PrintSection(w, title, common.DefaultWidth)
		common.PrintBoxLine(w, true, "%s", sectionError(s.Err))
		return
	}
	renderRecent(w, s.Value.Recent)
	renderTransactionPage(w, title, s.Value.Page)
	renderCharts(w, s.Value.Charts)
}

func RenderUser(w io.Writer, v *UserView) {
	common.PrintHeader(w, fmt.Sprintf("USER DASHBOARD: %s (%s)", v.Principal.Name, v.Principal.Phone), common.DefaultWidth)
	renderBalance(w, v.Balance)
	if v.Transactions.Ok() {
		fmt.Fprintf(w, "Transactions: %d\n", v.Transactions.Value.Count)
	}
	renderTransactions(w, "Transactions", v.Transactions)
	common.PrintFooter(w, "Actions: send, add, withdraw", common.DefaultWidth)
}

func RenderAgent(w io.Writer, v *AgentView) {
	common.PrintHeader(w, fmt.Sprintf("AGENT DASHBOARD: %s (%s)", v.Principal.Name, v.Principal.Phone), common.DefaultWidth)
	renderBalance(w, v.Balance)
	if v.Commissions.Ok() {
		fmt.Fprintf(w, "Commission earned: %s (%d entries)\n",
			pipeline.FormatAmount(v.TotalCommission), len(v.Commissions.Value))
	} else {
		fmt.Fprintf(w, "Commission earned: %s\n", sectionError(v.Commissions.Err))
	}
	renderTransactions(w, "Transactions", v.Transactions)
	common.PrintFooter(w, "Actions: cash-in, cash-out, add, withdraw", common.DefaultWidth)
}

func RenderAdmin(w io.Writer, v *AdminView) {
	common.PrintHeader(w, fmt.Sprintf("ADMIN DASHBOARD: %s", v.Principal.Name), common.WideWidth)

	s := v.Stats
	fmt.Fprintf(w, "Users: %d (%d active)  Agents: %d (%d active)\n",
		s.TotalUsers, s.ActiveUsers, s.TotalAgents, s.ActiveAgents)
	fmt.Fprintf(w, "Transactions: %d  Volume: %s\n", s.TotalTransactions, pipeline.FormatAmount(s.TotalVolume))
	fmt.Fprintf(w, "Distribution: %d users, %d agents\n", v.UserDistribution.Users, v.UserDistribution.Agents)

	renderPrincipals(w, v.Users)
	renderWallets(w, v.Wallets)
	renderTransactions(w, "All Transactions", v.Transactions)

	common.PrintFooter(w, "Actions: block, unblock, suspend, activate", common.WideWidth)
}

func renderPrincipals(w io.Writer, s Section[pipeline.Page[models.Principal]]) {
	if !s.Ok() {
		common.PrintSection(w, "Users", common.WideWidth)
		common.PrintBoxLine(w, true, "%s", sectionError(s.Err))
		return
	}
	page := s.Value
	common.PrintSection(w, fmt.Sprintf("Users (page %d of %d, %d matching)",
		page.Page, max(page.TotalPages, 1), page.TotalItems), common.WideWidth)
	if len(page.Items) == 0 {
		common.PrintBoxLine(w, true, "no matching users")
		return
	}
	for i, u := range page.Items {
		status := pipeline.StatusActive
		if u.IsBlocked {
			status = pipeline.StatusBlocked
		}
		balance := "-"
		if u.Wallet.HasBalance {
			balance = pipeline.FormatAmount(u.Wallet.Balance)
		}
		common.PrintBoxLine(w, i == len(page.Items)-1, "%-26s %-20s %-14s %-6s %-8s %12s",
			u.Id, u.Name, u.Phone, u.Role, status, balance)
	}
}

func renderWallets(w io.Writer, s Section[pipeline.Page[models.Wallet]]) {
	if !s.Ok() {
		common.PrintSection(w, "Wallets", common.WideWidth)
		common.PrintBoxLine(w, true, "%s", sectionError(s.Err))
		return
	}
	page := s.Value
	common.PrintSection(w, fmt.Sprintf("Wallets (page %d of %d, %d matching)",
		page.Page, max(page.TotalPages, 1), page.TotalItems), common.WideWidth)
	if len(page.Items) == 0 {
		common.PrintBoxLine(w, true, "no matching wallets")
		return
	}
	for i, wallet := range page.Items {
		state := "active"
		if wallet.Frozen {
			state = "frozen"
		} else if !wallet.IsActive {
			state = "inactive"
		}
		common.PrintBoxLine(w, i == len(page.Items)-1, "%-26s %-20s %-14s %12s  %s",
			wallet.Id, wallet.Owner.Name, wallet.Owner.Phone, pipeline.FormatAmount(wallet.Balance), state)
	}
}
