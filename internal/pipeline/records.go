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

package pipeline

import (
	"strconv"
	"time"

	"banglapay-wallet-go/internal/models"
)

// Accessors and criteria bindings for the three list kinds the dashboards show.

func transactionType(tx models.Transaction) models.TransactionType { return tx.Type }
func transactionAmount(tx models.Transaction) float64             { return tx.Amount }
func transactionTime(tx models.Transaction) time.Time             { return tx.CreatedAt }

// FormatRawAmount is the amount as searched, without rounding or currency.
func FormatRawAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func TransactionSearchFields(tx models.Transaction) []string {
	fields := []string{string(tx.Type), FormatRawAmount(tx.Amount)}
	if tx.Sender != nil {
		fields = append(fields, tx.Sender.Name, tx.Sender.Phone)
	}
	if tx.Receiver != nil {
		fields = append(fields, tx.Receiver.Name, tx.Receiver.Phone)
	}
	return fields
}

func UserSearchFields(p models.Principal) []string {
	return []string{p.Name, p.Phone}
}

func WalletSearchFields(w models.Wallet) []string {
	return []string{w.Owner.Name, w.Owner.Phone, w.Id}
}

const (
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

func principalStatus(p models.Principal) string {
	if p.IsBlocked {
		return StatusBlocked
	}
	return StatusActive
}

// principalBalance is zero when the wallet was not embedded.
func principalBalance(p models.Principal) float64 {
	return p.Wallet.Balance
}

// FilterTransactions applies search, type (Category), status, amount and
// date criteria.
func FilterTransactions(txs []models.Transaction, c Criteria, now time.Time) []models.Transaction {
	return Filter(txs,
		MatchSearch(c.Search, TransactionSearchFields),
		MatchCategory(c.Category, func(tx models.Transaction) string { return string(tx.Type) }),
		MatchCategory(c.Status, func(tx models.Transaction) string { return string(tx.Status) }),
		MatchRange(ParseAmountRange(c.MinAmount, c.MaxAmount), transactionAmount),
		MatchSince(c.DateRange.Since(now), transactionTime),
	)
}

// FilterPrincipals applies search, role (Category), active/blocked status and
// wallet balance criteria.
func FilterPrincipals(users []models.Principal, c Criteria) []models.Principal {
	return Filter(users,
		MatchSearch(c.Search, UserSearchFields),
		MatchCategory(c.Category, func(p models.Principal) string { return string(p.Role) }),
		MatchCategory(c.Status, principalStatus),
		MatchRange(ParseAmountRange(c.MinAmount, c.MaxAmount), principalBalance),
	)
}

func FilterWallets(wallets []models.Wallet, c Criteria) []models.Wallet {
	return Filter(wallets,
		MatchSearch(c.Search, WalletSearchFields),
		MatchRange(ParseAmountRange(c.MinAmount, c.MaxAmount), func(w models.Wallet) float64 { return w.Balance }),
	)
}
