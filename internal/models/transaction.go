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

package models

import (
	"strings"
	"time"
)

type TransactionType string

const (
	TransactionAdd              TransactionType = "add"
	TransactionTopUp            TransactionType = "top-up"
	TransactionWithdraw         TransactionType = "withdraw"
	TransactionSend             TransactionType = "send-money"
	TransactionReceive          TransactionType = "receive"
	TransactionCashIn           TransactionType = "cash-in"
	TransactionCashOut          TransactionType = "cash-out"
	TransactionCommissionEarned TransactionType = "commission-earned"
	TransactionBillPayment      TransactionType = "bill-payment"
	TransactionMerchantPayment  TransactionType = "merchant-payment"
)

// IsOutgoing reports whether money leaves the wallet for this type
// (any send, withdraw or cash-out variant).
func (t TransactionType) IsOutgoing() bool {
	s := string(t)
	return strings.Contains(s, "send") || strings.Contains(s, "withdraw") || strings.Contains(s, "cash-out")
}

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
)

// Transaction represents an immutable ledger entry owned by the backend
type Transaction struct {
	Id          string            `json:"id"`
	Type        TransactionType   `json:"type"`
	Amount      float64           `json:"amount"`
	Sender      *Party            `json:"sender,omitempty"`
	Receiver    *Party            `json:"receiver,omitempty"`
	WalletId    string            `json:"wallet_id"`
	Description string            `json:"description,omitempty"`
	Commission  float64           `json:"commission,omitempty"`
	Reference   string            `json:"reference,omitempty"`
	Status      TransactionStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
