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

package api

import (
	"context"

	"banglapay-wallet-go/internal/models"
)

func (c *Client) CashIn(ctx context.Context, userPhone string, amount float64) (*models.Transaction, error) {
	return c.moveMoney(ctx, "/agent/cash-in", models.AgentTransactionRequest{UserPhone: userPhone, Amount: amount})
}

func (c *Client) CashOut(ctx context.Context, userPhone string, amount float64) (*models.Transaction, error) {
	return c.moveMoney(ctx, "/agent/cash-out", models.AgentTransactionRequest{UserPhone: userPhone, Amount: amount})
}

func (c *Client) AgentTransactions(ctx context.Context, q models.TransactionQuery) ([]models.Transaction, error) {
	return c.transactionList(ctx, "/agent/transactions", transactionQueryValues(q))
}

func (c *Client) Commissions(ctx context.Context) ([]models.Transaction, error) {
	return c.transactionList(ctx, "/agent/commissions", nil)
}
