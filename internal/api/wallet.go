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
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"banglapay-wallet-go/internal/models"
)

var moneyMovement = []Tag{TagOf(ResourceWallet), TagOf(ResourceTransaction)}

func transactionQueryValues(q models.TransactionQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if q.StartDate != "" {
		v.Set("startDate", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("endDate", q.EndDate)
	}
	return v
}

func (c *Client) Balance(ctx context.Context) (float64, error) {
	return cached(ctx, c, "wallet/balance", func(ctx context.Context) (float64, []Tag, error) {
		var raw json.RawMessage
		if err := c.do(ctx, request{method: http.MethodGet, path: "/wallet/balance"}, &raw); err != nil {
			return 0, nil, err
		}
		balance, err := parseBalance(raw, "/wallet/balance")
		if err != nil {
			return 0, nil, err
		}
		return balance, []Tag{TagOf(ResourceWallet)}, nil
	})
}

func (c *Client) TopUp(ctx context.Context, amount float64) (*models.Transaction, error) {
	return c.moveMoney(ctx, "/wallet/top-up", models.AmountRequest{Amount: amount})
}

func (c *Client) Withdraw(ctx context.Context, amount float64) (*models.Transaction, error) {
	return c.moveMoney(ctx, "/wallet/withdraw", models.AmountRequest{Amount: amount})
}

func (c *Client) SendMoney(ctx context.Context, receiverPhone string, amount float64) (*models.Transaction, error) {
	return c.moveMoney(ctx, "/wallet/send-money", models.SendMoneyRequest{ReceiverPhone: receiverPhone, Amount: amount})
}

func (c *Client) Transactions(ctx context.Context, q models.TransactionQuery) ([]models.Transaction, error) {
	return c.transactionList(ctx, "/wallet/transactions", transactionQueryValues(q))
}

// moveMoney returns a nil transaction and no error when the backend accepted
// the request but did not echo a transaction back.
func (c *Client) moveMoney(ctx context.Context, path string, body any) (*models.Transaction, error) {
	var raw json.RawMessage
	if err := c.mutate(ctx, request{method: http.MethodPost, path: path, body: body}, &raw, moneyMovement...); err != nil {
		return nil, err
	}
	tx, err := parseTransactionResult(raw, path)
	if err != nil {
		unparsedResult(path, err)
		return nil, nil
	}
	return tx, nil
}

func (c *Client) transactionList(ctx context.Context, path string, query url.Values) ([]models.Transaction, error) {
	key := path + "?" + query.Encode()
	return cached(ctx, c, key, func(ctx context.Context) ([]models.Transaction, []Tag, error) {
		var raw json.RawMessage
		if err := c.do(ctx, request{method: http.MethodGet, path: path, query: query}, &raw); err != nil {
			return nil, nil, err
		}
		txs, err := parseTransactionList(raw, path)
		if err != nil {
			return nil, nil, err
		}
		return txs, []Tag{TagOf(ResourceTransaction)}, nil
	})
}
