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

	"banglapay-wallet-go/internal/models"
)

func (c *Client) Users(ctx context.Context) ([]models.Principal, error) {
	return c.principalList(ctx, "/admin/users", TagOf(ResourceUser))
}

// Agents provides both Agent and User, so block/unblock refreshes it too.
func (c *Client) Agents(ctx context.Context) ([]models.Principal, error) {
	return c.principalList(ctx, "/admin/agents", TagOf(ResourceAgent), TagOf(ResourceUser))
}

func (c *Client) Wallets(ctx context.Context) ([]models.Wallet, error) {
	return cached(ctx, c, "admin/wallets", func(ctx context.Context) ([]models.Wallet, []Tag, error) {
		var raw json.RawMessage
		if err := c.do(ctx, request{method: http.MethodGet, path: "/admin/wallets"}, &raw); err != nil {
			return nil, nil, err
		}
		var env walletListEnvelope
		if err := decode(raw, "/admin/wallets", &env); err != nil {
			return nil, nil, err
		}
		wallets, err := parseWallets(env.Data)
		if err != nil {
			return nil, nil, err
		}
		return wallets, []Tag{TagOf(ResourceWallet)}, nil
	})
}

func (c *Client) AllTransactions(ctx context.Context) ([]models.Transaction, error) {
	return c.transactionList(ctx, "/admin/transactions", nil)
}

func (c *Client) BlockUser(ctx context.Context, userId string) error {
	return c.adminAction(ctx, "/admin/user/block", userId, TagOf(ResourceUser))
}

func (c *Client) UnblockUser(ctx context.Context, userId string) error {
	return c.adminAction(ctx, "/admin/user/unblock", userId, TagOf(ResourceUser))
}

func (c *Client) SuspendAgent(ctx context.Context, userId string) error {
	return c.adminAction(ctx, "/admin/agent/suspend", userId, TagOf(ResourceAgent))
}

func (c *Client) ActivateAgent(ctx context.Context, userId string) error {
	return c.adminAction(ctx, "/admin/agent/activate", userId, TagOf(ResourceAgent))
}

func (c *Client) adminAction(ctx context.Context, path, userId string, invalidates ...Tag) error {
	return c.mutate(ctx, request{
		method: http.MethodPatch,
		path:   path,
		body:   models.UserIdRequest{UserId: userId},
	}, nil, invalidates...)
}

func (c *Client) principalList(ctx context.Context, path string, provides ...Tag) ([]models.Principal, error) {
	return cached(ctx, c, path, func(ctx context.Context) ([]models.Principal, []Tag, error) {
		var raw json.RawMessage
		if err := c.do(ctx, request{method: http.MethodGet, path: path}, &raw); err != nil {
			return nil, nil, err
		}
		var env userListEnvelope
		if err := decode(raw, path, &env); err != nil {
			return nil, nil, err
		}
		users, err := parseUsers(env.Data)
		if err != nil {
			return nil, nil, err
		}
		return users, provides, nil
	})
}
