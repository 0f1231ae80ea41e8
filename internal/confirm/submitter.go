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

package confirm

import (
	"context"
	"fmt"

	"banglapay-wallet-go/internal/api"
	"banglapay-wallet-go/internal/models"
)

// Mutations is the part of the API client the confirmation flow drives.
type Mutations interface {
	TopUp(ctx context.Context, amount float64) (*models.Transaction, error)
	Withdraw(ctx context.Context, amount float64) (*models.Transaction, error)
	SendMoney(ctx context.Context, receiverPhone string, amount float64) (*models.Transaction, error)
	CashIn(ctx context.Context, userPhone string, amount float64) (*models.Transaction, error)
	CashOut(ctx context.Context, userPhone string, amount float64) (*models.Transaction, error)
	BlockUser(ctx context.Context, userId string) error
	UnblockUser(ctx context.Context, userId string) error
	SuspendAgent(ctx context.Context, userId string) error
	ActivateAgent(ctx context.Context, userId string) error
}

var _ Mutations = (*api.Client)(nil)

// ClientSubmitter maps each action onto its endpoint.
type ClientSubmitter struct {
	mutations Mutations
}

var _ Submitter = (*ClientSubmitter)(nil)

func NewClientSubmitter(m Mutations) *ClientSubmitter {
	return &ClientSubmitter{mutations: m}
}

func (s *ClientSubmitter) Submit(ctx context.Context, p Payload) error {
	amount := p.AmountValue()
	var err error
	switch p.Action {
	case ActionSend:
		_, err = s.mutations.SendMoney(ctx, p.Phone, amount)
	case ActionAdd:
		_, err = s.mutations.TopUp(ctx, amount)
	case ActionWithdraw:
		_, err = s.mutations.Withdraw(ctx, amount)
	case ActionCashIn:
		_, err = s.mutations.CashIn(ctx, p.Phone, amount)
	case ActionCashOut:
		_, err = s.mutations.CashOut(ctx, p.Phone, amount)
	case ActionBlock:
		err = s.mutations.BlockUser(ctx, p.TargetId)
	case ActionUnblock:
		err = s.mutations.UnblockUser(ctx, p.TargetId)
	case ActionSuspend:
		err = s.mutations.SuspendAgent(ctx, p.TargetId)
	case ActionActivate:
		err = s.mutations.ActivateAgent(ctx, p.TargetId)
	default:
		return fmt.Errorf("no endpoint for action %q", p.Action)
	}
	return err
}
