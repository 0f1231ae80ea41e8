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
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"banglapay-wallet-go/internal/models"
)

// The wire types mirror the backend's JSON. Everything is validated and
// converted to models at this boundary so callers never check presence ad hoc.

type wireUser struct {
	Id        string          `json:"_id"`
	AltId     string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Role      string          `json:"role"`
	IsBlocked bool            `json:"isBlocked"`
	Wallet    json.RawMessage `json:"wallet"`
	CreatedAt string          `json:"createdAt"`
}

type wireParty struct {
	Id    string `json:"_id"`
	AltId string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type wireWalletRef struct {
	Id      string   `json:"_id"`
	AltId   string   `json:"id"`
	Balance *float64 `json:"balance"`
}

type wireTransaction struct {
	Id          string          `json:"_id"`
	AltId       string          `json:"id"`
	Type        string          `json:"type"`
	Amount      float64         `json:"amount"`
	Sender      json.RawMessage `json:"sender"`
	Receiver    json.RawMessage `json:"receiver"`
	Wallet      json.RawMessage `json:"wallet"`
	Description string          `json:"description"`
	Commission  float64         `json:"commission"`
	Reference   string          `json:"reference"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

type wireWallet struct {
	Id           string          `json:"_id"`
	AltId        string          `json:"id"`
	Owner        json.RawMessage `json:"owner"`
	Balance      float64         `json:"balance"`
	IsActive     bool            `json:"isActive"`
	Frozen       bool            `json:"frozen"`
	DailyLimit   float64         `json:"dailyLimit"`
	MonthlyLimit float64         `json:"monthlyLimit"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func parseTime(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return t, nil
}

// parseParty accepts either a bare id string or an embedded object.
func parseParty(raw json.RawMessage) (*models.Party, error) {
	if isAbsent(raw) {
		return nil, nil
	}
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		if id == "" {
			return nil, nil
		}
		return &models.Party{Id: id}, nil
	}
	var p wireParty
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("invalid party: %w", err)
	}
	return &models.Party{Id: firstNonEmpty(p.Id, p.AltId), Name: p.Name, Phone: p.Phone}, nil
}

func parseWalletRef(raw json.RawMessage) (models.WalletRef, error) {
	if isAbsent(raw) {
		return models.WalletRef{}, nil
	}
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return models.WalletRef{Id: id}, nil
	}
	var w wireWalletRef
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.WalletRef{}, fmt.Errorf("invalid wallet reference: %w", err)
	}
	ref := models.WalletRef{Id: firstNonEmpty(w.Id, w.AltId)}
	if w.Balance != nil {
		ref.Balance = *w.Balance
		ref.HasBalance = true
	}
	return ref, nil
}

func (w wireUser) toModel() (models.Principal, error) {
	id := firstNonEmpty(w.Id, w.AltId)
	if id == "" {
		return models.Principal{}, fmt.Errorf("user: %w: _id", errMissingField)
	}
	role := models.Role(strings.ToLower(w.Role))
	if !role.Valid() {
		return models.Principal{}, fmt.Errorf("user %s: unknown role %q", id, w.Role)
	}
	wallet, err := parseWalletRef(w.Wallet)
	if err != nil {
		return models.Principal{}, fmt.Errorf("user %s: %w", id, err)
	}
	createdAt, err := parseTime(w.CreatedAt, "createdAt")
	if err != nil {
		return models.Principal{}, fmt.Errorf("user %s: %w", id, err)
	}
	return models.Principal{
		Id:        id,
		Name:      w.Name,
		Phone:     w.Phone,
		Role:      role,
		IsBlocked: w.IsBlocked,
		Wallet:    wallet,
		CreatedAt: createdAt,
	}, nil
}

func (w wireTransaction) toModel() (models.Transaction, error) {
	id := firstNonEmpty(w.Id, w.AltId)
	if id == "" {
		return models.Transaction{}, fmt.Errorf("transaction: %w: _id", errMissingField)
	}
	if w.Type == "" {
		return models.Transaction{}, fmt.Errorf("transaction %s: %w: type", id, errMissingField)
	}
	sender, err := parseParty(w.Sender)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %s sender: %w", id, err)
	}
	receiver, err := parseParty(w.Receiver)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %s receiver: %w", id, err)
	}
	wallet, err := parseWalletRef(w.Wallet)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %s: %w", id, err)
	}
	createdAt, err := parseTime(w.CreatedAt, "createdAt")
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %s: %w", id, err)
	}
	updatedAt, err := parseTime(w.UpdatedAt, "updatedAt")
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %s: %w", id, err)
	}
	return models.Transaction{
		Id:          id,
		Type:        models.TransactionType(w.Type),
		Amount:      w.Amount,
		Sender:      sender,
		Receiver:    receiver,
		WalletId:    wallet.Id,
		Description: w.Description,
		Commission:  w.Commission,
		Reference:   w.Reference,
		Status:      models.TransactionStatus(w.Status),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func (w wireWallet) toModel() (models.Wallet, error) {
	id := firstNonEmpty(w.Id, w.AltId)
	if id == "" {
		return models.Wallet{}, fmt.Errorf("wallet: %w: _id", errMissingField)
	}
	owner, err := parseParty(w.Owner)
	if err != nil {
		return models.Wallet{}, fmt.Errorf("wallet %s owner: %w", id, err)
	}
	createdAt, err := parseTime(w.CreatedAt, "createdAt")
	if err != nil {
		return models.Wallet{}, fmt.Errorf("wallet %s: %w", id, err)
	}
	updatedAt, err := parseTime(w.UpdatedAt, "updatedAt")
	if err != nil {
		return models.Wallet{}, fmt.Errorf("wallet %s: %w", id, err)
	}
	wallet := models.Wallet{
		Id:           id,
		Balance:      w.Balance,
		IsActive:     w.IsActive,
		Frozen:       w.Frozen,
		DailyLimit:   w.DailyLimit,
		MonthlyLimit: w.MonthlyLimit,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
	if owner != nil {
		wallet.Owner = *owner
	}
	return wallet, nil
}

func parseUsers(in []wireUser) ([]models.Principal, error) {
	out := make([]models.Principal, 0, len(in))
	for _, w := range in {
		p, err := w.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func parseTransactions(in []wireTransaction) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0, len(in))
	for _, w := range in {
		tx, err := w.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, nil
}

func parseWallets(in []wireWallet) ([]models.Wallet, error) {
	out := make([]models.Wallet, 0, len(in))
	for _, w := range in {
		wallet, err := w.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, wallet)
	}
	return out, nil
}

// Response envelopes. The backend is not consistent about wrapping payloads
// in "data", so each accepts both shapes.

type authEnvelope struct {
	User  *wireUser `json:"user"`
	Token string    `json:"token"`
	Data  *struct {
		User  *wireUser `json:"user"`
		Token string    `json:"token"`
	} `json:"data"`
}

func parseAuth(raw json.RawMessage, path string) (*models.AuthResult, error) {
	var env authEnvelope
	if err := decode(raw, path, &env); err != nil {
		return nil, err
	}
	user, token := env.User, env.Token
	if user == nil && env.Data != nil {
		user, token = env.Data.User, env.Data.Token
	}
	if user == nil {
		return nil, fmt.Errorf("%s: %w: user", path, errMissingField)
	}
	principal, err := user.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &models.AuthResult{User: principal, Token: token}, nil
}

type balanceEnvelope struct {
	Balance *float64 `json:"balance"`
	Data    *struct {
		Balance *float64 `json:"balance"`
	} `json:"data"`
}

func parseBalance(raw json.RawMessage, path string) (float64, error) {
	var env balanceEnvelope
	if err := decode(raw, path, &env); err != nil {
		return 0, err
	}
	if env.Data != nil && env.Data.Balance != nil {
		return *env.Data.Balance, nil
	}
	if env.Balance != nil {
		return *env.Balance, nil
	}
	return 0, fmt.Errorf("%s: %w: balance", path, errMissingField)
}

type transactionListEnvelope struct {
	Transactions []wireTransaction `json:"transactions"`
	Data         json.RawMessage   `json:"data"`
}

func parseTransactionList(raw json.RawMessage, path string) ([]models.Transaction, error) {
	var env transactionListEnvelope
	if err := decode(raw, path, &env); err != nil {
		return nil, err
	}
	items := env.Transactions
	if items == nil && !isAbsent(env.Data) {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			var nested struct {
				Transactions []wireTransaction `json:"transactions"`
			}
			if err := json.Unmarshal(env.Data, &nested); err != nil {
				return nil, fmt.Errorf("unable to decode %s transactions: %w", path, err)
			}
			items = nested.Transactions
		}
	}
	txs, err := parseTransactions(items)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return txs, nil
}

// parseTransactionResult accepts {"data": tx}, {"data": {"transaction": tx}},
// {"transaction": tx} or a bare tx.
func parseTransactionResult(raw json.RawMessage, path string) (*models.Transaction, error) {
	var env struct {
		Data        json.RawMessage  `json:"data"`
		Transaction *wireTransaction `json:"transaction"`
	}
	if err := decode(raw, path, &env); err != nil {
		return nil, err
	}
	var w wireTransaction
	switch {
	case !isAbsent(env.Data):
		var nested struct {
			Transaction *wireTransaction `json:"transaction"`
		}
		if err := json.Unmarshal(env.Data, &nested); err == nil && nested.Transaction != nil {
			w = *nested.Transaction
		} else if err := json.Unmarshal(env.Data, &w); err != nil {
			return nil, fmt.Errorf("unable to decode %s transaction: %w", path, err)
		}
	case env.Transaction != nil:
		w = *env.Transaction
	default:
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("unable to decode %s transaction: %w", path, err)
		}
	}
	tx, err := w.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &tx, nil
}

type userListEnvelope struct {
	Data []wireUser `json:"data"`
}

type walletListEnvelope struct {
	Data []wireWallet `json:"data"`
}

type userEnvelope struct {
	User *wireUser `json:"user"`
	Data *wireUser `json:"data"`
}

func parseUser(raw json.RawMessage, path string) (*models.Principal, error) {
	var env userEnvelope
	if err := decode(raw, path, &env); err != nil {
		return nil, err
	}
	w := env.User
	if w == nil {
		w = env.Data
	}
	if w == nil {
		var bare wireUser
		if err := json.Unmarshal(raw, &bare); err != nil || firstNonEmpty(bare.Id, bare.AltId) == "" {
			return nil, fmt.Errorf("%s: %w: user", path, errMissingField)
		}
		w = &bare
	}
	p, err := w.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}
