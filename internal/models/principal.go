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

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// Home returns the dashboard path for the role, e.g. "/agent".
func (r Role) Home() string {
	return "/" + string(r)
}

// Principal is the backend's user record as seen by the client. It may be stale.
type Principal struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	IsBlocked bool      `json:"is_blocked"`
	Wallet    WalletRef `json:"wallet"`
	CreatedAt time.Time `json:"created_at"`
}

// WalletRef points at a wallet. Balance is only known when the backend embeds the wallet.
type WalletRef struct {
	Id         string  `json:"id"`
	Balance    float64 `json:"balance"`
	HasBalance bool    `json:"has_balance"`
}

// Party is a transaction counterparty or wallet owner. Name and Phone are
// empty when the backend only sent a reference id.
type Party struct {
	Id    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Wallet is owned by the backend; the client never mutates it.
type Wallet struct {
	Id           string    `json:"id"`
	Owner        Party     `json:"owner"`
	Balance      float64   `json:"balance"`
	IsActive     bool      `json:"is_active"`
	Frozen       bool      `json:"frozen"`
	DailyLimit   float64   `json:"daily_limit"`
	MonthlyLimit float64   `json:"monthly_limit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
