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

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register. Role is user or agent.
type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// AuthResult is a parsed login/register response. Token is empty when the
// backend did not issue one.
type AuthResult struct {
	User  Principal
	Token string
}

type UpdateProfileRequest struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword"`
}

// AdminUpdateUserRequest edits another principal; empty fields are left unchanged.
type AdminUpdateUserRequest struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

type AmountRequest struct {
	Amount float64 `json:"amount"`
}

type SendMoneyRequest struct {
	ReceiverPhone string  `json:"receiverPhone"`
	Amount        float64 `json:"amount"`
}

type AgentTransactionRequest struct {
	UserPhone string  `json:"userPhone"`
	Amount    float64 `json:"amount"`
}

type UserIdRequest struct {
	UserId string `json:"userId"`
}

// TransactionQuery maps to the page, limit, type, startDate and endDate
// query parameters. Zero values are omitted.
type TransactionQuery struct {
	Page      int
	Limit     int
	Type      string
	StartDate string
	EndDate   string
}
