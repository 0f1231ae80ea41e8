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
	"github.com/shopspring/decimal"

	"banglapay-wallet-go/internal/models"
)

const Currency = "৳"

// FormatAmount renders v rounded to two places for display only.
func FormatAmount(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.IsNegative() {
		return "-" + Currency + d.Neg().StringFixed(2)
	}
	return Currency + d.StringFixed(2)
}

// SignedAmount prefixes the amount with - for outgoing and + for incoming types.
func SignedAmount(tx models.Transaction) string {
	if tx.Type.IsOutgoing() {
		return "-" + FormatAmount(tx.Amount)
	}
	return "+" + FormatAmount(tx.Amount)
}
