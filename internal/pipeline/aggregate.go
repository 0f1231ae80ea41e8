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
	"time"

	"banglapay-wallet-go/internal/models"
)

const SeriesDays = 7

// SumBy totals value(item) per key(item).
func SumBy[T any, K comparable](items []T, key func(T) K, value func(T) float64) map[K]float64 {
	out := make(map[K]float64)
	for _, item := range items {
		out[key(item)] += value(item)
	}
	return out
}

func CountBy[T any, K comparable](items []T, key func(T) K) map[K]int {
	out := make(map[K]int)
	for _, item := range items {
		out[key(item)]++
	}
	return out
}

func VolumeByType(txs []models.Transaction) map[models.TransactionType]float64 {
	return SumBy(txs, transactionType, transactionAmount)
}

// DailyPoint is one UTC calendar day of activity. Date is YYYY-MM-DD.
type DailyPoint struct {
	Date   string
	Count  int
	Volume float64
}

// DailySeries buckets txs into the days trailing window ending at now's UTC
// date, oldest first. Days without activity are present with zero values.
func DailySeries(txs []models.Transaction, now time.Time, days int) []DailyPoint {
	if days <= 0 {
		return []DailyPoint{}
	}

	today := now.UTC()
	series := make([]DailyPoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i-(days-1)).Format(time.DateOnly)
		series[i] = DailyPoint{Date: date}
		index[date] = i
	}

	for _, tx := range txs {
		if tx.CreatedAt.IsZero() {
			continue
		}
		if i, ok := index[tx.CreatedAt.UTC().Format(time.DateOnly)]; ok {
			series[i].Count++
			series[i].Volume += tx.Amount
		}
	}
	return series
}

func WeeklySeries(txs []models.Transaction, now time.Time) []DailyPoint {
	return DailySeries(txs, now, SeriesDays)
}

type Distribution struct {
	Outgoing int
	Incoming int
}

// Distribute counts txs as outgoing (send, withdraw, cash-out) or incoming.
func Distribute(txs []models.Transaction) Distribution {
	var d Distribution
	for _, tx := range txs {
		if tx.Type.IsOutgoing() {
			d.Outgoing++
		} else {
			d.Incoming++
		}
	}
	return d
}

func Total(txs []models.Transaction) float64 {
	var sum float64
	for _, tx := range txs {
		sum += tx.Amount
	}
	return sum
}
