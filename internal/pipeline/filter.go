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
	"strconv"
	"strings"
	"time"
)

// Predicate reports whether an item passes one filter. A nil Predicate is
// inactive and matches everything.
type Predicate[T any] func(T) bool

// Filter keeps the items matching every active predicate. The input slice is
// never modified.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}

	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, p := range active {
			if !p(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// MatchSearch is a case-insensitive substring match over the fields returned
// by fields. An empty term is inactive.
func MatchSearch[T any](term string, fields func(T) []string) Predicate[T] {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil
	}
	return func(item T) bool {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), needle) {
				return true
			}
		}
		return false
	}
}

const All = "all"

// MatchCategory compares field against selected. "all" and "" are inactive.
func MatchCategory[T any](selected string, field func(T) string) Predicate[T] {
	if selected == "" || selected == All {
		return nil
	}
	return func(item T) bool {
		return field(item) == selected
	}
}

// AmountRange bounds a numeric field. A nil bound is open.
type AmountRange struct {
	Min *float64
	Max *float64
}

// ParseAmountRange reads user-entered bounds. Empty or unparsable input
// leaves that side unbounded.
func ParseAmountRange(min, max string) AmountRange {
	return AmountRange{Min: parseBound(min), Max: parseBound(max)}
}

func parseBound(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (r AmountRange) Active() bool {
	return r.Min != nil || r.Max != nil
}

func (r AmountRange) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

func MatchRange[T any](r AmountRange, amount func(T) float64) Predicate[T] {
	if !r.Active() {
		return nil
	}
	return func(item T) bool {
		return r.Contains(amount(item))
	}
}

// MatchSince keeps items stamped at or after since. A zero since is inactive.
func MatchSince[T any](since time.Time, stamp func(T) time.Time) Predicate[T] {
	if since.IsZero() {
		return nil
	}
	return func(item T) bool {
		return !stamp(item).Before(since)
	}
}
