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
	"fmt"
	"strings"
	"time"
)

type DateRange string

const (
	RangeAll    DateRange = "all"
	RangeDay    DateRange = "1"
	RangeWeek7  DateRange = "7"
	RangeDays30 DateRange = "30"
	RangeDays90 DateRange = "90"
	RangeToday  DateRange = "today"
	RangeWeek   DateRange = "week"
	RangeMonth  DateRange = "month"

	DefaultDateRange = RangeWeek7
)

var errUnknownRange = fmt.Errorf("date range must be one of %s, %s, %s, %s, %s, %s, %s or %s",
	RangeAll, RangeDay, RangeWeek7, RangeDays30, RangeDays90, RangeToday, RangeWeek, RangeMonth)

func ParseDateRange(s string) (DateRange, error) {
	r := DateRange(strings.ToLower(strings.TrimSpace(s)))
	if r == "" {
		return RangeAll, nil
	}
	switch r {
	case RangeAll, RangeDay, RangeWeek7, RangeDays30, RangeDays90, RangeToday, RangeWeek, RangeMonth:
		return r, nil
	}
	return "", fmt.Errorf("invalid date range %q: %w", s, errUnknownRange)
}

// Since returns the inclusive lower bound of the range relative to now. The
// trailing day ranges keep now's time of day; the calendar buckets start at
// local midnight.
func (r DateRange) Since(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch r {
	case RangeDay:
		return now.Add(-24 * time.Hour)
	case RangeWeek7:
		return now.AddDate(0, 0, -7)
	case RangeDays30:
		return now.AddDate(0, 0, -30)
	case RangeDays90:
		return now.AddDate(0, 0, -90)
	case RangeToday:
		return midnight
	case RangeWeek:
		return midnight.AddDate(0, 0, -7)
	case RangeMonth:
		return midnight.AddDate(0, 0, -30)
	}
	return time.Time{}
}
