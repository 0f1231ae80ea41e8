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

const DefaultPageSize = 10

// Page is one slice of a filtered list. Page is 1-indexed.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalPages int
	TotalItems int
}

func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

func (p Page[T]) HasPrev() bool {
	return p.Page > 1
}

// Paginate slices items to page. Pages below 1 are clamped to 1; pages past
// the end are empty.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	result := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
		TotalItems: total,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return result
	}
	end := min(start+pageSize, total)
	result.Items = items[start:end:end]
	return result
}

// Criteria is the view-local filter state of one list.
type Criteria struct {
	Search    string
	Category  string
	Status    string
	DateRange DateRange
	MinAmount string
	MaxAmount string
}

// ListState tracks criteria and the current page. Changing the criteria
// returns to the first page.
type ListState struct {
	criteria Criteria
	page     int
	pageSize int
}

func NewListState(pageSize int) *ListState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ListState{page: 1, pageSize: pageSize}
}

func (s *ListState) Criteria() Criteria {
	return s.criteria
}

func (s *ListState) SetCriteria(c Criteria) {
	if c == s.criteria {
		return
	}
	s.criteria = c
	s.page = 1
}

func (s *ListState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.page = page
}

func (s *ListState) Page() int {
	return s.page
}

func (s *ListState) PageSize() int {
	return s.pageSize
}
