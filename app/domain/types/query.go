/*
 * Copyright (C) 2019-2025 Hedera Hashgraph, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import "github.com/ethereum/go-ethereum/common"

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

type SortField struct {
	Field      string
	Descending bool
}

// OrganizationQuery selects a page of directory records. Empty filters match everything
type OrganizationQuery struct {
	Name        string
	Kind        OrganizationKind
	Directory   string
	Country     string
	Owner       *common.Address
	ParentOrgId string
	PageNumber  int
	PageSize    int
	Sort        []SortField
}

// Normalize clamps paging to sane bounds, page numbers start at 1
func (q OrganizationQuery) Normalize() OrganizationQuery {
	if q.PageNumber < 1 {
		q.PageNumber = 1
	}

	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	} else if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	return q
}

func (q OrganizationQuery) Offset() int {
	return (q.PageNumber - 1) * q.PageSize
}
