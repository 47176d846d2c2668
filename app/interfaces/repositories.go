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

package interfaces

import (
	"context"

	"github.com/mtahon/arbor-backend/app/domain/types"
)

// CheckpointRepository Interface that all CheckpointRepository structs must implement
type CheckpointRepository interface {

	// Get returns the last processed block number, 0 when nothing has been processed yet
	Get(ctx context.Context) (uint64, error)

	// Set stores the block number unless a higher one is already stored
	Set(ctx context.Context, blockNumber uint64) error
}

// OrganizationRepository Interface that all OrganizationRepository structs must implement
type OrganizationRepository interface {

	// Upsert replaces the stored record of the organization with the given one
	Upsert(ctx context.Context, org *types.Organization) error

	// FindById returns the stored record or ErrOrganizationNotFound
	FindById(ctx context.Context, orgId types.OrgId) (*types.Organization, error)

	// List returns one page of records matching the query and the total number of matches
	List(ctx context.Context, query types.OrganizationQuery) ([]*types.Organization, int64, error)
}
