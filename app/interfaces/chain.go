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

// ChainClient is a connected, read-only view of the registry contract. A client is bound to one connection and must
// not be used after Close
type ChainClient interface {

	// GetOrganization returns the on-chain record of the organization. A record with Exists false is returned when
	// the registry does not know the id
	GetOrganization(ctx context.Context, orgId types.OrgId) (*types.RegistryRecord, error)

	// GetSubsidiaries returns the ordered subsidiary ids of a root organization
	GetSubsidiaries(ctx context.Context, orgId types.OrgId) ([]types.OrgId, error)

	// GetOrganizations returns every organization id registered in the registry
	GetOrganizations(ctx context.Context) ([]types.OrgId, error)

	// CurrentBlockHeight returns the latest block number seen by the node
	CurrentBlockHeight(ctx context.Context) (uint64, error)

	// SubscribeEvents returns a fresh stream of registry events starting at fromBlock, past events first
	SubscribeEvents(ctx context.Context, fromBlock uint64) (EventStream, error)

	Close()
}

// EventStream delivers decoded registry events in block order. Err receives at most one error, after which the
// stream is finished
type EventStream interface {
	Events() <-chan types.Event
	Err() <-chan error
	Close()
}

// Dialer creates a new ChainClient for every connection attempt
type Dialer interface {
	Dial(ctx context.Context) (ChainClient, error)
}
