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

	"github.com/ethereum/go-ethereum/common"
	"github.com/mtahon/arbor-backend/app/domain/types"
)

// DocumentFetcher retrieves an ORG.JSON document and verifies it against the on-chain hash
type DocumentFetcher interface {
	FetchAndVerify(ctx context.Context, uri string, hash common.Hash) (*types.Document, error)
}

// TrustEvaluator computes every trust proof of a resolved organization. Checks never fail, an unverifiable proof is
// false
type TrustEvaluator interface {
	Evaluate(ctx context.Context, org *types.Organization) types.Proofs
}

// OrganizationResolver builds the full directory record of an organization using one connected client
type OrganizationResolver interface {
	Resolve(ctx context.Context, orgId types.OrgId) (*types.Organization, error)
}

// Refresher resolves and stores a single organization on demand
type Refresher interface {
	RefreshOne(ctx context.Context, orgId types.OrgId) (*types.Organization, error)
}

// ConnectionStats exposes the state of the chain connection
type ConnectionStats interface {
	IsConnected() bool
	IsReconnection() bool
	Reconnects() uint64
}
