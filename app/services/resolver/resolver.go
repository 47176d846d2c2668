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

package resolver

import (
	"context"
	"time"

	"github.com/mtahon/arbor-backend/app/config"
	"github.com/mtahon/arbor-backend/app/domain/types"
	hErrors "github.com/mtahon/arbor-backend/app/errors"
	"github.com/mtahon/arbor-backend/app/interfaces"
	"github.com/mtahon/arbor-backend/app/tools"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type resolver struct {
	client  interfaces.ChainClient
	config  config.Resolver
	fetcher interfaces.DocumentFetcher
	now     func() time.Time
	trust   interfaces.TrustEvaluator
}

// NewResolver returns a resolver bound to one connected client, it must not outlive the connection
func NewResolver(
	client interfaces.ChainClient,
	fetcher interfaces.DocumentFetcher,
	trust interfaces.TrustEvaluator,
	config config.Resolver,
) interfaces.OrganizationResolver {
	return &resolver{
		client:  client,
		config:  config,
		fetcher: fetcher,
		now:     time.Now,
		trust:   trust,
	}
}

func (r *resolver) Resolve(ctx context.Context, orgId types.OrgId) (*types.Organization, error) {
	return r.resolve(ctx, orgId, make(map[types.OrgId]bool), 0)
}

// resolve builds the organization at the given depth of a parent chain. visited holds the ids already on the chain
func (r *resolver) resolve(
	ctx context.Context,
	orgId types.OrgId,
	visited map[types.OrgId]bool,
	depth int,
) (*types.Organization, error) {
	record, err := r.lookup(ctx, orgId)
	if err != nil {
		return nil, err
	}

	document, err := r.fetcher.FetchAndVerify(ctx, record.OrgJsonUri, record.OrgJsonHash)
	if err != nil {
		return nil, err
	}

	checkedAt := r.now().UTC()
	org := &types.Organization{
		OrgId:             orgId,
		Owner:             record.Owner,
		Director:          record.Director,
		DirectorConfirmed: record.DirectorConfirmed,
		State:             record.State(),
		ParentEntity:      record.ParentEntity,
		Subsidiaries:      []types.OrgId{},
		Kind:              document.Kind(),
		Directory:         document.Directory(),
		Name:              document.Name(),
		Country:           document.Country(),
		Logo:              document.Logo(),
		Contact:           document.PrimaryContact(),
		Deposit:           record.Deposit,
		OrgJsonUri:        record.OrgJsonUri,
		OrgJsonHash:       record.OrgJsonHash,
		Document:          document,
		JsonCheckedAt:     checkedAt,
		JsonUpdatedAt:     checkedAt,
	}

	visited[orgId] = true
	if org.IsRoot() {
		subsidiaries, err := r.client.GetSubsidiaries(ctx, orgId)
		if err != nil {
			return nil, err
		}
		org.Subsidiaries = append(org.Subsidiaries, subsidiaries...)
	} else {
		org.Parent = r.resolveParent(ctx, org, visited, depth)
	}

	org.SetProofs(r.trust.Evaluate(ctx, org))
	log.Debugf("Resolved %s %q with %d proofs", orgId, org.Name, org.ProofsQty)
	return org, nil
}

// resolveParent returns the parent summary, nil when the chain loops, is too deep or the parent fails to resolve
func (r *resolver) resolveParent(
	ctx context.Context,
	org *types.Organization,
	visited map[types.OrgId]bool,
	depth int,
) *types.ParentSummary {
	if visited[org.ParentEntity] {
		log.Warnf("Parent chain of %s loops back to %s", org.OrgId, org.ParentEntity)
		return nil
	}

	if depth >= r.config.MaxDepth {
		log.Warnf("Parent chain of %s is deeper than %d", org.OrgId, r.config.MaxDepth)
		return nil
	}

	parent, err := r.resolve(ctx, org.ParentEntity, visited, depth+1)
	if err != nil {
		log.Warn(errors.Wrapf(hErrors.ErrParentResolutionFailed, "parent %s of %s: %s", org.ParentEntity,
			org.OrgId, err))
		return nil
	}

	return parent.Summary()
}

// lookup reads the on-chain record, retrying while the registry does not know the id yet. Other errors abort
func (r *resolver) lookup(ctx context.Context, orgId types.OrgId) (*types.RegistryRecord, error) {
	var record *types.RegistryRecord
	err := tools.Retry(ctx, r.config.LookupAttempts, r.config.LookupDelay, isNotFound, func() error {
		found, err := r.client.GetOrganization(ctx, orgId)
		if err != nil {
			return err
		}

		if !found.Exists {
			return hErrors.AddErrorDetails(hErrors.ErrNotFound, "orgid", orgId.Hex())
		}

		record = found
		return nil
	})

	return record, err
}

func isNotFound(err error) bool {
	return errors.Is(err, hErrors.ErrNotFound)
}
