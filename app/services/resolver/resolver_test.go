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
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mtahon/arbor-backend/app/config"
	"github.com/mtahon/arbor-backend/app/domain/types"
	hErrors "github.com/mtahon/arbor-backend/app/errors"
	tdomain "github.com/mtahon/arbor-backend/test/domain"
	"github.com/mtahon/arbor-backend/test/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var (
	resolverConfig = config.Resolver{LookupAttempts: 3, MaxDepth: 8}
	fixedNow       = time.Date(2021, time.May, 4, 12, 0, 0, 0, time.UTC)
	proofs         = types.Proofs{Deposit: true, Website: true, Ssl: true}

	rootId  = tdomain.OrgId(1)
	childId = tdomain.OrgId(2)
	grandId = tdomain.OrgId(3)
	subIds  = []types.OrgId{tdomain.OrgId(11), tdomain.OrgId(12)}
)

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(resolverSuite))
}

type resolverSuite struct {
	suite.Suite
	client   *mocks.MockChainClient
	fetcher  *mocks.MockDocumentFetcher
	resolver *resolver
	trust    *mocks.MockTrustEvaluator
}

func (suite *resolverSuite) SetupTest() {
	suite.client = &mocks.MockChainClient{}
	suite.fetcher = &mocks.MockDocumentFetcher{}
	suite.trust = &mocks.MockTrustEvaluator{}
	suite.trust.On("Evaluate", mock.Anything, mock.Anything).Return(proofs)
	suite.resolver = NewResolver(suite.client, suite.fetcher, suite.trust, resolverConfig).(*resolver)
	suite.resolver.now = func() time.Time { return fixedNow }
}

func record(orgId, parent types.OrgId) *types.RegistryRecord {
	return &types.RegistryRecord{
		Exists:            true,
		OrgId:             orgId,
		OrgJsonUri:        fmt.Sprintf("https://example.com/%s.json", orgId.Hex()),
		OrgJsonHash:       crypto.Keccak256Hash(orgId.Hash().Bytes()),
		ParentEntity:      parent,
		Owner:             tdomain.DefaultOwner,
		Director:          tdomain.DefaultDirector,
		IsActive:          true,
		DirectorConfirmed: true,
		Deposit:           big.NewInt(100),
	}
}

// registered mocks the chain record and document of the organization
func (suite *resolverSuite) registered(orgId, parent types.OrgId, raw []byte) *types.RegistryRecord {
	onChain := record(orgId, parent)
	suite.client.On("GetOrganization", mock.Anything, orgId).Return(onChain, nil)

	document, err := types.ParseDocument(raw)
	suite.Require().NoError(err)
	suite.fetcher.On("FetchAndVerify", mock.Anything, onChain.OrgJsonUri, onChain.OrgJsonHash).Return(document, nil)
	return onChain
}

func (suite *resolverSuite) TestResolveRoot() {
	// given
	raw := tdomain.LegalEntityJson(rootId, "Acme", "https://acme.example.com")
	onChain := suite.registered(rootId, types.ZeroOrgId, raw)
	suite.client.On("GetSubsidiaries", mock.Anything, rootId).Return(subIds, nil)

	// when
	actual, err := suite.resolver.Resolve(context.Background(), rootId)

	// then
	suite.Require().NoError(err)
	suite.Equal(rootId, actual.OrgId)
	suite.Equal(tdomain.DefaultOwner, actual.Owner)
	suite.Equal(tdomain.DefaultDirector, actual.Director)
	suite.Equal(types.StateActive, actual.State)
	suite.Equal(types.KindLegalEntity, actual.Kind)
	suite.Equal(string(types.KindLegalEntity), actual.Directory)
	suite.Equal("Acme", actual.Name)
	suite.Equal("CH", actual.Country)
	suite.Equal("https://acme.example.com", actual.Contact.Website)
	suite.Equal(onChain.OrgJsonUri, actual.OrgJsonUri)
	suite.Equal(onChain.OrgJsonHash, actual.OrgJsonHash)
	suite.Equal(big.NewInt(100), actual.Deposit)
	suite.Equal(subIds, actual.Subsidiaries)
	suite.Nil(actual.Parent)
	suite.Equal(raw, actual.Document.Raw)
	suite.Equal(fixedNow, actual.JsonCheckedAt)
	suite.Equal(3, actual.ProofsQty)
	suite.True(actual.Proofs.Ssl)
}

func (suite *resolverSuite) TestResolveChildWithParentSummary() {
	// given
	suite.registered(rootId, types.ZeroOrgId, tdomain.LegalEntityJson(rootId, "Acme", ""))
	suite.client.On("GetSubsidiaries", mock.Anything, rootId).Return([]types.OrgId{childId}, nil)
	suite.registered(childId, rootId, tdomain.UnitJson(childId, "Acme Hotel", `["hotel"]`))

	// when
	actual, err := suite.resolver.Resolve(context.Background(), childId)

	// then
	suite.Require().NoError(err)
	suite.Equal(types.KindOrganizationalUnit, actual.Kind)
	suite.Equal("hotel", actual.Directory)
	suite.Equal(&types.ParentSummary{OrgId: rootId, Name: "Acme", ProofsQty: 3}, actual.Parent)
	suite.Empty(actual.Subsidiaries)
	suite.NotNil(actual.Subsidiaries)
	suite.client.AssertNotCalled(suite.T(), "GetSubsidiaries", mock.Anything, childId)
}

func (suite *resolverSuite) TestResolveParentFailureKeepsChild() {
	// given
	suite.client.On("GetOrganization", mock.Anything, rootId).Return(nil, hErrors.ErrTransientChainUnavailable)
	suite.registered(childId, rootId, tdomain.UnitJson(childId, "Acme Hotel", `"hotel"`))

	// when
	actual, err := suite.resolver.Resolve(context.Background(), childId)

	// then
	suite.Require().NoError(err)
	suite.Nil(actual.Parent)
	suite.Equal(rootId, actual.ParentEntity)
}

func (suite *resolverSuite) TestResolveCycleTerminates() {
	// given
	suite.registered(childId, grandId, tdomain.UnitJson(childId, "B", `"hotel"`))
	suite.registered(grandId, childId, tdomain.UnitJson(grandId, "C", `"hotel"`))

	// when
	actual, err := suite.resolver.Resolve(context.Background(), childId)

	// then
	suite.Require().NoError(err)
	suite.Equal(grandId, actual.Parent.OrgId)
	suite.client.AssertNumberOfCalls(suite.T(), "GetOrganization", 2)
}

func (suite *resolverSuite) TestResolveDepthCap() {
	// given
	suite.resolver.config.MaxDepth = 1
	suite.registered(grandId, childId, tdomain.UnitJson(grandId, "C", `"hotel"`))
	suite.registered(childId, rootId, tdomain.UnitJson(childId, "B", `"hotel"`))

	// when
	actual, err := suite.resolver.Resolve(context.Background(), grandId)

	// then
	suite.Require().NoError(err)
	suite.Equal(childId, actual.Parent.OrgId)
	suite.client.AssertNotCalled(suite.T(), "GetOrganization", mock.Anything, rootId)
}

func (suite *resolverSuite) TestResolveRetriesUntilRegistered() {
	// given
	missing := &types.RegistryRecord{Deposit: big.NewInt(0)}
	suite.client.On("GetOrganization", mock.Anything, rootId).Return(missing, nil).Twice()
	suite.registered(rootId, types.ZeroOrgId, tdomain.LegalEntityJson(rootId, "Acme", ""))
	suite.client.On("GetSubsidiaries", mock.Anything, rootId).Return([]types.OrgId{}, nil)

	// when
	actual, err := suite.resolver.Resolve(context.Background(), rootId)

	// then
	suite.Require().NoError(err)
	suite.Equal("Acme", actual.Name)
	suite.client.AssertNumberOfCalls(suite.T(), "GetOrganization", 3)
}

func (suite *resolverSuite) TestResolveNotFound() {
	// given
	missing := &types.RegistryRecord{Deposit: big.NewInt(0)}
	suite.client.On("GetOrganization", mock.Anything, rootId).Return(missing, nil)

	// when
	actual, err := suite.resolver.Resolve(context.Background(), rootId)

	// then
	suite.Nil(actual)
	suite.ErrorIs(err, hErrors.ErrNotFound)
	suite.client.AssertNumberOfCalls(suite.T(), "GetOrganization", resolverConfig.LookupAttempts)
}

func (suite *resolverSuite) TestResolveChainErrorNotRetried() {
	// given
	suite.client.On("GetOrganization", mock.Anything, rootId).
		Return(nil, errors.Wrap(hErrors.ErrTransientChainUnavailable, "EOF"))

	// when
	actual, err := suite.resolver.Resolve(context.Background(), rootId)

	// then
	suite.Nil(actual)
	suite.ErrorIs(err, hErrors.ErrTransientChainUnavailable)
	suite.client.AssertNumberOfCalls(suite.T(), "GetOrganization", 1)
}

func (suite *resolverSuite) TestResolveDocumentUnverifiable() {
	// given
	onChain := record(rootId, types.ZeroOrgId)
	suite.client.On("GetOrganization", mock.Anything, rootId).Return(onChain, nil)
	suite.fetcher.On("FetchAndVerify", mock.Anything, onChain.OrgJsonUri, onChain.OrgJsonHash).
		Return(nil, errors.Wrap(hErrors.ErrDocumentUnverifiable, "hash mismatch"))

	// when
	actual, err := suite.resolver.Resolve(context.Background(), rootId)

	// then
	suite.Nil(actual)
	suite.ErrorIs(err, hErrors.ErrDocumentUnverifiable)
	suite.trust.AssertNotCalled(suite.T(), "Evaluate", mock.Anything, mock.Anything)
}

func (suite *resolverSuite) TestResolveSuspendedUnknownKind() {
	// given
	onChain := suite.registered(rootId, types.ZeroOrgId, []byte(`{"id":"did:orgid:1"}`))
	onChain.IsActive = false
	suite.client.On("GetSubsidiaries", mock.Anything, rootId).Return([]types.OrgId{}, nil)

	// when
	actual, err := suite.resolver.Resolve(context.Background(), rootId)

	// then
	suite.Require().NoError(err)
	suite.Equal(types.StateSuspended, actual.State)
	suite.Equal(types.KindUnknown, actual.Kind)
	suite.Equal(types.DirectoryUnknown, actual.Directory)
	suite.Equal(types.NameNotDefined, actual.Name)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(hErrors.AddErrorDetails(hErrors.ErrNotFound, "orgid", common.Hash{}.Hex())))
	assert.False(t, isNotFound(hErrors.ErrTransientChainUnavailable))
}
