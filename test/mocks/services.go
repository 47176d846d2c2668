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

package mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mtahon/arbor-backend/app/domain/types"
	"github.com/stretchr/testify/mock"
)

type MockDocumentFetcher struct {
	mock.Mock
}

func (m *MockDocumentFetcher) FetchAndVerify(ctx context.Context, uri string, hash common.Hash) (
	*types.Document,
	error,
) {
	args := m.Called(ctx, uri, hash)
	document, _ := args.Get(0).(*types.Document)
	return document, args.Error(1)
}

type MockTrustEvaluator struct {
	mock.Mock
}

func (m *MockTrustEvaluator) Evaluate(ctx context.Context, organization *types.Organization) types.Proofs {
	args := m.Called(ctx, organization)
	return args.Get(0).(types.Proofs)
}

type MockOrganizationResolver struct {
	mock.Mock
}

func (m *MockOrganizationResolver) Resolve(ctx context.Context, orgId types.OrgId) (*types.Organization, error) {
	args := m.Called(ctx, orgId)
	organization, _ := args.Get(0).(*types.Organization)
	return organization, args.Error(1)
}

type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) RefreshOne(ctx context.Context, orgId types.OrgId) (*types.Organization, error) {
	args := m.Called(ctx, orgId)
	organization, _ := args.Get(0).(*types.Organization)
	return organization, args.Error(1)
}

type MockConnectionStats struct {
	mock.Mock
}

func (m *MockConnectionStats) IsConnected() bool {
	return m.Called().Bool(0)
}

func (m *MockConnectionStats) IsReconnection() bool {
	return m.Called().Bool(0)
}

func (m *MockConnectionStats) Reconnects() uint64 {
	return m.Called().Get(0).(uint64)
}
