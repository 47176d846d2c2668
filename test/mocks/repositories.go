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

	"github.com/mtahon/arbor-backend/app/domain/types"
	"github.com/stretchr/testify/mock"
)

type MockCheckpointRepository struct {
	mock.Mock
}

func (m *MockCheckpointRepository) Get(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockCheckpointRepository) Set(ctx context.Context, blockNumber uint64) error {
	args := m.Called(ctx, blockNumber)
	return args.Error(0)
}

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Upsert(ctx context.Context, organization *types.Organization) error {
	args := m.Called(ctx, organization)
	return args.Error(0)
}

func (m *MockOrganizationRepository) FindById(ctx context.Context, orgId types.OrgId) (*types.Organization, error) {
	args := m.Called(ctx, orgId)
	organization, _ := args.Get(0).(*types.Organization)
	return organization, args.Error(1)
}

func (m *MockOrganizationRepository) List(ctx context.Context, query types.OrganizationQuery) (
	[]*types.Organization,
	int64,
	error,
) {
	args := m.Called(ctx, query)
	organizations, _ := args.Get(0).([]*types.Organization)
	return organizations, args.Get(1).(int64), args.Error(2)
}
