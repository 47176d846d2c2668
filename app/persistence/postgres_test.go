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

package persistence

import (
	"context"
	"math/big"
	"testing"

	"github.com/mtahon/arbor-backend/app/domain/types"
	hErrors "github.com/mtahon/arbor-backend/app/errors"
	"github.com/mtahon/arbor-backend/test"
	tdomain "github.com/mtahon/arbor-backend/test/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// run the suite
func TestPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres suite in short mode")
	}

	suite.Run(t, new(postgresSuite))
}

type postgresSuite struct {
	test.IntegrationTest
	suite.Suite
}

func (suite *postgresSuite) SetupSuite() {
	suite.Setup()
}

func (suite *postgresSuite) TearDownSuite() {
	suite.TearDown()
}

func (suite *postgresSuite) SetupTest() {
	suite.CleanupDb()
}

func (suite *postgresSuite) TestCheckpointNeverRegresses() {
	// given
	repo := NewCheckpointRepository(suite.DbClient)
	ctx := context.Background()

	// when
	initial, err := repo.Get(ctx)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), repo.Set(ctx, 100))
	require.NoError(suite.T(), repo.Set(ctx, 90))
	actual, err := repo.Get(ctx)

	// then
	assert.NoError(suite.T(), err)
	assert.Zero(suite.T(), initial)
	assert.Equal(suite.T(), uint64(100), actual)

	require.NoError(suite.T(), repo.Set(ctx, 120))
	actual, _ = repo.Get(ctx)
	assert.Equal(suite.T(), uint64(120), actual)
}

func (suite *postgresSuite) TestOrganizationUpsertReplacesRecord() {
	// given
	repo := NewOrganizationRepository(suite.DbClient)
	ctx := context.Background()
	orgId := tdomain.OrgId(1)
	first := tdomain.NewOrganizationBuilder(suite.DbClient, orgId).
		Document(tdomain.LegalEntityJson(orgId, "Acme", "https://acme.example.com")).
		Proofs(types.Proofs{Website: true, Ssl: true}).
		Subsidiaries(tdomain.OrgId(2)).
		Persist()
	second := tdomain.NewOrganizationBuilder(nil, orgId).
		Document(tdomain.LegalEntityJson(orgId, "Acme Renamed", "https://acme.example.com")).
		Deposit(new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18))).
		Proofs(types.Proofs{Deposit: true}).
		Build()

	// when
	err := repo.Upsert(ctx, second)
	actual, findErr := repo.FindById(ctx, orgId)

	// then
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), findErr)
	assert.Equal(suite.T(), 2, first.ProofsQty)
	assert.Equal(suite.T(), "Acme Renamed", actual.Name)
	assert.Equal(suite.T(), 1, actual.ProofsQty)
	assert.False(suite.T(), actual.Proofs.Website)
	assert.Empty(suite.T(), actual.Subsidiaries)
	assert.Equal(suite.T(), second.Deposit.String(), actual.Deposit.String())
	assert.Equal(suite.T(), second.Document.Raw, actual.Document.Raw)
}

func (suite *postgresSuite) TestOrganizationList() {
	// given
	repo := NewOrganizationRepository(suite.DbClient)
	parent := tdomain.NewOrganizationBuilder(suite.DbClient, tdomain.OrgId(1)).
		Document(tdomain.LegalEntityJson(tdomain.OrgId(1), "Acme Holding", "https://acme.example.com")).
		Proofs(types.Proofs{Website: true}).
		Persist()
	tdomain.NewOrganizationBuilder(suite.DbClient, tdomain.OrgId(2)).
		Document(tdomain.UnitJson(tdomain.OrgId(2), "Acme Hotel", `["hotel"]`)).
		Parent(parent).
		Persist()
	tdomain.NewOrganizationBuilder(suite.DbClient, tdomain.OrgId(3)).
		Document(tdomain.UnitJson(tdomain.OrgId(3), "Other Airline", `["airline"]`)).
		Persist()

	tests := []struct {
		name     string
		query    types.OrganizationQuery
		expected []types.OrgId
	}{
		{name: "all", expected: []types.OrgId{tdomain.OrgId(1), tdomain.OrgId(2), tdomain.OrgId(3)}},
		{name: "by name", query: types.OrganizationQuery{Name: "acme"}, expected: []types.OrgId{tdomain.OrgId(1), tdomain.OrgId(2)}},
		{name: "by orgid", query: types.OrganizationQuery{Name: parent.OrgId.Hex()}, expected: []types.OrgId{tdomain.OrgId(1), tdomain.OrgId(2)}},
		{name: "by directory", query: types.OrganizationQuery{Directory: "airline"}, expected: []types.OrgId{tdomain.OrgId(3)}},
		{name: "by parent", query: types.OrganizationQuery{ParentOrgId: parent.OrgId.Hex()}, expected: []types.OrgId{tdomain.OrgId(2)}},
		{
			name:     "sorted by name desc",
			query:    types.OrganizationQuery{Sort: []types.SortField{{Field: "name", Descending: true}}},
			expected: []types.OrgId{tdomain.OrgId(3), tdomain.OrgId(2), tdomain.OrgId(1)},
		},
		{
			name:     "second page",
			query:    types.OrganizationQuery{PageNumber: 2, PageSize: 2, Sort: []types.SortField{{Field: "orgid"}}},
			expected: []types.OrgId{tdomain.OrgId(3)},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			actual, total, err := repo.List(context.Background(), tt.query)

			require.NoError(t, err)
			ids := make([]types.OrgId, 0, len(actual))
			for _, org := range actual {
				ids = append(ids, org.OrgId)
			}
			assert.Equal(t, tt.expected, ids)
			assert.GreaterOrEqual(t, total, int64(len(tt.expected)))
		})
	}
}

func (suite *postgresSuite) TestOrganizationFindByIdNotFound() {
	repo := NewOrganizationRepository(suite.DbClient)

	actual, err := repo.FindById(context.Background(), tdomain.OrgId(404))

	assert.ErrorIs(suite.T(), err, hErrors.ErrOrganizationNotFound)
	assert.Nil(suite.T(), actual)
}

func (suite *postgresSuite) TestDatabaseErrors() {
	ctx := context.Background()
	checkpoints := NewCheckpointRepository(suite.InvalidDbClient)
	organizations := NewOrganizationRepository(suite.InvalidDbClient)

	_, err := checkpoints.Get(ctx)
	assert.ErrorIs(suite.T(), err, hErrors.ErrDatabaseError)

	assert.ErrorIs(suite.T(), checkpoints.Set(ctx, 10), hErrors.ErrDatabaseError)

	_, err = organizations.FindById(ctx, tdomain.OrgId(1))
	assert.ErrorIs(suite.T(), err, hErrors.ErrDatabaseError)

	_, _, err = organizations.List(ctx, types.OrganizationQuery{})
	assert.ErrorIs(suite.T(), err, hErrors.ErrDatabaseError)
}
