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

package chain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/mtahon/arbor-backend/app/domain/types"
	"github.com/stretchr/testify/assert"
)

func newTestContract() *bind.BoundContract {
	backend := newFakeBackend()
	return bind.NewBoundContract(registryAddress, registryAbi, backend, nil, backend)
}

func TestDecodeLog(t *testing.T) {
	subOrgId := types.OrgId(common.HexToHash("0xc4"))

	tests := []struct {
		name     string
		log      ethTypes.Log
		expected types.Event
	}{
		{
			name: "OrganizationCreated",
			log: registryLog(t, "OrganizationCreated", 10, 1,
				[]common.Hash{defaultOrgId.Hash(), addressTopic(defaultOwner)}),
			expected: types.Event{Kind: types.EventKindOrganizationCreated, OrgId: defaultOrgId},
		},
		{
			name: "SubsidiaryCreated",
			log: registryLog(t, "SubsidiaryCreated", 10, 1,
				[]common.Hash{defaultParentId.Hash(), subOrgId.Hash(), addressTopic(defaultDirector)}),
			expected: types.Event{
				Kind:        types.EventKindSubsidiaryCreated,
				ParentOrgId: defaultParentId,
				SubOrgId:    subOrgId,
			},
		},
		{
			name: "OrgJsonUriChanged",
			log: registryLog(t, "OrgJsonUriChanged", 10, 1, []common.Hash{defaultOrgId.Hash()},
				"https://old.example.com/org.json", "https://new.example.com/org.json"),
			expected: types.Event{Kind: types.EventKindOrgJsonUriChanged, OrgId: defaultOrgId},
		},
		{
			name: "LifDepositAdded",
			log: registryLog(t, "LifDepositAdded", 10, 1,
				[]common.Hash{defaultOrgId.Hash(), addressTopic(defaultOwner)}, big.NewInt(1000)),
			expected: types.Event{Kind: types.EventKindLifDepositAdded, OrgId: defaultOrgId},
		},
		{
			name:     "WithdrawDelayChanged",
			log:      registryLog(t, "WithdrawDelayChanged", 10, 1, nil, big.NewInt(1), big.NewInt(2)),
			expected: types.Event{Kind: types.EventKindWithdrawDelayChanged},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := tt.expected
			expected.Name = tt.name
			expected.BlockNumber = tt.log.BlockNumber
			expected.TxHash = tt.log.TxHash
			expected.LogIndex = tt.log.Index

			actual, err := decodeLog(newTestContract(), tt.log)

			assert.NoError(t, err)
			assert.Equal(t, expected, actual)
		})
	}
}

func TestDecodeLogUnknownSignature(t *testing.T) {
	log := ethTypes.Log{
		Topics:      []common.Hash{common.HexToHash("0xdead")},
		BlockNumber: 7,
	}

	actual, err := decodeLog(newTestContract(), log)

	assert.NoError(t, err)
	assert.Equal(t, types.EventKindUnknown, actual.Kind)
	assert.Equal(t, uint64(7), actual.BlockNumber)
}

func TestDecodeLogNoTopics(t *testing.T) {
	_, err := decodeLog(newTestContract(), ethTypes.Log{})

	assert.Error(t, err)
}

func TestDecodeLogMalformedData(t *testing.T) {
	log := registryLog(t, "OrgJsonUriChanged", 10, 1, []common.Hash{defaultOrgId.Hash()}, "a", "b")
	log.Data = log.Data[:10]

	actual, err := decodeLog(newTestContract(), log)

	assert.Error(t, err)
	assert.Equal(t, types.EventKindOrgJsonUriChanged, actual.Kind)
}
