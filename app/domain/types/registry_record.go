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

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
)

// RegistryRecord is the on-chain state of an organization as returned by the registry contract
type RegistryRecord struct {
	Exists            bool
	OrgId             OrgId
	OrgJsonUri        string
	OrgJsonHash       common.Hash
	ParentEntity      OrgId
	Owner             common.Address
	Director          common.Address
	IsActive          bool
	DirectorConfirmed bool
	Deposit           *big.Int
}

func (r *RegistryRecord) State() OrganizationState {
	if r.IsActive {
		return StateActive
	}

	return StateSuspended
}

// WeiToEther converts an amount in the token's smallest unit (18 decimals) to its display unit
func WeiToEther(wei *big.Int) *big.Float {
	if wei == nil {
		return new(big.Float)
	}

	return new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.Ether))
}
