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
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	methodGetLifDepositValue = "getLifDepositValue"
	methodGetOrganization    = "getOrganization"
	methodGetOrganizations   = "getOrganizations"
	methodGetSubsidiaries    = "getSubsidiaries"
)

// RegistryABI is the read-only and event surface of the ORG.ID registry contract
const RegistryABI = `[
  {"type":"function","name":"getOrganization","stateMutability":"view",
   "inputs":[{"name":"_orgId","type":"bytes32"}],
   "outputs":[
     {"name":"exists","type":"bool"},
     {"name":"orgId","type":"bytes32"},
     {"name":"orgJsonUri","type":"string"},
     {"name":"orgJsonHash","type":"bytes32"},
     {"name":"parentEntity","type":"bytes32"},
     {"name":"owner","type":"address"},
     {"name":"director","type":"address"},
     {"name":"isActive","type":"bool"},
     {"name":"isDirectorshipAccepted","type":"bool"}]},
  {"type":"function","name":"getSubsidiaries","stateMutability":"view",
   "inputs":[{"name":"_orgId","type":"bytes32"}],
   "outputs":[{"name":"","type":"bytes32[]"}]},
  {"type":"function","name":"getOrganizations","stateMutability":"view",
   "inputs":[],
   "outputs":[{"name":"","type":"bytes32[]"}]},
  {"type":"function","name":"getLifDepositValue","stateMutability":"view",
   "inputs":[{"name":"_orgId","type":"bytes32"}],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"event","name":"OrganizationCreated","anonymous":false,
   "inputs":[
     {"indexed":true,"name":"orgId","type":"bytes32"},
     {"indexed":true,"name":"owner","type":"address"}]},
  {"type":"event","name":"SubsidiaryCreated","anonymous":false,
   "inputs":[
     {"indexed":true,"name":"parentOrgId","type":"bytes32"},
     {"indexed":true,"name":"subOrgId","type":"bytes32"},
     {"indexed":true,"name":"director","type":"address"}]},
  {"type":"event","name":"OrganizationOwnershipTransferred","anonymous":false,
   "inputs":[
     {"indexed":true,"name":"orgId","type":"bytes32"},
     {"indexed":true,"name":"previousOwner","type":"address"},
     {"indexed":true,"name":"newOwner","type":"address"}]},
  {"type":"event","name":"OrgJsonUriChanged","anonymous":false,
   "inputs":[
     {"indexed":true,"name":"orgId","type":"bytes32"},
     {"indexed":false,"name":"previousOrgJsonUri","type":"string"},
     {"indexed":false,"name":"newOrgJsonUri","type":"string"}]},
  {"type":"event","name":"OrgJsonHashChanged","anonymous":false,
   "inputs":[
     {"indexed":true,"name":"orgId","type":"bytes32"},
     {"indexed":true,"name":"previousOrgJsonHash","type":"bytes32"},
     {"indexed":true,"name":"newOrgJsonHash","type":"bytes32"}]},
  {"type":"event","name":"LifDepositAdded","anonymous":false,
   "inputs":[
     {"indexed":true,"name":"orgId","type":"bytes32"},
     {"indexed":true,"name":"sender","type":"address"},
     {"indexed":false,"name":"value","type":"uint256"}]},
  {"type":"event","name":"WithdrawalRequested","anonymous":false,
   "inputs":[
     {"indexed":true,"name":"orgId","type":"bytes32"},
     {"indexed":true,"name":"sender","type":"address"},
     {"indexed":false,"name":"value","type":"uint256"},
     {"indexed":false,"name":"withdrawTime","type":"uint256"}]},
  {"type":"event","name":"DepositWithdrawn","anonymous":false,
   "inputs":[
     {"indexed":true,"name":"orgId","type":"bytes32"},
     {"indexed":true,"name":"sender","type":"address"},
     {"indexed":false,"name":"value","type":"uint256"}]},
  {"type":"event","name":"WithdrawDelayChanged","anonymous":false,
   "inputs":[
     {"indexed":false,"name":"previousWithdrawDelay","type":"uint256"},
     {"indexed":false,"name":"newWithdrawDelay","type":"uint256"}]}
]`

var registryAbi = mustParseAbi(RegistryABI)

func mustParseAbi(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(err)
	}

	return parsed
}
