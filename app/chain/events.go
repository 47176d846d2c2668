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
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/mtahon/arbor-backend/app/domain/types"
	"github.com/pkg/errors"
)

const (
	argOrgId       = "orgId"
	argParentOrgId = "parentOrgId"
	argSubOrgId    = "subOrgId"
)

// decodeLog turns a registry log into an event. Logs with a signature the registry ABI does not know decode to an
// EventKindUnknown event
func decodeLog(contract *bind.BoundContract, log ethTypes.Log) (types.Event, error) {
	event := types.Event{
		Kind:        types.EventKindUnknown,
		BlockNumber: log.BlockNumber,
		TxHash:      log.TxHash,
		LogIndex:    log.Index,
	}

	if len(log.Topics) == 0 {
		return event, errors.Errorf("Log %s:%d has no event signature", log.TxHash, log.Index)
	}

	abiEvent, err := registryAbi.EventByID(log.Topics[0])
	if err != nil {
		return event, nil
	}

	event.Name = abiEvent.Name
	event.Kind = types.EventKindFromName(abiEvent.Name)

	values := make(map[string]interface{})
	if err := contract.UnpackLogIntoMap(values, abiEvent.Name, log); err != nil {
		return event, errors.Wrapf(err, "Failed to unpack %s log %s:%d", abiEvent.Name, log.TxHash, log.Index)
	}

	event.OrgId = orgIdArg(values, argOrgId)
	event.ParentOrgId = orgIdArg(values, argParentOrgId)
	event.SubOrgId = orgIdArg(values, argSubOrgId)

	return event, nil
}

func orgIdArg(values map[string]interface{}, name string) types.OrgId {
	if value, ok := values[name].([32]byte); ok {
		return types.OrgId(value)
	}

	return types.ZeroOrgId
}
