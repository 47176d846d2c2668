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
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// EventKind enumerates the registry events the pipeline knows about
type EventKind int

const (
	EventKindUnknown EventKind = iota
	EventKindOrganizationCreated
	EventKindOrganizationOwnershipTransferred
	EventKindOrgJsonUriChanged
	EventKindOrgJsonHashChanged
	EventKindLifDepositAdded
	EventKindWithdrawalRequested
	EventKindDepositWithdrawn
	EventKindSubsidiaryCreated
	EventKindWithdrawDelayChanged
)

var eventKindNames = map[EventKind]string{
	EventKindOrganizationCreated:              "OrganizationCreated",
	EventKindOrganizationOwnershipTransferred: "OrganizationOwnershipTransferred",
	EventKindOrgJsonUriChanged:                "OrgJsonUriChanged",
	EventKindOrgJsonHashChanged:               "OrgJsonHashChanged",
	EventKindLifDepositAdded:                  "LifDepositAdded",
	EventKindWithdrawalRequested:              "WithdrawalRequested",
	EventKindDepositWithdrawn:                 "DepositWithdrawn",
	EventKindSubsidiaryCreated:                "SubsidiaryCreated",
	EventKindWithdrawDelayChanged:             "WithdrawDelayChanged",
}

var eventKindsByName = func() map[string]EventKind {
	byName := make(map[string]EventKind, len(eventKindNames))
	for kind, name := range eventKindNames {
		byName[name] = kind
	}
	return byName
}()

// EventKindFromName maps a registry event name to its kind, EventKindUnknown for anything not in the catalogue
func EventKindFromName(name string) EventKind {
	if kind, ok := eventKindsByName[name]; ok {
		return kind
	}

	return EventKindUnknown
}

// KnownEventNames returns the sorted names of all known event kinds
func KnownEventNames() []string {
	names := maps.Values(eventKindNames)
	slices.Sort(names)
	return names
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}

	return "Unknown"
}

// Event is a decoded registry log
type Event struct {
	Kind        EventKind
	Name        string
	BlockNumber uint64
	TxHash      common.Hash
	LogIndex    uint
	// OrgId is set for all organization scoped events
	OrgId OrgId
	// ParentOrgId and SubOrgId are set for EventKindSubsidiaryCreated
	ParentOrgId OrgId
	SubOrgId    OrgId
}
