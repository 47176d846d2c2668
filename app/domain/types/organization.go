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
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ParentSummary is what a child record carries about its parent. The full parent record is never embedded.
type ParentSummary struct {
	OrgId     OrgId  `json:"orgid"`
	Name      string `json:"name"`
	ProofsQty int    `json:"proofsQty"`
}

// Proofs holds the outcome of every trust check of an organization
type Proofs struct {
	Deposit bool
	Website bool
	Ssl     bool
	Social  map[SocialNetwork]bool
}

// IsSocialProved returns true if at least one social network attests the organization
func (p Proofs) IsSocialProved() bool {
	for _, proved := range p.Social {
		if proved {
			return true
		}
	}

	return false
}

// Count returns the number of true proofs among website, ssl, deposit and social, social counting once
func (p Proofs) Count() int {
	count := 0
	for _, proved := range []bool{p.Website, p.Ssl, p.Deposit, p.IsSocialProved()} {
		if proved {
			count++
		}
	}

	return count
}

// Organization is the fully resolved directory record of a registry entity
type Organization struct {
	OrgId             OrgId
	Owner             common.Address
	Director          common.Address
	DirectorConfirmed bool
	State             OrganizationState
	ParentEntity      OrgId
	Parent            *ParentSummary
	Subsidiaries      []OrgId
	Kind              OrganizationKind
	Directory         string
	Name              string
	Country           string
	Logo              string
	Contact           Contact
	Deposit           *big.Int
	OrgJsonUri        string
	OrgJsonHash       common.Hash
	Proofs            Proofs
	ProofsQty         int
	Document          *Document
	JsonCheckedAt     time.Time
	JsonUpdatedAt     time.Time
}

// IsRoot returns true if the organization has no parent
func (o *Organization) IsRoot() bool {
	return o.ParentEntity.IsZero()
}

// SetProofs stores the proofs and recomputes ProofsQty from them. Ssl can only hold on a proved website.
func (o *Organization) SetProofs(proofs Proofs) {
	proofs.Ssl = proofs.Ssl && proofs.Website
	if proofs.Social == nil {
		proofs.Social = make(map[SocialNetwork]bool, len(SocialNetworks))
	}
	for _, network := range SocialNetworks {
		proofs.Social[network] = proofs.Social[network]
	}

	o.Proofs = proofs
	o.ProofsQty = proofs.Count()
}

// Summary returns the parent summary of this organization as seen by its subsidiaries
func (o *Organization) Summary() *ParentSummary {
	return &ParentSummary{
		OrgId:     o.OrgId,
		Name:      o.Name,
		ProofsQty: o.ProofsQty,
	}
}
