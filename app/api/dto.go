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

package api

import (
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mtahon/arbor-backend/app/domain/types"
	"github.com/mtahon/arbor-backend/app/tools"
)

const resourceType = "orgid"

type links struct {
	Self string `json:"self"`
}

type organizationResponse struct {
	Links links         `json:"links"`
	Data  *organization `json:"data"`
}

type listMeta struct {
	PageNumber int   `json:"page[number]"`
	PageSize   int   `json:"page[size]"`
	Total      int64 `json:"total"`
}

type organizationListResponse struct {
	Links links           `json:"links"`
	Meta  listMeta        `json:"meta"`
	Data  []*organization `json:"data"`
}

type connectionStats struct {
	Connected    bool   `json:"connected"`
	Reconnection bool   `json:"reconnection"`
	Reconnects   uint64 `json:"reconnects"`
}

// organization is the API view of a directory record. List entries only carry the summary fields
type organization struct {
	Type         string                  `json:"type"`
	OrgId        types.OrgId             `json:"orgid"`
	Owner        string                  `json:"owner"`
	State        types.OrganizationState `json:"state"`
	Subsidiaries []types.OrgId           `json:"subsidiaries"`
	Parent       *types.ParentSummary    `json:"parent"`
	OrgIdType    types.OrganizationKind  `json:"orgidType"`
	Directory    string                  `json:"directory"`
	Name         string                  `json:"name"`
	Logo         string                  `json:"logo,omitempty"`
	Country      string                  `json:"country,omitempty"`
	ProofsQty    int                     `json:"proofsQty"`

	*details
}

type details struct {
	Director          string          `json:"director"`
	DirectorConfirmed bool            `json:"directorConfirmed"`
	Contact           types.Contact   `json:"contact"`
	LifDeposit        string          `json:"lifDeposit"`
	IsLifProved       bool            `json:"isLifProved"`
	IsWebsiteProved   bool            `json:"isWebsiteProved"`
	IsSslProved       bool            `json:"isSslProved"`
	IsSocialFBProved  bool            `json:"isSocialFBProved"`
	IsSocialTWProved  bool            `json:"isSocialTWProved"`
	IsSocialIGProved  bool            `json:"isSocialIGProved"`
	IsSocialLNProved  bool            `json:"isSocialLNProved"`
	OrgJsonUri        string          `json:"orgJsonUri"`
	OrgJsonHash       common.Hash     `json:"orgJsonHash"`
	OrgJsonContent    json.RawMessage `json:"orgJsonContent,omitempty"`
	JsonCheckedAt     time.Time       `json:"jsonCheckedAt"`
	JsonUpdatedAt     time.Time       `json:"jsonUpdatedAt"`
}

func newOrganization(org *types.Organization, full bool) *organization {
	subsidiaries := org.Subsidiaries
	if subsidiaries == nil {
		subsidiaries = []types.OrgId{}
	}

	view := &organization{
		Type:         resourceType,
		OrgId:        org.OrgId,
		Owner:        addressToHex(org.Owner),
		State:        org.State,
		Subsidiaries: subsidiaries,
		Parent:       org.Parent,
		OrgIdType:    org.Kind,
		Directory:    org.Directory,
		Name:         org.Name,
		Logo:         org.Logo,
		Country:      org.Country,
		ProofsQty:    org.ProofsQty,
	}

	if !full {
		return view
	}

	view.details = &details{
		Director:          addressToHex(org.Director),
		DirectorConfirmed: org.DirectorConfirmed,
		Contact:           org.Contact,
		LifDeposit:        types.WeiToEther(org.Deposit).Text('f', -1),
		IsLifProved:       org.Proofs.Deposit,
		IsWebsiteProved:   org.Proofs.Website,
		IsSslProved:       org.Proofs.Ssl,
		IsSocialFBProved:  org.Proofs.Social[types.SocialFacebook],
		IsSocialTWProved:  org.Proofs.Social[types.SocialTwitter],
		IsSocialIGProved:  org.Proofs.Social[types.SocialInstagram],
		IsSocialLNProved:  org.Proofs.Social[types.SocialLinkedin],
		OrgJsonUri:        org.OrgJsonUri,
		OrgJsonHash:       org.OrgJsonHash,
		JsonCheckedAt:     org.JsonCheckedAt,
		JsonUpdatedAt:     org.JsonUpdatedAt,
	}

	if org.Document != nil && json.Valid(org.Document.Raw) {
		view.OrgJsonContent = org.Document.Raw
	}

	return view
}

func addressToHex(address common.Address) string {
	if address == (common.Address{}) {
		return ""
	}

	return tools.SafeAddHexPrefix(common.Bytes2Hex(address.Bytes()))
}
