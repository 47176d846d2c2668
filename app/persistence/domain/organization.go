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

package domain

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mtahon/arbor-backend/app/domain/types"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
)

const tableNameOrganization = "organization"

// Organization is the directory row of a resolved organization. Ids and addresses are stored as lower case hex so they
// can be matched with plain equality
type Organization struct {
	OrgId             string                            `gorm:"column:org_id;primaryKey;size:66"`
	Owner             string                            `gorm:"column:owner;size:42;index"`
	Director          string                            `gorm:"column:director;size:42"`
	DirectorConfirmed bool                              `gorm:"column:director_confirmed"`
	State             string                            `gorm:"column:state"`
	ParentOrgId       string                            `gorm:"column:parent_org_id;size:66;index"`
	ParentName        string                            `gorm:"column:parent_name"`
	ParentProofsQty   int                               `gorm:"column:parent_proofs_qty"`
	Subsidiaries      datatypes.JSONSlice[string]       `gorm:"column:subsidiaries"`
	OrgidType         string                            `gorm:"column:orgid_type;index"`
	Directory         string                            `gorm:"column:directory;index"`
	Name              string                            `gorm:"column:name"`
	Country           string                            `gorm:"column:country;size:2"`
	Logo              string                            `gorm:"column:logo"`
	Contact           datatypes.JSONType[types.Contact] `gorm:"column:contact"`
	LifDeposit        string                            `gorm:"column:lif_deposit;type:numeric"`
	IsLifProved       bool                              `gorm:"column:is_lif_proved"`
	IsWebsiteProved   bool                              `gorm:"column:is_website_proved"`
	IsSslProved       bool                              `gorm:"column:is_ssl_proved"`
	IsSocialFbProved  bool                              `gorm:"column:is_social_fb_proved"`
	IsSocialTwProved  bool                              `gorm:"column:is_social_tw_proved"`
	IsSocialIgProved  bool                              `gorm:"column:is_social_ig_proved"`
	IsSocialLnProved  bool                              `gorm:"column:is_social_ln_proved"`
	ProofsQty         int                               `gorm:"column:proofs_qty;index"`
	OrgJsonUri        string                            `gorm:"column:org_json_uri"`
	OrgJsonHash       string                            `gorm:"column:org_json_hash;size:66"`
	OrgJsonContent    datatypes.JSON                    `gorm:"column:org_json_content;type:json"`
	JsonCheckedAt     time.Time                         `gorm:"column:json_checked_at"`
	JsonUpdatedAt     time.Time                         `gorm:"column:json_updated_at"`
}

// TableName returns organization table name
func (Organization) TableName() string {
	return tableNameOrganization
}

// NewOrganization maps a resolved organization to its row
func NewOrganization(org *types.Organization) *Organization {
	row := &Organization{
		OrgId:             org.OrgId.Hex(),
		Owner:             addressToHex(org.Owner),
		Director:          addressToHex(org.Director),
		DirectorConfirmed: org.DirectorConfirmed,
		State:             string(org.State),
		Subsidiaries:      make(datatypes.JSONSlice[string], 0, len(org.Subsidiaries)),
		OrgidType:         string(org.Kind),
		Directory:         org.Directory,
		Name:              org.Name,
		Country:           org.Country,
		Logo:              org.Logo,
		Contact:           datatypes.NewJSONType(org.Contact),
		LifDeposit:        "0",
		IsLifProved:       org.Proofs.Deposit,
		IsWebsiteProved:   org.Proofs.Website,
		IsSslProved:       org.Proofs.Ssl,
		IsSocialFbProved:  org.Proofs.Social[types.SocialFacebook],
		IsSocialTwProved:  org.Proofs.Social[types.SocialTwitter],
		IsSocialIgProved:  org.Proofs.Social[types.SocialInstagram],
		IsSocialLnProved:  org.Proofs.Social[types.SocialLinkedin],
		ProofsQty:         org.ProofsQty,
		OrgJsonUri:        org.OrgJsonUri,
		OrgJsonHash:       org.OrgJsonHash.Hex(),
		JsonCheckedAt:     org.JsonCheckedAt,
		JsonUpdatedAt:     org.JsonUpdatedAt,
	}

	if !org.ParentEntity.IsZero() {
		row.ParentOrgId = org.ParentEntity.Hex()
	}

	if org.Parent != nil {
		row.ParentName = org.Parent.Name
		row.ParentProofsQty = org.Parent.ProofsQty
	}

	for _, subsidiary := range org.Subsidiaries {
		row.Subsidiaries = append(row.Subsidiaries, subsidiary.Hex())
	}

	if org.Deposit != nil {
		row.LifDeposit = org.Deposit.String()
	}

	if org.Document != nil {
		row.OrgJsonContent = datatypes.JSON(org.Document.Raw)
	}

	return row
}

// ToOrganization maps the row back to the organization it was built from
func (o *Organization) ToOrganization() (*types.Organization, error) {
	orgId, err := types.NewOrgIdFromString(o.OrgId)
	if err != nil {
		return nil, err
	}

	deposit, ok := new(big.Int).SetString(o.LifDeposit, 10)
	if !ok {
		return nil, errors.Errorf("Invalid lif deposit %s of organization %s", o.LifDeposit, o.OrgId)
	}

	org := &types.Organization{
		OrgId:             orgId,
		Owner:             common.HexToAddress(o.Owner),
		Director:          common.HexToAddress(o.Director),
		DirectorConfirmed: o.DirectorConfirmed,
		State:             types.OrganizationState(o.State),
		Subsidiaries:      make([]types.OrgId, 0, len(o.Subsidiaries)),
		Kind:              types.OrganizationKind(o.OrgidType),
		Directory:         o.Directory,
		Name:              o.Name,
		Country:           o.Country,
		Logo:              o.Logo,
		Contact:           o.Contact.Data(),
		Deposit:           deposit,
		OrgJsonUri:        o.OrgJsonUri,
		OrgJsonHash:       common.HexToHash(o.OrgJsonHash),
		JsonCheckedAt:     o.JsonCheckedAt,
		JsonUpdatedAt:     o.JsonUpdatedAt,
	}

	if o.ParentOrgId != "" {
		parentId, err := types.NewOrgIdFromString(o.ParentOrgId)
		if err != nil {
			return nil, err
		}

		org.ParentEntity = parentId
		org.Parent = &types.ParentSummary{OrgId: parentId, Name: o.ParentName, ProofsQty: o.ParentProofsQty}
	}

	for _, subsidiary := range o.Subsidiaries {
		subsidiaryId, err := types.NewOrgIdFromString(subsidiary)
		if err != nil {
			return nil, err
		}

		org.Subsidiaries = append(org.Subsidiaries, subsidiaryId)
	}

	if len(o.OrgJsonContent) != 0 {
		document, err := types.ParseDocument([]byte(o.OrgJsonContent))
		if err != nil {
			return nil, err
		}

		org.Document = document
	}

	org.SetProofs(types.Proofs{
		Deposit: o.IsLifProved,
		Website: o.IsWebsiteProved,
		Ssl:     o.IsSslProved,
		Social: map[types.SocialNetwork]bool{
			types.SocialFacebook:  o.IsSocialFbProved,
			types.SocialTwitter:   o.IsSocialTwProved,
			types.SocialInstagram: o.IsSocialIgProved,
			types.SocialLinkedin:  o.IsSocialLnProved,
		},
	})

	return org, nil
}

func addressToHex(address common.Address) string {
	return strings.ToLower(address.Hex())
}
