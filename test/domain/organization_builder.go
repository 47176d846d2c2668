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
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mtahon/arbor-backend/app/domain/types"
	"github.com/mtahon/arbor-backend/app/interfaces"
	"github.com/mtahon/arbor-backend/app/persistence/domain"
	"gorm.io/gorm/clause"
)

var (
	DefaultOwner     = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	DefaultDirector  = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	DefaultCheckedAt = time.Date(2021, time.March, 1, 10, 0, 0, 0, time.UTC)
)

// OrgId returns a deterministic organization id for the number, e.g. OrgId(1) = 0x00..01
func OrgId(num int64) types.OrgId {
	return types.OrgId(common.BigToHash(big.NewInt(num)))
}

// LegalEntityJson returns a minimal legal entity ORG.JSON document
func LegalEntityJson(orgId types.OrgId, name, website string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":"did:orgid:%s","legalEntity":{"legalName":"%s","registeredAddress":{"country":"CH"},`+
			`"contacts":[{"email":"info@example.com","website":"%s"}]}}`,
		orgId.Hex(),
		name,
		website,
	))
}

// UnitJson returns a minimal organizational unit ORG.JSON document with the given raw "type" value
func UnitJson(orgId types.OrgId, name, unitType string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":"did:orgid:%s","organizationalUnit":{"name":"%s","type":%s,"address":{"country":"FR"}}}`,
		orgId.Hex(),
		name,
		unitType,
	))
}

type OrganizationBuilder struct {
	dbClient     interfaces.DbClient
	organization types.Organization
}

func (b *OrganizationBuilder) Country(country string) *OrganizationBuilder {
	b.organization.Country = country
	return b
}

func (b *OrganizationBuilder) Deposit(wei *big.Int) *OrganizationBuilder {
	b.organization.Deposit = wei
	return b
}

func (b *OrganizationBuilder) Document(raw []byte) *OrganizationBuilder {
	document, err := types.ParseDocument(raw)
	if err != nil {
		panic(err)
	}

	b.organization.Document = document
	b.organization.OrgJsonHash = crypto.Keccak256Hash(raw)
	b.organization.Kind = document.Kind()
	b.organization.Directory = document.Directory()
	b.organization.Name = document.Name()
	b.organization.Country = document.Country()
	b.organization.Logo = document.Logo()
	b.organization.Contact = document.PrimaryContact()
	return b
}

func (b *OrganizationBuilder) Name(name string) *OrganizationBuilder {
	b.organization.Name = name
	return b
}

func (b *OrganizationBuilder) Owner(owner common.Address) *OrganizationBuilder {
	b.organization.Owner = owner
	return b
}

func (b *OrganizationBuilder) Parent(parent *types.Organization) *OrganizationBuilder {
	b.organization.ParentEntity = parent.OrgId
	b.organization.Parent = parent.Summary()
	b.organization.Subsidiaries = []types.OrgId{}
	return b
}

func (b *OrganizationBuilder) Proofs(proofs types.Proofs) *OrganizationBuilder {
	b.organization.SetProofs(proofs)
	return b
}

func (b *OrganizationBuilder) Subsidiaries(subsidiaries ...types.OrgId) *OrganizationBuilder {
	b.organization.Subsidiaries = subsidiaries
	return b
}

func (b *OrganizationBuilder) Website(website string) *OrganizationBuilder {
	b.organization.Contact.Website = website
	return b
}

// Build returns a copy of the organization built so far
func (b *OrganizationBuilder) Build() *types.Organization {
	org := b.organization
	org.Subsidiaries = append([]types.OrgId{}, b.organization.Subsidiaries...)
	org.SetProofs(b.organization.Proofs)
	return &org
}

func (b *OrganizationBuilder) Persist() *types.Organization {
	org := b.Build()
	b.dbClient.GetDb().
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(domain.NewOrganization(org))
	return org
}

func NewOrganizationBuilder(dbClient interfaces.DbClient, orgId types.OrgId) *OrganizationBuilder {
	org := types.Organization{
		OrgId:             orgId,
		Owner:             DefaultOwner,
		Director:          DefaultDirector,
		DirectorConfirmed: true,
		State:             types.StateActive,
		Subsidiaries:      []types.OrgId{},
		Kind:              types.KindUnknown,
		Directory:         types.DirectoryUnknown,
		Name:              types.NameNotDefined,
		Deposit:           big.NewInt(0),
		OrgJsonUri:        fmt.Sprintf("https://example.com/%s.json", orgId.Hex()),
		JsonCheckedAt:     DefaultCheckedAt,
		JsonUpdatedAt:     DefaultCheckedAt,
	}
	org.SetProofs(types.Proofs{})
	return &OrganizationBuilder{dbClient: dbClient, organization: org}
}
