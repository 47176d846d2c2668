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
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Document is a verified ORG.JSON document. Raw keeps the exact bytes that were hash checked.
type Document struct {
	Raw     []byte
	Content DocumentContent
}

type DocumentContent struct {
	Id                 string              `json:"id"`
	LegalEntity        *LegalEntity        `json:"legalEntity,omitempty"`
	OrganizationalUnit *OrganizationalUnit `json:"organizationalUnit,omitempty"`
	Media              *Media              `json:"media,omitempty"`
	TrustAssertions    []TrustAssertion    `json:"trustAssertions,omitempty"`
}

type Address struct {
	Country string `json:"country"`
}

type Contact struct {
	Function  string `json:"function,omitempty"`
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Website   string `json:"website,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
}

type LegalEntity struct {
	LegalName         string    `json:"legalName"`
	RegisteredAddress *Address  `json:"registeredAddress,omitempty"`
	Contacts          []Contact `json:"contacts,omitempty"`
}

type OrganizationalUnit struct {
	Name     string          `json:"name"`
	Type     json.RawMessage `json:"type,omitempty"`
	Address  *Address        `json:"address,omitempty"`
	Contacts []Contact       `json:"contacts,omitempty"`
}

type Media struct {
	Logo string `json:"logo"`
}

// TrustAssertion is a "trust clue" published by the organization, e.g. {"type": "social/twitter", "proof": "https://..."}
type TrustAssertion struct {
	Type  string `json:"type"`
	Claim string `json:"claim"`
	Proof string `json:"proof"`
}

// ParseDocument decodes raw ORG.JSON bytes
func ParseDocument(raw []byte) (*Document, error) {
	var content DocumentContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, errors.Wrap(err, "Failed to decode ORG.JSON")
	}

	return &Document{Raw: raw, Content: content}, nil
}

// Kind is decided by which section the document carries, legalEntity winning over organizationalUnit
func (d *Document) Kind() OrganizationKind {
	switch {
	case d.Content.LegalEntity != nil:
		return KindLegalEntity
	case d.Content.OrganizationalUnit != nil:
		return KindOrganizationalUnit
	default:
		return KindUnknown
	}
}

// Directory returns the directory category. For organizational units the "type" array is collapsed to one string:
// a singleton is unwrapped and a longer array is kept as its JSON serialization, e.g. `["hotel","ota"]`.
func (d *Document) Directory() string {
	switch d.Kind() {
	case KindLegalEntity:
		return string(KindLegalEntity)
	case KindOrganizationalUnit:
		return collapseUnitType(d.Content.OrganizationalUnit.Type)
	default:
		return DirectoryUnknown
	}
}

func (d *Document) Name() string {
	name := ""
	switch d.Kind() {
	case KindLegalEntity:
		name = d.Content.LegalEntity.LegalName
	case KindOrganizationalUnit:
		name = d.Content.OrganizationalUnit.Name
	}

	if name == "" {
		return NameNotDefined
	}

	return name
}

// Country returns the 2-letter country code of the registered address, empty if absent or malformed
func (d *Document) Country() string {
	var address *Address
	switch d.Kind() {
	case KindLegalEntity:
		address = d.Content.LegalEntity.RegisteredAddress
	case KindOrganizationalUnit:
		address = d.Content.OrganizationalUnit.Address
	}

	if address == nil || len(address.Country) != 2 {
		return ""
	}

	return address.Country
}

func (d *Document) Logo() string {
	if d.Content.Media == nil {
		return ""
	}

	return d.Content.Media.Logo
}

// PrimaryContact returns the first contact of the organization section, a zero Contact if there is none
func (d *Document) PrimaryContact() Contact {
	var contacts []Contact
	switch d.Kind() {
	case KindLegalEntity:
		contacts = d.Content.LegalEntity.Contacts
	case KindOrganizationalUnit:
		contacts = d.Content.OrganizationalUnit.Contacts
	}

	if len(contacts) == 0 {
		return Contact{}
	}

	return contacts[0]
}

// SocialProofUrl returns the proof url of the first trust assertion for the network, empty if there is none
func (d *Document) SocialProofUrl(network SocialNetwork) string {
	for _, assertion := range d.Content.TrustAssertions {
		if assertion.Proof != "" && assertion.socialNetwork() == network {
			return assertion.Proof
		}
	}

	return ""
}

// socialNetwork reads the network from a "social/<network>" type, or from the claim of a bare "social" type
func (a TrustAssertion) socialNetwork() SocialNetwork {
	kind := strings.ToLower(strings.TrimSpace(a.Type))
	if network, ok := strings.CutPrefix(kind, "social/"); ok {
		return SocialNetwork(network)
	}

	if kind != "social" {
		return ""
	}

	claim := strings.ToLower(a.Claim)
	for _, network := range SocialNetworks {
		if strings.Contains(claim, string(network)) {
			return network
		}
	}

	return ""
}

func collapseUnitType(raw json.RawMessage) string {
	if len(raw) == 0 {
		return DirectoryUnknown
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == "" {
			return DirectoryUnknown
		}
		return single
	}

	var types []string
	if err := json.Unmarshal(raw, &types); err != nil || len(types) == 0 {
		return DirectoryUnknown
	}

	if len(types) == 1 {
		return types[0]
	}

	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(types); err != nil {
		return DirectoryUnknown
	}

	return strings.TrimSuffix(buffer.String(), "\n")
}
