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

const (
	DirectoryUnknown   = "unknown"
	NameNotDefined     = "Name is not defined"
	OrgIdDocumentIdTag = "did:orgid:"
)

type OrganizationKind string

const (
	KindLegalEntity        OrganizationKind = "legalEntity"
	KindOrganizationalUnit OrganizationKind = "organizationalUnit"
	KindUnknown            OrganizationKind = "unknown"
)

type OrganizationState string

const (
	StateActive    OrganizationState = "active"
	StateSuspended OrganizationState = "suspended"
)

type SocialNetwork string

const (
	SocialFacebook  SocialNetwork = "facebook"
	SocialInstagram SocialNetwork = "instagram"
	SocialLinkedin  SocialNetwork = "linkedin"
	SocialTwitter   SocialNetwork = "twitter"
)

// SocialNetworks lists every network an organization can attest on, in a stable order
var SocialNetworks = []SocialNetwork{SocialFacebook, SocialTwitter, SocialInstagram, SocialLinkedin}
