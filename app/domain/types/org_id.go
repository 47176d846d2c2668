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
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mtahon/arbor-backend/app/tools"
	"github.com/pkg/errors"
)

// OrgId is the 32-byte registry identifier of an organization
type OrgId common.Hash

// ZeroOrgId is the sentinel meaning "no parent"
var ZeroOrgId = OrgId{}

// NewOrgIdFromString parses a 0x prefixed, 64 hex digit organization id
func NewOrgIdFromString(value string) (OrgId, error) {
	if !tools.IsHash32(value) {
		return ZeroOrgId, errors.Errorf("Invalid orgid %s", value)
	}

	return OrgId(common.HexToHash(value)), nil
}

func (id OrgId) Hash() common.Hash {
	return common.Hash(id)
}

// Hex returns the lowercase 0x prefixed representation
func (id OrgId) Hex() string {
	return common.Hash(id).Hex()
}

func (id OrgId) IsZero() bool {
	return id == ZeroOrgId
}

func (id OrgId) String() string {
	return id.Hex()
}

// EqualsHex compares with a hex string case-insensitively, as ids scraped from web pages come in either case
func (id OrgId) EqualsHex(value string) bool {
	return tools.IsHash32(value) && strings.EqualFold(id.Hex(), value)
}

func (id OrgId) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

func (id *OrgId) UnmarshalText(input []byte) error {
	parsed, err := NewOrgIdFromString(string(input))
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}
