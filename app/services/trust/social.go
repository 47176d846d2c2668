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

package trust

import (
	"context"

	"github.com/k3a/html2text"
	"github.com/mtahon/arbor-backend/app/domain/types"
	"github.com/mtahon/arbor-backend/app/tools"
	log "github.com/sirupsen/logrus"
)

// networks with a proof extractor, the others never prove
var socialExtractors = map[types.SocialNetwork]bool{
	types.SocialFacebook: true,
	types.SocialTwitter:  true,
}

// isSocialProved fetches the proof page declared for the network and looks for the organization id in its text
func (e *engine) isSocialProved(
	ctx context.Context,
	network types.SocialNetwork,
	proofUrl string,
	orgId types.OrgId,
) bool {
	if proofUrl == "" || !socialExtractors[network] {
		return false
	}

	body, err := e.get(ctx, proofUrl)
	if err != nil {
		log.Debugf("Failed to fetch %s proof %s: %s", network, proofUrl, err)
		return false
	}

	for _, token := range tools.FindHash32Tokens(html2text.HTML2Text(string(body))) {
		if orgId.EqualsHex(token) {
			return true
		}
	}

	return false
}
