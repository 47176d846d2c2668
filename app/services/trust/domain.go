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
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/Code-Hex/go-generics-cache"
	"github.com/mtahon/arbor-backend/app/domain/types"
	"github.com/mtahon/arbor-backend/app/tools"
	log "github.com/sirupsen/logrus"
)

const (
	dnsOrgIdPrefix = "orgid="
	schemeHttp     = "http"
	schemeHttps    = "https"
)

// isDomainProved looks for the organization id published by the website host, first in a DNS TXT record then in
// <scheme>://<host>/org.id
func (e *engine) isDomainProved(ctx context.Context, scheme, host string, orgId types.OrgId) bool {
	if host == "" {
		return false
	}

	discovered, ok := e.domainCache.Get(host)
	if !ok {
		discovered = e.lookupDnsOrgId(ctx, host)
		if discovered == "" {
			discovered = e.fetchWellKnownOrgId(ctx, scheme, host)
		}

		// inconclusive lookups are retried next time
		if discovered != "" {
			e.domainCache.Set(host, discovered, cache.WithExpiration(e.config.CacheTtl))
		}
	}

	return orgId.EqualsHex(discovered)
}

func (e *engine) lookupDnsOrgId(ctx context.Context, host string) string {
	ctx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	records, err := e.txtResolver.LookupTXT(ctx, host)
	if err != nil {
		log.Debugf("DNS TXT lookup of %s failed: %s", host, err)
		return ""
	}

	for _, record := range records {
		if value := findDnsOrgId(record); value != "" {
			return value
		}
	}

	return ""
}

// findDnsOrgId returns the id of the first orgid= token of the record, tokens are separated by spaces, ';' or ','
func findDnsOrgId(record string) string {
	tokens := strings.FieldsFunc(record, func(r rune) bool {
		return r == ';' || r == ',' || unicode.IsSpace(r)
	})

	for _, token := range tokens {
		if len(token) <= len(dnsOrgIdPrefix) || !strings.EqualFold(token[:len(dnsOrgIdPrefix)], dnsOrgIdPrefix) {
			continue
		}

		if value := token[len(dnsOrgIdPrefix):]; tools.IsHash32(value) {
			return value
		}
	}

	return ""
}

func (e *engine) fetchWellKnownOrgId(ctx context.Context, scheme, host string) string {
	body, err := e.get(ctx, fmt.Sprintf("%s://%s/org.id", scheme, host))
	if err != nil {
		log.Debugf("Failed to fetch org.id of %s: %s", host, err)
		return ""
	}

	if tokens := tools.FindHash32Tokens(string(body)); len(tokens) > 0 {
		return tokens[0]
	}

	return ""
}

// parseWebsite returns the scheme and the lowercase host of the website. A missing or non http scheme is https
func parseWebsite(website string) (scheme, host string) {
	website = strings.TrimSpace(website)
	if website == "" {
		return schemeHttps, ""
	}

	if !strings.Contains(website, "://") {
		website = schemeHttps + "://" + website
	}

	parsed, err := url.Parse(website)
	if err != nil {
		return schemeHttps, ""
	}

	scheme = schemeHttps
	if strings.EqualFold(parsed.Scheme, schemeHttp) {
		scheme = schemeHttp
	}

	return scheme, strings.ToLower(parsed.Hostname())
}
