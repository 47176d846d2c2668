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

package document

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mtahon/arbor-backend/app/config"
	"github.com/mtahon/arbor-backend/app/domain/types"
	hErrors "github.com/mtahon/arbor-backend/app/errors"
	"github.com/mtahon/arbor-backend/app/interfaces"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	schemeHttp  = "http"
	schemeHttps = "https"
	schemeIpfs  = "ipfs"
)

type fetcher struct {
	client *http.Client
	config config.Document
}

// NewDocumentFetcher returns a fetcher downloading ORG.JSON documents over http(s), ipfs:// uris go through the
// configured gateway
func NewDocumentFetcher(client *http.Client, config config.Document) interfaces.DocumentFetcher {
	return &fetcher{client: client, config: config}
}

// FetchAndVerify downloads the document at uri and checks it against hash. Any failure is ErrDocumentUnverifiable
func (f *fetcher) FetchAndVerify(ctx context.Context, uri string, hash common.Hash) (*types.Document, error) {
	location, err := f.resolveUri(uri)
	if err != nil {
		return nil, err
	}

	raw, err := f.download(ctx, location)
	if err != nil {
		return nil, err
	}

	if !MatchesHash(raw, hash) {
		return nil, errors.Wrapf(hErrors.ErrDocumentUnverifiable, "hash mismatch for %s, expected %s", uri, hash)
	}

	document, err := types.ParseDocument(raw)
	if err != nil {
		return nil, errors.Wrapf(hErrors.ErrDocumentUnverifiable, "%s: %s", uri, err)
	}

	log.Debugf("Fetched ORG.JSON %s (%d bytes)", uri, len(raw))
	return document, nil
}

func (f *fetcher) resolveUri(uri string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return "", errors.Wrapf(hErrors.ErrDocumentUnverifiable, "invalid uri %q: %s", uri, err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case schemeHttp, schemeHttps:
		return parsed.String(), nil
	case schemeIpfs:
		if f.config.IpfsGateway == "" {
			return "", errors.Wrapf(hErrors.ErrDocumentUnverifiable, "no ipfs gateway for %s", uri)
		}
		path := strings.TrimPrefix(parsed.Host+parsed.Path, "ipfs/")
		return fmt.Sprintf("%s/ipfs/%s", strings.TrimSuffix(f.config.IpfsGateway, "/"), path), nil
	default:
		return "", errors.Wrapf(hErrors.ErrDocumentUnverifiable, "unsupported uri %q", uri)
	}
}

func (f *fetcher) download(ctx context.Context, location string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, errors.Wrapf(hErrors.ErrDocumentUnverifiable, "%s: %s", location, err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := f.client.Do(request)
	if err != nil {
		return nil, errors.Wrapf(hErrors.ErrDocumentUnverifiable, "%s: %s", location, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(hErrors.ErrDocumentUnverifiable, "%s: unexpected status %d", location,
			response.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(response.Body, f.config.MaxSize+1))
	if err != nil {
		return nil, errors.Wrapf(hErrors.ErrDocumentUnverifiable, "%s: %s", location, err)
	}

	if int64(len(raw)) > f.config.MaxSize {
		return nil, errors.Wrapf(hErrors.ErrDocumentUnverifiable, "%s: document exceeds %d bytes", location,
			f.config.MaxSize)
	}

	return raw, nil
}

// MatchesHash returns true if the keccak256 of the raw bytes, or of their whitespace-free JSON form, equals hash
func MatchesHash(raw []byte, hash common.Hash) bool {
	if crypto.Keccak256Hash(raw) == hash {
		return true
	}

	compact := &bytes.Buffer{}
	if err := json.Compact(compact, raw); err != nil {
		return false
	}

	return crypto.Keccak256Hash(compact.Bytes()) == hash
}
