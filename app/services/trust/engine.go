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
	"crypto/x509"
	"io"
	"math/big"
	"net"
	"net/http"
	"sync"

	"github.com/Code-Hex/go-generics-cache"
	"github.com/Code-Hex/go-generics-cache/policy/lru"
	"github.com/ethereum/go-ethereum/params"
	"github.com/mtahon/arbor-backend/app/config"
	"github.com/mtahon/arbor-backend/app/domain/types"
	"github.com/mtahon/arbor-backend/app/interfaces"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	defaultCacheMaxSize = 1000
	maxResponseSize     = 2 << 20
)

// TxtResolver looks up DNS TXT records, *net.Resolver implements it
type TxtResolver interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

// CertificateFetcher returns the leaf certificate served by the host
type CertificateFetcher func(ctx context.Context, host string) (*x509.Certificate, error)

type engine struct {
	client           *http.Client
	config           config.Trust
	domainCache      *cache.Cache[string, string]
	fetchCertificate CertificateFetcher
	minimumDeposit   *big.Int
	txtResolver      TxtResolver
}

// NewTrustEngine returns the evaluator of the deposit, domain, TLS and social proofs
func NewTrustEngine(client *http.Client, config config.Trust) interfaces.TrustEvaluator {
	return newEngine(client, config, net.DefaultResolver, dialCertificate)
}

func newEngine(
	client *http.Client,
	config config.Trust,
	txtResolver TxtResolver,
	fetchCertificate CertificateFetcher,
) *engine {
	capacity := config.CacheMaxSize
	if capacity <= 0 {
		capacity = defaultCacheMaxSize
	}

	return &engine{
		client:           client,
		config:           config,
		domainCache:      cache.New(cache.AsLRU[string, string](lru.WithCapacity(capacity))),
		fetchCertificate: fetchCertificate,
		minimumDeposit:   etherToWei(config.LifMinimumDeposit),
		txtResolver:      txtResolver,
	}
}

// Evaluate runs every check concurrently. A check that cannot complete counts as not proved
func (e *engine) Evaluate(ctx context.Context, org *types.Organization) types.Proofs {
	proofs := types.Proofs{
		Deposit: e.isDepositProved(org.Deposit),
		Social:  make(map[types.SocialNetwork]bool, len(types.SocialNetworks)),
	}

	var mutex sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)

	scheme, host := parseWebsite(org.Contact.Website)
	group.Go(func() error {
		website := e.isDomainProved(groupCtx, scheme, host, org.OrgId)
		ssl := website && e.isSslProved(groupCtx, host, org.Name)

		mutex.Lock()
		defer mutex.Unlock()
		proofs.Website = website
		proofs.Ssl = ssl
		return nil
	})

	for _, network := range types.SocialNetworks {
		proofUrl := ""
		if org.Document != nil {
			proofUrl = org.Document.SocialProofUrl(network)
		}

		group.Go(func() error {
			proved := e.isSocialProved(groupCtx, network, proofUrl, org.OrgId)

			mutex.Lock()
			defer mutex.Unlock()
			proofs.Social[network] = proved
			return nil
		})
	}

	_ = group.Wait()
	log.Debugf("Trust proofs of %s: deposit %t, website %t, ssl %t, social %v", org.OrgId, proofs.Deposit,
		proofs.Website, proofs.Ssl, proofs.Social)
	return proofs
}

func (e *engine) isDepositProved(deposit *big.Int) bool {
	if deposit == nil {
		return e.minimumDeposit.Sign() <= 0
	}

	return deposit.Cmp(e.minimumDeposit) >= 0
}

// etherToWei converts the configured minimum once so deposits compare exactly in wei
func etherToWei(amount float64) *big.Int {
	wei, _ := new(big.Float).Mul(big.NewFloat(amount), big.NewFloat(params.Ether)).Int(nil)
	return wei
}

// get downloads at most maxResponseSize bytes of the url within the trust timeout
func (e *engine) get(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	response, err := e.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, errors.Errorf("%s: unexpected status %d", url, response.StatusCode)
	}

	return io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
}
