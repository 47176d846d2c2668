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

package pipeline

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mtahon/arbor-backend/app/config"
	"github.com/mtahon/arbor-backend/app/domain/types"
	hErrors "github.com/mtahon/arbor-backend/app/errors"
	"github.com/mtahon/arbor-backend/app/interfaces"
	"github.com/mtahon/arbor-backend/app/tools"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var errStreamClosed = errors.New("Event stream closed")

// ResolverFactory binds a resolver to a connected client
type ResolverFactory func(client interfaces.ChainClient) interfaces.OrganizationResolver

// Pipeline turns registry events into directory records. A session runs per connection, the checkpoint is shared
type Pipeline struct {
	checkpoints   interfaces.CheckpointRepository
	config        config.Pipeline
	newResolver   ResolverFactory
	organizations interfaces.OrganizationRepository
	scanned       atomic.Bool

	mutex  sync.RWMutex
	client interfaces.ChainClient
}

func NewPipeline(
	checkpoints interfaces.CheckpointRepository,
	organizations interfaces.OrganizationRepository,
	newResolver ResolverFactory,
	config config.Pipeline,
) *Pipeline {
	return &Pipeline{
		checkpoints:   checkpoints,
		config:        config,
		newResolver:   newResolver,
		organizations: organizations,
	}
}

// OnConnected consumes registry events with the client until the stream fails or ctx is done. Events are replayed
// from a safety margin below the checkpoint, processing is idempotent
func (p *Pipeline) OnConnected(ctx context.Context, client interfaces.ChainClient) error {
	p.setClient(client)
	defer p.setClient(nil)

	// an interrupted or failed scan is retried by the next session
	if p.config.ScanOnStartup && !p.scanned.Load() {
		if err := p.Scan(ctx, client); err != nil {
			return err
		}
		p.scanned.Store(true)
	}

	checkpoint, err := p.checkpoints.Get(ctx)
	if err != nil {
		return err
	}

	fromBlock := tools.SaturatingSub(checkpoint, p.config.SafetyMargin)
	stream, err := client.SubscribeEvents(ctx, fromBlock)
	if err != nil {
		return err
	}
	defer stream.Close()

	log.Infof("Consuming registry events from block %d (checkpoint %d)", fromBlock, checkpoint)
	log.Debugf("Dispatching registry events %s", strings.Join(types.KnownEventNames(), ", "))
	session := &session{
		client:   client,
		pipeline: p,
		resolver: p.newResolver(client),
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-stream.Err():
			return err
		case event, ok := <-stream.Events():
			if !ok {
				select {
				case err := <-stream.Err():
					return err
				default:
					return errStreamClosed
				}
			}

			session.process(ctx, event)
		}
	}
}

// OnDisconnected logs why the session ended
func (p *Pipeline) OnDisconnected(err error) {
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Warnf("Event consumption stopped: %s", err)
	}
}

// Scan resolves and stores every organization of the registry with a bounded worker pool. A failing organization is
// logged and skipped
func (p *Pipeline) Scan(ctx context.Context, client interfaces.ChainClient) error {
	orgIds, err := client.GetOrganizations(ctx)
	if err != nil {
		return err
	}

	log.Infof("Scanning %d registry organizations", len(orgIds))
	resolver := p.newResolver(client)
	var done sync.Map
	var failures atomic.Int64
	resolveOnce := func(orgId types.OrgId) *types.Organization {
		if _, seen := done.LoadOrStore(orgId, true); seen {
			return nil
		}

		org, err := p.resolveAndStore(ctx, resolver, orgId)
		if err != nil {
			failures.Add(1)
			log.Errorf("Failed to scan %s: %s", orgId, err)
		}
		return org
	}

	group := &errgroup.Group{}
	group.SetLimit(p.config.ScanWorkers)
	for _, orgId := range orgIds {
		if ctx.Err() != nil {
			break
		}

		group.Go(func() error {
			if org := resolveOnce(orgId); org != nil {
				for _, subsidiary := range org.Subsidiaries {
					resolveOnce(subsidiary)
				}
			}
			return nil
		})
	}
	_ = group.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	log.Infof("Scan finished, %d organizations failed", failures.Load())
	return nil
}

// RefreshOne resolves and stores the organization with the connected client
func (p *Pipeline) RefreshOne(ctx context.Context, orgId types.OrgId) (*types.Organization, error) {
	client := p.currentClient()
	if client == nil {
		return nil, hErrors.ErrTransientChainUnavailable
	}

	return p.resolveAndStore(ctx, p.newResolver(client), orgId)
}

func (p *Pipeline) resolveAndStore(
	ctx context.Context,
	resolver interfaces.OrganizationResolver,
	orgId types.OrgId,
) (org *types.Organization, err error) {
	start := time.Now()
	defer func() {
		resolveDurationHistogram.WithLabelValues(result(err)).Observe(time.Since(start).Seconds())
	}()

	if org, err = resolver.Resolve(ctx, orgId); err != nil {
		return nil, err
	}

	if err = p.organizations.Upsert(ctx, org); err != nil {
		return nil, err
	}

	log.Infof("Stored %s %q", orgId, org.Name)
	return org, nil
}

func (p *Pipeline) currentClient() interfaces.ChainClient {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.client
}

func (p *Pipeline) setClient(client interfaces.ChainClient) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.client = client
}
