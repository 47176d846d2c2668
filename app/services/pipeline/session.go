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

	"github.com/mtahon/arbor-backend/app/domain/types"
	"github.com/mtahon/arbor-backend/app/interfaces"
	"github.com/mtahon/arbor-backend/app/tools"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// session is the sequential event consumer of one connection
type session struct {
	client   interfaces.ChainClient
	head     uint64
	pipeline *Pipeline
	resolver interfaces.OrganizationResolver
}

// process handles one event and advances the checkpoint to its block. A failed event leaves the checkpoint as is
func (s *session) process(ctx context.Context, event types.Event) {
	err := s.waitForHead(ctx, event.BlockNumber)
	if err == nil {
		err = s.dispatch(ctx, event)
	}
	eventsCounter.WithLabelValues(event.Kind.String(), result(err)).Inc()

	if err != nil {
		if ctx.Err() == nil {
			log.Errorf("Failed to process %s of block %d (tx %s): %s", event.Kind, event.BlockNumber, event.TxHash, err)
		}
		return
	}

	if err := s.pipeline.checkpoints.Set(ctx, event.BlockNumber); err != nil {
		log.Errorf("Failed to advance checkpoint to %d: %s", event.BlockNumber, err)
		return
	}
	checkpointGauge.Set(float64(event.BlockNumber))
}

func (s *session) dispatch(ctx context.Context, event types.Event) error {
	switch event.Kind {
	case types.EventKindOrganizationCreated,
		types.EventKindOrganizationOwnershipTransferred,
		types.EventKindOrgJsonUriChanged,
		types.EventKindOrgJsonHashChanged,
		types.EventKindLifDepositAdded,
		types.EventKindWithdrawalRequested,
		types.EventKindDepositWithdrawn:
		_, err := s.pipeline.resolveAndStore(ctx, s.resolver, event.OrgId)
		return err
	case types.EventKindSubsidiaryCreated:
		if _, err := s.pipeline.resolveAndStore(ctx, s.resolver, event.ParentOrgId); err != nil {
			return err
		}
		_, err := s.pipeline.resolveAndStore(ctx, s.resolver, event.SubOrgId)
		return err
	case types.EventKindWithdrawDelayChanged:
		return nil
	default:
		log.Debugf("Ignoring unknown registry event %q of block %d", event.Name, event.BlockNumber)
		return nil
	}
}

// waitForHead blocks until the node reports a head at or above the block, so that reads see the event's state
func (s *session) waitForHead(ctx context.Context, blockNumber uint64) error {
	if s.head >= blockNumber {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.pipeline.config.HeadWaitTimeout)
	defer cancel()

	for {
		head, err := s.client.CurrentBlockHeight(ctx)
		if err != nil {
			return err
		}

		s.head = max(s.head, head)
		if s.head >= blockNumber {
			return nil
		}

		if err := tools.Sleep(ctx, s.pipeline.config.HeadPollInterval); err != nil {
			return errors.Wrapf(err, "head %d did not reach block %d", s.head, blockNumber)
		}
	}
}
