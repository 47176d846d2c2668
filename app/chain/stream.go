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

package chain

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/mtahon/arbor-backend/app/domain/types"
	hErrors "github.com/mtahon/arbor-backend/app/errors"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	backfillBatchSize = 5000
	logBufferSize     = 128
)

// eventStream replays the registry logs from fromBlock up to head, then forwards live logs above head. The live
// subscription is opened before the replay so nothing is missed in between
type eventStream struct {
	backend    Backend
	contract   *bind.BoundContract
	registry   common.Address
	rpcTimeout time.Duration

	cancel context.CancelFunc
	done   chan struct{}
	errs   chan error
	events chan types.Event
}

func newEventStream(
	parent context.Context,
	backend Backend,
	contract *bind.BoundContract,
	registry common.Address,
	fromBlock, head uint64,
	rpcTimeout time.Duration,
) (*eventStream, error) {
	ctx, cancel := context.WithCancel(parent)

	logs := make(chan ethTypes.Log, logBufferSize)
	sub, err := backend.SubscribeFilterLogs(ctx, ethereum.FilterQuery{Addresses: []common.Address{registry}}, logs)
	if err != nil {
		cancel()
		return nil, errors.Wrapf(hErrors.ErrTransientChainUnavailable, "subscribe: %s", err)
	}

	stream := &eventStream{
		backend:    backend,
		contract:   contract,
		registry:   registry,
		rpcTimeout: rpcTimeout,
		cancel:     cancel,
		done:       make(chan struct{}),
		errs:       make(chan error, 1),
		events:     make(chan types.Event),
	}
	go stream.run(ctx, sub, logs, fromBlock, head)

	return stream, nil
}

func (s *eventStream) Events() <-chan types.Event {
	return s.events
}

func (s *eventStream) Err() <-chan error {
	return s.errs
}

func (s *eventStream) Close() {
	s.cancel()
	<-s.done
}

func (s *eventStream) run(
	ctx context.Context,
	sub ethereum.Subscription,
	logs <-chan ethTypes.Log,
	fromBlock, head uint64,
) {
	defer close(s.done)
	defer close(s.events)
	defer sub.Unsubscribe()

	log.Infof("Replaying registry events from block %d to %d", fromBlock, head)
	for start := fromBlock; start <= head; start += backfillBatchSize {
		end := min(start+backfillBatchSize-1, head)
		past, err := s.filterLogs(ctx, start, end)
		if err != nil {
			s.fail(err)
			return
		}

		for _, pastLog := range past {
			if !s.emit(ctx, pastLog) {
				return
			}
		}
	}

	log.Infof("Listening to live registry events above block %d", head)
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-sub.Err():
			if err == nil {
				err = errors.New("subscription closed")
			}
			s.fail(errors.Wrapf(hErrors.ErrTransientChainUnavailable, "subscription: %s", err))
			return
		case liveLog := <-logs:
			if liveLog.BlockNumber <= head {
				// already replayed
				continue
			}

			if !s.emit(ctx, liveLog) {
				return
			}
		}
	}
}

func (s *eventStream) filterLogs(ctx context.Context, start, end uint64) ([]ethTypes.Log, error) {
	ctx, cancel := context.WithTimeout(ctx, s.rpcTimeout)
	defer cancel()

	past, err := s.backend.FilterLogs(ctx, filterQuery(s.registry, start, new(big.Int).SetUint64(end)))
	if err != nil {
		return nil, errors.Wrapf(hErrors.ErrTransientChainUnavailable, "filter logs [%d, %d]: %s", start, end, err)
	}

	return past, nil
}

// emit decodes and forwards the log, it returns false once ctx is done
func (s *eventStream) emit(ctx context.Context, registryLog ethTypes.Log) bool {
	if registryLog.Removed {
		log.Debugf("Skipping removed log %s:%d", registryLog.TxHash, registryLog.Index)
		return true
	}

	event, err := decodeLog(s.contract, registryLog)
	if err != nil {
		log.Warn(err)
		return true
	}

	select {
	case s.events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *eventStream) fail(err error) {
	select {
	case s.errs <- err:
	default:
	}
}
